package mdbridge

import (
	"image"
	"sync"
	"time"

	"github.com/opd-ai/framehook/capture"
	"github.com/opd-ai/framehook/frame"
	"github.com/pion/mediadevices/pkg/io/video"
	"github.com/sirupsen/logrus"
)

// Transform returns a mediadevices video transform that runs every YCbCr
// 4:2:0 image of the track through p's processor chain.
//
// Images of any other type, sub-images with an odd origin, and images the
// chain forwards unchanged pass through as the same value. The upstream release func is always returned
// to the consumer untouched. Frame timestamps are the elapsed time since
// the first image read.
func Transform(p *capture.Provider) video.TransformFunc {
	return func(r video.Reader) video.Reader {
		var (
			once  sync.Once
			start time.Time
		)

		return video.ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return img, release, err
			}
			once.Do(func() { start = time.Now() })

			yc, ok := img.(*image.YCbCr)
			if !ok || yc.SubsampleRatio != image.YCbCrSubsampleRatio420 {
				return img, release, nil
			}

			out, err := intercept(p, yc, time.Since(start).Nanoseconds())
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "mdbridge.Transform",
					"error":    err.Error(),
				}).Debug("Forwarding image unprocessed")
				return img, release, nil
			}
			return out, release, nil
		})
	}
}

func intercept(p *capture.Provider, img *image.YCbCr, timestampNs int64) (image.Image, error) {
	buf, err := ToBuffer(img)
	if err != nil {
		return nil, err
	}
	in, err := frame.New(buf, timestampNs, frame.Rotation0)
	if err != nil {
		buf.Release()
		return nil, err
	}
	defer in.Release()

	out := p.Intercept(in)
	if out == in {
		return img, nil
	}
	defer out.Release()

	return ToImage(out.Buffer())
}
