package capture

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/opd-ai/framehook/frame"
	"github.com/sirupsen/logrus"
)

// nominalFrameRate drives timestamps when a source runs unpaced.
const nominalFrameRate = 30

// SyntheticSource generates I420 test-pattern frames with strictly
// increasing presentation timestamps. It stands in for a camera in demos
// and tests.
type SyntheticSource struct {
	width    int
	height   int
	fps      int
	interval time.Duration
	rotation atomic.Int32
	pool     *frame.Pool
	seq      int64
}

// NewSyntheticSource creates a width×height source. fps > 0 paces Run with
// a ticker; fps == 0 delivers as fast as the chain accepts frames.
func NewSyntheticSource(width, height, fps int) (*SyntheticSource, error) {
	pool, err := frame.NewPool(width, height)
	if err != nil {
		return nil, err
	}

	rate := fps
	if rate <= 0 {
		rate = nominalFrameRate
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewSyntheticSource",
		"width":    width,
		"height":   height,
		"fps":      fps,
	}).Info("Creating synthetic capture source")

	return &SyntheticSource{
		width:    width,
		height:   height,
		fps:      fps,
		interval: time.Second / time.Duration(rate),
		pool:     pool,
	}, nil
}

// SetRotation sets the rotation stamped on subsequent frames. It may be
// called while Run is delivering.
func (s *SyntheticSource) SetRotation(r frame.Rotation) {
	s.rotation.Store(int32(r))
}

// Next produces the next frame. The caller owns it and must Release it.
func (s *SyntheticSource) Next() (*frame.PixelFrame, error) {
	buf := s.pool.Get()
	s.paint(buf)

	f, err := frame.New(buf, s.seq*s.interval.Nanoseconds(), frame.Rotation(s.rotation.Load()))
	if err != nil {
		buf.Release()
		return nil, err
	}
	s.seq++
	return f, nil
}

// paint draws a moving diagonal luma ramp so consecutive frames differ.
func (s *SyntheticSource) paint(buf *frame.Buffer) {
	y := buf.Plane(0)
	stride := buf.Stride(0)
	offset := int(s.seq)
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			y[row*stride+col] = byte(row + col + offset)
		}
	}
	for plane := 1; plane <= 2; plane++ {
		p := buf.Plane(plane)
		for i := range p {
			p[i] = 128
		}
	}
}

// Run delivers count frames to p (count <= 0 means until ctx is done) and
// returns the number delivered. Each frame is released once DeliverFrame
// returns, so sinks that keep frames must Retain them.
func (s *SyntheticSource) Run(ctx context.Context, p *Provider, count int) (int, error) {
	var tick <-chan time.Time
	if s.fps > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	delivered := 0
	for count <= 0 || delivered < count {
		if tick != nil {
			select {
			case <-ctx.Done():
				return delivered, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return delivered, err
		}

		f, err := s.Next()
		if err != nil {
			return delivered, err
		}
		p.DeliverFrame(f)
		f.Release()
		delivered++
	}

	logrus.WithFields(logrus.Fields{
		"function":  "SyntheticSource.Run",
		"delivered": delivered,
		"pool":      s.pool.Stats(),
	}).Debug("Synthetic source finished")

	return delivered, nil
}

// PoolStats exposes the buffer pool counters.
func (s *SyntheticSource) PoolStats() frame.PoolStats {
	return s.pool.Stats()
}
