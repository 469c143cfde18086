package effects

import (
	"fmt"

	"github.com/opd-ai/framehook/frame"
)

// Segmenter separates foreground from background.
//
// Segment returns a width×height mask where 255 marks certain foreground and
// 0 certain background. Real engines back this with a segmentation model;
// the layer treats it as opaque.
type Segmenter interface {
	Segment(buf *frame.Buffer) ([]byte, error)
}

// LumaKeySegmenter treats pixels at or above Threshold luminance as
// foreground. It suits keyed studio backdrops and deterministic tests.
type LumaKeySegmenter struct {
	Threshold byte
}

// Segment implements Segmenter.
func (s LumaKeySegmenter) Segment(buf *frame.Buffer) ([]byte, error) {
	if err := requireI420(buf); err != nil {
		return nil, err
	}

	width, height := buf.Width(), buf.Height()
	stride := buf.Stride(0)
	y := buf.Plane(0)
	mask := make([]byte, width*height)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if y[row*stride+col] >= s.Threshold {
				mask[row*width+col] = 255
			}
		}
	}

	return mask, nil
}

func segment(seg Segmenter, buf *frame.Buffer) ([]byte, error) {
	mask, err := seg.Segment(buf)
	if err != nil {
		return nil, fmt.Errorf("segmentation failed: %w", err)
	}
	if len(mask) != buf.Width()*buf.Height() {
		return nil, fmt.Errorf("%w: mask has %d entries, frame has %d pixels",
			ErrSizeMismatch, len(mask), buf.Width()*buf.Height())
	}
	return mask, nil
}

func isForeground(mask []byte, width, row, col int) bool {
	return mask[row*width+col] >= 128
}
