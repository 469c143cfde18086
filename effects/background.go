package effects

import (
	"fmt"

	"github.com/opd-ai/framehook/frame"
)

// BackgroundEffect replaces background pixels with a fixed background image.
type BackgroundEffect struct {
	background *frame.Buffer
	segmenter  Segmenter
}

// NewBackgroundEffect creates a background replacement effect. The effect
// holds a reference to background for its lifetime.
func NewBackgroundEffect(background *frame.Buffer, segmenter Segmenter) *BackgroundEffect {
	return &BackgroundEffect{
		background: background,
		segmenter:  segmenter,
	}
}

// Apply composites the background into every pixel the segmenter marks as
// background, on all three planes.
func (bg *BackgroundEffect) Apply(buf *frame.Buffer) (*frame.Buffer, error) {
	if err := requireI420(buf); err != nil {
		return nil, err
	}
	if bg.segmenter == nil {
		return nil, ErrNoSegmenter
	}
	if err := requireI420(bg.background); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if bg.background.Width() != buf.Width() || bg.background.Height() != buf.Height() {
		return nil, fmt.Errorf("%w: background %dx%d, frame %dx%d", ErrSizeMismatch,
			bg.background.Width(), bg.background.Height(), buf.Width(), buf.Height())
	}

	mask, err := segment(bg.segmenter, buf)
	if err != nil {
		return nil, err
	}

	result := buf.Clone()
	width, height := buf.Width(), buf.Height()

	// Luma at full resolution
	compositePlane(result, bg.background, 0, width, height, func(row, col int) bool {
		return isForeground(mask, width, row, col)
	})

	// Chroma sampled from the top-left luma pixel of each 2×2 block
	chromaWidth, chromaHeight := (width+1)/2, (height+1)/2
	for plane := 1; plane <= 2; plane++ {
		compositePlane(result, bg.background, plane, chromaWidth, chromaHeight, func(row, col int) bool {
			return isForeground(mask, width, row*2, col*2)
		})
	}

	return result, nil
}

func compositePlane(dst, src *frame.Buffer, plane, width, height int, keep func(row, col int) bool) {
	dstPlane, dstStride := dst.Plane(plane), dst.Stride(plane)
	srcPlane, srcStride := src.Plane(plane), src.Stride(plane)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if keep(row, col) {
				continue
			}
			dstPlane[row*dstStride+col] = srcPlane[row*srcStride+col]
		}
	}
}

// GetName returns the effect name.
func (bg *BackgroundEffect) GetName() string {
	return "VirtualBackground"
}
