package effects

import (
	"fmt"

	"github.com/opd-ai/framehook/frame"
)

// BlurEffect applies a box blur to the luminance plane.
//
// With a Segmenter, foreground pixels keep their original value so only the
// background is blurred. Without one the whole frame is blurred.
type BlurEffect struct {
	radius    int // Blur radius (1-5)
	segmenter Segmenter
}

// NewBlurEffect creates a blur effect with specified radius.
// radius: 1-5, larger values create more blur
func NewBlurEffect(radius int, segmenter Segmenter) *BlurEffect {
	// Clamp to reasonable range
	if radius < 1 {
		radius = 1
	}
	if radius > 5 {
		radius = 5
	}

	return &BlurEffect{
		radius:    radius,
		segmenter: segmenter,
	}
}

// Apply applies box blur to the Y (luminance) plane.
func (be *BlurEffect) Apply(buf *frame.Buffer) (*frame.Buffer, error) {
	if err := requireI420(buf); err != nil {
		return nil, err
	}

	var mask []byte
	if be.segmenter != nil {
		m, err := segment(be.segmenter, buf)
		if err != nil {
			return nil, err
		}
		mask = m
	}

	result := buf.Clone()

	width := buf.Width()
	height := buf.Height()
	stride := buf.Stride(0)
	src := buf.Plane(0)
	dst := result.Plane(0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask != nil && isForeground(mask, width, y, x) {
				continue
			}

			sum := 0
			count := 0

			// Sample pixels in radius
			for dy := -be.radius; dy <= be.radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= height {
					continue
				}
				for dx := -be.radius; dx <= be.radius; dx++ {
					nx := x + dx
					if nx >= 0 && nx < width {
						sum += int(src[ny*stride+nx])
						count++
					}
				}
			}

			if count > 0 {
				dst[y*stride+x] = byte(sum / count)
			}
		}
	}

	return result, nil
}

// GetName returns the effect name.
func (be *BlurEffect) GetName() string {
	if be.segmenter != nil {
		return fmt.Sprintf("BackgroundBlur(%d)", be.radius)
	}
	return fmt.Sprintf("Blur(%d)", be.radius)
}
