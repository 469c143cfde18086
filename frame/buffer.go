package frame

import (
	"fmt"
	"sync/atomic"

	"github.com/opd-ai/framehook/limits"
	"github.com/sirupsen/logrus"
)

// Buffer is the pixel storage behind a PixelFrame.
//
// A Buffer is reference counted. It is created with one reference owned by
// whoever allocated it; every additional holder that needs the pixels past
// the current delivery callback must call Retain and later Release. When the
// last reference is released the release hook runs, which is how pooled
// buffers return to their Pool.
//
// Plane data is shared, not copied. Callers must treat planes as read-only
// unless Writable reports that they hold the only reference.
type Buffer struct {
	width   int
	height  int
	format  PixelFormat
	planes  [][]byte
	strides []int

	refs      atomic.Int32
	onRelease func(*Buffer)
}

// NewI420Buffer allocates a zeroed I420 buffer with tightly packed planes.
func NewI420Buffer(width, height int) (*Buffer, error) {
	if err := limits.ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	chromaWidth := (width + 1) / 2
	chromaHeight := (height + 1) / 2

	planes := [][]byte{
		make([]byte, width*height),
		make([]byte, chromaWidth*chromaHeight),
		make([]byte, chromaWidth*chromaHeight),
	}
	strides := []int{width, chromaWidth, chromaWidth}

	return newBuffer(FormatI420, width, height, planes, strides), nil
}

// WrapPlanes builds a Buffer around caller-provided planes without copying.
//
// The plane count must match the format (3 for I420, 2 for NV12, 1 for BGRA)
// and every plane must hold at least stride × rows bytes. Zero width or
// height is accepted and yields an empty buffer; some capturers emit such
// placeholder frames and they must still flow downstream.
func WrapPlanes(format PixelFormat, width, height int, planes [][]byte, strides []int) (*Buffer, error) {
	if err := validatePlanes(format, width, height, planes, strides); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "WrapPlanes",
			"format":   format.String(),
			"width":    width,
			"height":   height,
			"error":    err.Error(),
		}).Debug("Rejected plane layout")
		return nil, err
	}

	return newBuffer(format, width, height, planes, strides), nil
}

func newBuffer(format PixelFormat, width, height int, planes [][]byte, strides []int) *Buffer {
	b := &Buffer{
		width:   width,
		height:  height,
		format:  format,
		planes:  planes,
		strides: strides,
	}
	b.refs.Store(1)
	return b
}

func validatePlanes(format PixelFormat, width, height int, planes [][]byte, strides []int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > limits.MaxDimension || height > limits.MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", limits.ErrDimensionTooLarge, width, height, limits.MaxDimension)
	}

	want := format.planeCount()
	if want == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if len(planes) != want || len(strides) != want {
		return fmt.Errorf("%w: %s needs %d planes, got %d planes and %d strides",
			ErrPlaneCount, format, want, len(planes), len(strides))
	}

	total := 0
	for i := range planes {
		minStride, rows := format.planeGeometry(i, width, height)
		if strides[i] < minStride {
			return fmt.Errorf("%w: plane %d stride %d below minimum %d", ErrPlaneTooSmall, i, strides[i], minStride)
		}
		if need := strides[i] * rows; len(planes[i]) < need {
			return fmt.Errorf("%w: plane %d has %d bytes, need %d", ErrPlaneTooSmall, i, len(planes[i]), need)
		}
		total += len(planes[i])
	}

	return limits.ValidateBufferSize(total)
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Format returns the pixel layout.
func (b *Buffer) Format() PixelFormat { return b.format }

// PlaneCount returns the number of planes.
func (b *Buffer) PlaneCount() int { return len(b.planes) }

// Plane returns plane i. The slice aliases the buffer memory.
func (b *Buffer) Plane(i int) []byte { return b.planes[i] }

// Stride returns the row stride of plane i in bytes.
func (b *Buffer) Stride(i int) int { return b.strides[i] }

// Size returns the total byte length of all planes.
func (b *Buffer) Size() int {
	total := 0
	for _, p := range b.planes {
		total += len(p)
	}
	return total
}

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool { return b.width == 0 || b.height == 0 }

// RefCount returns the current number of references.
func (b *Buffer) RefCount() int32 { return b.refs.Load() }

// Writable reports whether the caller holds the only reference, which is
// the one case where mutating planes in place is allowed.
func (b *Buffer) Writable() bool { return b.refs.Load() == 1 }

// Retain adds a reference, extending the buffer lifetime until a matching
// Release. Returns b for chaining, or nil when b has no references left:
// a released buffer may already be back in its pool and cannot be revived.
func (b *Buffer) Retain() *Buffer {
	for {
		current := b.refs.Load()
		if current <= 0 {
			logrus.WithFields(logrus.Fields{
				"function": "Buffer.Retain",
				"format":   b.format.String(),
				"width":    b.width,
				"height":   b.height,
			}).Warn("Retain called on buffer with no references")
			return nil
		}
		if b.refs.CompareAndSwap(current, current+1) {
			return b
		}
	}
}

// Release drops a reference. The last release runs the release hook.
// A Release while the count is already zero is ignored and logged. Once a
// pooled buffer has been handed out again a stale Release cannot be told
// apart from the new owner's, so every reference must be released exactly
// once.
func (b *Buffer) Release() {
	for {
		current := b.refs.Load()
		if current <= 0 {
			logrus.WithFields(logrus.Fields{
				"function": "Buffer.Release",
				"format":   b.format.String(),
				"width":    b.width,
				"height":   b.height,
			}).Warn("Release called on buffer with no references")
			return
		}
		if b.refs.CompareAndSwap(current, current-1) {
			if current == 1 && b.onRelease != nil {
				b.onRelease(b)
			}
			return
		}
	}
}

// Clone returns a deep copy with its own single reference and no release hook.
func (b *Buffer) Clone() *Buffer {
	planes := make([][]byte, len(b.planes))
	for i, p := range b.planes {
		planes[i] = append([]byte(nil), p...)
	}
	strides := append([]int(nil), b.strides...)
	return newBuffer(b.format, b.width, b.height, planes, strides)
}
