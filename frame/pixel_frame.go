package frame

import (
	"fmt"
	"sync/atomic"
)

// PixelFrame is an immutable handle to one captured video frame.
//
// The handle never changes after construction. Transforms that produce new
// pixels build a new PixelFrame with WithBuffer; the original keeps pointing
// at the original Buffer.
//
// Ownership: a frame built with New owns one reference of its Buffer and
// drops it on Release. A frame built with Borrow does not own a reference;
// it is valid only for the duration of the delivery callback that produced
// it. Holders that need a frame past the callback call Retain.
type PixelFrame struct {
	buffer      *Buffer
	timestampNs int64
	rotation    Rotation
	ownsBuffer  bool
	released    atomic.Bool
}

// New creates a frame that takes ownership of the caller's reference to buf.
func New(buf *Buffer, timestampNs int64, rotation Rotation) (*PixelFrame, error) {
	return newFrame(buf, timestampNs, rotation, true)
}

// Borrow creates a frame that shares buf without owning a reference.
func Borrow(buf *Buffer, timestampNs int64, rotation Rotation) (*PixelFrame, error) {
	return newFrame(buf, timestampNs, rotation, false)
}

func newFrame(buf *Buffer, timestampNs int64, rotation Rotation, owns bool) (*PixelFrame, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	if !rotation.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotation, rotation)
	}

	return &PixelFrame{
		buffer:      buf,
		timestampNs: timestampNs,
		rotation:    rotation,
		ownsBuffer:  owns,
	}, nil
}

// WithBuffer returns a new owning frame around buf carrying this frame's
// timestamp and rotation. The receiver is left untouched.
func (f *PixelFrame) WithBuffer(buf *Buffer) (*PixelFrame, error) {
	return New(buf, f.timestampNs, f.rotation)
}

// Buffer returns the underlying pixel buffer.
func (f *PixelFrame) Buffer() *Buffer { return f.buffer }

// Width returns the frame width in pixels.
func (f *PixelFrame) Width() int { return f.buffer.width }

// Height returns the frame height in pixels.
func (f *PixelFrame) Height() int { return f.buffer.height }

// Format returns the pixel format of the buffer.
func (f *PixelFrame) Format() PixelFormat { return f.buffer.format }

// TimestampNs returns the presentation timestamp in nanoseconds.
func (f *PixelFrame) TimestampNs() int64 { return f.timestampNs }

// Rotation returns the rotation a renderer must apply.
func (f *PixelFrame) Rotation() Rotation { return f.rotation }

// OwnsBuffer reports whether this handle holds a buffer reference.
func (f *PixelFrame) OwnsBuffer() bool { return f.ownsBuffer }

// Empty reports whether the frame has zero width or height.
func (f *PixelFrame) Empty() bool { return f.buffer.Empty() }

// Retain takes a new buffer reference and returns an owning handle that
// remains valid after the current callback returns. It returns nil when the
// buffer has already been fully released.
func (f *PixelFrame) Retain() *PixelFrame {
	if f.buffer.Retain() == nil {
		return nil
	}
	return &PixelFrame{
		buffer:      f.buffer,
		timestampNs: f.timestampNs,
		rotation:    f.rotation,
		ownsBuffer:  true,
	}
}

// Release drops the buffer reference held by an owning frame. It is a
// no-op on borrowed frames and on frames already released.
func (f *PixelFrame) Release() {
	if !f.ownsBuffer {
		return
	}
	if f.released.CompareAndSwap(false, true) {
		f.buffer.Release()
	}
}

// String implements fmt.Stringer for logging.
func (f *PixelFrame) String() string {
	return fmt.Sprintf("%s %dx%d ts=%d rot=%d", f.buffer.format, f.buffer.width, f.buffer.height, f.timestampNs, f.rotation)
}
