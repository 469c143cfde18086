// Package limits provides centralized frame size limits for the interception layer.
// Frame construction, buffer pooling and the capture bridges all validate
// against these values.
package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxDimension is the largest accepted frame width or height in pixels.
	// 8192 covers 8K UHD capture with headroom for rotated portrait frames.
	MaxDimension = 8192

	// MaxBytesPerPixel is the widest pixel layout the layer handles (packed BGRA).
	MaxBytesPerPixel = 4

	// MaxBufferSize is the absolute maximum size of a single frame buffer.
	// This prevents a malformed capture source from exhausting memory.
	MaxBufferSize = MaxDimension * MaxDimension * MaxBytesPerPixel
)

var (
	// ErrZeroDimension indicates a frame with zero width or height
	ErrZeroDimension = errors.New("zero frame dimension")

	// ErrDimensionTooLarge indicates a frame dimension exceeds MaxDimension
	ErrDimensionTooLarge = errors.New("frame dimension too large")

	// ErrBufferTooLarge indicates a buffer exceeds MaxBufferSize
	ErrBufferTooLarge = errors.New("frame buffer too large")
)

// ValidateDimensions checks width and height against [1, MaxDimension].
// Returns an error with context including the offending size.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrZeroDimension, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", ErrDimensionTooLarge, width, height, MaxDimension)
	}
	return nil
}

// ValidateBufferSize validates a buffer length against MaxBufferSize.
func ValidateBufferSize(size int) error {
	if size > MaxBufferSize {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrBufferTooLarge, size, MaxBufferSize)
	}
	return nil
}
