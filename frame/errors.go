package frame

import "errors"

// Sentinel errors for frame construction.
// These errors enable reliable error classification using errors.Is().
var (
	// ErrInvalidDimensions indicates negative or otherwise unusable dimensions.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrInvalidRotation indicates a rotation that is not a multiple of 90 in [0, 270].
	ErrInvalidRotation = errors.New("invalid frame rotation")

	// ErrPlaneTooSmall indicates a plane shorter than stride × rows.
	ErrPlaneTooSmall = errors.New("plane too small")

	// ErrPlaneCount indicates the wrong number of planes for the pixel format.
	ErrPlaneCount = errors.New("wrong plane count for pixel format")

	// ErrUnsupportedFormat indicates a pixel format the layer cannot describe.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	// ErrNilBuffer indicates a frame was constructed without a buffer.
	ErrNilBuffer = errors.New("frame buffer cannot be nil")

	// ErrReleasedBuffer indicates a buffer whose last reference was already dropped.
	ErrReleasedBuffer = errors.New("frame buffer already released")
)
