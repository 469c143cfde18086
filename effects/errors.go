package effects

import "errors"

// Sentinel errors for effect application.
var (
	// ErrNilBuffer indicates an effect received no input
	ErrNilBuffer = errors.New("input buffer cannot be nil")

	// ErrUnsupportedFormat indicates an effect only handles I420 input
	ErrUnsupportedFormat = errors.New("effect requires I420 input")

	// ErrSizeMismatch indicates a background or mask does not match the frame
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrNoSegmenter indicates background replacement without a segmenter
	ErrNoSegmenter = errors.New("no segmenter configured")
)
