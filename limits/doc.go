// Package limits provides centralized frame size constants and validation functions
// for framehook. Every component that accepts pixel data from outside the layer
// (frame construction, buffer pools, the mediadevices bridge) validates against
// the same bounds.
//
// # Limits
//
//   - MaxDimension (8192 px): the largest accepted width or height.
//   - MaxBufferSize: MaxDimension² × MaxBytesPerPixel, the absolute ceiling for a
//     single plane set.
//
// # Validation Functions
//
//	if err := limits.ValidateDimensions(w, h); err != nil {
//	    // errors.Is(err, limits.ErrZeroDimension) or limits.ErrDimensionTooLarge
//	}
//
// All errors wrap the package sentinels so callers can classify them with
// errors.Is.
package limits
