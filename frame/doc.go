// Package frame defines the pixel data model shared by every stage of the
// interception layer.
//
// # Buffers
//
// A [Buffer] holds planar or packed pixels plus an atomic reference count.
// The allocator owns the first reference:
//
//	buf, err := frame.NewI420Buffer(640, 480)
//	if err != nil {
//	    return err
//	}
//	defer buf.Release()
//
// Pooled buffers come from a [Pool] and return to it when the last reference
// is released.
//
// # Frames
//
// A [PixelFrame] is an immutable handle around a Buffer with a presentation
// timestamp and rotation. Transforms never modify a frame in place; they build
// a new one that inherits timestamp and rotation:
//
//	out, err := in.WithBuffer(processed)
//
// Frames built with [Borrow] are only valid for the current delivery callback.
// Holders that keep a frame longer call [PixelFrame.Retain].
//
// # Fingerprints
//
// [Fingerprint] computes a BLAKE2b-256 digest over all planes, used to detect
// transforms that write into a shared input buffer.
package frame
