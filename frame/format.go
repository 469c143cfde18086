package frame

import "fmt"

// PixelFormat tags the memory layout of a Buffer.
type PixelFormat uint8

const (
	// FormatUnknown is the zero value and is never valid for a Buffer
	FormatUnknown PixelFormat = iota
	// FormatI420 is planar YUV 4:2:0 with separate U and V planes
	FormatI420
	// FormatNV12 is YUV 4:2:0 with an interleaved UV plane
	FormatNV12
	// FormatBGRA is packed 32-bit BGRA
	FormatBGRA
)

// String returns the conventional FourCC-style name of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatI420:
		return "I420"
	case FormatNV12:
		return "NV12"
	case FormatBGRA:
		return "BGRA"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
}

// planeCount returns the number of planes the format carries, or 0 if unknown.
func (f PixelFormat) planeCount() int {
	switch f {
	case FormatI420:
		return 3
	case FormatNV12:
		return 2
	case FormatBGRA:
		return 1
	default:
		return 0
	}
}

// planeGeometry returns the minimum stride and row count of plane i.
func (f PixelFormat) planeGeometry(i, width, height int) (minStride, rows int) {
	chromaWidth := (width + 1) / 2
	chromaHeight := (height + 1) / 2

	switch f {
	case FormatI420:
		if i == 0 {
			return width, height
		}
		return chromaWidth, chromaHeight
	case FormatNV12:
		if i == 0 {
			return width, height
		}
		return chromaWidth * 2, chromaHeight
	case FormatBGRA:
		return width * 4, height
	default:
		return 0, 0
	}
}

// Rotation is the clockwise rotation, in degrees, a renderer must apply.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// Valid reports whether r is one of the four supported rotations.
func (r Rotation) Valid() bool {
	switch r {
	case Rotation0, Rotation90, Rotation180, Rotation270:
		return true
	default:
		return false
	}
}
