package mdbridge

import (
	"errors"
	"fmt"
	"image"

	"github.com/opd-ai/framehook/frame"
)

var (
	// ErrUnsupportedImage reports an image that has no I420 equivalent
	ErrUnsupportedImage = errors.New("image is not YCbCr 4:2:0")
	// ErrUnsupportedBuffer reports a buffer that is not I420
	ErrUnsupportedBuffer = errors.New("buffer is not I420")
)

// ToBuffer wraps img as an I420 buffer. Planes are shared with img when
// its layout allows; otherwise they are copied.
//
// The image origin must be even in both axes: I420 chroma sample k covers
// pixels 2k and 2k+1 relative to the origin, which only lines up with the
// image's chroma grid when the origin is even.
func ToBuffer(img *image.YCbCr) (*frame.Buffer, error) {
	if img == nil || img.SubsampleRatio != image.YCbCrSubsampleRatio420 {
		return nil, ErrUnsupportedImage
	}

	r := img.Rect
	if r.Min.X%2 != 0 || r.Min.Y%2 != 0 {
		return nil, fmt.Errorf("%w: odd origin %v", ErrUnsupportedImage, r.Min)
	}
	width, height := r.Dx(), r.Dy()
	planes := [][]byte{
		img.Y[img.YOffset(r.Min.X, r.Min.Y):],
		img.Cb[img.COffset(r.Min.X, r.Min.Y):],
		img.Cr[img.COffset(r.Min.X, r.Min.Y):],
	}
	strides := []int{img.YStride, img.CStride, img.CStride}

	if buf, err := frame.WrapPlanes(frame.FormatI420, width, height, planes, strides); err == nil {
		return buf, nil
	}

	// Sub-images can end short of a full final row; copy into tight planes.
	buf, err := frame.NewI420Buffer(width, height)
	if err != nil {
		return nil, err
	}
	copyPlane(buf.Plane(0), buf.Stride(0), planes[0], img.YStride, width, height)
	cw, ch := (width+1)/2, (height+1)/2
	copyPlane(buf.Plane(1), buf.Stride(1), planes[1], img.CStride, cw, ch)
	copyPlane(buf.Plane(2), buf.Stride(2), planes[2], img.CStride, cw, ch)
	return buf, nil
}

// ToImage copies b into a new YCbCr 4:2:0 image.
func ToImage(b *frame.Buffer) (*image.YCbCr, error) {
	if b == nil || b.Format() != frame.FormatI420 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedBuffer, formatOf(b))
	}

	width, height := b.Width(), b.Height()
	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio420)
	copyPlane(img.Y, img.YStride, b.Plane(0), b.Stride(0), width, height)
	cw, ch := (width+1)/2, (height+1)/2
	copyPlane(img.Cb, img.CStride, b.Plane(1), b.Stride(1), cw, ch)
	copyPlane(img.Cr, img.CStride, b.Plane(2), b.Stride(2), cw, ch)
	return img, nil
}

func copyPlane(dst []byte, dstStride int, src []byte, srcStride int, width, rows int) {
	for row := 0; row < rows; row++ {
		copy(dst[row*dstStride:row*dstStride+width], src[row*srcStride:row*srcStride+width])
	}
}

func formatOf(b *frame.Buffer) string {
	if b == nil {
		return "nil"
	}
	return b.Format().String()
}
