package effects

import (
	"testing"

	"github.com/opd-ai/framehook/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestBuffer builds an I420 buffer with a horizontal luma gradient
// and neutral chroma.
func createTestBuffer(t *testing.T, width, height int) *frame.Buffer {
	t.Helper()
	buf, err := frame.NewI420Buffer(width, height)
	require.NoError(t, err)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.Plane(0)[y*buf.Stride(0)+x] = byte((x * 255) / width)
		}
	}
	for i := range buf.Plane(1) {
		buf.Plane(1)[i] = 128
		buf.Plane(2)[i] = 128
	}
	return buf
}

func createFilledBuffer(t *testing.T, width, height int, y, u, v byte) *frame.Buffer {
	t.Helper()
	buf, err := frame.NewI420Buffer(width, height)
	require.NoError(t, err)
	fill := func(p []byte, val byte) {
		for i := range p {
			p[i] = val
		}
	}
	fill(buf.Plane(0), y)
	fill(buf.Plane(1), u)
	fill(buf.Plane(2), v)
	return buf
}

func TestNewEffectChain(t *testing.T) {
	chain := NewEffectChain()
	assert.Equal(t, 0, chain.GetEffectCount())

	chain.AddEffect(NewBlurEffect(2, nil))
	assert.Equal(t, 1, chain.GetEffectCount())
	assert.Equal(t, []string{"Blur(2)"}, chain.Names())

	chain.Clear()
	assert.Equal(t, 0, chain.GetEffectCount())
}

func TestEffectChain_EmptyReturnsCopy(t *testing.T) {
	buf := createTestBuffer(t, 16, 16)
	out, err := NewEffectChain().Apply(buf)
	require.NoError(t, err)

	assert.NotSame(t, buf, out)
	assert.Equal(t, frame.Fingerprint(buf), frame.Fingerprint(out))
}

func TestEffectChain_NilBuffer(t *testing.T) {
	_, err := NewEffectChain().Apply(nil)
	assert.ErrorIs(t, err, ErrNilBuffer)
}

func TestEffectChain_ErrorNamesEffect(t *testing.T) {
	chain := NewEffectChain()
	chain.AddEffect(NewBackgroundEffect(createTestBuffer(t, 16, 16), nil))

	_, err := chain.Apply(createTestBuffer(t, 16, 16))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSegmenter)
	assert.Contains(t, err.Error(), "VirtualBackground")
}

func TestBlurEffect_ClampRadius(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, 1},
		{-3, 1},
		{3, 3},
		{9, 5},
	}

	for _, tt := range tests {
		effect := NewBlurEffect(tt.input, nil)
		assert.Equal(t, tt.expected, effect.radius)
	}
}

func TestBlurEffect_DoesNotMutateInput(t *testing.T) {
	buf := createTestBuffer(t, 32, 16)
	before := frame.Fingerprint(buf)

	out, err := NewBlurEffect(2, nil).Apply(buf)
	require.NoError(t, err)

	assert.Equal(t, before, frame.Fingerprint(buf))
	assert.NotEqual(t, before, frame.Fingerprint(out))
	// Chroma untouched
	assert.Equal(t, buf.Plane(1), out.Plane(1))
}

func TestBlurEffect_UniformFrameUnchanged(t *testing.T) {
	buf := createFilledBuffer(t, 16, 16, 90, 128, 128)
	out, err := NewBlurEffect(3, nil).Apply(buf)
	require.NoError(t, err)
	assert.Equal(t, buf.Plane(0), out.Plane(0))
}

func TestBlurEffect_KeepsForeground(t *testing.T) {
	buf := createTestBuffer(t, 32, 8)
	// Gradient: right half is >= 127, left half below
	effect := NewBlurEffect(2, LumaKeySegmenter{Threshold: 127})

	out, err := effect.Apply(buf)
	require.NoError(t, err)
	assert.Equal(t, "BackgroundBlur(2)", effect.GetName())

	for x := 0; x < 32; x++ {
		if buf.Plane(0)[x] >= 127 {
			assert.Equal(t, buf.Plane(0)[x], out.Plane(0)[x], "foreground pixel %d changed", x)
		}
	}
}

func TestBlurEffect_RejectsNonI420(t *testing.T) {
	bgra, err := frame.WrapPlanes(frame.FormatBGRA, 2, 2, [][]byte{make([]byte, 16)}, []int{8})
	require.NoError(t, err)

	_, err = NewBlurEffect(1, nil).Apply(bgra)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBackgroundEffect_Composites(t *testing.T) {
	width, height := 8, 4
	buf := createFilledBuffer(t, width, height, 10, 100, 100)
	// Make the left column bright so it is the only foreground
	for y := 0; y < height; y++ {
		buf.Plane(0)[y*width] = 200
	}
	background := createFilledBuffer(t, width, height, 50, 60, 70)

	out, err := NewBackgroundEffect(background, LumaKeySegmenter{Threshold: 128}).Apply(buf)
	require.NoError(t, err)

	assert.Equal(t, byte(200), out.Plane(0)[0])
	assert.Equal(t, byte(50), out.Plane(0)[1])
	assert.Equal(t, byte(100), out.Plane(1)[0], "chroma block over foreground keeps frame chroma")
	assert.Equal(t, byte(60), out.Plane(1)[1])
	assert.Equal(t, byte(70), out.Plane(2)[1])
}

func TestBackgroundEffect_SizeMismatch(t *testing.T) {
	effect := NewBackgroundEffect(createTestBuffer(t, 8, 8), LumaKeySegmenter{})
	_, err := effect.Apply(createTestBuffer(t, 16, 16))
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

type shortMaskSegmenter struct{}

func (shortMaskSegmenter) Segment(*frame.Buffer) ([]byte, error) { return []byte{1}, nil }

func TestBackgroundEffect_BadMask(t *testing.T) {
	effect := NewBackgroundEffect(createTestBuffer(t, 8, 8), shortMaskSegmenter{})
	_, err := effect.Apply(createTestBuffer(t, 8, 8))
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestSnapshot(t *testing.T) {
	module := NewChainModule(nil)
	assert.False(t, Snapshot(module).AnyEnabled())

	module.EnableBlur(2)
	state := Snapshot(module)
	assert.True(t, state.Blur)
	assert.False(t, state.VirtualBackground)
	assert.True(t, state.AnyEnabled())
}

func TestTransformFunc(t *testing.T) {
	buf := createTestBuffer(t, 4, 4)
	calls := 0
	var tr Transform = TransformFunc(func(in *frame.Buffer) (*frame.Buffer, bool) {
		calls++
		return in, true
	})

	out, ok := tr.TransformFrame(buf)
	assert.True(t, ok)
	assert.Same(t, buf, out)
	assert.Equal(t, 1, calls)
}
