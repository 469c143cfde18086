package intercept

import (
	"testing"
	"time"

	"github.com/opd-ai/framehook/effects"
	"github.com/opd-ai/framehook/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameProcessor_NilModule(t *testing.T) {
	p, err := NewFrameProcessor(nil)
	assert.ErrorIs(t, err, ErrNilModule)
	assert.Nil(t, p)
}

func TestFrameProcessor_Paths(t *testing.T) {
	tests := []struct {
		name          string
		effectsOn     bool
		disabled      bool
		transform     func(*frame.Buffer) (*frame.Buffer, bool)
		wantPath      FramePath
		wantCalls     int
		wantSameFrame bool
	}{
		{
			name:          "effects off skips transform",
			effectsOn:     false,
			transform:     cloning,
			wantPath:      PathBypassed,
			wantCalls:     0,
			wantSameFrame: true,
		},
		{
			name:          "transform unavailable forwards input",
			effectsOn:     true,
			transform:     unavailable,
			wantPath:      PathFallback,
			wantCalls:     1,
			wantSameFrame: true,
		},
		{
			name:          "transform output forwarded",
			effectsOn:     true,
			transform:     cloning,
			wantPath:      PathTransformed,
			wantCalls:     1,
			wantSameFrame: false,
		},
		{
			name:      "transform returns input",
			effectsOn: true,
			transform: func(in *frame.Buffer) (*frame.Buffer, bool) {
				return in, true
			},
			wantPath:      PathTransformed,
			wantCalls:     1,
			wantSameFrame: true,
		},
		{
			name:          "disabled processor",
			effectsOn:     true,
			disabled:      true,
			transform:     cloning,
			wantPath:      PathDisabled,
			wantCalls:     0,
			wantSameFrame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module := newMockModule(tt.effectsOn, tt.transform)
			rec := newCountingRecorder()
			p, err := NewFrameProcessor(module, WithRecorder(rec))
			require.NoError(t, err)
			if tt.disabled {
				p.SetEnabled(false)
			}

			in := newTestFrame(t, 42)
			out := p.Process(in)

			require.NotNil(t, out)
			assert.Equal(t, tt.wantCalls, module.Calls())
			assert.Equal(t, 1, rec.Path(tt.wantPath))
			if tt.wantSameFrame {
				assert.Same(t, in, out)
			} else {
				assert.NotSame(t, in, out)
				assert.Equal(t, in.TimestampNs(), out.TimestampNs())
				assert.Equal(t, in.Rotation(), out.Rotation())
				out.Release()
			}
		})
	}
}

func TestFrameProcessor_NilFrame(t *testing.T) {
	p, err := NewFrameProcessor(newMockModule(true, cloning))
	require.NoError(t, err)
	assert.Nil(t, p.Process(nil))
}

func TestFrameProcessor_EmptyFrameSkipsTransform(t *testing.T) {
	module := newMockModule(true, cloning)
	rec := newCountingRecorder()
	p, err := NewFrameProcessor(module, WithRecorder(rec))
	require.NoError(t, err)

	buf, err := frame.WrapPlanes(frame.FormatI420, 0, 0, [][]byte{nil, nil, nil}, []int{0, 0, 0})
	require.NoError(t, err)
	in, err := frame.Borrow(buf, 1, frame.Rotation0)
	require.NoError(t, err)

	assert.Same(t, in, p.Process(in))
	assert.Equal(t, 0, module.Calls())
	assert.Equal(t, 1, rec.Path(PathInvalid))
}

func TestFrameProcessor_ToggleTakesEffectNextFrame(t *testing.T) {
	module := newMockModule(false, cloning)
	p, err := NewFrameProcessor(module)
	require.NoError(t, err)

	f1 := newTestFrame(t, 1)
	assert.Same(t, f1, p.Process(f1))

	module.background.Store(true)
	f2 := newTestFrame(t, 2)
	out := p.Process(f2)
	assert.NotSame(t, f2, out)
	out.Release()

	module.background.Store(false)
	f3 := newTestFrame(t, 3)
	assert.Same(t, f3, p.Process(f3))
	assert.Equal(t, 1, module.Calls())
}

func TestFrameProcessor_InputUnchangedAfterTransform(t *testing.T) {
	p, err := NewFrameProcessor(newMockModule(true, cloning))
	require.NoError(t, err)

	in := newTestFrame(t, 1)
	before := frame.Fingerprint(in.Buffer())
	out := p.Process(in)
	defer out.Release()

	assert.Equal(t, before, frame.Fingerprint(in.Buffer()))
	assert.NotEqual(t, before, frame.Fingerprint(out.Buffer()))
}

func TestFrameProcessor_MutationGuard(t *testing.T) {
	rec := newCountingRecorder()
	p, err := NewFrameProcessor(newMockModule(true, mutating), WithRecorder(rec), WithMutationGuard(true))
	require.NoError(t, err)

	in := newTestFrame(t, 1)
	assert.Same(t, in, p.Process(in))
	assert.Equal(t, 1, rec.mutations)
	assert.Equal(t, 1, rec.Path(PathFallback))
}

func TestFrameProcessor_MutationGuardOff(t *testing.T) {
	rec := newCountingRecorder()
	p, err := NewFrameProcessor(newMockModule(true, mutating), WithRecorder(rec))
	require.NoError(t, err)

	p.Process(newTestFrame(t, 1))
	assert.Equal(t, 0, rec.mutations)
}

func TestFrameProcessor_TransformDuration(t *testing.T) {
	clock := newMockTimeProvider()
	rec := newCountingRecorder()
	module := newMockModule(true, func(in *frame.Buffer) (*frame.Buffer, bool) {
		clock.advance(5 * time.Millisecond)
		return nil, false
	})
	p, err := NewFrameProcessor(module, WithRecorder(rec), WithTimeProvider(clock))
	require.NoError(t, err)

	p.Process(newTestFrame(t, 1))
	assert.Equal(t, 1, rec.durations)
}

func TestFrameProcessor_WithChainModule(t *testing.T) {
	module := effects.NewChainModule(nil)
	p, err := NewFrameProcessor(module)
	require.NoError(t, err)
	assert.Same(t, module, p.Module())

	in := newTestFrame(t, 10)
	assert.Same(t, in, p.Process(in))

	module.EnableBlur(2)
	out := p.Process(in)
	require.NotSame(t, in, out)
	assert.Equal(t, int64(10), out.TimestampNs())
	out.Release()

	// Background without segmenter cannot produce output: fail open
	module.DisableBlur()
	bg, err := frame.NewI420Buffer(16, 16)
	require.NoError(t, err)
	require.NoError(t, module.EnableVirtualBackground(bg))
	assert.Same(t, in, p.Process(in))
}

func TestFrameProcessor_SetEnabled(t *testing.T) {
	p, err := NewFrameProcessor(newMockModule(true, cloning))
	require.NoError(t, err)
	assert.True(t, p.IsEnabled())

	p.SetEnabled(false)
	assert.False(t, p.IsEnabled())
	in := newTestFrame(t, 1)
	assert.Same(t, in, p.OnFrameCaptured(in))
}
