package intercept

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opd-ai/framehook/capture"
	"github.com/opd-ai/framehook/frame"
	"github.com/stretchr/testify/require"
)

// mockModule is an effects.Module test double with toggles, a swappable
// transform and a call counter.
type mockModule struct {
	blur       atomic.Bool
	background atomic.Bool
	calls      atomic.Int32
	transform  func(in *frame.Buffer) (*frame.Buffer, bool)
}

func newMockModule(enabled bool, transform func(in *frame.Buffer) (*frame.Buffer, bool)) *mockModule {
	m := &mockModule{transform: transform}
	m.blur.Store(enabled)
	return m
}

func (m *mockModule) IsBlurEnabled() bool        { return m.blur.Load() }
func (m *mockModule) HasVirtualBackground() bool { return m.background.Load() }

func (m *mockModule) TransformFrame(in *frame.Buffer) (*frame.Buffer, bool) {
	m.calls.Add(1)
	if m.transform == nil {
		return nil, false
	}
	return m.transform(in)
}

func (m *mockModule) Calls() int { return int(m.calls.Load()) }

// unavailable always reports no output.
func unavailable(*frame.Buffer) (*frame.Buffer, bool) { return nil, false }

// cloning returns a copy of the input with every luma byte inverted.
func cloning(in *frame.Buffer) (*frame.Buffer, bool) {
	out := in.Clone()
	for i, v := range out.Plane(0) {
		out.Plane(0)[i] = ^v
	}
	return out, true
}

// mutating writes into the input buffer and reports no output.
func mutating(in *frame.Buffer) (*frame.Buffer, bool) {
	in.Plane(0)[0]++
	return nil, false
}

// countingRecorder tallies Recorder calls.
type countingRecorder struct {
	mu        sync.Mutex
	paths     map[FramePath]int
	events    []BindingEvent
	mutations int
	durations int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{paths: make(map[FramePath]int)}
}

func (r *countingRecorder) RecordFrame(path FramePath) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths[path]++
}

func (r *countingRecorder) RecordTransformDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

func (r *countingRecorder) RecordMutation() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations++
}

func (r *countingRecorder) RecordBinding(event BindingEvent, _ bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *countingRecorder) Path(path FramePath) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paths[path]
}

// mockTimeProvider provides deterministic time for testing.
type mockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
}

func newMockTimeProvider() *mockTimeProvider {
	return &mockTimeProvider{
		currentTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *mockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

func (m *mockTimeProvider) Since(t time.Time) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime.Sub(t)
}

func (m *mockTimeProvider) advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// recordingSink keeps what the downstream consumer saw.
type recordingSink struct {
	mu         sync.Mutex
	timestamps []int64
	buffers    []*frame.Buffer
}

func (s *recordingSink) ConsumeFrame(f *frame.PixelFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timestamps = append(s.timestamps, f.TimestampNs())
	s.buffers = append(s.buffers, f.Buffer())
}

func (s *recordingSink) Timestamps() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.timestamps...)
}

func (s *recordingSink) Buffers() []*frame.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*frame.Buffer(nil), s.buffers...)
}

// mockHost is a ProcessorHost that can be told to reject registration.
type mockHost struct {
	mu      sync.Mutex
	adds    int
	removes int
	reject  error
	names   map[string]bool
}

func newMockHost() *mockHost {
	return &mockHost{names: make(map[string]bool)}
}

func (h *mockHost) AddProcessor(name string, _ capture.Delegate) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.reject != nil {
		return h.reject
	}
	h.adds++
	h.names[name] = true
	return nil
}

func (h *mockHost) RemoveProcessor(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.names[name] {
		return false
	}
	h.removes++
	delete(h.names, name)
	return true
}

func newTestFrame(t *testing.T, ts int64) *frame.PixelFrame {
	t.Helper()
	buf, err := frame.NewI420Buffer(16, 16)
	require.NoError(t, err)
	for i := range buf.Plane(0) {
		buf.Plane(0)[i] = byte(i)
	}
	f, err := frame.New(buf, ts, frame.Rotation90)
	require.NoError(t, err)
	return f
}
