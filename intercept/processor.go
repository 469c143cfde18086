package intercept

import (
	"sync/atomic"

	"github.com/opd-ai/framehook/effects"
	"github.com/opd-ai/framehook/frame"
	"github.com/sirupsen/logrus"
)

// FrameProcessor decides, per frame, whether to run the effects transform
// and produces the frame to forward.
//
// Processing never fails. When the effects engine produces no output the
// original frame is forwarded unchanged. The processor holds no per-frame state and
// never queues; Process runs inline on the delivering goroutine and may be
// called concurrently.
type FrameProcessor struct {
	module        effects.Module
	recorder      Recorder
	timeProvider  TimeProvider
	mutationGuard bool

	enabled     atomic.Bool
	loggedFirst atomic.Bool
}

// ProcessorOption configures a FrameProcessor.
type ProcessorOption func(*FrameProcessor)

// WithRecorder sets the observation sink. The default discards observations.
func WithRecorder(r Recorder) ProcessorOption {
	return func(p *FrameProcessor) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithMutationGuard fingerprints the input buffer around each transform
// call and reports transforms that write into it.
func WithMutationGuard(enabled bool) ProcessorOption {
	return func(p *FrameProcessor) {
		p.mutationGuard = enabled
	}
}

// WithTimeProvider overrides the clock used for transform latency.
func WithTimeProvider(tp TimeProvider) ProcessorOption {
	return func(p *FrameProcessor) {
		if tp != nil {
			p.timeProvider = tp
		}
	}
}

// NewFrameProcessor wraps module. The processor starts enabled.
func NewFrameProcessor(module effects.Module, opts ...ProcessorOption) (*FrameProcessor, error) {
	if module == nil {
		return nil, ErrNilModule
	}

	p := &FrameProcessor{
		module:       module,
		recorder:     noopRecorder{},
		timeProvider: defaultTimeProvider,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.enabled.Store(true)

	logrus.WithFields(logrus.Fields{
		"function":       "NewFrameProcessor",
		"mutation_guard": p.mutationGuard,
	}).Debug("Frame processor created")

	return p, nil
}

// Process returns the frame to forward for f.
//
// Order of checks:
//  1. processor disabled: forward f
//  2. frame has no pixels: forward f
//  3. no effect enabled: forward f without calling the transform
//  4. transform returns nothing: forward f
//  5. otherwise forward a new frame around the transform output, carrying
//     f's timestamp and rotation
func (p *FrameProcessor) Process(f *frame.PixelFrame) *frame.PixelFrame {
	if f == nil {
		return nil
	}
	if !p.enabled.Load() {
		p.recorder.RecordFrame(PathDisabled)
		return f
	}
	if f.Empty() {
		p.recorder.RecordFrame(PathInvalid)
		return f
	}
	// Read every frame: toggles apply to the very next frame.
	if !effects.Snapshot(p.module).AnyEnabled() {
		p.recorder.RecordFrame(PathBypassed)
		return f
	}

	return p.transform(f)
}

// OnFrameCaptured implements capture.Delegate.
func (p *FrameProcessor) OnFrameCaptured(f *frame.PixelFrame) *frame.PixelFrame {
	return p.Process(f)
}

func (p *FrameProcessor) transform(f *frame.PixelFrame) *frame.PixelFrame {
	in := f.Buffer()

	var before frame.Digest
	if p.mutationGuard {
		before = frame.Fingerprint(in)
	}

	start := p.timeProvider.Now()
	out, ok := p.module.TransformFrame(in)
	p.recorder.RecordTransformDuration(p.timeProvider.Since(start))

	if p.mutationGuard && frame.Fingerprint(in) != before {
		p.recorder.RecordMutation()
		logrus.WithFields(logrus.Fields{
			"function":     "FrameProcessor.transform",
			"timestamp_ns": f.TimestampNs(),
			"ref_count":    in.RefCount(),
		}).Warn("Transform modified its shared input buffer")
	}

	if !ok || out == nil {
		p.recorder.RecordFrame(PathFallback)
		logrus.WithFields(logrus.Fields{
			"function":     "FrameProcessor.transform",
			"timestamp_ns": f.TimestampNs(),
		}).Debug("Transform unavailable, forwarding original frame")
		return f
	}

	if out == in {
		p.recorder.RecordFrame(PathTransformed)
		return f
	}

	result, err := f.WithBuffer(out)
	if err != nil {
		out.Release()
		p.recorder.RecordFrame(PathFallback)
		logrus.WithFields(logrus.Fields{
			"function": "FrameProcessor.transform",
			"error":    err.Error(),
		}).Debug("Could not wrap transform output, forwarding original frame")
		return f
	}

	if p.loggedFirst.CompareAndSwap(false, true) {
		logrus.WithFields(logrus.Fields{
			"function": "FrameProcessor.transform",
			"format":   out.Format().String(),
			"width":    out.Width(),
			"height":   out.Height(),
		}).Info("First frame transformed")
	}

	p.recorder.RecordFrame(PathTransformed)
	return result
}

// SetEnabled switches processing on or off. A disabled processor stays in
// the delegate chain and forwards every frame untouched.
func (p *FrameProcessor) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)

	logrus.WithFields(logrus.Fields{
		"function": "FrameProcessor.SetEnabled",
		"enabled":  enabled,
	}).Info("Frame processor toggled")
}

// IsEnabled reports whether the processor is switched on.
func (p *FrameProcessor) IsEnabled() bool {
	return p.enabled.Load()
}

// Module returns the wrapped effects module.
func (p *FrameProcessor) Module() effects.Module {
	return p.module
}
