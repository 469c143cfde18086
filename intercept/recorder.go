package intercept

import "time"

// FramePath classifies how the processor handled one frame.
type FramePath string

const (
	// PathDisabled means the processor was switched off and forwarded the frame
	PathDisabled FramePath = "disabled"
	// PathInvalid means the frame had no pixels and was forwarded untouched
	PathInvalid FramePath = "invalid"
	// PathBypassed means no effect was enabled so the transform was skipped
	PathBypassed FramePath = "bypassed"
	// PathTransformed means the transform produced the forwarded frame
	PathTransformed FramePath = "transformed"
	// PathFallback means the transform produced nothing and the input was forwarded
	PathFallback FramePath = "fallback"
)

// BindingEvent classifies registry lifecycle changes.
type BindingEvent string

const (
	BindingRegistered   BindingEvent = "registered"
	BindingUnregistered BindingEvent = "unregistered"
	BindingReplaced     BindingEvent = "replaced"
)

// Recorder receives processing observations. Implementations must be safe
// for concurrent use and cheap: RecordFrame runs on the capture thread.
type Recorder interface {
	RecordFrame(path FramePath)
	RecordTransformDuration(d time.Duration)
	RecordMutation()
	RecordBinding(event BindingEvent, active bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordFrame(FramePath) {}
func (noopRecorder) RecordTransformDuration(time.Duration) {}
func (noopRecorder) RecordMutation() {}
func (noopRecorder) RecordBinding(BindingEvent, bool) {}
