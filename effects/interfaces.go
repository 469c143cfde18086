// Package effects declares the boundary between the interception layer and
// the effects engine, and ships a reference engine built from an effect chain.
package effects

import "github.com/opd-ai/framehook/frame"

// Transform is the effects engine's per-frame operation.
//
// TransformFrame returns the processed buffer and true, or (nil, false) when
// the engine produced no output for this buffer. A returned buffer other than
// in carries one reference that passes to the caller. Returning in itself
// means "unchanged" and transfers nothing.
//
// Implementations must bound their own latency; callers invoke them inline on
// the capture thread with no timeout.
type Transform interface {
	TransformFrame(in *frame.Buffer) (*frame.Buffer, bool)
}

// StateQuery exposes which effects are currently enabled. Both methods must
// be cheap, constant time and free of side effects: they run on every frame.
type StateQuery interface {
	IsBlurEnabled() bool
	HasVirtualBackground() bool
}

// Module is the capability set the interception layer consumes from an
// effects engine.
type Module interface {
	Transform
	StateQuery
}

// TransformFunc adapts a plain function to Transform.
type TransformFunc func(in *frame.Buffer) (*frame.Buffer, bool)

// TransformFrame calls fn(in).
func (fn TransformFunc) TransformFrame(in *frame.Buffer) (*frame.Buffer, bool) {
	return fn(in)
}

// State is a point-in-time view of the enabled effects.
type State struct {
	Blur              bool
	VirtualBackground bool
}

// AnyEnabled reports whether at least one effect is on.
func (s State) AnyEnabled() bool {
	return s.Blur || s.VirtualBackground
}

// Snapshot reads q once. The result must not be cached across frames:
// toggles take effect on the very next frame.
func Snapshot(q StateQuery) State {
	return State{
		Blur:              q.IsBlurEnabled(),
		VirtualBackground: q.HasVirtualBackground(),
	}
}
