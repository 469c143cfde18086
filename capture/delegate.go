package capture

import "github.com/opd-ai/framehook/frame"

// Delegate is the frame-delivery callback of the capture pipeline.
//
// OnFrameCaptured receives a frame and returns the frame to forward. The
// input is valid only for the duration of the call. Returning a frame other
// than the input hands one reference of it to the caller; returning nil is
// treated as returning the input, so a delegate can never drop a frame.
type Delegate interface {
	OnFrameCaptured(f *frame.PixelFrame) *frame.PixelFrame
}

// DelegateFunc adapts a function to Delegate.
type DelegateFunc func(f *frame.PixelFrame) *frame.PixelFrame

// OnFrameCaptured calls fn(f).
func (fn DelegateFunc) OnFrameCaptured(f *frame.PixelFrame) *frame.PixelFrame {
	return fn(f)
}

// Sink is the final consumer of the delegate chain, typically the stream
// encoder. ConsumeFrame must Retain the frame to keep it past the call.
type Sink interface {
	ConsumeFrame(f *frame.PixelFrame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f *frame.PixelFrame)

// ConsumeFrame calls fn(f).
func (fn SinkFunc) ConsumeFrame(f *frame.PixelFrame) {
	fn(f)
}
