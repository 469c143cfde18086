// Package intercept implements the frame interception and hand-off protocol
// between a capture delegate chain and an effects engine.
//
// # Components
//
// [FrameProcessor] turns each captured frame into the frame to forward. It
// reads the engine's [effects.StateQuery] on every frame, skips the
// transform entirely when nothing is enabled, and forwards the original
// frame whenever the transform produces no output:
//
//	processor, _ := intercept.NewFrameProcessor(module)
//	out := processor.Process(in) // never nil for non-nil in
//
// [InterceptionPoint] attaches a processor to a [ProcessorHost] (normally a
// *capture.Provider) through an idempotent Unregistered → Registering →
// Registered → Unregistering state machine.
//
// [Registry] owns the single active binding:
//
//	registry, _ := intercept.NewRegistry(provider)
//	defer registry.Close()
//
//	binding, err := registry.RegisterProcessor(module)
//	if err != nil {
//	    return err
//	}
//	log.Printf("bound %s at %s", binding.ID, binding.AttachedAt)
//
//	registry.UnregisterProcessor()
//
// # Failure Policy
//
// Frame delivery has no error path. A transform that returns nothing, an
// empty frame, or a disabled processor all forward the input unchanged.
// Registering while registered replaces the binding; unregistering while
// unregistered does nothing.
//
// # Concurrency
//
// Process runs inline on the delivering goroutine and keeps no state between
// frames. Registry and InterceptionPoint transitions are mutex-serialised.
// Unregistration never cancels a frame already in Process; that frame is
// delivered to the sink that was current when it started.
//
// # Observability
//
// Every frame is classified as a [FramePath] and reported to a [Recorder];
// the metrics package provides a Prometheus implementation.
package intercept
