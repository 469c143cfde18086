// Package capture hosts the capture delegate chain that every captured frame
// passes through before reaching the stream sink.
//
// # Delegate Chain
//
// A [Provider] keeps an ordered list of named [Delegate] processors and a
// final [Sink]:
//
//	provider, _ := capture.NewProvider(encoderSink)
//	provider.AddProcessor("effects", effectsDelegate)
//
//	// capture thread
//	provider.DeliverFrame(frame)
//
// Registration is additive: the sink installed at construction keeps
// receiving every frame, with processors inserted ahead of it. Removing a
// processor restores direct delivery.
//
// # Concurrency
//
// The chain is an immutable snapshot swapped atomically on every change.
// A frame in flight finishes on the chain that was current when its
// DeliverFrame call started; frames delivered after AddProcessor or
// RemoveProcessor returns see the new chain. Delivery never queues, so
// ordering is exactly the caller's delivery order.
//
// # Synthetic Source
//
// [SyntheticSource] generates pooled I420 frames with increasing timestamps
// for demos and deterministic tests.
package capture
