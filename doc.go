// Package framehook is a frame interception layer for real-time video
// capture pipelines.
//
// It sits between a capture device and the downstream encoder, hands each
// frame to an effects engine (background blur, virtual background) and
// forwards either the processed frame or, whenever the engine cannot produce
// one, the original frame. A frame is never dropped, reordered or delayed
// beyond the time the transform takes.
//
// # Packages
//
//   - frame: reference-counted pixel buffers, PixelFrame metadata, pooling
//     and content fingerprints
//   - effects: the Transform and StateQuery contracts plus a reference
//     ChainModule with blur and background replacement
//   - capture: the delegate chain host (Provider) and a synthetic source
//   - intercept: FrameProcessor, InterceptionPoint and Registry
//   - metrics: Prometheus export of interception observations
//   - config: YAML and environment configuration, logrus setup
//   - factory: assembles a Provider, Registry and Recorder from a Config
//   - mdbridge: adapter for pion/mediadevices video tracks
//
// # Getting Started
//
//	provider, err := capture.NewProvider(encoderSink)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registry, err := intercept.NewRegistry(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer registry.Close()
//
//	module := effects.NewChainModule(effects.LumaKeySegmenter{Threshold: 96})
//	if _, err := registry.RegisterProcessor(module); err != nil {
//	    log.Fatal(err)
//	}
//	module.EnableBlur(3)
//
//	// From the capture thread:
//	provider.DeliverFrame(f)
//
// # Thread Safety
//
// DeliverFrame may be called from any goroutine. Registration, toggles and
// processor replacement may run concurrently with delivery; a frame that
// has started delivery completes against the chain it started with.
package framehook
