// Package mdbridge connects the capture delegate chain to pion/mediadevices
// video tracks.
//
// Transform plugs a capture.Provider into a track's transform list so every
// camera frame passes through the registered processors before encoding:
//
//	provider, _ := capture.NewProvider(capture.SinkFunc(func(*frame.PixelFrame) {}))
//	registry, _ := intercept.NewRegistry(provider)
//	registry.RegisterProcessor(module)
//
//	stream, _ := mediadevices.GetUserMedia(mediadevices.MediaStreamConstraints{
//	    Video: func(c *mediadevices.MediaTrackConstraints) {
//	        c.VideoTransform = mdbridge.Transform(provider)
//	    },
//	})
//
// Only the processors run; the provider's sink is not called.
package mdbridge
