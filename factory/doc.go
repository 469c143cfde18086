// Package factory assembles frame interception pipelines from configuration.
//
// A Pipeline is a capture.Provider, the intercept.Registry bound to it and,
// when metrics are enabled, a metrics.Recorder wired into the registry. The
// factory keeps a default configuration that can be replaced at runtime.
//
// # Usage
//
//	cfg, err := config.Load(afero.NewOsFs(), "framehook.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f := factory.NewPipelineFactory(cfg)
//	pipeline, err := f.CreatePipeline(sink)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pipeline.Close()
//
//	module := effects.NewChainModule(effects.LumaKeySegmenter{Threshold: 96})
//	pipeline.Attach(module)
//
// # Testing Support
//
// CreatePipelineForTesting turns on the mutation guard and the metrics
// recorder so tests can assert on both.
//
//	func TestMyEffect(t *testing.T) {
//	    pipeline, _ := factory.NewPipelineFactory(nil).CreatePipelineForTesting(sink)
//	    // Attach a module and deliver frames...
//	}
package factory
