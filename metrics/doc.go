// Package metrics exports frame interception observations to Prometheus.
//
// Recorder implements intercept.Recorder; pass it to the registry with
// intercept.WithRegistryRecorder. Server publishes the recorder's registry
// on /metrics next to a /healthz probe:
//
//	rec := metrics.NewRecorder("framehook")
//	reg, _ := intercept.NewRegistry(provider, intercept.WithRegistryRecorder(rec))
//	go metrics.NewServer(":9102", rec.Gatherer()).Run(ctx)
package metrics
