package factory

import (
	"errors"
	"sync"

	"github.com/opd-ai/framehook/capture"
	"github.com/opd-ai/framehook/config"
	"github.com/opd-ai/framehook/effects"
	"github.com/opd-ai/framehook/intercept"
	"github.com/opd-ai/framehook/metrics"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNilConfig is returned by UpdateConfig for a nil configuration
	ErrNilConfig = errors.New("config cannot be nil")
	// ErrNilSink is returned when a pipeline is requested without a sink
	ErrNilSink = errors.New("sink is required")
)

// PipelineFactory creates frame interception pipelines from configuration.
// It is safe for concurrent use; all methods are protected by an internal mutex.
type PipelineFactory struct {
	mu            sync.RWMutex
	defaultConfig *config.Config
}

// TestConfigOption is a functional option for customizing test pipeline configuration.
type TestConfigOption func(*config.Config)

// Pipeline bundles the capture provider, its processor registry and the
// optional metrics recorder built for one capture session.
type Pipeline struct {
	Provider *capture.Provider
	Registry *intercept.Registry
	// Recorder is nil when metrics are disabled
	Recorder *metrics.Recorder

	config *config.Config
}

// NewPipelineFactory creates a factory. A nil cfg selects config.Default.
func NewPipelineFactory(cfg *config.Config) *PipelineFactory {
	if cfg == nil {
		cfg = config.Default()
	}
	logConfigurationInfo(cfg)

	return &PipelineFactory{defaultConfig: copyConfig(cfg)}
}

func logConfigurationInfo(cfg *config.Config) {
	logrus.WithFields(logrus.Fields{
		"function":        "NewPipelineFactory",
		"processor_name":  cfg.Processor.Name,
		"mutation_guard":  cfg.Processor.MutationGuard,
		"metrics_enabled": cfg.Metrics.Enabled,
	}).Info("Created pipeline factory with configuration")
}

// CreatePipeline builds a pipeline delivering to sink using the factory's
// current configuration.
func (f *PipelineFactory) CreatePipeline(sink capture.Sink) (*Pipeline, error) {
	return f.CreatePipelineWithConfig(sink, f.GetCurrentConfig())
}

// CreatePipelineWithConfig builds a pipeline with a custom configuration.
// A nil cfg selects the factory default.
func (f *PipelineFactory) CreatePipelineWithConfig(sink capture.Sink, cfg *config.Config) (*Pipeline, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	if cfg == nil {
		cfg = f.GetCurrentConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := capture.NewProvider(sink)
	if err != nil {
		return nil, err
	}

	opts := []intercept.RegistryOption{
		intercept.WithProcessorName(cfg.Processor.Name),
		intercept.WithRegistryMutationGuard(cfg.Processor.MutationGuard),
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder(cfg.Metrics.Namespace)
		opts = append(opts, intercept.WithRegistryRecorder(recorder))
	}

	registry, err := intercept.NewRegistry(provider, opts...)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":        "CreatePipelineWithConfig",
		"processor_name":  cfg.Processor.Name,
		"metrics_enabled": cfg.Metrics.Enabled,
	}).Info("Creating frame interception pipeline")

	return &Pipeline{
		Provider: provider,
		Registry: registry,
		Recorder: recorder,
		config:   copyConfig(cfg),
	}, nil
}

// WithMutationGuard enables or disables the mutation guard for the test configuration.
func WithMutationGuard(enabled bool) TestConfigOption {
	return func(c *config.Config) {
		c.Processor.MutationGuard = enabled
	}
}

// WithMetrics enables or disables the metrics recorder for the test configuration.
func WithMetrics(enabled bool) TestConfigOption {
	return func(c *config.Config) {
		c.Metrics.Enabled = enabled
	}
}

// WithProcessorName sets the processor name for the test configuration.
func WithProcessorName(name string) TestConfigOption {
	return func(c *config.Config) {
		c.Processor.Name = name
	}
}

// CreatePipelineForTesting builds a pipeline with test-oriented defaults:
// mutation guard on, metrics recorder on, no listen address needed.
func (f *PipelineFactory) CreatePipelineForTesting(sink capture.Sink, opts ...TestConfigOption) (*Pipeline, error) {
	testConfig := f.GetCurrentConfig()
	testConfig.Processor.MutationGuard = true
	testConfig.Metrics.Enabled = true
	testConfig.Metrics.Namespace = "framehook_test"
	testConfig.Metrics.ListenAddress = "127.0.0.1:0"

	for _, opt := range opts {
		opt(testConfig)
	}

	logrus.WithFields(logrus.Fields{
		"function":       "CreatePipelineForTesting",
		"mutation_guard": testConfig.Processor.MutationGuard,
		"metrics":        testConfig.Metrics.Enabled,
	}).Info("Creating pipeline for testing")

	return f.CreatePipelineWithConfig(sink, testConfig)
}

// GetCurrentConfig returns a copy of the current default configuration.
func (f *PipelineFactory) GetCurrentConfig() *config.Config {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return copyConfig(f.defaultConfig)
}

// UpdateConfig validates cfg and makes it the factory default.
func (f *PipelineFactory) UpdateConfig(cfg *config.Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":       "UpdateConfig",
		"old_processor":  f.defaultConfig.Processor.Name,
		"new_processor":  cfg.Processor.Name,
		"old_metrics":    f.defaultConfig.Metrics.Enabled,
		"new_metrics":    cfg.Metrics.Enabled,
		"mutation_guard": cfg.Processor.MutationGuard,
	}).Info("Updating factory configuration")

	f.defaultConfig = copyConfig(cfg)
	return nil
}

func copyConfig(cfg *config.Config) *config.Config {
	c := *cfg
	return &c
}

// Attach registers module as the pipeline's frame processor, replacing
// any previous one.
func (p *Pipeline) Attach(module effects.Module) (intercept.Binding, error) {
	return p.Registry.RegisterProcessor(module)
}

// Detach unregisters the current processor, restoring direct delivery.
func (p *Pipeline) Detach() {
	p.Registry.UnregisterProcessor()
}

// MetricsServer returns a server for the pipeline's recorder, or nil when
// metrics are disabled.
func (p *Pipeline) MetricsServer() *metrics.Server {
	if p.Recorder == nil {
		return nil
	}
	return metrics.NewServer(p.config.Metrics.ListenAddress, p.Recorder.Gatherer())
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() config.Config {
	return *p.config
}

// Close tears down the registry.
func (p *Pipeline) Close() error {
	return p.Registry.Close()
}
