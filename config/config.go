package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/opd-ai/framehook/intercept"
	"github.com/opd-ai/framehook/limits"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FRAMEHOOK_"

// Validation bounds.
const (
	// MaxSourceFPS is the highest synthetic source frame rate accepted.
	MaxSourceFPS = 240
)

var (
	// ErrInvalidConfig wraps every validation failure
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrConfigFile reports an unreadable or malformed configuration file
	ErrConfigFile = errors.New("configuration file error")
)

// Config is the top-level configuration of a frame interception pipeline.
type Config struct {
	Processor ProcessorConfig `yaml:"processor" envPrefix:"PROCESSOR_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Metrics   MetricsConfig   `yaml:"metrics" envPrefix:"METRICS_"`
	Source    SourceConfig    `yaml:"source" envPrefix:"SOURCE_"`
}

// ProcessorConfig configures the registered frame processor.
type ProcessorConfig struct {
	// Name is the delegate chain name the processor registers under
	Name string `yaml:"name" env:"NAME"`
	// MutationGuard fingerprints input buffers around every transform
	MutationGuard bool `yaml:"mutation_guard" env:"MUTATION_GUARD"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// MetricsConfig configures Prometheus export.
type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled" env:"ENABLED"`
	Namespace     string `yaml:"namespace" env:"NAMESPACE"`
	ListenAddress string `yaml:"listen_address" env:"LISTEN_ADDRESS"`
}

// SourceConfig configures the synthetic frame source used by demos.
type SourceConfig struct {
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
	FPS    int `yaml:"fps" env:"FPS"`
	// Frames is the number of frames to emit; 0 runs until cancelled
	Frames int `yaml:"frames" env:"FRAMES"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Processor: ProcessorConfig{
			Name:          intercept.DefaultProcessorName,
			MutationGuard: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:       false,
			Namespace:     "framehook",
			ListenAddress: ":9102",
		},
		Source: SourceConfig{
			Width:  640,
			Height: 480,
			FPS:    30,
			Frames: 0,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path, and FRAMEHOOK_*
// environment variables, in that order, then validates it. An empty path
// skips the file.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(fs, path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Load",
		"path":      path,
		"processor": cfg.Processor.Name,
		"metrics":   cfg.Metrics.Enabled,
	}).Debug("Configuration loaded")

	return cfg, nil
}

func loadFile(fs afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s not found", ErrConfigFile, path)
		}
		return fmt.Errorf("%w: %v", ErrConfigFile, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrConfigFile, path, err)
	}
	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Processor.Name == "" {
		return fmt.Errorf("%w: processor name is empty", ErrInvalidConfig)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}
	if c.Metrics.Enabled && c.Metrics.ListenAddress == "" {
		return fmt.Errorf("%w: metrics enabled without listen address", ErrInvalidConfig)
	}
	if err := limits.ValidateDimensions(c.Source.Width, c.Source.Height); err != nil {
		return fmt.Errorf("%w: source: %v", ErrInvalidConfig, err)
	}
	if c.Source.FPS < 0 || c.Source.FPS > MaxSourceFPS {
		return fmt.Errorf("%w: source fps %d outside [0, %d]", ErrInvalidConfig, c.Source.FPS, MaxSourceFPS)
	}
	if c.Source.Frames < 0 {
		return fmt.Errorf("%w: source frames %d is negative", ErrInvalidConfig, c.Source.Frames)
	}
	return nil
}
