// Package config loads pipeline configuration.
//
// Values are layered: Default, then an optional YAML file read through an
// afero filesystem, then FRAMEHOOK_* environment variables. For example
// FRAMEHOOK_PROCESSOR_NAME overrides processor.name and
// FRAMEHOOK_METRICS_LISTEN_ADDRESS overrides metrics.listen_address.
//
//	processor:
//	  name: effects
//	  mutation_guard: true
//	log:
//	  level: debug
//	  format: json
//	metrics:
//	  enabled: true
//	  listen_address: ":9102"
//	source:
//	  width: 1280
//	  height: 720
//	  fps: 30
package config
