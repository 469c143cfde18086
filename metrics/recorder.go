package metrics

import (
	"time"

	"github.com/opd-ai/framehook/intercept"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name when none is configured.
const DefaultNamespace = "framehook"

// Recorder exports frame interception observations as Prometheus metrics.
// It implements intercept.Recorder and registers its collectors on a
// private registry.
type Recorder struct {
	registry *prometheus.Registry

	framesTotal       *prometheus.CounterVec
	transformDuration prometheus.Histogram
	mutationsTotal    prometheus.Counter
	bindingsTotal     *prometheus.CounterVec
	bindingActive     prometheus.Gauge
}

var _ intercept.Recorder = (*Recorder)(nil)

// NewRecorder creates a recorder with collectors under namespace.
func NewRecorder(namespace string) *Recorder {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames seen by the interception layer, by processing path",
		}, []string{"path"}),
		transformDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transform_duration_seconds",
			Help:      "Latency of effects transform calls",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.016, 0.033, 0.066, 0.1},
		}),
		mutationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_mutations_total",
			Help:      "Transforms that wrote into their shared input buffer",
		}),
		bindingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bindings_total",
			Help:      "Processor binding lifecycle events",
		}, []string{"event"}),
		bindingActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "binding_active",
			Help:      "1 while a processor is attached to the capture chain",
		}),
	}

	r.registry.MustRegister(
		r.framesTotal,
		r.transformDuration,
		r.mutationsTotal,
		r.bindingsTotal,
		r.bindingActive,
	)

	return r
}

// RecordFrame counts one frame on path.
func (r *Recorder) RecordFrame(path intercept.FramePath) {
	r.framesTotal.WithLabelValues(string(path)).Inc()
}

// RecordTransformDuration observes one transform call.
func (r *Recorder) RecordTransformDuration(d time.Duration) {
	r.transformDuration.Observe(d.Seconds())
}

// RecordMutation counts one input mutation.
func (r *Recorder) RecordMutation() {
	r.mutationsTotal.Inc()
}

// RecordBinding counts event and sets the active gauge.
func (r *Recorder) RecordBinding(event intercept.BindingEvent, active bool) {
	r.bindingsTotal.WithLabelValues(string(event)).Inc()
	if active {
		r.bindingActive.Set(1)
	} else {
		r.bindingActive.Set(0)
	}
}

// Gatherer returns the registry backing this recorder.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}
