package intercept

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opd-ai/framehook/effects"
	"github.com/sirupsen/logrus"
)

// Binding describes one attachment of a FrameProcessor to the capture chain.
// Values returned by the Registry are snapshots.
type Binding struct {
	ID         uuid.UUID
	Name       string
	AttachedAt time.Time
	Active     bool
}

type activeBinding struct {
	info  Binding
	point *InterceptionPoint
}

// Registry owns the single active processor binding for a capture host.
//
// Registry is an explicit resource: it is created with NewRegistry, holds
// at most one active binding, and is torn down with Close. Registration and
// unregistration are serialised; concurrent RegisterProcessor calls run one
// after the other and the last one wins. Replacement is unregister-then-
// register under the same lock, so no frame is ever routed through two
// processors of the same registry.
type Registry struct {
	mu sync.Mutex

	host          ProcessorHost
	name          string
	recorder      Recorder
	timeProvider  TimeProvider
	mutationGuard bool

	current *activeBinding
	closed  bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithProcessorName sets the delegate chain name processors register under.
func WithProcessorName(name string) RegistryOption {
	return func(r *Registry) {
		if name != "" {
			r.name = name
		}
	}
}

// WithRegistryRecorder sets the recorder for binding events; processors
// created by the registry report to it too.
func WithRegistryRecorder(rec Recorder) RegistryOption {
	return func(r *Registry) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithRegistryMutationGuard enables the mutation guard on every processor
// the registry creates.
func WithRegistryMutationGuard(enabled bool) RegistryOption {
	return func(r *Registry) {
		r.mutationGuard = enabled
	}
}

// WithRegistryTimeProvider overrides the clock for binding timestamps and
// transform latency.
func WithRegistryTimeProvider(tp TimeProvider) RegistryOption {
	return func(r *Registry) {
		if tp != nil {
			r.timeProvider = tp
		}
	}
}

// NewRegistry creates an empty registry bound to host.
func NewRegistry(host ProcessorHost, opts ...RegistryOption) (*Registry, error) {
	if host == nil {
		return nil, ErrNilHost
	}

	r := &Registry{
		host:         host,
		name:         DefaultProcessorName,
		recorder:     noopRecorder{},
		timeProvider: defaultTimeProvider,
	}
	for _, opt := range opts {
		opt(r)
	}

	logrus.WithFields(logrus.Fields{
		"function":       "NewRegistry",
		"name":           r.name,
		"mutation_guard": r.mutationGuard,
	}).Info("Processor registry created")

	return r, nil
}

// RegisterProcessor builds a FrameProcessor around module and attaches it.
//
// If a processor is already bound it is fully unregistered first; only then
// is the new one registered. On registration failure the registry is left
// with no binding and the error is returned.
func (r *Registry) RegisterProcessor(module effects.Module) (Binding, error) {
	if module == nil {
		return Binding{}, ErrNilModule
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return Binding{}, ErrRegistryClosed
	}

	processor, err := NewFrameProcessor(module,
		WithRecorder(r.recorder),
		WithMutationGuard(r.mutationGuard),
		WithTimeProvider(r.timeProvider),
	)
	if err != nil {
		return Binding{}, err
	}
	point, err := NewInterceptionPoint(r.host, r.name, processor)
	if err != nil {
		return Binding{}, err
	}

	replaced := r.current != nil
	if replaced {
		r.teardownLocked(BindingReplaced)
	}

	if err := point.RegisterWithProvider(); err != nil {
		return Binding{}, err
	}

	r.current = &activeBinding{
		info: Binding{
			ID:         uuid.New(),
			Name:       r.name,
			AttachedAt: r.timeProvider.Now(),
			Active:     true,
		},
		point: point,
	}
	r.recorder.RecordBinding(BindingRegistered, true)

	logrus.WithFields(logrus.Fields{
		"function":   "Registry.RegisterProcessor",
		"binding_id": r.current.info.ID.String(),
		"name":       r.name,
		"replaced":   replaced,
	}).Info("Processor binding active")

	return r.current.info, nil
}

// UnregisterProcessor tears down the active binding. It is a no-op when
// nothing is registered.
func (r *Registry) UnregisterProcessor() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return
	}
	r.teardownLocked(BindingUnregistered)
}

func (r *Registry) teardownLocked(event BindingEvent) {
	b := r.current
	b.point.UnregisterFromProvider()
	r.current = nil
	r.recorder.RecordBinding(event, false)

	logrus.WithFields(logrus.Fields{
		"function":   "Registry.teardownLocked",
		"binding_id": b.info.ID.String(),
		"event":      string(event),
		"attached":   r.timeProvider.Since(b.info.AttachedAt).String(),
	}).Info("Processor binding torn down")
}

// Active returns the current binding, if any.
func (r *Registry) Active() (Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return Binding{}, false
	}
	return r.current.info, true
}

// Processor returns the active processor, or nil.
func (r *Registry) Processor() *FrameProcessor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return nil
	}
	return r.current.point.Processor()
}

// Close unregisters any active binding and rejects further registrations.
// Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	if r.current != nil {
		r.teardownLocked(BindingUnregistered)
	}
	r.closed = true

	logrus.WithFields(logrus.Fields{
		"function": "Registry.Close",
		"name":     r.name,
	}).Info("Processor registry closed")

	return nil
}
