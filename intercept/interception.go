package intercept

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/opd-ai/framehook/capture"
	"github.com/sirupsen/logrus"
)

// DefaultProcessorName is the delegate chain name used when none is configured.
const DefaultProcessorName = "effects"

// ProcessorHost is the capture delegate chain an interception point attaches
// to. *capture.Provider implements it.
type ProcessorHost interface {
	AddProcessor(name string, delegate capture.Delegate) error
	RemoveProcessor(name string) bool
}

// State is the registration state of an InterceptionPoint.
type State int32

const (
	// StateUnregistered means frames bypass the processor
	StateUnregistered State = iota
	// StateRegistering means the processor is being inserted into the chain
	StateRegistering
	// StateRegistered means every new frame passes through the processor
	StateRegistered
	// StateUnregistering means the processor is being removed from the chain
	StateUnregistering
)

// String returns a human readable state name.
func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "Unregistered"
	case StateRegistering:
		return "Registering"
	case StateRegistered:
		return "Registered"
	case StateUnregistering:
		return "Unregistering"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// InterceptionPoint attaches one FrameProcessor to a capture delegate chain.
//
// State machine:
//
//	Unregistered → Registering → Registered     (RegisterWithProvider)
//	Registered → Unregistering → Unregistered   (UnregisterFromProvider)
//
// Both transitions are idempotent and serialised by a mutex. The host
// swaps its chain atomically, so a frame already inside Process when
// UnregisterFromProvider runs completes and is delivered to the sink that
// was current at its start; frames arriving after UnregisterFromProvider
// returns bypass the processor.
type InterceptionPoint struct {
	mu        sync.Mutex
	state     atomic.Int32
	host      ProcessorHost
	name      string
	processor *FrameProcessor
}

// NewInterceptionPoint creates an unregistered interception point.
// An empty name selects DefaultProcessorName.
func NewInterceptionPoint(host ProcessorHost, name string, processor *FrameProcessor) (*InterceptionPoint, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	if processor == nil {
		return nil, ErrNilProcessor
	}
	if name == "" {
		name = DefaultProcessorName
	}

	return &InterceptionPoint{
		host:      host,
		name:      name,
		processor: processor,
	}, nil
}

// RegisterWithProvider inserts the processor ahead of the host's sink.
// Calling it while registered is a no-op. On failure the point stays
// unregistered.
func (ip *InterceptionPoint) RegisterWithProvider() error {
	ip.mu.Lock()
	defer ip.mu.Unlock()

	if State(ip.state.Load()) == StateRegistered {
		logrus.WithFields(logrus.Fields{
			"function": "InterceptionPoint.RegisterWithProvider",
			"name":     ip.name,
		}).Debug("Already registered, ignoring")
		return nil
	}

	ip.state.Store(int32(StateRegistering))
	if err := ip.host.AddProcessor(ip.name, ip.processor); err != nil {
		ip.state.Store(int32(StateUnregistered))
		logrus.WithFields(logrus.Fields{
			"function": "InterceptionPoint.RegisterWithProvider",
			"name":     ip.name,
			"error":    err.Error(),
		}).Error("Failed to register frame processor")
		return fmt.Errorf("register %q: %w", ip.name, err)
	}
	ip.state.Store(int32(StateRegistered))

	logrus.WithFields(logrus.Fields{
		"function": "InterceptionPoint.RegisterWithProvider",
		"name":     ip.name,
	}).Info("Frame processor registered")

	return nil
}

// UnregisterFromProvider removes the processor from the host's chain,
// restoring direct delivery to the sink. Calling it while unregistered is
// a no-op. It does not wait for, or cancel, frames already in flight.
func (ip *InterceptionPoint) UnregisterFromProvider() {
	ip.mu.Lock()
	defer ip.mu.Unlock()

	if State(ip.state.Load()) != StateRegistered {
		return
	}

	ip.state.Store(int32(StateUnregistering))
	removed := ip.host.RemoveProcessor(ip.name)
	ip.state.Store(int32(StateUnregistered))

	logrus.WithFields(logrus.Fields{
		"function": "InterceptionPoint.UnregisterFromProvider",
		"name":     ip.name,
		"removed":  removed,
	}).Info("Frame processor unregistered")
}

// State returns the current registration state.
func (ip *InterceptionPoint) State() State {
	return State(ip.state.Load())
}

// Name returns the delegate chain name.
func (ip *InterceptionPoint) Name() string {
	return ip.name
}

// Processor returns the attached processor.
func (ip *InterceptionPoint) Processor() *FrameProcessor {
	return ip.processor
}
