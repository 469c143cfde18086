package capture

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/opd-ai/framehook/frame"
	"github.com/sirupsen/logrus"
)

// Provider hosts the capture delegate chain: an ordered list of named
// processors followed by the downstream sink.
//
// The chain is published as an immutable snapshot. DeliverFrame loads the
// snapshot once at call start and runs the whole delivery against it, so a
// concurrent AddProcessor or RemoveProcessor never affects a frame already
// in flight, and frames delivered after the mutation returns see the new
// chain. Mutations are serialised by an internal mutex.
//
// DeliverFrame itself runs inline on the caller's goroutine with no
// queueing: the order frames are delivered is the order the sink sees them.
type Provider struct {
	mu    sync.Mutex
	chain atomic.Pointer[chain]

	delivered   atomic.Uint64
	intercepted atomic.Uint64
}

type namedDelegate struct {
	name     string
	delegate Delegate
}

type chain struct {
	processors []namedDelegate
	sink       Sink
}

// ProviderStats reports delivery counters.
type ProviderStats struct {
	// Delivered counts frames handed to the sink.
	Delivered uint64
	// Intercepted counts processor invocations across all processors.
	Intercepted uint64
	// Processors is the number of processors in the current chain.
	Processors int
}

// NewProvider creates a provider whose chain initially delivers straight to sink.
func NewProvider(sink Sink) (*Provider, error) {
	if sink == nil {
		return nil, ErrNilDelegate
	}

	p := &Provider{}
	p.chain.Store(&chain{sink: sink})

	logrus.WithFields(logrus.Fields{
		"function": "NewProvider",
	}).Debug("Capture provider created")

	return p, nil
}

// AddProcessor appends delegate to the chain under name, ahead of the sink.
//
// A name that is already taken fails with ErrProcessorExists; the existing
// processor must be removed first, so two processors are never layered
// under one name.
func (p *Provider) AddProcessor(name string, delegate Delegate) error {
	if name == "" {
		return ErrEmptyName
	}
	if delegate == nil {
		return ErrNilDelegate
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.chain.Load()
	for _, nd := range current.processors {
		if nd.name != name {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"function": "Provider.AddProcessor",
			"name":     name,
		}).Warn("Processor name already taken")
		return fmt.Errorf("%w: %q", ErrProcessorExists, name)
	}

	next := &chain{
		processors: make([]namedDelegate, 0, len(current.processors)+1),
		sink:       current.sink,
	}
	next.processors = append(next.processors, current.processors...)
	next.processors = append(next.processors, namedDelegate{name: name, delegate: delegate})
	p.chain.Store(next)

	logrus.WithFields(logrus.Fields{
		"function":   "Provider.AddProcessor",
		"name":       name,
		"processors": len(next.processors),
	}).Info("Processor added to capture chain")

	return nil
}

// RemoveProcessor removes the processor registered under name. It reports
// whether a processor was removed; removing an unknown name is a no-op.
func (p *Provider) RemoveProcessor(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.chain.Load()
	idx := -1
	for i, nd := range current.processors {
		if nd.name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	next := &chain{
		processors: make([]namedDelegate, 0, len(current.processors)-1),
		sink:       current.sink,
	}
	next.processors = append(next.processors, current.processors[:idx]...)
	next.processors = append(next.processors, current.processors[idx+1:]...)
	p.chain.Store(next)

	logrus.WithFields(logrus.Fields{
		"function":   "Provider.RemoveProcessor",
		"name":       name,
		"processors": len(next.processors),
	}).Info("Processor removed from capture chain")

	return true
}

// Processor returns the delegate registered under name.
func (p *Provider) Processor(name string) (Delegate, bool) {
	for _, nd := range p.chain.Load().processors {
		if nd.name == name {
			return nd.delegate, true
		}
	}
	return nil, false
}

// Names returns the processor names in chain order.
func (p *Provider) Names() []string {
	current := p.chain.Load()
	names := make([]string, len(current.processors))
	for i, nd := range current.processors {
		names[i] = nd.name
	}
	return names
}

// SetSink replaces the downstream sink. Frames already in flight finish on
// the previous sink.
func (p *Provider) SetSink(sink Sink) error {
	if sink == nil {
		return ErrNilDelegate
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.chain.Load()
	p.chain.Store(&chain{processors: current.processors, sink: sink})
	return nil
}

// DeliverFrame runs f through the chain captured at call start and hands
// the result to that chain's sink.
//
// A processor returning nil forwards its input unchanged. Frames produced
// by processors are released after the sink returns; f itself stays owned
// by the caller.
func (p *Provider) DeliverFrame(f *frame.PixelFrame) {
	snapshot := p.chain.Load()

	out := p.run(snapshot, f)
	snapshot.sink.ConsumeFrame(out)
	p.delivered.Add(1)

	if out != f {
		out.Release()
	}
}

// Intercept runs f through the processors only and returns the frame the
// sink would have received. When the result is not f the caller owns it and
// must Release it. Used by bridges that hand frames back to a foreign
// pipeline instead of a Sink.
func (p *Provider) Intercept(f *frame.PixelFrame) *frame.PixelFrame {
	return p.run(p.chain.Load(), f)
}

func (p *Provider) run(snapshot *chain, f *frame.PixelFrame) *frame.PixelFrame {
	current := f
	for _, nd := range snapshot.processors {
		out := nd.delegate.OnFrameCaptured(current)
		p.intercepted.Add(1)
		if out == nil || out == current {
			continue
		}
		if current != f {
			current.Release()
		}
		current = out
	}
	return current
}

// Stats returns a snapshot of the delivery counters.
func (p *Provider) Stats() ProviderStats {
	return ProviderStats{
		Delivered:   p.delivered.Load(),
		Intercepted: p.intercepted.Load(),
		Processors:  len(p.chain.Load().processors),
	}
}
