package effects

import (
	"fmt"

	"github.com/opd-ai/framehook/frame"
)

// Effect is one stage of an EffectChain.
type Effect interface {
	// Apply processes a buffer and returns a new buffer; the input is never modified
	Apply(buf *frame.Buffer) (*frame.Buffer, error)
	// GetName returns the effect name for identification
	GetName() string
}

// EffectChain manages multiple effects applied in sequence.
type EffectChain struct {
	effects []Effect
}

// NewEffectChain creates a new effect processing chain.
func NewEffectChain() *EffectChain {
	return &EffectChain{
		effects: make([]Effect, 0),
	}
}

// AddEffect adds an effect to the processing chain.
func (ec *EffectChain) AddEffect(effect Effect) {
	ec.effects = append(ec.effects, effect)
}

// Apply processes a buffer through all effects in the chain.
//
// The result is always a new buffer holding one reference, even for an empty
// chain, so callers can hand it off without aliasing the input. Intermediate
// buffers are released as the chain advances.
func (ec *EffectChain) Apply(buf *frame.Buffer) (*frame.Buffer, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}

	if len(ec.effects) == 0 {
		return buf.Clone(), nil
	}

	current := buf
	for i, effect := range ec.effects {
		result, err := effect.Apply(current)
		if current != buf {
			current.Release()
		}
		if err != nil {
			return nil, fmt.Errorf("effect %d (%s) failed: %w", i, effect.GetName(), err)
		}
		current = result
	}

	return current, nil
}

// GetEffectCount returns the number of effects in the chain.
func (ec *EffectChain) GetEffectCount() int {
	return len(ec.effects)
}

// Names returns the effect names in application order.
func (ec *EffectChain) Names() []string {
	names := make([]string, len(ec.effects))
	for i, e := range ec.effects {
		names[i] = e.GetName()
	}
	return names
}

// Clear removes all effects from the chain.
func (ec *EffectChain) Clear() {
	ec.effects = ec.effects[:0]
}

func requireI420(buf *frame.Buffer) error {
	if buf == nil {
		return ErrNilBuffer
	}
	if buf.Format() != frame.FormatI420 {
		return fmt.Errorf("%w: got %s", ErrUnsupportedFormat, buf.Format())
	}
	return nil
}
