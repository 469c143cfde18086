package effects

import (
	"sync"
	"sync/atomic"

	"github.com/opd-ai/framehook/frame"
	"github.com/sirupsen/logrus"
)

// ChainModule is a reference Module that builds an EffectChain from its
// current toggles on every frame.
//
// Toggles are atomics so IsBlurEnabled and HasVirtualBackground stay lock
// free on the capture thread. TransformFrame itself is serialised: the chain
// shares one segmenter, which is not assumed to be safe for concurrent use.
//
// Example usage:
//
//	module := effects.NewChainModule(effects.LumaKeySegmenter{Threshold: 96})
//	module.EnableBlur(3)
//	registry.RegisterProcessor(module)
type ChainModule struct {
	mu        sync.Mutex
	segmenter Segmenter

	blurRadius atomic.Int32
	background atomic.Pointer[frame.Buffer]
}

// NewChainModule creates a module with every effect disabled.
// segmenter may be nil, in which case blur covers the whole frame and
// background replacement produces no output.
func NewChainModule(segmenter Segmenter) *ChainModule {
	logrus.WithFields(logrus.Fields{
		"function":      "NewChainModule",
		"has_segmenter": segmenter != nil,
	}).Info("Creating effects chain module")

	return &ChainModule{segmenter: segmenter}
}

// EnableBlur turns background blur on with the given radius (clamped 1-5).
func (m *ChainModule) EnableBlur(radius int) {
	effect := NewBlurEffect(radius, nil)
	m.blurRadius.Store(int32(effect.radius))

	logrus.WithFields(logrus.Fields{
		"function": "ChainModule.EnableBlur",
		"radius":   effect.radius,
	}).Info("Blur enabled")
}

// DisableBlur turns blur off.
func (m *ChainModule) DisableBlur() {
	m.blurRadius.Store(0)

	logrus.WithFields(logrus.Fields{
		"function": "ChainModule.DisableBlur",
	}).Info("Blur disabled")
}

// EnableVirtualBackground installs background as the replacement image.
// The module retains background; a previously installed one is released
// once no transform is using it.
func (m *ChainModule) EnableVirtualBackground(background *frame.Buffer) error {
	if err := requireI420(background); err != nil {
		return err
	}

	retained := background.Retain()
	if retained == nil {
		return frame.ErrReleasedBuffer
	}

	m.mu.Lock()
	old := m.background.Swap(retained)
	m.mu.Unlock()
	if old != nil {
		old.Release()
	}

	logrus.WithFields(logrus.Fields{
		"function": "ChainModule.EnableVirtualBackground",
		"width":    background.Width(),
		"height":   background.Height(),
	}).Info("Virtual background enabled")

	return nil
}

// DisableVirtualBackground removes the background image.
func (m *ChainModule) DisableVirtualBackground() {
	m.mu.Lock()
	old := m.background.Swap(nil)
	m.mu.Unlock()
	if old != nil {
		old.Release()
	}

	logrus.WithFields(logrus.Fields{
		"function": "ChainModule.DisableVirtualBackground",
	}).Info("Virtual background disabled")
}

// IsBlurEnabled implements StateQuery.
func (m *ChainModule) IsBlurEnabled() bool {
	return m.blurRadius.Load() > 0
}

// HasVirtualBackground implements StateQuery.
func (m *ChainModule) HasVirtualBackground() bool {
	return m.background.Load() != nil
}

// TransformFrame implements Transform. Replacement runs before blur so a
// combined configuration blurs the composited background.
func (m *ChainModule) TransformFrame(in *frame.Buffer) (*frame.Buffer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chain := m.buildChain()
	if chain.GetEffectCount() == 0 {
		return nil, false
	}

	out, err := chain.Apply(in)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ChainModule.TransformFrame",
			"effects":  chain.Names(),
			"error":    err.Error(),
		}).Debug("Effect chain produced no output")
		return nil, false
	}

	return out, true
}

// Close releases the background image, if any.
func (m *ChainModule) Close() error {
	m.DisableVirtualBackground()
	return nil
}

func (m *ChainModule) buildChain() *EffectChain {
	chain := NewEffectChain()

	if bg := m.background.Load(); bg != nil {
		chain.AddEffect(NewBackgroundEffect(bg, m.segmenter))
	}
	if radius := int(m.blurRadius.Load()); radius > 0 {
		chain.AddEffect(NewBlurEffect(radius, m.segmenter))
	}

	return chain
}
