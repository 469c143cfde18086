package capture

import "errors"

// Sentinel errors for delegate chain management.
var (
	// ErrEmptyName indicates a processor was added without a name.
	ErrEmptyName = errors.New("processor name cannot be empty")

	// ErrNilDelegate indicates a nil processor or sink.
	ErrNilDelegate = errors.New("delegate cannot be nil")

	// ErrProcessorExists indicates the name is already held by another processor.
	ErrProcessorExists = errors.New("processor already registered under this name")
)
