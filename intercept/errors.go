package intercept

import "errors"

// Sentinel errors for intercept package operations.
// Frame delivery never returns errors; these cover registration only.
var (
	// ErrNilModule indicates a processor was requested without an effects module.
	ErrNilModule = errors.New("effects module cannot be nil")

	// ErrNilHost indicates an interception point or registry without a capture host.
	ErrNilHost = errors.New("capture host cannot be nil")

	// ErrNilProcessor indicates an interception point without a processor.
	ErrNilProcessor = errors.New("frame processor cannot be nil")

	// ErrRegistryClosed indicates registration on a closed registry.
	ErrRegistryClosed = errors.New("processor registry is closed")
)
