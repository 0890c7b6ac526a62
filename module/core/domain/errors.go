package domain

import "errors"

// All three are recoverable and surfaced to the caller for user-facing
// messaging; none is fatal to the process.
var (
	ErrInvalidGeometry   = errors.New("invalid geometry")
	ErrNotFound          = errors.New("geofence not found")
	ErrInvalidTransition = errors.New("invalid drawing transition")
)
