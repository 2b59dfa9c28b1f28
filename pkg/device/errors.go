package device

import "errors"

var (
	// ErrNotFound indicates a device lookup matched nothing.
	ErrNotFound = errors.New("device not found")

	// ErrNotRegistered indicates every resolution strategy was exhausted.
	// Device-facing endpoints surface this as a soft error status, never
	// an HTTP failure.
	ErrNotRegistered = errors.New("device not registered")
)
