package graphics

import (
	"errors"
	"fmt"
)

// Common graphics errors.
var (
	// ErrNoBackend is returned by Resolve when no backend is compiled in.
	ErrNoBackend = errors.New("graphics: no rendering backend compiled in")

	// ErrBackendNotCompiled is returned when the selected API has no
	// registered implementation in this binary.
	ErrBackendNotCompiled = errors.New("graphics: backend not compiled in")

	// ErrInvalidSize is returned for zero or oversized framebuffer dimensions.
	ErrInvalidSize = errors.New("graphics: invalid framebuffer size")

	// ErrMultisampleUnsupported is returned for specifications with Samples > 1.
	ErrMultisampleUnsupported = errors.New("graphics: multisampled framebuffers are not supported")

	// ErrClosed is returned when a released resource or context is used.
	ErrClosed = errors.New("graphics: resource closed")

	// ErrUnsupported is returned when a backend lacks an optional capability.
	ErrUnsupported = errors.New("graphics: operation not supported by backend")
)

// IncompleteError is the panic value raised when a backend reports that a
// freshly assembled render target is incomplete. Status is the
// backend-specific status code.
type IncompleteError struct {
	API    API
	Status uint32
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("graphics: %s framebuffer incomplete (status 0x%04X)", e.API, e.Status)
}
