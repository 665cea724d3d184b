// Package errs defines the error-kind taxonomy: a small set of sentinel
// errors every entry point propagates via explicit returns (wrapped
// with fmt.Errorf's %w) rather than exceptions or panics.
package errs

import "errors"

var (
	// ErrBadParameter is returned when a caller passed impossible
	// geometry or a nil region. In debug builds this is additionally
	// caught earlier by internal/assert.
	ErrBadParameter = errors.New("bad parameter")

	// ErrOutOfMemory mirrors the source engine's allocator-exhaustion
	// failure mode; in Go this models an operation aborted because a
	// growth limit (arena size, iteration budget) was hit.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrNoPathFound means the router could not connect a subnet under
	// the current pass's edge budget. The caller should mark the net
	// bad and retry next pass under a higher conflict penalty.
	ErrNoPathFound = errors.New("no path found")

	// ErrDegenerateInput flags a zero-length line, zero-thickness
	// polygon, or other input skipped silently by policy (the caller
	// still receives this so it can emit a user-visible message once).
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrCanceled is returned when the host's progress callback
	// requested cancellation; already-emitted geometry is left intact.
	ErrCanceled = errors.New("canceled by caller")
)
