package domain

import (
	"errors"
	"fmt"
)

// StatusError carries the status code and body of a failed remote call.
// Adapters wrap remote failures in this type so the orchestrator can
// classify them without knowing the transport.
type StatusError struct {
	// Code is the remote status code.
	Code int

	// Body is the raw response body, for diagnostics.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("remote status %d: %s", e.Code, e.Body)
}

// StatusOf extracts the remote status code from an error chain.
// Returns 0 and false when the error carries no status.
func StatusOf(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}
