package transport

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is an exported constant or variable used by the storefront client.
var ErrAuthRequired = errors.New("authentication required")

// StatusError is a non-2xx response reduced to its status and the
// server-supplied error string, when one was present.
type StatusError struct {
	Status  int
	Message string
}

// Error returns the server-supplied message if present, else "HTTP <status>".
func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// EnvelopeError is a 2xx response whose envelope carried a non-empty error
// field: an application-level failure, distinct from transport failure and
// never retried.
type EnvelopeError struct {
	Message string
}

// Error returns the envelope error message.
func (e *EnvelopeError) Error() string {
	return e.Message
}
