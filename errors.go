package storefront

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotReady is an exported constant or variable used by the storefront client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrAuthenticationRequired is an exported constant or variable used by the storefront client.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrValidation is an exported constant or variable used by the storefront client.
	ErrValidation = errors.New("validation failed")
	// ErrTransport is an exported constant or variable used by the storefront client.
	ErrTransport = errors.New("request failed")
	// ErrApplication is an exported constant or variable used by the storefront client.
	ErrApplication = errors.New("application error")
	// ErrDeleteNotConfirmed is an exported constant or variable used by the storefront client.
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	// ErrMissingBaseURL is an exported constant or variable used by the storefront client.
	ErrMissingBaseURL = errors.New("API BaseURL is required")
)

// ErrorKind classifies a failed operation. Exactly one kind applies to any
// given failure; callers branch on the kind, never on raw status codes.
//
// ErrorKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ErrorKind uint8

const (
	// KindTransport is an exported constant or variable used by the storefront client.
	KindTransport ErrorKind = iota
	// KindApplication is an exported constant or variable used by the storefront client.
	KindApplication
	// KindAuth is an exported constant or variable used by the storefront client.
	KindAuth
	// KindValidation is an exported constant or variable used by the storefront client.
	KindValidation
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the tagged failure type constructed once at the request client
// boundary. Status is set only for transport and auth failures that carried
// an HTTP status.
//
// Error instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

// Error returns the user-facing failure message.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Kind.String() + " error"
}

// Unwrap maps the kind to its sentinel so errors.Is works against
// [ErrAuthenticationRequired], [ErrValidation], [ErrTransport], and
// [ErrApplication].
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindAuth:
		return ErrAuthenticationRequired
	case KindValidation:
		return ErrValidation
	case KindApplication:
		return ErrApplication
	default:
		return ErrTransport
	}
}
