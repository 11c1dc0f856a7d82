// Package apperr defines the closed set of error kinds the application
// propagates between layers. Handlers map a kind to an HTTP status exactly
// once, at the boundary; nothing below the boundary knows about status codes.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInternal is the zero-value fallback for errors that carry no kind.
	KindInternal Kind = iota
	// KindConflict: the identifier is already taken.
	KindConflict
	// KindNotFound: no record for the given identifier or id.
	KindNotFound
	// KindInvalidCredentials: identifier exists but the secret does not match.
	KindInvalidCredentials
	// KindUnauthenticated: missing, invalid, or expired bearer token.
	KindUnauthenticated
	// KindMalformed: a stored record is corrupt and cannot be interpreted.
	KindMalformed
	// KindUnavailable: the store or another dependency failed.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindMalformed:
		return "malformed"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error carries a stable kind plus a human-readable message. Err holds the
// underlying cause for logging; it is never serialized to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, walking the wrap chain.
// Errors without a kind report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
