// Package apperr defines the typed failure taxonomy shared by services
// and handlers. Services return these instead of ad-hoc error strings;
// the HTTP layer maps each kind to a status code and renders the
// canonical envelope. Unexpected storage failures are wrapped as
// ServerFault and their detail never reaches the response body.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unauthenticated     Kind = iota // no credential presented
	InvalidCredential               // credential malformed, tampered or expired
	Forbidden                       // role or ownership denied
	NotFound                        // entity absent
	MalformedIdentifier             // identifier cannot address any entity
	Conflict                        // uniqueness violation
	ValidationFailed                // input shape rejected
	ServerFault                     // unexpected failure
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case InvalidCredential:
		return "invalid_credential"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case MalformedIdentifier:
		return "malformed_identifier"
	case Conflict:
		return "conflict"
	case ValidationFailed:
		return "validation_failed"
	case ServerFault:
		return "server_fault"
	}
	return "unknown"
}

// Error carries a kind, a user-facing message and an optional cause.
// The cause is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without a cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error keeping err as cause for logging.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err; anything untyped is a ServerFault.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ServerFault
}

// MessageOf returns the user-facing message for err. Untyped errors get
// a generic message so internals never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// IsKind reports whether err has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
