// Package autherr defines the typed failure returned by every auth workflow step.
// Each Kind maps to exactly one HTTP status so the boundary layer never has to guess.
package autherr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an auth failure.
type Kind string

const (
	MissingField        Kind = "MISSING_FIELD"
	NameTooShort        Kind = "NAME_TOO_SHORT"
	EmailDomainRejected Kind = "EMAIL_DOMAIN_REJECTED"
	WeakPassword        Kind = "WEAK_PASSWORD"
	PasswordMismatch    Kind = "PASSWORD_MISMATCH"
	InvalidPayload      Kind = "INVALID_PAYLOAD"

	EmailInUse Kind = "EMAIL_IN_USE"

	InvalidCredentials Kind = "INVALID_CREDENTIALS"
	TokenInvalid       Kind = "TOKEN_INVALID"
	TokenExpired       Kind = "TOKEN_EXPIRED"
	Unauthenticated    Kind = "UNAUTHENTICATED"

	UserNotFound    Kind = "USER_NOT_FOUND"
	AccountNotFound Kind = "ACCOUNT_NOT_FOUND"

	Internal Kind = "INTERNAL_ERROR"
)

// Status returns the HTTP status for the kind. Unknown kinds are internal errors.
func (k Kind) Status() int {
	switch k {
	case MissingField, NameTooShort, EmailDomainRejected, WeakPassword, PasswordMismatch, InvalidPayload:
		return http.StatusBadRequest
	case EmailInUse:
		return http.StatusConflict
	case InvalidCredentials, TokenInvalid, TokenExpired, Unauthenticated:
		return http.StatusUnauthorized
	case UserNotFound, AccountNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single failure type surfaced by the workflow.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Status is the HTTP status attached to the error.
func (e *Error) Status() int { return e.Kind.Status() }

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind carrying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Internalf wraps cause as an Internal error with a client-safe message.
func Internalf(cause error, format string, args ...any) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the kind of err, or Internal when err carries none.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return Internal
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	if ae, ok := As(err); ok {
		return ae.Status()
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == kind
}
