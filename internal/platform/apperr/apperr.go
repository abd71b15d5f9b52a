// Package apperr defines the request-scoped error taxonomy shared by the auth
// and note services. Each error carries a kind and a caller-safe message; the
// transport boundary maps kinds to HTTP statuses. Anything that is not an
// *Error is an opaque internal failure.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindValidation
	KindConflict
)

// Error is a request-scoped error with a kind and a human-readable message.
// The message is safe to return to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New returns an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Unauthenticated marks a request with no valid session (HTTP 401).
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }

// Forbidden marks an authenticated request that is not authorized for the
// resource (HTTP 403).
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound marks a request for a resource that is absent or already deleted
// (HTTP 404).
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Validation marks a request with missing or malformed required fields (HTTP 400).
func Validation(message string) *Error { return New(KindValidation, message) }

// Conflict marks a request that collides with existing state, such as a
// duplicate email (HTTP 409).
func Conflict(message string) *Error { return New(KindConflict, message) }

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus returns the HTTP status for err: the mapped code when err is an
// *Error, 500 otherwise.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
