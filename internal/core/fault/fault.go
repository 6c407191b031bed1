// Package fault defines the error taxonomy shared by every account
// operation. Each category carries the status-code integer the HTTP layer
// maps 1:1 onto responses.
package fault

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is a categorized business failure. Expected failures travel as
// values inside monad.Result; they are never raised as panics.
type Error struct {
	Status  int
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any, for errors.Is/As chains.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Validation reports a 400 request-validation failure.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// ValidationJoin concatenates independent field failures into a single
// 400 error, comma-separated, preserving order.
func ValidationJoin(messages []string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: strings.Join(messages, ", ")}
}

// NotFound reports a 404 missing-record failure.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Unauthorized reports a 401 invalid-credentials failure.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Locked reports a 403 account-lockout failure.
func Locked(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// Conflict reports a 409 uniqueness or versioning conflict.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Storage reports a 500 persistence failure, wrapping the underlying cause.
// The cause is kept for logs; the message is what callers may surface.
func Storage(operation string, cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("storage error: %s", operation),
		cause:   cause,
	}
}
