package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and logging.
type Kind string

const (
	KindAuth              Kind = "AUTH_ERROR"
	KindAccessDenied      Kind = "ACCESS_DENIED"
	KindNotFound          Kind = "NOT_FOUND"
	KindValidation        Kind = "VALIDATION_ERROR"
	KindBackend           Kind = "BACKEND_ERROR"
	KindInconsistentWrite Kind = "INCONSISTENT_WRITE"
)

// Error is the application error carried from services up to the HTTP layer.
// The wrapped cause (if any) is preserved for logs; Message is what the
// client sees.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func Auth(message string) *Error {
	return newError(KindAuth, message, nil)
}

func AccessDenied(message string) *Error {
	return newError(KindAccessDenied, message, nil)
}

func NotFound(message string) *Error {
	return newError(KindNotFound, message, nil)
}

func Validation(message string) *Error {
	return newError(KindValidation, message, nil)
}

func Backend(message string, cause error) *Error {
	return newError(KindBackend, message, cause)
}

// InconsistentWrite marks a multi-step write that partially completed
// (organization without membership, blob without metadata). The caller
// decides whether to retry; the service never retries on its own.
func InconsistentWrite(message string, cause error) *Error {
	return newError(KindInconsistentWrite, message, cause)
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, else KindBackend.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindBackend
}

// MessageOf returns the client-facing message of err, falling back to a
// generic message for unclassified errors so internal details never leak.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
