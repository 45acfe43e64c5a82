package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType is the closed set of failure categories that cross component
// boundaries. Everything else is INTERNAL_ERROR.
type ErrorType string

const (
	TypeValidation    ErrorType = "VALIDATION_ERROR"
	TypeNotFound      ErrorType = "NOT_FOUND"
	TypeOrgMismatch   ErrorType = "ORG_MISMATCH"
	TypeDuplicateRoot ErrorType = "DUPLICATE_ROOT"
	TypeProver        ErrorType = "PROVER_ERROR"
	TypeConnection    ErrorType = "CONNECTION_ERROR"
	TypeInternal      ErrorType = "INTERNAL_ERROR"
)

type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewValidation(format string, v ...interface{}) *Error {
	return &Error{Type: TypeValidation, Message: fmt.Sprintf(format, v...)}
}

func NewNotFound(format string, v ...interface{}) *Error {
	return &Error{Type: TypeNotFound, Message: fmt.Sprintf(format, v...)}
}

func NewOrgMismatch(format string, v ...interface{}) *Error {
	return &Error{Type: TypeOrgMismatch, Message: fmt.Sprintf(format, v...)}
}

func NewDuplicateRoot(format string, v ...interface{}) *Error {
	return &Error{Type: TypeDuplicateRoot, Message: fmt.Sprintf(format, v...)}
}

func NewProver(cause error, format string, v ...interface{}) *Error {
	return &Error{Type: TypeProver, Message: fmt.Sprintf(format, v...), cause: cause}
}

func NewConnection(cause error, format string, v ...interface{}) *Error {
	return &Error{Type: TypeConnection, Message: fmt.Sprintf(format, v...), cause: cause}
}

func NewInternal(cause error, format string, v ...interface{}) *Error {
	return &Error{Type: TypeInternal, Message: fmt.Sprintf(format, v...), cause: cause}
}

// From classifies an arbitrary error. Typed errors pass through, anything
// unrecognized becomes INTERNAL_ERROR so raw causes never leak to callers.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return NewInternal(err, "unexpected error")
}

// IsType reports whether err carries the given category.
func IsType(err error, t ErrorType) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Type == t
}

// RequestScoped reports whether the error is tied to the request itself and
// must not be retried by queue redelivery.
func RequestScoped(err error) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return RequestScopedType(appErr.Type)
}

func RequestScopedType(t ErrorType) bool {
	switch t {
	case TypeValidation, TypeNotFound, TypeOrgMismatch, TypeDuplicateRoot:
		return true
	default:
		return false
	}
}
