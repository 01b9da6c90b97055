// Package errors provides the structured error type used by the
// configuration and schema layers. Engine failures are classified in
// domain/core instead; this package only covers application plumbing.
package errors

import (
	"fmt"
)

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError carries a stable code alongside the message so callers can branch
// without parsing text
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap adds context to an error. An inner AppError keeps its code; anything
// else is classified as internal.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// ConfigInvalid reports a rejected configuration value
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
