package core

import (
	"errors"
	"fmt"
)

// Failure classes for the estimation engine. Every engine error wraps exactly
// one of these so callers can classify without parsing message text.
var (
	ErrInput              = errors.New("invalid input")
	ErrInsufficientSample = errors.New("insufficient sample")
	ErrUnresolvedGrouping = errors.New("unresolved grouping")
	ErrUnsupportedMethod  = errors.New("unsupported method")
)

// Fixed-message errors reused across components. The message text is part of
// the result contract surfaced to callers, so it stays stable.
var (
	ErrNoResponses = NewInputError("No responses provided")
	ErrNoWeights   = NewInputError("No responses or weights provided")
)

// engineError carries a caller-visible message and its failure class.
type engineError struct {
	class   error
	message string
}

func (e *engineError) Error() string { return e.message }
func (e *engineError) Unwrap() error { return e.class }

// NewInputError reports malformed or empty input.
func NewInputError(format string, args ...interface{}) error {
	return &engineError{class: ErrInput, message: fmt.Sprintf(format, args...)}
}

// NewInsufficientSampleError reports a sample below a per-test or per-group minimum.
func NewInsufficientSampleError(format string, args ...interface{}) error {
	return &engineError{class: ErrInsufficientSample, message: fmt.Sprintf(format, args...)}
}

// NewUnresolvedGroupingError reports a grouping variable that did not resolve
// to exactly two comparable groups.
func NewUnresolvedGroupingError(format string, args ...interface{}) error {
	return &engineError{class: ErrUnresolvedGrouping, message: fmt.Sprintf(format, args...)}
}

// NewUnsupportedMethodError reports an unknown test type. Unknown sampling
// methods never error; they fall back to simple random by policy.
func NewUnsupportedMethodError(format string, args ...interface{}) error {
	return &engineError{class: ErrUnsupportedMethod, message: fmt.Sprintf(format, args...)}
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInput)
}

func IsInsufficientSampleError(err error) bool {
	return errors.Is(err, ErrInsufficientSample)
}

func IsUnresolvedGroupingError(err error) bool {
	return errors.Is(err, ErrUnresolvedGrouping)
}

func IsUnsupportedMethodError(err error) bool {
	return errors.Is(err, ErrUnsupportedMethod)
}
