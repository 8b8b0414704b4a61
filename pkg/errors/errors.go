// Package errors provides structured error types for simplecharts.
//
// Errors carry a machine-readable [Code] so that the CLI, the pipeline and
// library callers can branch on the failure class without string matching:
//
//   - INVALID_*: rejected input at an API boundary (bad range, negative
//     scale factor, unknown format, malformed config)
//   - *_NOT_FOUND / EMPTY_DATA: missing inputs
//   - LAYOUT_NON_CONVERGENCE: recorded, never propagated as a failure
//   - INTERNAL_* / UNSUPPORTED: unexpected conditions
//
// Degenerate ranges and empty tick sets are not errors and have no code.
//
// # Usage
//
//	r, err := axis.NewRange(lo, hi)
//	if errors.Is(err, errors.ErrCodeInvalidRange) {
//	    // lower > upper
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Geometry and argument errors
	ErrCodeInvalidRange    Code = "INVALID_RANGE"
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidPosition Code = "INVALID_POSITION"

	// Missing input errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeEmptyData    Code = "EMPTY_DATA"

	// Layout faults. The resolver records this code on its result instead
	// of failing, since a chart must always render something.
	ErrCodeLayoutNonConvergence Code = "LAYOUT_NON_CONVERGENCE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
