// Package errors provides structured error types for flipstack.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so that the CLI and the HTTP API can report it consistently:
//
//   - INVALID_*: input validation failures (malformed stacks, bad flags)
//   - LENGTH_MISMATCH: start and goal stacks of different sizes
//   - INTERNAL_ERROR: broken internal contracts (a defect, never user error)
//
// An admission-declined query and an unreachable goal are not errors; they
// are ordinary outcomes reported on the solver result.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidStack, "value %d repeated", v)
//	if errors.Is(err, errors.ErrCodeInvalidStack) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidStack    Code = "INVALID_STACK"
	ErrCodeInvalidMode     Code = "INVALID_MODE"
	ErrCodeLengthMismatch  Code = "LENGTH_MISMATCH"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidBatch    Code = "INVALID_BATCH"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeUnsupportedSize Code = "UNSUPPORTED_SIZE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsValidation reports whether err is a caller mistake rather than a defect.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidStack, ErrCodeInvalidMode,
		ErrCodeLengthMismatch, ErrCodeInvalidFormat, ErrCodeInvalidConfig,
		ErrCodeInvalidBatch, ErrCodeUnsupportedSize:
		return true
	}
	return false
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case GetCode(err) == ErrCodeFileNotFound:
		return http.StatusNotFound
	case IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
