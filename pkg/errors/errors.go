// Package errors provides structured error types for the update center generator.
//
// Errors carry a machine-readable [Code] so that callers can decide how far a
// failure is allowed to travel:
//   - REMOTE_SERVICE, PARSE_ERROR: per-plugin failures. They are logged at the
//     tier or field where they happen and degrade that field to absent.
//   - CACHE_CORRUPTION: an unreadable cache entry. Always downgraded to a miss.
//   - CONFIGURATION: fatal at startup; the process exits with status 1.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "override table %s is empty", path)
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    // abort the run
//	}
//
//	err := errors.Wrap(errors.ErrCodeRemoteService, cause, "fetch page %q", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Per-plugin failures
	ErrCodeRemoteService   Code = "REMOTE_SERVICE"
	ErrCodeParse           Code = "PARSE_ERROR"
	ErrCodeCacheCorruption Code = "CACHE_CORRUPTION"

	// Startup failures
	ErrCodeConfiguration Code = "CONFIGURATION"

	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidCoordinate Code = "INVALID_COORDINATE"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

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
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error: the messages
// of err and its causes without code prefixes.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// IsFatal reports whether err must abort the whole run rather than a single plugin.
func IsFatal(err error) bool {
	return Is(err, ErrCodeConfiguration)
}
