// Package errors provides structured error types for bpjson.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the failure taxonomy of the exporter:
//   - INVALID_*: nil objects, empty strings and other no-op inputs
//   - PARSE_FAILURE: malformed JSON/YAML/TOML text on an import path
//   - FIELD_NOT_FOUND, KIND_MISMATCH: field-level import problems
//   - UNRESOLVED_REFERENCE: a type, function or variable the registry cannot resolve
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeFieldNotFound, "no field %q", name)
//	if errors.Is(err, errors.ErrCodeFieldNotFound) {
//	    // Handle missing field
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParseFailure, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Import errors
	ErrCodeParseFailure  Code = "PARSE_FAILURE"
	ErrCodeFieldNotFound Code = "FIELD_NOT_FOUND"
	ErrCodeKindMismatch  Code = "KIND_MISMATCH"

	// Resolution errors
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"

	// Output errors
	ErrCodeSchemaViolation Code = "SCHEMA_VIOLATION"
	ErrCodeWriteFailure    Code = "WRITE_FAILURE"

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

// IsNoop reports whether err only signals "nothing to do": a nil object,
// an empty string or an unknown field. Callers usually log these at debug
// level and continue.
func IsNoop(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeFieldNotFound:
		return true
	}
	return false
}
