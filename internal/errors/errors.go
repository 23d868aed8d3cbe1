// Package errors provides standardized error types for the emby-proxy CLI.
//
// CLIError carries a code that categorizes the failure (validation,
// parameter resolution, external process, template, filesystem) so
// callers can branch with errors.Is/errors.As while users still get a
// plain message.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeValidation ErrorCode = "VALIDATION" // Input validation failed
	ErrCodeResolve    ErrorCode = "RESOLVE"    // Parameter resolution failed
	ErrCodeExec       ErrorCode = "EXEC"       // External process failed
	ErrCodeTemplate   ErrorCode = "TEMPLATE"   // Template rendering failed
	ErrCodeIO         ErrorCode = "IO"         // Filesystem operation failed
)

// CLIError represents a structured error with context about the operation.
type CLIError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Param   string    // Parameter or path involved (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Param != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Param, e.Message, e.Err)
	}
	if e.Param != "" {
		return fmt.Sprintf("%s: %s", e.Param, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *CLIError) Is(target error) bool {
	t, ok := target.(*CLIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for error checking with errors.Is().
var (
	// ErrUnpairedOutputPaths indicates exactly one of the cert/key
	// output paths was supplied.
	ErrUnpairedOutputPaths = &CLIError{
		Code:    ErrCodeValidation,
		Message: "CERT_OUTPUT_PATH and KEY_OUTPUT_PATH must be set together",
	}
)

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &CLIError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Resolve creates a resolution error for the given parameter.
func Resolve(param string, err error) error {
	return &CLIError{
		Code:    ErrCodeResolve,
		Message: "failed to resolve parameter",
		Param:   param,
		Err:     err,
	}
}

// Exec creates an error for an external process failure.
func Exec(msg string, err error) error {
	return &CLIError{
		Code:    ErrCodeExec,
		Message: msg,
		Err:     err,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &CLIError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
