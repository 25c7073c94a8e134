// Package apperrors defines the error types shared by the setpart commands
// and the HTTP server, and the exit codes they map to.
//
// Every wrapping type implements Unwrap so that errors.Is and errors.As see
// through it to the original cause.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Enumeration finished normally.
	ExitErrorGeneric  = 1   // Any other failure.
	ExitErrorTimeout  = 2   // The -timeout deadline was reached.
	ExitErrorMismatch = 3   // Generators disagree on count or fingerprint.
	ExitErrorConfig   = 4   // Invalid flags or environment.
	ExitErrorCanceled = 130 // Interrupted by SIGINT/SIGTERM.
)

// ConfigError reports invalid user configuration: a bad flag value, an
// unknown generator, or an environment variable that does not parse.
type ConfigError struct {
	// Message explains what is wrong.
	Message string
}

// Error implements the error interface.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A ConfigError holding the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EnumerationError records which generator failed, for which set size, and
// why.
type EnumerationError struct {
	// Generator is the registry name of the failing generator.
	Generator string
	// N is the size of the ground set being enumerated.
	N int
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e EnumerationError) Error() string {
	if e.Generator == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s (n=%d): %v", e.Generator, e.N, e.Cause)
}

// Unwrap returns the underlying cause.
func (e EnumerationError) Unwrap() error { return e.Cause }

// NewEnumerationError wraps cause with the generator name and set size. A
// nil cause yields nil.
func NewEnumerationError(generator string, n int, cause error) error {
	if cause == nil {
		return nil
	}
	return EnumerationError{Generator: generator, N: n, Cause: cause}
}

// MismatchError is returned when several generators ran on the same n and
// did not produce the same set of partitions.
type MismatchError struct {
	// N is the size of the ground set.
	N int
	// Details lists the disagreeing results, one per entry.
	Details []string
}

// Error implements the error interface.
func (e MismatchError) Error() string {
	return fmt.Sprintf("generators disagree for n=%d: %d conflicting results", e.N, len(e.Details))
}

// ServerError represents a failure of the HTTP server: listening, serving
// or shutting down.
type ServerError struct {
	// Message describes the failing operation.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, or nil.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError. cause may be nil.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError prefixes err with a formatted context message using %w. It
// returns nil when err is nil.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from a cancelled or expired
// context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError describes an invalid request or configuration field.
type ValidationError struct {
	// Field is the offending field or query parameter. May be empty.
	Field string
	// Message explains the violated constraint.
	Message string
	// Value is the rejected value, if known.
	Value any
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
