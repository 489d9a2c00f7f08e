package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorInput    = 5   // Indicates the input stream ended before the session was closed.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// Sentinel causes for input validation failures. They are wrapped in a
// ValidationError so callers can match either the field or the reason.
var (
	// ErrNotANumber is returned when a grade cannot be parsed as a number.
	ErrNotANumber = errors.New("not a number")
	// ErrOutOfRange is returned when a grade lies outside the accepted bounds.
	ErrOutOfRange = errors.New("out of range")
	// ErrEmptySubject is returned when a subject name is blank.
	ErrEmptySubject = errors.New("empty subject")
	// ErrInvalidAnswer is returned when a continue answer is not recognized.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// ErrInputClosed signals that the input stream ended before the user
// answered "no" to the continue prompt.
var ErrInputClosed = errors.New("input closed")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation, provides a human-readable explanation meant for the
// person typing, and keeps the sentinel cause for programmatic checks.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
	// Cause is one of the sentinel errors of this package.
	Cause error
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Unwrap returns the sentinel cause.
func (e ValidationError) Unwrap() error { return e.Cause }

// Reason returns a short machine-friendly reason, suitable as a metric label.
func (e ValidationError) Reason() string {
	if e.Cause == nil {
		return "unknown"
	}
	return e.Cause.Error()
}

// NewValidationError creates a ValidationError for field with the given cause.
func NewValidationError(field string, cause error, message string) error {
	return ValidationError{Field: field, Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by a session to a process exit code.
func ExitCodeFor(err error) int {
	var configErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case IsContextError(err):
		return ExitErrorCanceled
	case errors.Is(err, ErrInputClosed):
		return ExitErrorInput
	case errors.As(err, &configErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
