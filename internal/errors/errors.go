package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorTimeout    = 2   // Indicates the submission timed out.
	ExitErrorValidation = 3   // Indicates rejected user input.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// DefaultFaultMessage is shown when a fault carries no usable message.
const DefaultFaultMessage = "An unexpected error occurred"

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

// TargetFault records the failure of a single model target within a
// submission.
type TargetFault struct {
	// Target is the name of the target that failed.
	Target string
	// Err is the underlying failure.
	Err error
}

// Error returns "<target>: <cause>".
func (f TargetFault) Error() string {
	if f.Err == nil || f.Err.Error() == "" {
		return f.Target + ": " + DefaultFaultMessage
	}
	return fmt.Sprintf("%s: %v", f.Target, f.Err)
}

// Unwrap returns the underlying failure.
func (f TargetFault) Unwrap() error { return f.Err }

// OrchestrationFault encapsulates an unexpected fault raised while generating
// results for a submission. The first failure is kept as Cause; every target
// that failed is listed in Faults.
type OrchestrationFault struct {
	// Cause is the error that aborted the submission.
	Cause error
	// Faults lists the per-target failures, in target order.
	Faults []TargetFault
}

// Error returns the message of the underlying cause, or DefaultFaultMessage
// when there is none.
func (e OrchestrationFault) Error() string {
	if e.Cause == nil || e.Cause.Error() == "" {
		return DefaultFaultMessage
	}
	return e.Cause.Error()
}

// Unwrap returns the original cause, allowing for error chain inspection.
func (e OrchestrationFault) Unwrap() error { return e.Cause }

// FailedTargets returns the names of the targets that failed.
func (e OrchestrationFault) FailedTargets() []string {
	names := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		names = append(names, f.Target)
	}
	return names
}

// Summary returns a one-line description including every failed target.
func (e OrchestrationFault) Summary() string {
	if len(e.Faults) <= 1 {
		return e.Error()
	}
	parts := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%d targets failed: %s", len(e.Faults), strings.Join(parts, "; "))
}

// TimeoutError represents a submission timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and carries the message shown to the user verbatim.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns the user-facing message.
func (e ValidationError) Error() string {
	return e.Message
}

// Detail returns the message qualified with the field name, for logs.
func (e ValidationError) Detail() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Returns nil if err is nil.
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

// UserMessage returns the text displayed to the user for err: validation
// messages verbatim, fault summaries, and DefaultFaultMessage for anything
// without a message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var fault OrchestrationFault
	if errors.As(err, &fault) {
		return fault.Summary()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultFaultMessage
}
