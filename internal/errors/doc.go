// Package apperrors holds the error types shared by the orchestrator and the
// front ends: configuration and validation errors, per-target faults, the
// aggregated fault of a failed submission and timeouts. It also maps errors
// to process exit codes and user-facing messages.
//
// Types carrying a cause implement Unwrap, so callers use errors.Is and
// errors.As rather than comparing messages.
package apperrors
