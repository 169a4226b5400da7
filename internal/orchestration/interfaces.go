package orchestration

import (
	"io"
	"time"
)

// StateObserver receives every State published by the Orchestrator.
// This interface decouples the orchestration layer from the presentation
// layer: the CLI spinner and the TUI bridge both implement it.
//
// OnStateChange is called synchronously from the goroutine running Submit
// and must not block.
type StateObserver interface {
	OnStateChange(state State)
}

// StateObserverFunc is a function adapter that implements StateObserver.
type StateObserverFunc func(state State)

// OnStateChange calls the underlying function.
func (f StateObserverFunc) OnStateChange(state State) { f(state) }

// MetricsRecorder receives submission and per-target measurements.
// internal/metrics provides the Prometheus implementation.
type MetricsRecorder interface {
	SubmissionStarted()
	SubmissionFinished(status Status, d time.Duration)
	TargetFinished(target string, ok bool, d time.Duration)
}

// NullMetricsRecorder discards all measurements.
type NullMetricsRecorder struct{}

// SubmissionStarted does nothing.
func (NullMetricsRecorder) SubmissionStarted() {}

// SubmissionFinished does nothing.
func (NullMetricsRecorder) SubmissionFinished(Status, time.Duration) {}

// TargetFinished does nothing.
func (NullMetricsRecorder) TargetFinished(string, bool, time.Duration) {}

// ResultPresenter defines the interface for presenting a finished state.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats (table, JSON, etc.) without modifying
// the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays one summary row per target.
	PresentComparisonTable(state State, out io.Writer)

	// PresentResults displays the content of every result.
	PresentResults(state State, verbose bool, out io.Writer)
}

// ErrorHandler handles submission errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
