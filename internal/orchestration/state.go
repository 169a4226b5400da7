package orchestration

import (
	"slices"
	"time"

	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/target"
)

// Status is the lifecycle stage of the orchestration state machine:
// Idle → Running → {Succeeded, Failed} → Running → …
type Status int

const (
	// StatusIdle means no submission has been made yet.
	StatusIdle Status = iota
	// StatusRunning means a submission is in flight.
	StatusRunning
	// StatusSucceeded means the last submission replaced every result.
	StatusSucceeded
	// StatusFailed means the last submission faulted; results are unchanged.
	StatusFailed
)

var statusNames = [...]string{"idle", "running", "succeeded", "failed"}

// String returns the lowercase status name.
func (s Status) String() string {
	if int(s) < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is an immutable snapshot of the orchestration.
type State struct {
	// Prompt is the prompt of the current or last submission.
	Prompt string `json:"prompt"`
	// Results holds exactly one entry per configured target, in
	// configuration order. Entries are placeholders until a submission
	// succeeds.
	Results []target.ModelResult `json:"results"`
	Status  Status               `json:"status"`
	// Message is the user-facing failure message when Status is Failed.
	Message string `json:"message,omitempty"`
	// Faults lists the targets that failed during the last submission.
	Faults []apperrors.TargetFault `json:"-"`

	SubmissionID string    `json:"submission_id,omitempty"`
	StartedAt    time.Time `json:"started_at,omitzero"`
	FinishedAt   time.Time `json:"finished_at,omitzero"`
	// Generation counts submissions since the orchestrator was created.
	Generation uint64 `json:"generation"`
}

// IsRunning reports whether a submission is in flight.
func (s State) IsRunning() bool { return s.Status == StatusRunning }

// Duration returns the wall time of the last finished submission.
func (s State) Duration() time.Duration {
	if s.StartedAt.IsZero() || s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Result returns the entry for t.
func (s State) Result(t target.ModelTarget) (target.ModelResult, bool) {
	for _, r := range s.Results {
		if r.Target == t {
			return r, true
		}
	}
	return target.ModelResult{}, false
}

// clone copies the slices so that the snapshot shares no memory with the
// orchestrator.
func (s State) clone() State {
	s.Results = slices.Clone(s.Results)
	s.Faults = slices.Clone(s.Faults)
	return s
}
