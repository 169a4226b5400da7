package tui

import (
	"github.com/agbru/accai/internal/account"
	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/sysmon"
	"github.com/agbru/accai/internal/target"
)

// StateMsg carries a snapshot published by the orchestrator.
type StateMsg struct {
	State orchestration.State
}

// ProgressMsg reports that one target of the running submission finished.
type ProgressMsg orchestration.ProgressUpdate

// SubmissionDoneMsg is returned by the command running a submission.
type SubmissionDoneMsg struct {
	State orchestration.State
	Err   error
}

// CopiedMsg reports the outcome of a copy action. Path is set when the
// content was written to a file instead of the clipboard.
type CopiedMsg struct {
	Target target.ModelTarget
	Path   string
	Err    error
}

// NavigateMsg switches the active screen.
type NavigateMsg struct {
	Route account.Route
}

// ContextCancelledMsg is sent when the session context ends.
type ContextCancelledMsg struct {
	Err error
}

// statsTickMsg asks for the next resource sample of the statistics panel.
// seq identifies the period during which the panel was opened.
type statsTickMsg struct {
	seq int
}

// SysStatsMsg carries a resource sample for the statistics panel.
type SysStatsMsg struct {
	seq   int
	Stats sysmon.Stats
}
