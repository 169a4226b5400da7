package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/accai/internal/format"
	"github.com/agbru/accai/internal/orchestration"
)

// HeaderModel renders the top bar: title, version, submission status and
// elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	status    orchestration.Status
	version   string
	width     int
	now       func() time.Time
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		version: version,
		now:     time.Now,
	}
}

// SetState follows the orchestration state: the timer starts with a running
// submission and freezes when it finishes.
func (h *HeaderModel) SetState(s orchestration.State) {
	h.status = s.Status
	h.startTime = s.StartedAt
	h.endTime = s.FinishedAt
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "AccAI"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	leftPart := titleStyle.Render(titleText)

	var right []string
	right = append(right, renderStatus(h.status))
	if elapsed, ok := h.elapsed(); ok {
		right = append(right, elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(elapsed))))
	}
	rightPart := strings.Join(right, versionStyle.Render(" | "))

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(leftPart)-lipgloss.Width(rightPart), 1)

	row := leftPart + spaces(gap) + rightPart
	return headerStyle.Width(h.width).Render(row)
}

func (h HeaderModel) elapsed() (time.Duration, bool) {
	if h.startTime.IsZero() {
		return 0, false
	}
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime), true
	}
	return h.now().Sub(h.startTime), true
}

func renderStatus(s orchestration.Status) string {
	switch s {
	case orchestration.StatusRunning:
		return statusRunningStyle.Render("● Generating")
	case orchestration.StatusSucceeded:
		return statusDoneStyle.Render("✓ Done")
	case orchestration.StatusFailed:
		return statusErrorStyle.Render("✗ Failed")
	default:
		return statusIdleStyle.Render("○ Idle")
	}
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
