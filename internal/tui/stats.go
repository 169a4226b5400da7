package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/accai/internal/format"
	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/sysmon"
	"github.com/agbru/accai/internal/target"
)

const (
	// DefaultHistoryLimit is the number of submissions kept before the first
	// resize.
	DefaultHistoryLimit = 32
	statsLabelWidth     = 14
	durationChartRows   = 2
	mib                 = 1 << 20
)

// StatsModel summarizes the submissions of the session: counts, a chart of
// submission durations and a confidence sparkline per target. While the panel
// is open it also shows host CPU and memory usage.
type StatsModel struct {
	targets    []target.ModelTarget
	durations  *History
	confidence map[target.ModelTarget]*History
	succeeded  int
	failed     int
	lastID     string

	cpu    *History
	mem    *History
	system sysmon.Stats
	width  int
	height int
}

// NewStatsModel creates an empty statistics panel for targets.
func NewStatsModel(targets []target.ModelTarget) StatsModel {
	conf := make(map[target.ModelTarget]*History, len(targets))
	for _, t := range targets {
		conf[t] = NewHistory(DefaultHistoryLimit)
	}
	return StatsModel{
		targets:    targets,
		durations:  NewHistory(DefaultHistoryLimit),
		confidence: conf,
		cpu:        NewHistory(DefaultHistoryLimit),
		mem:        NewHistory(DefaultHistoryLimit),
	}
}

// RecordSystem adds a resource sample.
func (s *StatsModel) RecordSystem(st sysmon.Stats) {
	s.system = st
	s.cpu.Push(st.CPUPercent)
	s.mem.Push(st.MemPercent)
}

// Record adds a finished submission. Running states and states already
// recorded are ignored.
func (s *StatsModel) Record(state orchestration.State) {
	switch state.Status {
	case orchestration.StatusSucceeded, orchestration.StatusFailed:
	default:
		return
	}
	if state.SubmissionID != "" && state.SubmissionID == s.lastID {
		return
	}
	s.lastID = state.SubmissionID
	s.durations.Push(state.Duration().Seconds())

	if state.Status == orchestration.StatusFailed {
		s.failed++
		return
	}
	s.succeeded++
	for _, t := range s.targets {
		if r, ok := state.Result(t); ok && r.Ready {
			s.confidence[t].Push(r.Metrics.ConfidenceScore)
		}
	}
}

// Total returns the number of recorded submissions.
func (s StatsModel) Total() int { return s.succeeded + s.failed }

// SetSize updates dimensions and fits the histories to the width.
func (s *StatsModel) SetSize(w, h int) {
	s.width = w
	s.height = h
	limit := max(w-statsLabelWidth-12, 8)
	s.durations.SetLimit(limit * 2)
	for _, hist := range s.confidence {
		hist.SetLimit(limit)
	}
	s.cpu.SetLimit(limit)
	s.mem.SetLimit(limit)
}

// View renders the statistics panel.
func (s StatsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Statistics"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d   %s   %s\n",
		metricLabelStyle.Render(format.PadRight("Submissions", statsLabelWidth)),
		s.Total(),
		statusDoneStyle.Render(fmt.Sprintf("✓ %d", s.succeeded)),
		statusErrorStyle.Render(fmt.Sprintf("✗ %d", s.failed)),
	)

	if s.durations.Len() == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No submissions yet."))
		b.WriteString("\n")
	} else {
		s.writeSubmissions(&b)
	}
	s.writeSystem(&b)
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (s StatsModel) writeSubmissions(b *strings.Builder) {
	fmt.Fprintf(b, "%s %s   %s %s\n\n",
		metricLabelStyle.Render(format.PadRight("Last", statsLabelWidth)),
		metricValueStyle.Render(format.FormatElapsed(format.RoundTenths(s.durations.Last()))),
		metricLabelStyle.Render("Average"),
		metricValueStyle.Render(format.FormatElapsed(format.RoundTenths(s.durations.Mean()))),
	)

	b.WriteString(sectionTitleStyle.Render("Duration"))
	b.WriteString("\n")
	chartWidth := max((s.durations.Limit()+1)/2, 1)
	for _, line := range RenderBrailleChart(s.durations.Values(), s.durations.Max(), chartWidth, durationChartRows) {
		b.WriteString(chartStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionTitleStyle.Render("Confidence"))
	b.WriteString("\n")
	for _, t := range s.targets {
		h := s.confidence[t]
		name := format.PadRight(format.Truncate(string(t), statsLabelWidth), statsLabelWidth)
		line := mutedStyle.Render("-")
		if h.Len() > 0 {
			line = sparklineStyle.Render(RenderSparkline(h.Values(), 100)) + " " +
				metricValueStyle.Render(format.FormatConfidence(h.Last()))
		}
		fmt.Fprintf(b, "%s %s\n", metricLabelStyle.Render(name), line)
	}
}

// writeSystem renders the resource section once a sample was recorded.
func (s StatsModel) writeSystem(b *strings.Builder) {
	if s.cpu.Len() == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(sectionTitleStyle.Render("System"))
	b.WriteString("\n")
	for _, row := range []struct {
		label string
		hist  *History
	}{
		{"CPU", s.cpu},
		{"Memory", s.mem},
	} {
		fmt.Fprintf(b, "%s %s %s\n",
			metricLabelStyle.Render(format.PadRight(row.label, statsLabelWidth)),
			sparklineStyle.Render(RenderSparkline(row.hist.Values(), 100)),
			metricValueStyle.Render(fmt.Sprintf("%.1f%%", row.hist.Last())),
		)
	}
	fmt.Fprintf(b, "%s %s   %s %s\n",
		metricLabelStyle.Render(format.PadRight("Goroutines", statsLabelWidth)),
		metricValueStyle.Render(fmt.Sprint(s.system.Goroutines)),
		metricLabelStyle.Render("Heap"),
		metricValueStyle.Render(fmt.Sprintf("%.1f MiB", float64(s.system.HeapAlloc)/mib)),
	)
}
