package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/sysmon"
	"github.com/agbru/accai/internal/target"
)

// PromptPlaceholder is shown in the empty prompt editor.
const PromptPlaceholder = "Enter your prompt here..."

const (
	promptHeight  = 4
	promptLimit   = 4000
	maxCardCols   = 3
	minCardWidth  = 28
	minBodyLines  = 2
	cardChromeLen = 7 // border, title, blank line, two metric lines

	// statsRefresh is the resource sampling period of the statistics panel.
	statsRefresh = 500 * time.Millisecond
)

// sampleSystem is replaced in tests.
var sampleSystem = sysmon.Sample

var errNothingToCopy = errors.New("nothing to copy yet")

// dashboardView selects what the main area of the dashboard shows.
type dashboardView int

const (
	viewCompare dashboardView = iota
	viewSettings
	viewStats
)

// dashboardFocus identifies the focused element of the compare view.
type dashboardFocus int

const (
	focusPrompt dashboardFocus = iota
	focusGenerate
	focusCards
	focusCount
)

// DashboardModel is the / screen: the prompt editor, the Generate action
// and one card per target, plus the settings and statistics panels.
type DashboardModel struct {
	keys     KeyMap
	prompt   textarea.Model
	spinner  spinner.Model
	settings SettingsModel
	stats    StatsModel
	view     dashboardView
	focus    dashboardFocus

	state    orchestration.State
	pending  bool
	progress *orchestration.ProgressAggregator
	submit   func(prompt string) tea.Cmd

	selected int
	scroll   int
	statsSeq int
	width    int
	height   int
}

// NewDashboardModel creates the dashboard for the initial state. submit
// returns the command running a submission.
func NewDashboardModel(keys KeyMap, initial orchestration.State, targets []target.ModelTarget, submit func(string) tea.Cmd) DashboardModel {
	ta := textarea.New()
	ta.Placeholder = PromptPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = promptLimit
	ta.SetHeight(promptHeight)
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	return DashboardModel{
		keys:     keys,
		prompt:   ta,
		spinner:  sp,
		settings: NewSettingsModel(keys),
		stats:    NewStatsModel(targets),
		state:    initial,
		submit:   submit,
	}
}

// State returns the last state applied to the dashboard.
func (m DashboardModel) State() orchestration.State { return m.state }

// Busy reports whether a submission is in flight. Generate is disabled
// while busy.
func (m DashboardModel) Busy() bool { return m.pending || m.state.IsRunning() }

// SetSize updates dimensions.
func (m *DashboardModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.prompt.SetWidth(max(w-4, 10))
	m.stats.SetSize(w, h)
}

// Reset returns to the compare view with the prompt focused.
func (m *DashboardModel) Reset() tea.Cmd {
	m.view = viewCompare
	m.settings = NewSettingsModel(m.keys)
	return m.setFocus(focusPrompt)
}

func (m *DashboardModel) setFocus(f dashboardFocus) tea.Cmd {
	m.focus = (f + focusCount) % focusCount
	if m.focus == focusPrompt {
		return m.prompt.Focus()
	}
	m.prompt.Blur()
	return nil
}

// ToggleSettings shows or hides the settings panel.
func (m *DashboardModel) ToggleSettings() tea.Cmd {
	if m.view == viewSettings {
		m.view = viewCompare
		return m.setFocus(m.focus)
	}
	m.view = viewSettings
	m.prompt.Blur()
	return m.settings.Focus()
}

// ToggleStats shows or hides the statistics panel. Resources are sampled
// while the panel is open.
func (m *DashboardModel) ToggleStats() tea.Cmd {
	if m.view == viewStats {
		m.view = viewCompare
		return m.setFocus(m.focus)
	}
	m.view = viewStats
	m.prompt.Blur()
	m.statsSeq++
	return sampleSysStatsCmd(m.statsSeq)
}

// sampleSysStatsCmd reads the resource usage and returns a SysStatsMsg.
func sampleSysStatsCmd(seq int) tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg{seq: seq, Stats: sampleSystem()}
	}
}

// statsTickCmd schedules the next sample.
func statsTickCmd(seq int) tea.Cmd {
	return tea.Tick(statsRefresh, func(time.Time) tea.Msg {
		return statsTickMsg{seq: seq}
	})
}

// sampling reports whether seq belongs to the currently open panel.
func (m DashboardModel) sampling(seq int) bool {
	return m.view == viewStats && seq == m.statsSeq
}

// StartSubmission submits the prompt unless a submission is in flight.
func (m DashboardModel) StartSubmission() (DashboardModel, tea.Cmd) {
	if m.Busy() || m.submit == nil {
		return m, nil
	}
	m.pending = true
	m.view = viewCompare
	return m, tea.Batch(m.submit(m.prompt.Value()), m.spinner.Tick)
}

// CopySelected returns the command copying the selected card.
func (m DashboardModel) CopySelected() tea.Cmd {
	if m.selected >= len(m.state.Results) {
		return nil
	}
	r := m.state.Results[m.selected]
	if !r.Ready {
		return func() tea.Msg { return CopiedMsg{Target: r.Target, Err: errNothingToCopy} }
	}
	return copyCmd(r)
}

// applyState replaces the displayed state unless next is older than the
// current one. It reports whether next was applied.
func (m *DashboardModel) applyState(next orchestration.State) bool {
	if isStale(m.state, next) {
		return false
	}
	if next.IsRunning() && (next.Generation != m.state.Generation || m.progress == nil) {
		m.progress = orchestration.NewProgressAggregator(len(next.Results))
	}
	if next.Generation != m.state.Generation {
		m.scroll = 0
	}
	m.state = next
	if m.selected >= len(next.Results) {
		m.selected = 0
	}
	return true
}

// isStale reports whether next was published before cur.
func isStale(cur, next orchestration.State) bool {
	if next.Generation != cur.Generation {
		return next.Generation < cur.Generation
	}
	finished := cur.Status == orchestration.StatusSucceeded || cur.Status == orchestration.StatusFailed
	return finished && next.IsRunning()
}

// Update handles orchestration messages and keys for the dashboard.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.applyState(msg.State)
		return m, nil

	case SubmissionDoneMsg:
		m.pending = false
		if m.applyState(msg.State) {
			m.stats.Record(msg.State)
		}
		return m, nil

	case ProgressMsg:
		if m.progress != nil && m.state.IsRunning() {
			m.progress.Update(orchestration.ProgressUpdate(msg))
		}
		return m, nil

	case SysStatsMsg:
		if !m.sampling(msg.seq) {
			return m, nil
		}
		m.stats.RecordSystem(msg.Stats)
		return m, statsTickCmd(msg.seq)

	case statsTickMsg:
		if !m.sampling(msg.seq) {
			return m, nil
		}
		return m, sampleSysStatsCmd(msg.seq)

	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.view {
	case viewSettings:
		m.settings, cmd = m.settings.Update(msg)
	case viewCompare:
		if m.focus == focusPrompt {
			m.prompt, cmd = m.prompt.Update(msg)
		}
	}
	return m, cmd
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch m.view {
	case viewSettings:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd
	case viewStats:
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.setFocus(m.focus - 1)
	}

	switch m.focus {
	case focusPrompt:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	case focusGenerate:
		if key.Matches(msg, m.keys.Activate) {
			return m.StartSubmission()
		}
	case focusCards:
		m.updateCards(msg)
	}
	return m, nil
}

// updateCards moves the card selection and scrolls the selected card.
func (m *DashboardModel) updateCards(msg tea.KeyMsg) {
	n := len(m.state.Results)
	if n == 0 {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Left):
		m.selected = (m.selected - 1 + n) % n
		m.scroll = 0
	case key.Matches(msg, m.keys.Right):
		m.selected = (m.selected + 1) % n
		m.scroll = 0
	case key.Matches(msg, m.keys.Up):
		m.scroll = max(m.scroll-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.scroll++
	case key.Matches(msg, m.keys.PageUp):
		m.scroll = max(m.scroll-m.bodyLines(), 0)
	case key.Matches(msg, m.keys.PageDown):
		m.scroll += m.bodyLines()
	}
}

// View renders the dashboard body.
func (m DashboardModel) View() string {
	switch m.view {
	case viewSettings:
		return centered(m.width, m.height, m.settings.View())
	case viewStats:
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.stats.View())
	}
	parts := []string{m.renderPrompt(), m.renderActions()}
	if banner := m.renderBanner(); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, m.renderCards())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m DashboardModel) renderPrompt() string {
	style := inputStyle
	if m.focus == focusPrompt {
		style = inputFocusStyle
	}
	return style.Width(max(m.width-2, 12)).Render(m.prompt.View())
}

// renderActions renders the Generate button and, while busy, the spinner
// and the number of finished targets.
func (m DashboardModel) renderActions() string {
	if !m.Busy() {
		return " " + renderButton("Generate", m.focus == focusGenerate)
	}
	line := " " + buttonBusyStyle.Render("Generating...") + " " + m.spinner.View()
	if m.progress != nil {
		p := m.progress.Current()
		line += labelStyle.Render(fmt.Sprintf(" %d/%d targets", p.Done, p.Total))
	}
	return line
}

func (m DashboardModel) renderBanner() string {
	if m.state.Status != orchestration.StatusFailed || m.state.Message == "" {
		return ""
	}
	return bannerErrorStyle.Width(max(m.width-2, 12)).Render(m.state.Message)
}

// cardColumns returns the number of cards per row for the current width.
func (m DashboardModel) cardColumns() int {
	n := len(m.state.Results)
	cols := min(maxCardCols, n, max(m.width/minCardWidth, 1))
	return max(cols, 1)
}

// bodyLines returns the number of content lines shown in each card.
func (m DashboardModel) bodyLines() int {
	n := len(m.state.Results)
	if n == 0 {
		return minBodyLines
	}
	rows := (n + m.cardColumns() - 1) / m.cardColumns()
	used := promptHeight + 2 + 1
	if m.renderBanner() != "" {
		used += 3
	}
	avail := m.height - used
	return max(avail/rows-cardChromeLen, minBodyLines)
}

func (m DashboardModel) renderCards() string {
	n := len(m.state.Results)
	if n == 0 {
		return mutedStyle.Render("No targets configured.")
	}
	cols := m.cardColumns()
	outer := m.width / cols
	lines := m.bodyLines()

	var rows []string
	for start := 0; start < n; start += cols {
		var row []string
		for i := start; i < min(start+cols, n); i++ {
			scroll := 0
			if i == m.selected {
				scroll = m.scroll
			}
			c := card{
				result:   m.state.Results[i],
				width:    outer,
				lines:    lines,
				scroll:   scroll,
				selected: i == m.selected,
				focused:  m.focus == focusCards && i == m.selected,
			}
			row = append(row, c.View())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
