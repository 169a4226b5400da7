package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/accai/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	sectionTitleStyle  lipgloss.Style
	labelStyle         lipgloss.Style
	mutedStyle         lipgloss.Style
	linkStyle          lipgloss.Style
	inputStyle         lipgloss.Style
	inputFocusStyle    lipgloss.Style
	buttonStyle        lipgloss.Style
	buttonFocusStyle   lipgloss.Style
	buttonBusyStyle    lipgloss.Style
	dangerButtonStyle  lipgloss.Style
	cardStyle          lipgloss.Style
	cardFocusStyle     lipgloss.Style
	cardTitleStyle     lipgloss.Style
	cardBodyStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	bannerErrorStyle   lipgloss.Style
	noticeStyle        lipgloss.Style
	errorTextStyle     lipgloss.Style
	spinnerStyle       lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	statusIdleStyle    lipgloss.Style
	sparklineStyle     lipgloss.Style
	chartStyle         lipgloss.Style
	overlayStyle       lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	sectionTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	mutedStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Italic(true)

	linkStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	inputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	inputFocusStyle = inputStyle.
		BorderForeground(t.Focus)

	buttonStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Border).
		Padding(0, 2)

	buttonFocusStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Bg).
		Background(t.Accent).
		Padding(0, 2)

	buttonBusyStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Background(t.Border).
		Padding(0, 2)

	dangerButtonStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Bg).
		Background(t.Error).
		Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	cardFocusStyle = cardStyle.
		BorderForeground(t.Focus)

	cardTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	cardBodyStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	bannerErrorStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Error).
		Foreground(t.Error).
		Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	errorTextStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	spinnerStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	statusIdleStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Bold(true)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	chartStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2).
		Align(lipgloss.Left)
}
