package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "indigo"

// Theme holds the ANSI escape codes used by the line-oriented output.
type Theme struct {
	Name string
	// Primary is the accent of headings and target names.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

var (
	// IndigoTheme matches the dashboard palette.
	IndigoTheme = Theme{
		Name:      "indigo",
		Primary:   "\033[38;5;63m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;78m",
		Warning:   "\033[38;5;214m",
		Error:     "\033[38;5;203m",
		Info:      "\033[38;5;111m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// DarkTheme uses bright colors for dark backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker colors for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all escape codes. It is selected by --no-color
	// and NO_COLOR, never by name.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = IndigoTheme
	themeMutex   sync.RWMutex
)

// TUITheme is the lipgloss palette of the dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
	// Focus highlights the focused card or input.
	Focus lipgloss.TerminalColor
}

var (
	IndigoTUITheme = TUITheme{
		Bg:      lipgloss.Color("#111827"),
		Text:    lipgloss.Color("#E5E7EB"),
		Border:  lipgloss.Color("#374151"),
		Accent:  lipgloss.Color("#6366F1"),
		Success: lipgloss.Color("#34D399"),
		Warning: lipgloss.Color("#FBBF24"),
		Error:   lipgloss.Color("#F87171"),
		Dim:     lipgloss.Color("#9CA3AF"),
		Info:    lipgloss.Color("#60A5FA"),
		Focus:   lipgloss.Color("#818CF8"),
	}

	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#0B0F14"),
		Text:    lipgloss.Color("#F3F4F6"),
		Border:  lipgloss.Color("#4B5563"),
		Accent:  lipgloss.Color("#0EA5E9"),
		Success: lipgloss.Color("#22C55E"),
		Warning: lipgloss.Color("#EAB308"),
		Error:   lipgloss.Color("#EF4444"),
		Dim:     lipgloss.Color("#9CA3AF"),
		Info:    lipgloss.Color("#A78BFA"),
		Focus:   lipgloss.Color("#38BDF8"),
	}

	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#FFFFFF"),
		Text:    lipgloss.Color("#111827"),
		Border:  lipgloss.Color("#D1D5DB"),
		Accent:  lipgloss.Color("#4338CA"),
		Success: lipgloss.Color("#047857"),
		Warning: lipgloss.Color("#B45309"),
		Error:   lipgloss.Color("#B91C1C"),
		Dim:     lipgloss.Color("#6B7280"),
		Info:    lipgloss.Color("#1D4ED8"),
		Focus:   lipgloss.Color("#6366F1"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
		Focus:   lipgloss.NoColor{},
	}
)

type themePair struct {
	ansi Theme
	tui  TUITheme
}

// namedThemes lists the selectable themes in display order.
var namedThemes = []themePair{
	{IndigoTheme, IndigoTUITheme},
	{DarkTheme, DarkTUITheme},
	{LightTheme, LightTUITheme},
}

// ThemeNames returns the names accepted by SetTheme.
func ThemeNames() []string {
	names := make([]string, len(namedThemes))
	for i, p := range namedThemes {
		names[i] = p.ansi.Name
	}
	return names
}

func lookupPair(name string) (themePair, bool) {
	for _, p := range namedThemes {
		if p.ansi.Name == name {
			return p, true
		}
	}
	return themePair{}, false
}

// GetCurrentTUITheme returns the dashboard palette of the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if p, ok := lookupPair(currentTheme.Name); ok {
		return p.tui
	}
	return NoColorTUITheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme. Tests use it to restore
// state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme called name. An unknown name selects the
// default theme and reports false.
func SetTheme(name string) bool {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	p, ok := lookupPair(name)
	if !ok {
		p, _ = lookupPair(DefaultThemeName)
	}
	currentTheme = p.ansi
	return ok
}

// InitTheme activates the theme called name unless colors are disabled by
// noColor or by the NO_COLOR environment variable (https://no-color.org/).
// An empty name selects the default theme.
func InitTheme(name string, noColor bool) {
	if _, set := lookupNoColor(); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if name == "" {
		name = DefaultThemeName
	}
	SetTheme(name)
}

func lookupNoColor() (string, bool) {
	return os.LookupEnv("NO_COLOR")
}
