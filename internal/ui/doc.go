// Package ui holds the named color themes shared by the CLI and the
// dashboard. Each theme pairs ANSI escape codes for plain terminal output
// with the lipgloss palette used by the TUI. The active theme is selected
// once at startup with InitTheme and honors NO_COLOR.
package ui
