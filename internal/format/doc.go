// Package format holds the display helpers shared by the CLI and the TUI:
// durations, result metrics and width-aware truncation.
package format
