package cli

import "github.com/mattn/go-runewidth"

// displayWidth returns the terminal width of s.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}
