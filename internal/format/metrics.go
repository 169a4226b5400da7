package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var defaultPrinter = message.NewPrinter(language.English)

// RoundTenths rounds v to one decimal place.
func RoundTenths(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatElapsed renders a simulated elapsed time in seconds with one decimal
// and an "s" suffix, e.g. "1.3s".
func FormatElapsed(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}

// FormatTokens renders a token count with thousands separators.
func FormatTokens(n int) string {
	return defaultPrinter.Sprintf("%d", n)
}

// FormatConfidence renders a confidence score as a percentage with one decimal.
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.1f%%", score)
}

// Truncate shortens s so that its terminal display width does not exceed
// width, ending with an ellipsis when something was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces so its terminal display width reaches width.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
