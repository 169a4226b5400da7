package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/accai/internal/format"
	"github.com/agbru/accai/internal/render"
	"github.com/agbru/accai/internal/target"
)

// card renders one target result: title, content and the metrics row.
type card struct {
	result   target.ModelResult
	width    int // outer width, borders included
	lines    int // visible content lines
	scroll   int
	selected bool
	focused  bool
}

func (c card) innerWidth() int {
	// border (2) + horizontal padding (2)
	return max(c.width-4, 8)
}

// View renders the card.
func (c card) View() string {
	inner := c.innerWidth()

	title := cardTitleStyle.Render("◆ " + format.Truncate(string(c.result.Target), inner-10))
	if c.selected {
		hint := labelStyle.Render("ctrl+y copy")
		gap := inner - lipgloss.Width(title) - lipgloss.Width(hint)
		if gap >= 1 {
			title += spaces(gap) + hint
		}
	}

	body := strings.Join(c.bodyLines(inner), "\n")
	parts := []string{title, body, "", c.metricsRow(inner)}

	style := cardStyle
	if c.focused {
		style = cardFocusStyle
	}
	return style.Width(c.width - 2).Render(strings.Join(parts, "\n"))
}

// bodyLines wraps the rendered content to width and returns the visible
// window, padded to exactly c.lines lines.
func (c card) bodyLines(width int) []string {
	text := render.ToText(c.result.DisplayContent())
	style := cardBodyStyle
	if !c.result.Ready {
		style = mutedStyle
	}
	wrapped := strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")

	start := min(max(c.scroll, 0), max(len(wrapped)-c.lines, 0))
	end := min(start+c.lines, len(wrapped))

	out := make([]string, 0, c.lines)
	for _, l := range wrapped[start:end] {
		out = append(out, style.Render(strings.TrimRight(l, " ")))
	}
	for len(out) < c.lines {
		out = append(out, "")
	}
	return out
}

// metricsRow renders Time, Tokens and Confidence as three labelled columns.
func (c card) metricsRow(width int) string {
	values := [3]string{"-", "-", "-"}
	if c.result.Ready {
		m := c.result.Metrics
		values = [3]string{m.Elapsed(), m.Tokens(), m.Confidence()}
	}
	labels := [3]string{"Time", "Tokens", "Confidence"}

	col := max(width/3, 1)
	blocks := make([]string, len(labels))
	for i := range labels {
		blocks[i] = lipgloss.NewStyle().Width(col).Render(
			metricLabelStyle.Render(format.Truncate(labels[i], col-1)) + "\n" +
				metricValueStyle.Render(format.Truncate(values[i], col-1)),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
