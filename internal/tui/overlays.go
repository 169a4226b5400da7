package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/accai/internal/account"
)

// overlay identifies the modal shown on top of the current screen.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayConfirmDelete
)

// renderHelpOverlay renders the key reference centered on screen.
func (m Model) renderHelpOverlay() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("AccAI - HELP"))
	b.WriteString("\n\n")

	b.WriteString(sectionTitleStyle.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("Tab / Shift+Tab", "Move between fields and sections"))
	b.WriteString(formatHelpLine("Enter", "Activate the focused button or link"))
	b.WriteString(formatHelpLine("Left/Right / h/l", "Select a result card"))
	b.WriteString(formatHelpLine("Up/Down / k/j", "Scroll the selected card"))
	b.WriteString(formatHelpLine("Esc", "Close panel or overlay"))
	b.WriteString("\n")

	b.WriteString(sectionTitleStyle.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("Ctrl+S", "Generate responses for the prompt"))
	b.WriteString(formatHelpLine("Ctrl+Y", "Copy the selected result"))
	b.WriteString(formatHelpLine("Ctrl+O", "Toggle settings"))
	b.WriteString(formatHelpLine("Ctrl+T", "Toggle statistics"))
	b.WriteString(formatHelpLine("Ctrl+L", "Log out"))
	b.WriteString(formatHelpLine("F1", "Toggle this help"))
	b.WriteString(formatHelpLine("Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(mutedStyle.Render(strings.Repeat("-", 50)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press F1 or Esc to close this help"))

	width := min(70, max(m.width-4, 20))
	box := overlayStyle.Width(width).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderDeleteOverlay renders the account deletion confirmation.
func (m Model) renderDeleteOverlay() string {
	width := min(60, max(m.width-4, 20))
	content := sectionTitleStyle.Render("Delete Account") + "\n\n" +
		lipgloss.NewStyle().Width(width-4).Render(account.DeleteConfirmText) + "\n\n" +
		dangerButtonStyle.Render("y Delete") + "  " + buttonStyle.Render("esc Cancel")
	box := overlayStyle.BorderForeground(errorTextStyle.GetForeground()).Width(width).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description.
func formatHelpLine(keyName, desc string) string {
	return "  " + footerKeyStyle.Render(padHelpKey(keyName)) + footerDescStyle.Render(desc) + "\n"
}

func padHelpKey(k string) string {
	const width = 20
	if len(k) >= width {
		return k + " "
	}
	return k + strings.Repeat(" ", width-len(k))
}
