package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key hints of the active screen and a transient
// notice on the right.
type FooterModel struct {
	bindings []key.Binding
	notice   string
	isError  bool
	width    int
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetBindings replaces the displayed key hints.
func (f *FooterModel) SetBindings(bindings ...key.Binding) {
	f.bindings = bindings
}

// SetNotice shows msg on the right of the footer until the next notice.
func (f *FooterModel) SetNotice(msg string, isError bool) {
	f.notice = msg
	f.isError = isError
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := strings.Join(hints, "  ")

	right := ""
	if f.notice != "" {
		if f.isError {
			right = errorTextStyle.Render(f.notice)
		} else {
			right = noticeStyle.Render(f.notice)
		}
	}

	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return " " + left + spaces(gap) + right
}
