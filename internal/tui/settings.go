package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/accai/internal/account"
)

// Settings actions, in focus order after the three password inputs.
const (
	settingsUpdatePassword = iota
	settingsDeleteAccount
)

// changePasswordMsg is emitted when "Update Password" is activated.
type changePasswordMsg struct {
	Form account.PasswordForm
}

// deleteRequestMsg asks the root model to show the delete confirmation.
type deleteRequestMsg struct{}

// SettingsModel is the settings panel of the dashboard: the change-password
// form and the delete-account action.
type SettingsModel struct {
	form   focusForm
	keys   KeyMap
	err    string
	notice string
}

// NewSettingsModel creates the settings panel.
func NewSettingsModel(keys KeyMap) SettingsModel {
	m := SettingsModel{
		form: focusForm{
			fields: []formField{
				newPasswordField("Current Password"),
				newPasswordField("New Password"),
				newPasswordField("Confirm New Password"),
			},
			actions: 2,
		},
		keys: keys,
	}
	m.form.setFocus(0)
	return m
}

// Focus gives the focus back to the first input.
func (m *SettingsModel) Focus() tea.Cmd {
	return m.form.setFocus(0)
}

// Apply shows the outcome of a password change. On success the inputs are
// cleared; on failure they keep their values.
func (m *SettingsModel) Apply(form account.PasswordForm) {
	if form.Err != nil {
		m.err = form.Err.Error()
		m.notice = ""
		return
	}
	m.err = ""
	m.notice = form.Notice
	m.form.reset()
}

// Update handles input for the settings panel.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.form.updateField(msg)
	}
	cmd, activated := m.form.handleKey(m.keys, keyMsg)
	if !activated {
		return m, cmd
	}
	switch m.form.action() {
	case settingsUpdatePassword:
		form := account.PasswordForm{
			Current: m.form.value(0),
			New:     m.form.value(1),
			Confirm: m.form.value(2),
		}
		return m, func() tea.Msg { return changePasswordMsg{Form: form} }
	default:
		return m, func() tea.Msg { return deleteRequestMsg{} }
	}
}

// View renders the settings panel.
func (m SettingsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(sectionTitleStyle.Render("Change Password"))
	b.WriteString("\n")
	b.WriteString(m.form.renderFields())
	switch {
	case m.err != "":
		b.WriteString(errorTextStyle.Render(m.err))
		b.WriteString("\n")
	case m.notice != "":
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderButton("Update Password", m.form.action() == settingsUpdatePassword))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", authFormWidth-2)))
	b.WriteString("\n\n")
	if m.form.action() == settingsDeleteAccount {
		b.WriteString(dangerButtonStyle.Render("Delete Account"))
	} else {
		b.WriteString(buttonStyle.Render("Delete Account"))
	}
	return panelStyle.Width(authFormWidth + 2).Render(b.String())
}
