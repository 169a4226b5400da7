package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/accai/internal/account"
)

const authFormWidth = 44

// signInMsg is emitted by the login screen once both fields are filled in.
type signInMsg struct {
	Email    string
	Password string
}

// registerMsg is emitted by the register screen on submit.
type registerMsg struct {
	Email    string
	Password string
	Confirm  string
}

// formField is a labelled text input.
type formField struct {
	label string
	input textinput.Model
}

func newTextField(label, placeholder string) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 254
	ti.Width = authFormWidth - 4
	return formField{label: label, input: ti}
}

func newPasswordField(label string) formField {
	f := newTextField(label, "••••••••")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

// focusForm is a column of inputs followed by action elements. Focus indices
// below len(fields) select an input; the remaining ones select actions.
type focusForm struct {
	fields  []formField
	actions int
	focus   int
}

func (f *focusForm) size() int { return len(f.fields) + f.actions }

// onField reports whether an input has the focus.
func (f focusForm) onField() bool { return f.focus < len(f.fields) }

// action returns the index of the focused action, or -1.
func (f focusForm) action() int {
	if f.onField() {
		return -1
	}
	return f.focus - len(f.fields)
}

func (f *focusForm) setFocus(i int) tea.Cmd {
	n := f.size()
	f.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range f.fields {
		if j == f.focus {
			cmd = f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	return cmd
}

func (f *focusForm) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *focusForm) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f *focusForm) value(i int) string { return f.fields[i].input.Value() }

func (f *focusForm) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
	f.setFocus(0)
}

// updateField forwards msg to the focused input.
func (f *focusForm) updateField(msg tea.Msg) tea.Cmd {
	if !f.onField() {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// handleKey moves the focus on tab, shift+tab and enter in an input. It
// reports whether enter was pressed on an action.
func (f *focusForm) handleKey(keys KeyMap, msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.NextFocus), key.Matches(msg, keys.Down) && !f.onField():
		return f.next(), false
	case key.Matches(msg, keys.PrevFocus), key.Matches(msg, keys.Up) && !f.onField():
		return f.prev(), false
	case key.Matches(msg, keys.Activate):
		if f.onField() {
			return f.next(), false
		}
		return nil, true
	}
	return f.updateField(msg), false
}

func (f focusForm) renderFields() string {
	var b strings.Builder
	for i, field := range f.fields {
		style := inputStyle
		if i == f.focus {
			style = inputFocusStyle
		}
		b.WriteString(labelStyle.Render(field.label))
		b.WriteString("\n")
		b.WriteString(style.Width(authFormWidth - 2).Render(field.input.View()))
		b.WriteString("\n")
	}
	return b.String()
}

func renderButton(label string, focused bool) string {
	if focused {
		return buttonFocusStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func renderLink(prefix, label string, focused bool) string {
	link := linkStyle.Render(label)
	if focused {
		link = linkStyle.Underline(true).Bold(true).Render(label)
	}
	return mutedStyle.UnsetItalic().Render(prefix) + link
}

// LoginModel is the /login screen.
type LoginModel struct {
	form focusForm
	keys KeyMap
	err  string
}

// NewLoginModel creates the login screen with the email field focused.
func NewLoginModel(keys KeyMap) LoginModel {
	m := LoginModel{
		form: focusForm{
			fields: []formField{
				newTextField("Email address", "you@example.com"),
				newPasswordField("Password"),
			},
			actions: 2,
		},
		keys: keys,
	}
	m.form.setFocus(0)
	return m
}

// Reset clears the fields and the error.
func (m *LoginModel) Reset() {
	m.form.reset()
	m.err = ""
}

// Update handles input for the login screen.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.form.updateField(msg)
	}
	cmd, activated := m.form.handleKey(m.keys, keyMsg)
	if !activated {
		return m, cmd
	}
	switch m.form.action() {
	case 0:
		email, password := m.form.value(0), m.form.value(1)
		if err := account.ValidateCredentials(email, password); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.err = ""
		return m, func() tea.Msg { return signInMsg{Email: email, Password: password} }
	default:
		return m, navigateCmd(account.RouteRegister)
	}
}

// View renders the login screen.
func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AccAI"))
	b.WriteString("\n")
	b.WriteString(sectionTitleStyle.Render("Sign in to your account"))
	b.WriteString("\n\n")
	b.WriteString(m.form.renderFields())
	if m.err != "" {
		b.WriteString(errorTextStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderButton("Sign in", m.form.action() == 0))
	b.WriteString("\n\n")
	b.WriteString(renderLink("Don't have an account? ", "Register here", m.form.action() == 1))
	return panelStyle.Width(authFormWidth + 2).Render(b.String())
}

// RegisterModel is the /register screen.
type RegisterModel struct {
	form focusForm
	keys KeyMap
	err  string
}

// NewRegisterModel creates the registration screen.
func NewRegisterModel(keys KeyMap) RegisterModel {
	m := RegisterModel{
		form: focusForm{
			fields: []formField{
				newTextField("Email address", "you@example.com"),
				newPasswordField("Password"),
				newPasswordField("Confirm Password"),
			},
			actions: 2,
		},
		keys: keys,
	}
	m.form.setFocus(0)
	return m
}

// Reset clears the fields and the error.
func (m *RegisterModel) Reset() {
	m.form.reset()
	m.err = ""
}

// SetError shows err under the form.
func (m *RegisterModel) SetError(err error) {
	if err == nil {
		m.err = ""
		return
	}
	m.err = err.Error()
}

// Update handles input for the registration screen.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.form.updateField(msg)
	}
	cmd, activated := m.form.handleKey(m.keys, keyMsg)
	if !activated {
		return m, cmd
	}
	switch m.form.action() {
	case 0:
		submit := registerMsg{Email: m.form.value(0), Password: m.form.value(1), Confirm: m.form.value(2)}
		return m, func() tea.Msg { return submit }
	default:
		return m, navigateCmd(account.RouteLogin)
	}
}

// View renders the registration screen.
func (m RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create Account"))
	b.WriteString("\n\n")
	b.WriteString(m.form.renderFields())
	if m.err != "" {
		b.WriteString(errorTextStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderButton("Create Account", m.form.action() == 0))
	b.WriteString("\n\n")
	b.WriteString(renderLink("Already have an account? ", "Sign in here", m.form.action() == 1))
	return panelStyle.Width(authFormWidth + 2).Render(b.String())
}

func navigateCmd(r account.Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: r} }
}

// centered places content in the middle of a w×h area.
func centered(w, h int, content string) string {
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, content)
}
