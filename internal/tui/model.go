package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/accai/internal/account"
	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/orchestration"
)

// Layout constants for the TUI.
const (
	headerHeight  = 1
	footerHeight  = 1
	minBodyHeight = 8
)

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx      context.Context
	cancel   context.CancelFunc
	quitting bool
	exitCode int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height between header and footer.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// Orchestrator is the orchestrator as driven by the TUI.
type Orchestrator interface {
	Submitter
	Observe(obs orchestration.StateObserver)
}

// Model is the root bubbletea model. It routes between the login, register
// and dashboard screens and owns the overlays.
type Model struct {
	header    HeaderModel
	footer    FooterModel
	login     LoginModel
	register  RegisterModel
	dashboard DashboardModel

	keymap  KeyMap
	route   account.Route
	overlay overlay

	ExecutionState
	LayoutManager

	accounts *account.Service
	ref      *programRef
}

// NewModel creates the root model on the dashboard screen.
func NewModel(parentCtx context.Context, orch Submitter, accounts *account.Service, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	keys := DefaultKeyMap()
	if accounts == nil {
		accounts = account.NewService(nil)
	}

	submit := func(prompt string) tea.Cmd { return submitCmd(ctx, orch, prompt) }
	initial := orch.Snapshot()

	m := Model{
		header:    NewHeaderModel(version),
		footer:    NewFooterModel(),
		login:     NewLoginModel(keys),
		register:  NewRegisterModel(keys),
		dashboard: NewDashboardModel(keys, initial, orch.Targets(), submit),
		keymap:    keys,
		route:     account.RouteDashboard,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		accounts: accounts,
		ref:      &programRef{},
	}
	m.header.SetState(initial)
	m.updateFooter()
	return m
}

// Route returns the active screen.
func (m Model) Route() account.Route { return m.route }

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashboard.prompt.Focus(),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case NavigateMsg:
		return m.navigate(msg.Route)

	case signInMsg:
		return m.navigate(m.accounts.Login(msg.Email, msg.Password))

	case registerMsg:
		route, err := m.accounts.Register(msg.Email, msg.Password, msg.Confirm)
		if err != nil {
			m.register.SetError(err)
			return m, nil
		}
		return m.navigate(route)

	case changePasswordMsg:
		m.dashboard.settings.Apply(m.accounts.ChangePassword(msg.Form))
		return m, nil

	case deleteRequestMsg:
		m.overlay = overlayConfirmDelete
		return m, nil

	case CopiedMsg:
		switch {
		case msg.Err != nil:
			m.footer.SetNotice("Copy failed: "+msg.Err.Error(), true)
		case msg.Path != "":
			m.footer.SetNotice(fmt.Sprintf("Saved %s to %s", msg.Target, msg.Path), false)
		default:
			m.footer.SetNotice(fmt.Sprintf("Copied %s to clipboard", msg.Target), false)
		}
		return m, nil

	case ContextCancelledMsg:
		if !m.quitting {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.quitting = true
		return m, tea.Quit

	case StateMsg, SubmissionDoneMsg, ProgressMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		m.header.SetState(m.dashboard.State())
		return m, cmd
	}

	return m.updateScreen(msg)
}

// updateScreen forwards msg to the active screen.
func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case account.RouteLogin:
		m.login, cmd = m.login.Update(msg)
	case account.RouteRegister:
		m.register, cmd = m.register.Update(msg)
	default:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayHelp:
		if key.Matches(msg, m.keymap.Help) || key.Matches(msg, m.keymap.Close) {
			m.overlay = overlayNone
		}
		return m, nil
	case overlayConfirmDelete:
		switch {
		case key.Matches(msg, m.keymap.Confirm), key.Matches(msg, m.keymap.Activate):
			m.overlay = overlayNone
			return m.navigate(m.accounts.DeleteAccount(true))
		case key.Matches(msg, m.keymap.Close), msg.String() == "n":
			m.overlay = overlayNone
			m.accounts.DeleteAccount(false)
		}
		return m, nil
	}

	if key.Matches(msg, m.keymap.Help) {
		m.overlay = overlayHelp
		return m, nil
	}

	if m.route != account.RouteDashboard {
		return m.updateScreen(msg)
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keymap.Submit):
		m.dashboard, cmd = m.dashboard.StartSubmission()
		m.header.SetState(m.dashboard.State())
	case key.Matches(msg, m.keymap.Copy):
		cmd = m.dashboard.CopySelected()
	case key.Matches(msg, m.keymap.Settings):
		cmd = m.dashboard.ToggleSettings()
		m.updateFooter()
	case key.Matches(msg, m.keymap.Stats):
		cmd = m.dashboard.ToggleStats()
		m.updateFooter()
	case key.Matches(msg, m.keymap.Logout):
		return m.navigate(m.accounts.Logout())
	case key.Matches(msg, m.keymap.Close) && m.dashboard.view != viewCompare:
		if m.dashboard.view == viewSettings {
			cmd = m.dashboard.ToggleSettings()
		} else {
			cmd = m.dashboard.ToggleStats()
		}
		m.updateFooter()
	default:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

// navigate switches screens. Forms of the screen being entered start empty.
func (m Model) navigate(route account.Route) (tea.Model, tea.Cmd) {
	if route == m.route {
		return m, nil
	}
	m.route = route
	m.footer.SetNotice("", false)

	var cmd tea.Cmd
	switch route {
	case account.RouteLogin:
		m.login.Reset()
	case account.RouteRegister:
		m.register.Reset()
	default:
		cmd = m.dashboard.Reset()
	}
	m.updateFooter()
	return m, cmd
}

// updateFooter shows the key hints of the active screen.
func (m *Model) updateFooter() {
	k := m.keymap
	switch {
	case m.route != account.RouteDashboard:
		m.footer.SetBindings(k.NextFocus, k.Activate, k.Help, k.Quit)
	case m.dashboard.view == viewCompare:
		m.footer.SetBindings(k.Submit, k.NextFocus, k.Copy, k.Settings, k.Stats, k.Logout, k.Help, k.Quit)
	default:
		m.footer.SetBindings(k.Close, k.NextFocus, k.Activate, k.Logout, k.Help, k.Quit)
	}
}

func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.dashboard.SetSize(m.width, m.bodyHeight())
}

// View renders the active screen between the header and the footer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelpOverlay()
	case overlayConfirmDelete:
		return m.renderDeleteOverlay()
	}

	var body string
	switch m.route {
	case account.RouteLogin:
		body = centered(m.width, m.bodyHeight(), m.login.View())
	case account.RouteRegister:
		body = centered(m.width, m.bodyHeight(), m.register.View())
	default:
		body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(m.dashboard.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// Run is the public entry point for the TUI mode. progress may be nil; it is
// the channel given to the orchestrator with WithProgress. Run returns the
// exit code.
func Run(ctx context.Context, orch Orchestrator, progress <-chan orchestration.ProgressUpdate, accounts *account.Service, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, orch, accounts, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)
	defer model.ref.SetProgram(nil)

	orch.Observe(&stateBridge{ref: model.ref})

	var wg sync.WaitGroup
	if progress != nil {
		wg.Add(1)
		go forwardProgress(model.ctx, &wg, model.ref, progress)
	}

	finalModel, err := p.Run()
	model.cancel()
	wg.Wait()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
