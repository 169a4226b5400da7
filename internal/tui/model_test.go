package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/accai/internal/account"
	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/sysmon"
	"github.com/agbru/accai/internal/target"
)

func newTestOrchestrator(t *testing.T, names ...string) *orchestration.Orchestrator {
	t.Helper()
	reg, err := target.NewRegistry(names)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	gen := target.NewSimulatedGenerator(target.NewRandSource(7))
	return orchestration.New(reg, orchestration.WithGenerator(gen))
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	orch := newTestOrchestrator(t, "Cohere", "Gemini Pro")
	m := NewModel(context.Background(), orch, account.NewService(nil), "dev")
	t.Cleanup(m.cancel)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return mm, cmd
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// runCmd executes cmd and every command of a batch, returning the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// feed runs cmd and delivers its messages back to the model.
func feed(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		m, _ = update(t, m, msg)
	}
	return m
}

func TestModel_StartsOnDashboard(t *testing.T) {
	m := newTestModel(t)
	if m.Route() != account.RouteDashboard {
		t.Fatalf("route = %s, want /", m.Route())
	}
	view := m.View()
	for _, want := range []string{"AccAI", "your prompt here...", "Generate", target.PlaceholderText, "Cohere", "Gemini Pro", "Idle"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	orch := newTestOrchestrator(t, "Cohere")
	m := NewModel(context.Background(), orch, nil, "dev")
	defer m.cancel()
	if m.View() != "Initializing..." {
		t.Errorf("unexpected view before the first WindowSizeMsg: %q", m.View())
	}
}

func TestModel_SubmitFlow(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "hello")

	m, cmd := press(t, m, tea.KeyCtrlS)
	if cmd == nil {
		t.Fatal("expected a submission command")
	}
	if !m.dashboard.Busy() {
		t.Fatal("dashboard should be busy after submitting")
	}
	if !strings.Contains(m.View(), "Generating...") {
		t.Error("Generate button should read Generating... while busy")
	}

	if _, again := press(t, m, tea.KeyCtrlS); again != nil {
		t.Error("a second submission should be blocked while busy")
	}

	m = feed(t, m, cmd)
	if m.dashboard.Busy() {
		t.Fatal("dashboard should be idle after the submission finished")
	}
	state := m.dashboard.State()
	if state.Status != orchestration.StatusSucceeded || state.Prompt != "hello" {
		t.Fatalf("unexpected state %+v", state)
	}
	if got, want := state.Results[0].Content, target.SimulatedContent("Cohere", "hello"); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}

	view := m.View()
	for _, want := range []string{"Generate", "Time", "Tokens", "Confidence", state.Results[1].Metrics.Confidence(), "Done"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, target.PlaceholderText) {
		t.Error("placeholders should be replaced after a successful submission")
	}
	if m.dashboard.stats.Total() != 1 {
		t.Errorf("stats should record the submission, total = %d", m.dashboard.stats.Total())
	}
}

func TestModel_GenerateButton(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyTab)
	if m.dashboard.focus != focusGenerate {
		t.Fatalf("focus = %d, want Generate", m.dashboard.focus)
	}
	m, cmd := press(t, m, tea.KeyEnter)
	if cmd == nil || !m.dashboard.Busy() {
		t.Fatal("enter on Generate should start a submission")
	}
	m = feed(t, m, cmd)
	if m.dashboard.State().Status != orchestration.StatusSucceeded {
		t.Errorf("status = %s", m.dashboard.State().Status)
	}
}

func TestModel_RunningStateAndProgress(t *testing.T) {
	m := newTestModel(t)
	running := m.dashboard.State()
	running.Status = orchestration.StatusRunning
	running.Generation = 1

	m, _ = update(t, m, StateMsg{State: running})
	m, _ = update(t, m, ProgressMsg{TargetIndex: 0, Target: "Cohere"})
	m, _ = update(t, m, ProgressMsg{TargetIndex: 0, Target: "Cohere"})

	view := m.View()
	if !strings.Contains(view, "1/2 targets") {
		t.Errorf("expected progress 1/2 in view:\n%s", view)
	}
	if !strings.Contains(view, "Generating") {
		t.Error("expected the running status")
	}
}

func TestModel_FailedShowsBanner(t *testing.T) {
	m := newTestModel(t)
	failed := m.dashboard.State()
	failed.Status = orchestration.StatusFailed
	failed.Message = "Cohere failed: upstream exploded"
	failed.Generation = 1

	m, _ = update(t, m, SubmissionDoneMsg{State: failed, Err: errors.New("boom")})

	view := m.View()
	if !strings.Contains(view, "upstream exploded") {
		t.Errorf("expected the error banner:\n%s", view)
	}
	if !strings.Contains(view, target.PlaceholderText) {
		t.Error("previous results should be kept after a failure")
	}
	if m.dashboard.Busy() {
		t.Error("dashboard should accept a new submission after a failure")
	}
}

func TestModel_StaleStatesIgnored(t *testing.T) {
	m := newTestModel(t)
	base := m.dashboard.State()

	done := base
	done.Status = orchestration.StatusSucceeded
	done.Generation = 2
	m, _ = update(t, m, SubmissionDoneMsg{State: done})

	old := base
	old.Status = orchestration.StatusRunning
	old.Generation = 1
	m, _ = update(t, m, StateMsg{State: old})
	if got := m.dashboard.State(); got.Generation != 2 || got.Status != orchestration.StatusSucceeded {
		t.Errorf("older generation applied: %+v", got)
	}

	lateRunning := done
	lateRunning.Status = orchestration.StatusRunning
	m, _ = update(t, m, StateMsg{State: lateRunning})
	if m.dashboard.State().Status != orchestration.StatusSucceeded {
		t.Error("a Running snapshot must not override the finished state of the same generation")
	}
}

func TestModel_CardNavigation(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyTab)
	if m.dashboard.focus != focusCards {
		t.Fatalf("focus = %d, want cards", m.dashboard.focus)
	}
	m, _ = press(t, m, tea.KeyRight)
	if m.dashboard.selected != 1 {
		t.Errorf("selected = %d, want 1", m.dashboard.selected)
	}
	m, _ = press(t, m, tea.KeyRight)
	if m.dashboard.selected != 0 {
		t.Errorf("selection should wrap, got %d", m.dashboard.selected)
	}
	m, _ = press(t, m, tea.KeyLeft)
	if m.dashboard.selected != 1 {
		t.Errorf("selection should wrap backwards, got %d", m.dashboard.selected)
	}
	m, _ = press(t, m, tea.KeyDown)
	if m.dashboard.scroll != 1 {
		t.Errorf("scroll = %d, want 1", m.dashboard.scroll)
	}
	m, _ = press(t, m, tea.KeyShiftTab)
	if m.dashboard.focus != focusGenerate {
		t.Errorf("shift+tab should move back to Generate, focus = %d", m.dashboard.focus)
	}
}

func TestModel_Copy(t *testing.T) {
	copied, _ := stubClipboard(t, nil)
	m := newTestModel(t)

	m, cmd := press(t, m, tea.KeyCtrlY)
	m = feed(t, m, cmd)
	if !strings.Contains(m.View(), "Copy failed: nothing to copy yet") {
		t.Error("copying a placeholder should report that nothing can be copied")
	}

	m = typeText(t, m, "q")
	m, cmd = press(t, m, tea.KeyCtrlS)
	m = feed(t, m, cmd)

	m, cmd = press(t, m, tea.KeyCtrlY)
	m = feed(t, m, cmd)
	if *copied != target.SimulatedContent("Cohere", "q") {
		t.Errorf("clipboard = %q", *copied)
	}
	if !strings.Contains(m.View(), "Copied Cohere to clipboard") {
		t.Error("expected a copy notice in the footer")
	}
}

func TestModel_LogoutAndSignIn(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, tea.KeyCtrlL)
	if m.Route() != account.RouteLogin {
		t.Fatalf("route = %s, want /login", m.Route())
	}
	if !strings.Contains(m.View(), "Sign in to your account") {
		t.Error("expected the login screen")
	}

	// Submitting the empty form shows a required-field error.
	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyTab)
	m, cmd := press(t, m, tea.KeyEnter)
	if cmd != nil {
		t.Error("an empty form must not sign in")
	}
	if !strings.Contains(m.View(), "Email address is required") {
		t.Error("expected the required email message")
	}

	m, _ = press(t, m, tea.KeyTab) // link
	m, _ = press(t, m, tea.KeyTab) // email
	m = typeText(t, m, "alice@example.com")
	m, _ = press(t, m, tea.KeyEnter) // next field
	m = typeText(t, m, "hunter2")
	m, _ = press(t, m, tea.KeyEnter) // Sign in button
	m, cmd = press(t, m, tea.KeyEnter)
	m = feed(t, m, cmd)

	if m.Route() != account.RouteDashboard {
		t.Errorf("route = %s, want / after signing in", m.Route())
	}
}

func TestModel_Register(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyCtrlL)

	// Focus the "Register here" link and follow it.
	m, _ = press(t, m, tea.KeyShiftTab)
	m, cmd := press(t, m, tea.KeyEnter)
	m = feed(t, m, cmd)
	if m.Route() != account.RouteRegister {
		t.Fatalf("route = %s, want /register", m.Route())
	}
	if !strings.Contains(m.View(), "Create Account") {
		t.Error("expected the register screen")
	}

	m = typeText(t, m, "bob@example.com")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "pw1")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "pw2")
	m, _ = press(t, m, tea.KeyTab)
	m, cmd = press(t, m, tea.KeyEnter)
	m = feed(t, m, cmd)

	if m.Route() != account.RouteRegister {
		t.Fatalf("mismatched passwords should stay on /register, got %s", m.Route())
	}
	if !strings.Contains(m.View(), account.MsgPasswordsMismatch) {
		t.Error("expected the mismatch message")
	}

	// Fix the confirmation and submit again.
	m, _ = press(t, m, tea.KeyShiftTab)
	for range 3 {
		m, _ = press(t, m, tea.KeyBackspace)
	}
	m = typeText(t, m, "pw1")
	m, _ = press(t, m, tea.KeyTab)
	m, cmd = press(t, m, tea.KeyEnter)
	m = feed(t, m, cmd)

	if m.Route() != account.RouteLogin {
		t.Errorf("successful registration should navigate to /login, got %s", m.Route())
	}
}

func TestModel_ChangePassword(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyCtrlO)
	if m.dashboard.view != viewSettings {
		t.Fatal("ctrl+o should open the settings")
	}
	view := m.View()
	for _, want := range []string{"Change Password", "Current Password", "Confirm New Password", "Update Password", "Delete Account"} {
		if !strings.Contains(view, want) {
			t.Errorf("settings view missing %q", want)
		}
	}

	m = typeText(t, m, "old")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "new1")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "new2")
	m, _ = press(t, m, tea.KeyTab)
	m, cmd := press(t, m, tea.KeyEnter)
	m = feed(t, m, cmd)

	if !strings.Contains(m.View(), account.MsgNewPasswordsMismatch) {
		t.Error("expected the new-password mismatch message")
	}
	if m.dashboard.settings.form.value(1) != "new1" {
		t.Error("fields must keep their values after a rejected change")
	}

	m, _ = press(t, m, tea.KeyShiftTab)
	for range 4 {
		m, _ = press(t, m, tea.KeyBackspace)
	}
	m = typeText(t, m, "new1")
	m, _ = press(t, m, tea.KeyTab)
	m, cmd = press(t, m, tea.KeyEnter)
	m = feed(t, m, cmd)

	if !strings.Contains(m.View(), account.PasswordChangedNotice) {
		t.Error("expected the success notice")
	}
	for i := range 3 {
		if v := m.dashboard.settings.form.value(i); v != "" {
			t.Errorf("field %d should be cleared, got %q", i, v)
		}
	}

	m, _ = press(t, m, tea.KeyEsc)
	if m.dashboard.view != viewCompare {
		t.Error("esc should close the settings")
	}
}

func TestModel_DeleteAccount(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyCtrlO)

	openConfirm := func(m Model) Model {
		t.Helper()
		for m.dashboard.settings.form.action() != settingsDeleteAccount {
			m, _ = press(t, m, tea.KeyTab)
		}
		m, cmd := press(t, m, tea.KeyEnter)
		m = feed(t, m, cmd)
		if m.overlay != overlayConfirmDelete {
			t.Fatal("expected the delete confirmation")
		}
		return m
	}

	m = openConfirm(m)
	if !strings.Contains(m.View(), "Delete Account") {
		t.Error("expected the confirmation overlay")
	}
	m, _ = press(t, m, tea.KeyEsc)
	if m.overlay != overlayNone || m.Route() != account.RouteDashboard {
		t.Fatalf("cancel should stay on the dashboard, route %s", m.Route())
	}

	m = openConfirm(m)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = feed(t, m, cmd)
	if m.Route() != account.RouteLogin {
		t.Errorf("confirmed deletion should navigate to /login, got %s", m.Route())
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyF1)
	if !strings.Contains(m.View(), "AccAI - HELP") {
		t.Fatal("expected the help overlay")
	}
	m = typeText(t, m, "x")
	if m.dashboard.prompt.Value() != "" {
		t.Error("keys must not reach the prompt while the help is open")
	}
	m, _ = press(t, m, tea.KeyEsc)
	if m.overlay != overlayNone {
		t.Error("esc should close the help")
	}
}

func TestModel_Stats(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyCtrlT)
	if !strings.Contains(m.View(), "Statistics") {
		t.Fatal("expected the statistics panel")
	}
	m, _ = press(t, m, tea.KeyCtrlT)
	if m.dashboard.view != viewCompare {
		t.Error("ctrl+t should toggle the statistics off")
	}
}

func TestModel_StatsSampling(t *testing.T) {
	orig := sampleSystem
	t.Cleanup(func() { sampleSystem = orig })
	sampleSystem = func() sysmon.Stats {
		return sysmon.Stats{CPUPercent: 33, MemPercent: 66, Goroutines: 4, HeapAlloc: 1 << 20}
	}

	m := newTestModel(t)
	m, cmd := press(t, m, tea.KeyCtrlT)
	if cmd == nil {
		t.Fatal("opening the statistics should sample the system")
	}
	msgs := runCmd(cmd)
	m = feed(t, m, cmd)
	if !strings.Contains(m.View(), "33.0%") {
		t.Errorf("expected the CPU sample in the view:\n%s", m.View())
	}

	// A sample of a previous opening is dropped.
	m, _ = press(t, m, tea.KeyCtrlT)
	m, _ = press(t, m, tea.KeyCtrlT)
	before := m.dashboard.stats.cpu.Len()
	for _, msg := range msgs {
		var next tea.Cmd
		m, next = update(t, m, msg)
		if next != nil {
			t.Error("a stale sample must not schedule another tick")
		}
	}
	if m.dashboard.stats.cpu.Len() != before {
		t.Error("a stale sample must not be recorded")
	}

	_, next := update(t, m, statsTickMsg{seq: m.dashboard.statsSeq})
	if next == nil {
		t.Error("a tick of the open panel should sample again")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := press(t, m, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if m.ctx.Err() == nil {
		t.Error("quitting should cancel the session context")
	}
	m, _ = update(t, m, ContextCancelledMsg{Err: context.Canceled})
	if m.exitCode != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want success after a user quit", m.exitCode)
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, ContextCancelledMsg{Err: context.Canceled})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("a cancelled context should quit")
	}
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", m.exitCode, apperrors.ExitErrorCanceled)
	}
}

func TestWatchContextCmd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg := watchContextCmd(ctx)()
	if got, ok := msg.(ContextCancelledMsg); !ok || !errors.Is(got.Err, context.Canceled) {
		t.Errorf("unexpected message %#v", msg)
	}
}
