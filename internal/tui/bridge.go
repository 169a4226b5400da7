package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/target"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// stateBridge implements orchestration.StateObserver by forwarding every
// published snapshot to the program.
type stateBridge struct {
	ref *programRef
}

// Verify interface compliance.
var _ orchestration.StateObserver = (*stateBridge)(nil)

// OnStateChange sends the snapshot as a StateMsg.
func (b *stateBridge) OnStateChange(s orchestration.State) {
	b.ref.Send(StateMsg{State: s})
}

// forwardProgress forwards every update of progressChan as a ProgressMsg
// until ctx ends or the channel is closed. The channel is never closed by
// the TUI: a submission may still be reporting when the program exits.
func forwardProgress(ctx context.Context, wg *sync.WaitGroup, ref *programRef, progressChan <-chan orchestration.ProgressUpdate) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			ref.Send(ProgressMsg(update))
		}
	}
}

// Submitter is the part of the orchestrator driven by the dashboard.
type Submitter interface {
	Submit(ctx context.Context, prompt string) (orchestration.State, error)
	Snapshot() orchestration.State
	Targets() []target.ModelTarget
}

// submitCmd runs one submission off the UI goroutine.
func submitCmd(ctx context.Context, orch Submitter, prompt string) tea.Cmd {
	return func() tea.Msg {
		state, err := orch.Submit(ctx, prompt)
		return SubmissionDoneMsg{State: state, Err: err}
	}
}

// Copy destinations. Replaced in tests.
var (
	writeClipboard = clipboard.WriteAll
	copyDir        = os.TempDir
)

// copyCmd copies the content of r to the system clipboard. When no clipboard
// is available the content is written to a file instead.
func copyCmd(r target.ModelResult) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(r.Content); err == nil {
			return CopiedMsg{Target: r.Target}
		}
		path := filepath.Join(copyDir(), copyFileName(r.Target))
		if err := os.WriteFile(path, []byte(r.Content+"\n"), 0o644); err != nil {
			return CopiedMsg{Target: r.Target, Err: fmt.Errorf("copying %s: %w", r.Target, err)}
		}
		return CopiedMsg{Target: r.Target, Path: path}
	}
}

// copyFileName derives a file name from a target name.
func copyFileName(t target.ModelTarget) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, string(t))
	return "accai-" + strings.Trim(slug, "-") + ".md"
}
