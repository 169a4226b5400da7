// Package cli provides the command-line presentation of submissions: the
// spinner, the comparison table, report output, shell completion and the
// REPL.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/target"
	"github.com/agbru/accai/internal/ui"
)

// Submitter is the part of the orchestrator used by the REPL.
type Submitter interface {
	Submit(ctx context.Context, prompt string) (orchestration.State, error)
	Snapshot() orchestration.State
	Targets() []target.ModelTarget
}

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Verbose prints full contents instead of previews.
	Verbose bool
	// ShowProgress displays a spinner while a submission runs.
	ShowProgress bool
}

// REPL reads prompts line by line and submits each one.
type REPL struct {
	config    REPLConfig
	orch      Submitter
	presenter CLIResultPresenter
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a REPL reading from stdin and writing to stdout. Use
// SetInput and SetOutput to redirect it.
//
// Parameters:
//   - orch: The orchestrator receiving one submission per input line.
//   - config: Display options (verbose tables, progress spinner).
//
// Returns:
//   - *REPL: A REPL ready to Start.
func NewREPL(orch Submitter, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		orch:   orch,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until EOF, an exit command or the end of ctx.
// Plain lines are submitted as prompts; lines starting with ':' are commands.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"accai> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processLine(ctx, line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sAccAI - Interactive Comparison%s         %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sType a prompt and press Enter to compare targets.%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:submit [text]%s  - Submit text verbatim (an empty prompt is allowed)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:last%s           - Show the last results again\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:targets%s        - List configured targets\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:status%s         - Show the orchestration status\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:verbose%s        - Toggle full contents\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:help%s           - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s:exit%s / %s:quit%s   - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processLine handles one input line. Returns false if the REPL should exit.
func (r *REPL) processLine(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, ":") {
		r.submit(ctx, line)
		return true
	}

	cmd, rest, _ := strings.Cut(line[1:], " ")
	switch strings.ToLower(cmd) {
	case "submit", "s":
		r.submit(ctx, rest)
	case "last", "l":
		r.showState(r.orch.Snapshot())
	case "targets", "t":
		r.cmdTargets()
	case "status", "st":
		r.cmdStatus()
	case "verbose", "v":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Full contents: %s%t%s\n", ui.ColorGreen(), r.config.Verbose, ui.ColorReset())
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %s:help%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) submit(ctx context.Context, prompt string) {
	var s Spinner
	if r.config.ShowProgress {
		s = newSpinner(r.out)
		s.UpdateSuffix(" Generating...")
		s.Start()
	}
	state, err := r.orch.Submit(ctx, prompt)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		r.presenter.HandleError(err, state.Duration(), r.out)
		return
	}
	r.showState(state)
}

func (r *REPL) showState(state orchestration.State) {
	r.presenter.PresentComparisonTable(state, r.out)
	r.presenter.PresentResults(state, r.config.Verbose, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdTargets() {
	fmt.Fprintf(r.out, "\n%sConfigured targets:%s\n", ui.ColorBold(), ui.ColorReset())
	for i, t := range r.orch.Targets() {
		fmt.Fprintf(r.out, "  %d. %s%s%s\n", i+1, ui.ColorYellow(), t, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	state := r.orch.Snapshot()
	fmt.Fprintf(r.out, "\n%sCurrent state:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Status:       %s%s%s\n", ui.ColorCyan(), state.Status, ui.ColorReset())
	fmt.Fprintf(r.out, "  Submissions:  %s%d%s\n", ui.ColorCyan(), state.Generation, ui.ColorReset())
	if state.Generation > 0 {
		fmt.Fprintf(r.out, "  Last prompt:  %s%q%s\n", ui.ColorCyan(), state.Prompt, ui.ColorReset())
	}
	if state.Message != "" {
		fmt.Fprintf(r.out, "  Message:      %s%s%s\n", ui.ColorRed(), state.Message, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}
