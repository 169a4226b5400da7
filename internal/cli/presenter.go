package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/format"
	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/render"
	"github.com/agbru/accai/internal/target"
	"github.com/agbru/accai/internal/ui"
)

// ContentPreviewWidth is the display width at which content lines are cut
// when verbose output is off.
const ContentPreviewWidth = 100

// CLIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler for terminal output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

type tableRow struct {
	target, time, tokens, confidence, status string
	failed                                   bool
}

// PresentComparisonTable displays one row per target with its metrics and
// status. Padding is computed on display width so colors and wide runes stay
// aligned.
func (CLIResultPresenter) PresentComparisonTable(state orchestration.State, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	failed := make(map[string]error, len(state.Faults))
	for _, f := range state.Faults {
		failed[f.Target] = f.Err
	}

	headers := tableRow{target: "Target", time: "Time", tokens: "Tokens", confidence: "Confidence", status: "Status"}
	rows := make([]tableRow, 0, len(state.Results))
	widths := []int{len(headers.target), len(headers.time), len(headers.tokens), len(headers.confidence)}
	for _, res := range state.Results {
		row := tableRow{target: string(res.Target), time: "-", tokens: "-", confidence: "-", status: "Pending"}
		if res.Ready {
			row.time = res.Metrics.Elapsed()
			row.tokens = res.Metrics.Tokens()
			row.confidence = res.Metrics.Confidence()
			row.status = "Ready"
		}
		if err, ok := failed[string(res.Target)]; ok {
			row.status = fmt.Sprintf("Failure (%v)", err)
			row.failed = true
		}
		for i, cell := range []string{row.target, row.time, row.tokens, row.confidence} {
			widths[i] = max(widths[i], displayWidth(cell))
		}
		rows = append(rows, row)
	}

	fmt.Fprintf(out, "%s%s%s   %s%s%s   %s%s%s   %s%s%s   %s%s%s\n",
		ui.ColorUnderline(), format.PadRight(headers.target, widths[0]), ui.ColorReset(),
		ui.ColorUnderline(), format.PadRight(headers.time, widths[1]), ui.ColorReset(),
		ui.ColorUnderline(), format.PadRight(headers.tokens, widths[2]), ui.ColorReset(),
		ui.ColorUnderline(), format.PadRight(headers.confidence, widths[3]), ui.ColorReset(),
		ui.ColorUnderline(), headers.status, ui.ColorReset())

	for _, row := range rows {
		statusColor := ui.ColorGreen()
		switch {
		case row.failed:
			statusColor = ui.ColorRed()
		case row.status == "Pending":
			statusColor = ui.ColorDim()
		}
		fmt.Fprintf(out, "%s%s%s   %s%s%s   %s   %s   %s%s%s\n",
			ui.ColorBlue(), format.PadRight(row.target, widths[0]), ui.ColorReset(),
			ui.ColorYellow(), format.PadRight(row.time, widths[1]), ui.ColorReset(),
			format.PadRight(row.tokens, widths[2]),
			format.PadRight(row.confidence, widths[3]),
			statusColor, row.status, ui.ColorReset())
	}
}

// PresentResults displays the content of every result card. Without verbose
// each content line is cut at ContentPreviewWidth.
func (CLIResultPresenter) PresentResults(state orchestration.State, verbose bool, out io.Writer) {
	fmt.Fprintf(out, "\n--- Results ---\n")
	for _, res := range state.Results {
		fmt.Fprintf(out, "\n%s▸ %s%s", ui.ColorBold(), res.Target, ui.ColorReset())
		if res.Ready {
			fmt.Fprintf(out, " %s(%s · %s tokens · %s)%s",
				ui.ColorDim(), res.Metrics.Elapsed(), res.Metrics.Tokens(), res.Metrics.Confidence(), ui.ColorReset())
		}
		fmt.Fprintln(out)
		writeCardBody(res, verbose, out)
	}
}

func writeCardBody(res target.ModelResult, verbose bool, out io.Writer) {
	if !res.Ready {
		fmt.Fprintf(out, "  %s%s%s\n", ui.ColorDim(), target.PlaceholderText, ui.ColorReset())
		return
	}
	text := render.ToText(res.Content)
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		if !verbose {
			line = format.Truncate(line, ContentPreviewWidth)
		}
		fmt.Fprintf(out, "  %s\n", line)
	}
}

// HandleError prints a failed submission and returns the exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleOrchestrationError(err, duration, out, ui.ColorProvider{})
}

// PrintExecutionConfig displays the targets and timings of the submission.
func PrintExecutionConfig(targets []target.ModelTarget, timeout, latency time.Duration, out io.Writer) {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Submitting to %s%d%s targets: %s%s%s.\n",
		ui.ColorCyan(), len(targets), ui.ColorReset(), ui.ColorBlue(), strings.Join(names, ", "), ui.ColorReset())
	fmt.Fprintf(out, "Timeout %s%s%s, simulated latency %s%s%s.\n",
		ui.ColorYellow(), timeout, ui.ColorReset(), ui.ColorYellow(), latency, ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Submission ---\n")
}
