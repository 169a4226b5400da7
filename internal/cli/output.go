// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayQuietResult], [DisplayProgress], [DisplayResultWithConfig].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatReport].
//
//   - Write* functions write data to a file or encode it to a writer.
//     Examples: [WriteReportToFile], [WriteJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// Quiet prints only the result contents.
	Quiet bool
	// Verbose prints full contents instead of previews.
	Verbose bool
	// JSON prints the final state as JSON instead of the table.
	JSON bool
}

// FormatReport renders state as a Markdown report.
func FormatReport(state orchestration.State, generated time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# AccAI Comparison Report\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", generated.Format(time.RFC3339))
	if state.SubmissionID != "" {
		fmt.Fprintf(&b, "- Submission: %s\n", state.SubmissionID)
	}
	fmt.Fprintf(&b, "- Status: %s\n", state.Status)
	fmt.Fprintf(&b, "- Prompt: %q\n", state.Prompt)

	for _, res := range state.Results {
		fmt.Fprintf(&b, "\n## %s\n\n", res.Target)
		if !res.Ready {
			fmt.Fprintf(&b, "_%s_\n", res.DisplayContent())
			continue
		}
		fmt.Fprintf(&b, "| Time | Tokens | Confidence |\n|---|---|---|\n| %s | %s | %s |\n\n",
			res.Metrics.Elapsed(), res.Metrics.Tokens(), res.Metrics.Confidence())
		fmt.Fprintf(&b, "%s\n", res.Content)
	}
	return b.String()
}

// WriteReportToFile writes the Markdown report of state to path, creating
// missing directories.
func WriteReportToFile(state orchestration.State, path string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(FormatReport(state, time.Now())), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// WriteJSON encodes state as indented JSON.
func WriteJSON(out io.Writer, state orchestration.State) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return nil
}

// FormatQuietResult returns the content of every ready result, one per line.
func FormatQuietResult(state orchestration.State) string {
	lines := make([]string, 0, len(state.Results))
	for _, res := range state.Results {
		if res.Ready {
			lines = append(lines, res.Content)
		}
	}
	return strings.Join(lines, "\n")
}

// DisplayQuietResult prints FormatQuietResult.
func DisplayQuietResult(out io.Writer, state orchestration.State) {
	if s := FormatQuietResult(state); s != "" {
		fmt.Fprintln(out, s)
	}
}

// DisplayResultWithConfig displays a finished state according to config and
// writes the report file when requested.
func DisplayResultWithConfig(out io.Writer, state orchestration.State, presenter orchestration.ResultPresenter, config OutputConfig) error {
	switch {
	case config.JSON:
		if err := WriteJSON(out, state); err != nil {
			return err
		}
	case config.Quiet:
		DisplayQuietResult(out, state)
	default:
		presenter.PresentComparisonTable(state, out)
		presenter.PresentResults(state, config.Verbose, out)
	}

	if config.OutputFile != "" {
		if err := WriteReportToFile(state, config.OutputFile); err != nil {
			return err
		}
		if !config.Quiet && !config.JSON {
			fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
