package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/target"
)

func sampleState() orchestration.State {
	return orchestration.State{
		Prompt: "hello",
		Status: orchestration.StatusSucceeded,
		Results: []target.ModelResult{
			{
				Target:  "Cohere",
				Content: target.SimulatedContent("Cohere", "hello"),
				Metrics: target.Metrics{ElapsedSeconds: 1.3, TokenCount: 1234, ConfidenceScore: 87.25},
				Ready:   true,
			},
			{Target: "Gemini Pro"},
		},
	}
}

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(sampleState(), &buf)
	out := buf.String()

	for _, want := range []string{"Comparison Summary", "Target", "Confidence", "Cohere", "1.3s", "1,234", "87.2%", "Ready", "Pending"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	header, row := lines[1], lines[2]
	if strings.Index(header, "Time") != strings.Index(row, "1.3s") {
		t.Errorf("columns are not aligned:\n%s\n%s", header, row)
	}
}

func TestPresentComparisonTable_Faults(t *testing.T) {
	t.Parallel()
	state := sampleState()
	state.Status = orchestration.StatusFailed
	state.Faults = []apperrors.TargetFault{{Target: "Gemini Pro", Err: errors.New("boom")}}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(state, &buf)
	if !strings.Contains(buf.String(), "Failure (boom)") {
		t.Errorf("failed target should be marked:\n%s", buf.String())
	}
}

func TestPresentResults(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResults(sampleState(), false, &buf)
	out := buf.String()

	want := `This is a simulated response from Cohere for the prompt: "hello"`
	if !strings.Contains(out, want) {
		t.Errorf("results should contain %q:\n%s", want, out)
	}
	if !strings.Contains(out, target.PlaceholderText) {
		t.Errorf("pending target should show the placeholder:\n%s", out)
	}
	if !strings.Contains(out, "▸ Gemini Pro") {
		t.Errorf("every card needs a title:\n%s", out)
	}
}

func TestPresentResults_Truncation(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("word ", 60)
	state := orchestration.State{Results: []target.ModelResult{{Target: "A", Content: long, Ready: true}}}

	var short, full bytes.Buffer
	CLIResultPresenter{}.PresentResults(state, false, &short)
	CLIResultPresenter{}.PresentResults(state, true, &full)

	if !strings.Contains(short.String(), "…") {
		t.Errorf("preview should be cut:\n%s", short.String())
	}
	if strings.Contains(full.String(), "…") {
		t.Errorf("verbose output should not be cut:\n%s", full.String())
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantText string
	}{
		{"fault", apperrors.OrchestrationFault{Cause: errors.New("x"), Faults: []apperrors.TargetFault{{Target: "A", Err: errors.New("down")}}}, apperrors.ExitErrorGeneric, "Failed targets: A"},
		{"timeout", apperrors.TimeoutError{Operation: "submit", Limit: time.Second}, apperrors.ExitErrorTimeout, "timed out"},
		{"canceled", apperrors.WrapError(context.Canceled, "submission canceled"), apperrors.ExitErrorCanceled, "canceled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := CLIResultPresenter{}.HandleError(tt.err, time.Second, &buf)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.wantText) {
				t.Errorf("output %q should contain %q", buf.String(), tt.wantText)
			}
		})
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintExecutionConfig([]target.ModelTarget{"Cohere", "Gemini Pro"}, 10*time.Second, 800*time.Millisecond, &buf)
	for _, want := range []string{"2 targets", "Cohere, Gemini Pro", "10s", "800ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("config should contain %q:\n%s", want, buf.String())
		}
	}
}
