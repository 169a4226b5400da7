package orchestration

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/agbru/accai/internal/config"
	"github.com/agbru/accai/internal/target"
)

func TestStatus_String(t *testing.T) {
	t.Parallel()
	tests := map[Status]string{
		StatusIdle:      "idle",
		StatusRunning:   "running",
		StatusSucceeded: "succeeded",
		StatusFailed:    "failed",
		Status(42):      "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}

func TestState_JSON(t *testing.T) {
	t.Parallel()
	s := State{
		Prompt:  "hi",
		Status:  StatusSucceeded,
		Results: []target.ModelResult{{Target: "Cohere", Content: "c", Ready: true}},
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{`"status":"succeeded"`, `"target":"Cohere"`, `"ready":true`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON %s should contain %s", out, want)
		}
	}
	if strings.Contains(out, "started_at") {
		t.Errorf("zero timestamps should be omitted: %s", out)
	}
}

func TestState_Helpers(t *testing.T) {
	t.Parallel()
	start := time.Now()
	s := State{
		Status:     StatusRunning,
		StartedAt:  start,
		Results:    []target.ModelResult{{Target: "A"}, {Target: "B", Content: "b"}},
		FinishedAt: time.Time{},
	}
	if !s.IsRunning() {
		t.Error("IsRunning should be true")
	}
	if s.Duration() != 0 {
		t.Error("unfinished submissions have no duration")
	}
	if r, ok := s.Result("B"); !ok || r.Content != "b" {
		t.Errorf("Result(B) = %+v, %v", r, ok)
	}
	if _, ok := s.Result("C"); ok {
		t.Error("Result(C) should not be found")
	}
}

func TestNewRegistryFromConfig(t *testing.T) {
	t.Parallel()
	r, err := NewRegistryFromConfig(config.AppConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Targets(); len(got) != 2 || got[0] != "Cohere" || got[1] != "Gemini Pro" {
		t.Errorf("default targets = %v", got)
	}

	r, err = NewRegistryFromConfig(config.AppConfig{Targets: []string{"X"}})
	if err != nil || r.Len() != 1 {
		t.Errorf("configured targets not used: %v, %v", r, err)
	}
}

func TestNewGeneratorFromConfig_Seeded(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Seed: 42, Latency: 5 * time.Millisecond}
	reg, err := NewRegistryFromConfig(config.AppConfig{Targets: []string{"Cohere", "Gemini Pro", "Claude", "Mistral"}})
	if err != nil {
		t.Fatal(err)
	}

	run := func() []target.ModelResult {
		o := New(reg, WithGenerator(NewGeneratorFromConfig(cfg)))
		first, err := o.Submit(t.Context(), "p")
		if err != nil {
			t.Fatal(err)
		}
		second, err := o.Submit(t.Context(), "q")
		if err != nil {
			t.Fatal(err)
		}
		return append(first.Results, second.Results...)
	}

	want := run()
	for i := range 20 {
		got := run()
		for j := range want {
			if got[j].Target != want[j].Target || got[j].Metrics != want[j].Metrics {
				t.Fatalf("run %d: result %d = %s %+v, want %s %+v",
					i, j, got[j].Target, got[j].Metrics, want[j].Target, want[j].Metrics)
			}
		}
	}
}
