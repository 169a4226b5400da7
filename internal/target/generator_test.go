package target

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// fixedRand returns the same values on every call.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int   { return r.n % n }

func TestSimulatedContent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		target ModelTarget
		prompt string
		want   string
	}{
		{"Cohere", "hello", `This is a simulated response from Cohere for the prompt: "hello"`},
		{"Gemini Pro", "hello", `This is a simulated response from Gemini Pro for the prompt: "hello"`},
		{"Cohere", "", `This is a simulated response from Cohere for the prompt: ""`},
		{"Cohere", `say "hi"`, `This is a simulated response from Cohere for the prompt: "say "hi""`},
	}
	for _, tt := range tests {
		if got := SimulatedContent(tt.target, tt.prompt); got != tt.want {
			t.Errorf("SimulatedContent(%q, %q) = %q, want %q", tt.target, tt.prompt, got, tt.want)
		}
	}
}

func TestSimulatedGenerator_Generate(t *testing.T) {
	t.Parallel()
	g := NewSimulatedGenerator(fixedRand{f: 0.5, n: 123})

	res, err := g.Generate(context.Background(), "Cohere", "hello")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !res.Ready || res.Target != "Cohere" {
		t.Errorf("unexpected result header: %+v", res)
	}
	if res.Content != `This is a simulated response from Cohere for the prompt: "hello"` {
		t.Errorf("unexpected content %q", res.Content)
	}
	if res.Metrics.ElapsedSeconds != 1.0 || res.Metrics.TokenCount != 123 || res.Metrics.ConfidenceScore != 50 {
		t.Errorf("unexpected metrics %+v", res.Metrics)
	}
	if res.Metrics.Elapsed() != "1.0s" || res.Metrics.Confidence() != "50.0%" || res.Metrics.Tokens() != "123" {
		t.Errorf("unexpected rendered metrics %s/%s/%s", res.Metrics.Elapsed(), res.Metrics.Confidence(), res.Metrics.Tokens())
	}
}

func TestSimulatedGenerator_Latency(t *testing.T) {
	t.Parallel()
	g := NewSimulatedGenerator(NewRandSource(1), WithLatency(20*time.Millisecond))
	start := time.Now()
	if _, err := g.Generate(context.Background(), "Cohere", "x"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Generate returned after %s, expected at least the latency", elapsed)
	}
}

func TestSimulatedGenerator_Canceled(t *testing.T) {
	t.Parallel()
	g := NewSimulatedGenerator(NewRandSource(1), WithLatency(time.Hour), WithJitter(true))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, "Cohere", "x")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatedGenerator_CanceledWithoutLatency(t *testing.T) {
	t.Parallel()
	g := NewSimulatedGenerator(NewRandSource(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Generate(ctx, "Cohere", "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewRandSource_Deterministic(t *testing.T) {
	t.Parallel()
	a, b := NewRandSource(42), NewRandSource(42)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() || a.IntN(500) != b.IntN(500) {
			t.Fatal("sources with the same seed should produce the same sequence")
		}
	}
}

func TestStreams_OrderIndependent(t *testing.T) {
	t.Parallel()
	forward, backward := NewStreams(42), NewStreams(42)
	names := []ModelTarget{"Cohere", "Gemini Pro", "Claude"}

	want := make(map[ModelTarget][]float64)
	for _, n := range names {
		src := forward.For(n)
		want[n] = []float64{src.Float64(), src.Float64()}
	}
	for i := len(names) - 1; i >= 0; i-- {
		src := backward.For(names[i])
		got := []float64{src.Float64(), src.Float64()}
		if got[0] != want[names[i]][0] || got[1] != want[names[i]][1] {
			t.Errorf("%s: draws %v depend on target order, want %v", names[i], got, want[names[i]])
		}
	}

	if forward.For("Cohere") != forward.For("Cohere") {
		t.Error("For should return the same source for a target")
	}
	if want["Cohere"][0] == want["Gemini Pro"][0] {
		t.Error("targets should draw from different streams")
	}
}

func TestStreamSeed_NonZero(t *testing.T) {
	t.Parallel()
	for _, seed := range []uint64{0, 1, 42, math.MaxUint64} {
		if streamSeed(seed, "Cohere") == 0 {
			t.Errorf("streamSeed(%d) = 0", seed)
		}
	}
	if streamSeed(7, "Cohere") == streamSeed(7, "Gemini Pro") {
		t.Error("target names should change the derived seed")
	}
}

func TestNewSeededGenerator_Deterministic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := NewSeededGenerator(99, WithLatency(time.Millisecond), WithJitter(true))
	b := NewSeededGenerator(99, WithLatency(time.Millisecond), WithJitter(true))

	// b generates its targets in the opposite order.
	ra, _ := a.Generate(ctx, "Cohere", "p")
	rb2, _ := b.Generate(ctx, "Gemini Pro", "p")
	rb, _ := b.Generate(ctx, "Cohere", "p")
	ra2, _ := a.Generate(ctx, "Gemini Pro", "p")
	if ra.Metrics != rb.Metrics || ra2.Metrics != rb2.Metrics {
		t.Errorf("same seed gave different metrics: %+v/%+v vs %+v/%+v", ra.Metrics, ra2.Metrics, rb.Metrics, rb2.Metrics)
	}
}

func TestGeneratorFunc(t *testing.T) {
	t.Parallel()
	var g Generator = GeneratorFunc(func(_ context.Context, target ModelTarget, prompt string) (ModelResult, error) {
		return ModelResult{Target: target, Content: prompt, Ready: true}, nil
	})
	res, err := g.Generate(context.Background(), "X", "y")
	if err != nil || res.Content != "y" {
		t.Errorf("GeneratorFunc did not forward the call: %+v, %v", res, err)
	}
}

// TestMetricsBounds_PropertyBased checks that generated metrics stay within
// their documented ranges for any seed.
func TestMetricsBounds_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("metrics stay within bounds", prop.ForAll(
		func(seed uint64, prompt string) bool {
			g := NewSimulatedGenerator(NewRandSource(seed))
			res, err := g.Generate(context.Background(), "Cohere", prompt)
			if err != nil {
				return false
			}
			m := res.Metrics
			return m.ElapsedSeconds >= 0 && m.ElapsedSeconds <= MaxElapsedSeconds &&
				m.TokenCount >= 0 && m.TokenCount < MaxTokens &&
				m.ConfidenceScore >= 0 && m.ConfidenceScore < MaxConfidence
		},
		gen.UInt64(),
		gen.AnyString(),
	))

	properties.Property("elapsed is rounded to tenths", prop.ForAll(
		func(seed uint64) bool {
			res, _ := NewSimulatedGenerator(NewRandSource(seed)).Generate(context.Background(), "Cohere", "")
			tenths := res.Metrics.ElapsedSeconds * 10
			return math.Abs(tenths-math.Round(tenths)) < 1e-9
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
