//go:generate mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks

package target

import (
	"context"
	"fmt"
	"time"

	"github.com/agbru/accai/internal/format"
)

const (
	// MaxElapsedSeconds bounds the simulated elapsed time.
	MaxElapsedSeconds = 2.0
	// MaxTokens is the exclusive upper bound of simulated token counts.
	MaxTokens = 500
	// MaxConfidence bounds the simulated confidence score.
	MaxConfidence = 100.0
)

// Generator produces the result of one target for a prompt.
type Generator interface {
	Generate(ctx context.Context, target ModelTarget, prompt string) (ModelResult, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, target ModelTarget, prompt string) (ModelResult, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, target ModelTarget, prompt string) (ModelResult, error) {
	return f(ctx, target, prompt)
}

// SimulatedContent returns the canned response text for target and prompt.
func SimulatedContent(target ModelTarget, prompt string) string {
	return fmt.Sprintf("This is a simulated response from %s for the prompt: \"%s\"", target, prompt)
}

// SimulatedGenerator fabricates results locally after a simulated latency.
type SimulatedGenerator struct {
	source  func(ModelTarget) RandSource
	latency time.Duration
	jitter  bool
}

// SimulatedOption configures a SimulatedGenerator.
type SimulatedOption func(*SimulatedGenerator)

// WithLatency sets the base latency of every generation.
func WithLatency(d time.Duration) SimulatedOption {
	return func(g *SimulatedGenerator) { g.latency = d }
}

// WithJitter spreads each target's latency over [latency/2, 3*latency/2).
func WithJitter(enabled bool) SimulatedOption {
	return func(g *SimulatedGenerator) { g.jitter = enabled }
}

// NewSimulatedGenerator creates a generator drawing the metrics of every
// target from src. With several targets the draws interleave in scheduling
// order; use NewSeededGenerator for reproducible runs. A nil source gives
// each target its own randomly seeded stream.
func NewSimulatedGenerator(src RandSource, opts ...SimulatedOption) *SimulatedGenerator {
	if src == nil {
		return NewSeededGenerator(0, opts...)
	}
	return newSimulatedGenerator(func(ModelTarget) RandSource { return src }, opts)
}

// NewSeededGenerator creates a generator whose targets each draw from their
// own stream derived from seed, so a fixed seed yields the same results for
// every target regardless of latency. A zero seed picks a random one.
func NewSeededGenerator(seed uint64, opts ...SimulatedOption) *SimulatedGenerator {
	return newSimulatedGenerator(NewStreams(seed).For, opts)
}

func newSimulatedGenerator(source func(ModelTarget) RandSource, opts []SimulatedOption) *SimulatedGenerator {
	g := &SimulatedGenerator{source: source}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate waits for the simulated latency, then returns a ready result.
// It returns ctx.Err() if the context ends first.
func (g *SimulatedGenerator) Generate(ctx context.Context, target ModelTarget, prompt string) (ModelResult, error) {
	rnd := g.source(target)
	// Draw before waiting: a canceled generation advances the stream too.
	metrics := Metrics{
		ElapsedSeconds:  format.RoundTenths(rnd.Float64() * MaxElapsedSeconds),
		TokenCount:      rnd.IntN(MaxTokens),
		ConfidenceScore: rnd.Float64() * MaxConfidence,
	}
	if err := g.wait(ctx, rnd); err != nil {
		return ModelResult{}, err
	}
	return ModelResult{
		Target:  target,
		Content: SimulatedContent(target, prompt),
		Metrics: metrics,
		Ready:   true,
	}, nil
}

func (g *SimulatedGenerator) wait(ctx context.Context, rnd RandSource) error {
	delay := g.latency
	if g.jitter && delay > 0 {
		delay = delay/2 + time.Duration(rnd.Float64()*float64(delay))
	}
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
