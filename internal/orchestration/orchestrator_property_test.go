package orchestration

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/accai/internal/target"
)

func targetNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("model-%d", i)
	}
	return names
}

// TestSubmit_PropertyBased checks the ordering, bounds and replacement
// properties of Submit for arbitrary target counts, seeds and prompts.
func TestSubmit_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("one result per target in configuration order", prop.ForAll(
		func(n int, seed uint64, prompt string) bool {
			registry, err := target.NewRegistry(targetNames(n))
			if err != nil {
				return false
			}
			o := New(registry, WithGenerator(newSimulated(seed)))
			s, err := o.Submit(context.Background(), prompt)
			if err != nil || len(s.Results) != n || s.Status != StatusSucceeded {
				return false
			}
			for i, r := range s.Results {
				name := target.ModelTarget(fmt.Sprintf("model-%d", i))
				if r.Target != name || r.Content != target.SimulatedContent(name, prompt) || !r.Ready {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.UInt64(),
		gen.AnyString(),
	))

	properties.Property("metrics stay within bounds", prop.ForAll(
		func(n int, seed uint64) bool {
			registry, _ := target.NewRegistry(targetNames(n))
			s, err := New(registry, WithGenerator(newSimulated(seed))).Submit(context.Background(), "p")
			if err != nil {
				return false
			}
			for _, r := range s.Results {
				m := r.Metrics
				if m.ConfidenceScore < 0 || m.ConfidenceScore >= 100 || m.TokenCount < 0 || m.TokenCount >= 500 ||
					m.ElapsedSeconds < 0 || m.ElapsedSeconds > 2 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.UInt64(),
	))

	properties.Property("re-submission replaces every entry", prop.ForAll(
		func(n int, first, second string) bool {
			registry, _ := target.NewRegistry(targetNames(n))
			o := New(registry, WithGenerator(newSimulated(1)))
			if _, err := o.Submit(context.Background(), first); err != nil {
				return false
			}
			s, err := o.Submit(context.Background(), second)
			if err != nil {
				return false
			}
			for _, r := range s.Results {
				if r.Content != target.SimulatedContent(r.Target, second) {
					return false
				}
			}
			return s.Generation == 2
		},
		gen.IntRange(1, 6),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("an injected fault leaves results untouched", prop.ForAll(
		func(n, faultAt int, prompt string) bool {
			faultAt %= n
			registry, _ := target.NewRegistry(targetNames(n))
			faulty := target.ModelTarget(fmt.Sprintf("model-%d", faultAt))
			healthy := newSimulated(5)
			failNext := false
			g := target.GeneratorFunc(func(ctx context.Context, tg target.ModelTarget, p string) (target.ModelResult, error) {
				if failNext && tg == faulty {
					return target.ModelResult{}, errors.New("injected")
				}
				return healthy.Generate(ctx, tg, p)
			})
			o := New(registry, WithGenerator(g))
			before, err := o.Submit(context.Background(), "warm-up")
			if err != nil {
				return false
			}
			failNext = true
			after, err := o.Submit(context.Background(), prompt)
			return err != nil &&
				after.Status == StatusFailed &&
				after.Message != "" &&
				reflect.DeepEqual(after.Results, before.Results)
		},
		gen.IntRange(1, 6),
		gen.IntRange(0, 100),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
