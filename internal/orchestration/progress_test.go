package orchestration

import (
	"errors"
	"testing"
)

func TestNewProgressAggregator_Invalid(t *testing.T) {
	t.Parallel()
	if NewProgressAggregator(0) != nil || NewProgressAggregator(-1) != nil {
		t.Error("expected nil aggregator for non-positive totals")
	}
}

func TestProgressAggregator_Update(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(3)

	p := agg.Update(ProgressUpdate{TargetIndex: 1, Target: "B"})
	if p.Done != 1 || p.Total != 3 {
		t.Errorf("after first update: %+v", p)
	}

	p = agg.Update(ProgressUpdate{TargetIndex: 1, Target: "B"})
	if p.Done != 1 {
		t.Errorf("duplicate updates should be ignored: %+v", p)
	}

	p = agg.Update(ProgressUpdate{TargetIndex: 7})
	if p.Done != 1 {
		t.Errorf("out-of-range updates should be ignored: %+v", p)
	}

	agg.Update(ProgressUpdate{TargetIndex: 0, Err: errors.New("down")})
	p = agg.Update(ProgressUpdate{TargetIndex: 2})
	if p.Done != 3 || p.Failed != 1 || p.Fraction != 1 {
		t.Errorf("final progress: %+v", p)
	}
	if agg.Current() != p {
		t.Error("Current should match the last update")
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 2)
	ch <- ProgressUpdate{}
	ch <- ProgressUpdate{}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Error("channel should be drained")
	}
}
