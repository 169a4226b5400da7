package orchestration

import "github.com/agbru/accai/internal/target"

// ProgressUpdate reports that one target finished generating. Results are
// still committed as one batch; updates only let presenters show how many
// targets are done.
type ProgressUpdate struct {
	// TargetIndex is the position of the target in configuration order.
	TargetIndex int
	Target      target.ModelTarget
	// Err is non-nil when the target failed.
	Err error
}

// ProgressAggregator counts finished targets of one submission.
type ProgressAggregator struct {
	total  int
	done   []bool
	failed int
}

// NewProgressAggregator creates an aggregator for total targets. Returns nil
// if total <= 0.
func NewProgressAggregator(total int) *ProgressAggregator {
	if total <= 0 {
		return nil
	}
	return &ProgressAggregator{total: total, done: make([]bool, total)}
}

// AggregatedProgress holds the result of processing a single update.
type AggregatedProgress struct {
	// Done is the number of distinct targets that finished.
	Done int
	// Failed is the number of targets that failed.
	Failed int
	// Total is the number of targets of the submission.
	Total int
	// Fraction is Done/Total.
	Fraction float64
}

// Update records an update and returns the aggregated progress. Repeated or
// out-of-range indices are ignored.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	if update.TargetIndex >= 0 && update.TargetIndex < a.total && !a.done[update.TargetIndex] {
		a.done[update.TargetIndex] = true
		if update.Err != nil {
			a.failed++
		}
	}
	return a.Current()
}

// Current returns the aggregated progress without updating.
func (a *ProgressAggregator) Current() AggregatedProgress {
	done := 0
	for _, d := range a.done {
		if d {
			done++
		}
	}
	return AggregatedProgress{
		Done:     done,
		Failed:   a.failed,
		Total:    a.total,
		Fraction: float64(done) / float64(a.total),
	}
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
