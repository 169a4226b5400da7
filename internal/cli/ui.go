//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/accai/internal/format"
	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 20
)

// Spinner abstracts the terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the number of finished targets until
// progressChan is closed, then prints a summary line. It calls wg.Done when it
// returns.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numTargets int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numTargets)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(out)
	start := time.Now()
	s.UpdateSuffix(progressSuffix(agg.Current(), 0))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				printProgressSummary(agg.Current(), time.Since(start), out)
				return
			}
			s.UpdateSuffix(progressSuffix(agg.Update(update), time.Since(start)))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg.Current(), time.Since(start)))
		}
	}
}

func progressSuffix(p orchestration.AggregatedProgress, elapsed time.Duration) string {
	return fmt.Sprintf(" Generating... %d/%d targets %s %s",
		p.Done, p.Total, progressBar(p.Fraction, ProgressBarWidth), format.FormatExecutionDuration(elapsed))
}

func printProgressSummary(p orchestration.AggregatedProgress, elapsed time.Duration, out io.Writer) {
	if p.Failed > 0 {
		fmt.Fprintf(out, "%s✗ %d/%d targets failed%s (%s)\n",
			ui.ColorRed(), p.Failed, p.Total, ui.ColorReset(), format.FormatExecutionDuration(elapsed))
		return
	}
	fmt.Fprintf(out, "%s✓ %d/%d targets finished%s (%s)\n",
		ui.ColorGreen(), p.Done, p.Total, ui.ColorReset(), format.FormatExecutionDuration(elapsed))
}

// progressBar renders progress in [0, 1] as a bar of the given width.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := range length {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}
