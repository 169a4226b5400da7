package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/accai/internal/cli"
	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/orchestration"
)

// runSubmit submits the configured prompt once and prints the results. It
// closes progressCh once the submission has returned.
func (a *Application) runSubmit(ctx context.Context, orch *orchestration.Orchestrator, progressCh chan orchestration.ProgressUpdate, out io.Writer) int {
	targets := orch.Targets()
	showProgress := !a.Config.Quiet && !a.Config.JSON

	if showProgress {
		cli.PrintExecutionConfig(targets, a.Config.Timeout, a.Config.Latency, out)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	if showProgress {
		go cli.DisplayProgress(&wg, progressCh, len(targets), out)
	} else {
		go func() {
			defer wg.Done()
			orchestration.DrainChannel(progressCh)
		}()
	}

	start := time.Now()
	state, err := orch.Submit(ctx, a.Config.Prompt)
	close(progressCh)
	wg.Wait()

	presenter := cli.CLIResultPresenter{}
	if err != nil {
		return a.reportFailure(state, err, time.Since(start), out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		JSON:       a.Config.JSON,
	}
	if err := cli.DisplayResultWithConfig(out, state, presenter, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// reportFailure prints a failed submission. In JSON mode the failed state is
// still written to out so that callers can read the faults.
func (a *Application) reportFailure(state orchestration.State, err error, elapsed time.Duration, out io.Writer) int {
	if a.Config.JSON {
		if werr := cli.WriteJSON(out, state); werr != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", werr)
		}
		return apperrors.ExitCodeFor(err)
	}
	presenter := cli.CLIResultPresenter{}
	if len(state.Faults) > 0 && !a.Config.Quiet {
		presenter.PresentComparisonTable(state, out)
	}
	return presenter.HandleError(err, elapsed, a.ErrWriter)
}
