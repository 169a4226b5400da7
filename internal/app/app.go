package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/agbru/accai/internal/account"
	"github.com/agbru/accai/internal/cli"
	"github.com/agbru/accai/internal/config"
	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/logging"
	"github.com/agbru/accai/internal/metrics"
	"github.com/agbru/accai/internal/orchestration"
	"github.com/agbru/accai/internal/server"
	"github.com/agbru/accai/internal/tui"
	"github.com/agbru/accai/internal/ui"
)

// Application represents the accai application instance.
type Application struct {
	Config    config.AppConfig
	Program   string
	ErrWriter io.Writer
	// In is read by the REPL. Defaults to os.Stdin.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by the REPL.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin, Program: "accai"}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		app.Program = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.Program, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor)
	mode := a.Config.Mode()

	logger, closeLog, err := a.newLogger(mode)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var (
		progressCh chan orchestration.ProgressUpdate
		opts       []orchestration.Option
	)
	if mode != config.ModeREPL {
		progressCh = make(chan orchestration.ProgressUpdate, max(len(a.Config.Targets), 1))
		opts = append(opts, orchestration.WithProgress(progressCh))
	}

	var m *metrics.Metrics
	if a.Config.MetricsAddr != "" {
		m = metrics.NewMetrics()
		opts = append(opts, orchestration.WithMetrics(m))
	}

	orch, err := a.newOrchestrator(logger, opts...)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if m != nil {
		serverCtx, stopServer := context.WithCancel(ctx)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			srv := server.New(a.Config.MetricsAddr, m,
				server.WithLogger(logger),
				server.WithStateSource(orch),
			)
			if err := srv.ListenAndServe(serverCtx); err != nil {
				logger.Error("metrics server stopped", err, logging.String("addr", a.Config.MetricsAddr))
			}
		}()
		defer func() {
			stopServer()
			wg.Wait()
		}()
	}

	logger.Debug("starting",
		logging.String("mode", mode.String()),
		logging.Int("targets", len(orch.Targets())),
	)

	switch mode {
	case config.ModeCLI:
		return a.runSubmit(ctx, orch, progressCh, out)
	case config.ModeREPL:
		return a.runREPL(ctx, orch, out)
	default:
		return tui.Run(ctx, orch, progressCh, account.NewService(logger), Version)
	}
}

// newOrchestrator builds the orchestrator for the configured targets.
func (a *Application) newOrchestrator(logger logging.Logger, opts ...orchestration.Option) (*orchestration.Orchestrator, error) {
	registry, err := orchestration.NewRegistryFromConfig(a.Config)
	if err != nil {
		return nil, err
	}
	base := []orchestration.Option{
		orchestration.WithGenerator(orchestration.NewGeneratorFromConfig(a.Config)),
		orchestration.WithTimeout(a.Config.Timeout),
		orchestration.WithLogger(logger),
	}
	return orchestration.New(registry, append(base, opts...)...), nil
}

// newLogger builds the application logger. Logs go to --log-file when set,
// otherwise to the error writer, except in the TUI where they are dropped.
func (a *Application) newLogger(mode config.Mode) (*logging.ZerologAdapter, func(), error) {
	level := a.Config.LogLevel
	if a.Config.Verbose && level == config.DefaultLogLevel {
		level = "debug"
	}

	var (
		w       io.Writer = a.ErrWriter
		console           = true
		closeFn           = func() {}
	)
	switch {
	case a.Config.LogFile != "":
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, console = f, false
		closeFn = func() { _ = f.Close() }
	case mode == config.ModeTUI:
		w = io.Discard
	}

	logger, err := logging.New(w, logging.Options{
		Level:   level,
		Console: console,
		NoColor: a.Config.NoColor,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Program); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the line-oriented interactive mode.
func (a *Application) runREPL(ctx context.Context, orch cli.Submitter, out io.Writer) int {
	repl := cli.NewREPL(orch, cli.REPLConfig{
		Verbose:      a.Config.Verbose,
		ShowProgress: !a.Config.Quiet,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
