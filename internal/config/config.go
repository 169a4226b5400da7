// Package config handles the configuration of the application: command-line
// flags, ACCAI_ environment variables and the optional YAML targets file.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/accai/internal/errors"
	"github.com/agbru/accai/internal/ui"
)

// EnvPrefix is the prefix for all environment variables used by the application.
const EnvPrefix = "ACCAI_"

const (
	// DefaultLatency is the simulated per-target generation latency.
	DefaultLatency = 800 * time.Millisecond
	// DefaultTimeout bounds a single submission.
	DefaultTimeout = 10 * time.Second
	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
)

// DefaultTargets returns the model targets used when none are configured.
// A fresh slice is returned on every call.
func DefaultTargets() []string {
	return []string{"Cohere", "Gemini Pro"}
}

// Mode identifies how the application presents results.
type Mode int

const (
	// ModeTUI runs the interactive dashboard.
	ModeTUI Mode = iota
	// ModeCLI runs a single submission and prints the results.
	ModeCLI
	// ModeREPL reads prompts from standard input, one per line.
	ModeREPL
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCLI:
		return "cli"
	case ModeREPL:
		return "repl"
	default:
		return "tui"
	}
}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Prompt is the prompt submitted in CLI mode.
	Prompt string
	// PromptSet records whether a prompt was given at all, so that an empty
	// prompt can still be submitted explicitly.
	PromptSet bool
	// Targets is the ordered list of model targets.
	Targets []string
	// TargetsFile is an optional YAML file providing targets and timings.
	TargetsFile string
	// Latency is the simulated per-target latency.
	Latency time.Duration
	// Timeout bounds each submission.
	Timeout time.Duration
	// Seed makes generated metrics reproducible. Zero means a random seed.
	Seed uint64
	// TUI forces the interactive dashboard.
	TUI bool
	// REPL selects the line-oriented interactive mode.
	REPL bool
	// JSON prints the final state as JSON in CLI mode.
	JSON bool
	// OutputFile is the path of an optional report file.
	OutputFile string
	// Quiet prints only result contents.
	Quiet bool
	// Verbose prints per-target details and debug logs.
	Verbose bool
	// NoColor disables colored output.
	NoColor bool
	// Theme names the color theme, see ui.ThemeNames.
	Theme string
	// LogLevel is the minimum level written by the logger.
	LogLevel string
	// LogFile receives log output. Empty means stderr outside the TUI and
	// discarded inside it.
	LogFile string
	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string
	// Completion, when set, prints the completion script for that shell and
	// exits.
	Completion string
}

// Mode returns the presentation mode selected by the configuration.
func (c AppConfig) Mode() Mode {
	switch {
	case c.REPL:
		return ModeREPL
	case c.TUI:
		return ModeTUI
	case c.PromptSet:
		return ModeCLI
	default:
		return ModeTUI
	}
}

var (
	validLogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	// CompletionShells lists the shells accepted by --completion.
	CompletionShells = []string{"bash", "zsh", "fish"}
)

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if len(c.Targets) == 0 {
		return apperrors.NewConfigError("at least one target is required")
	}
	seen := make(map[string]struct{}, len(c.Targets))
	for _, name := range c.Targets {
		if strings.TrimSpace(name) == "" {
			return apperrors.NewConfigError("target names must not be empty")
		}
		if _, dup := seen[name]; dup {
			return apperrors.NewConfigError("duplicate target %q", name)
		}
		seen[name] = struct{}{}
	}
	if c.Latency < 0 {
		return apperrors.NewConfigError("latency must be non-negative, got %s", c.Latency)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.TUI && c.REPL {
		return apperrors.NewConfigError("--tui and --repl are mutually exclusive")
	}
	if c.JSON && c.Mode() != ModeCLI {
		return apperrors.NewConfigError("--json requires --prompt")
	}
	if c.Completion != "" && !slices.Contains(CompletionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q (want one of %s)", c.Completion, strings.Join(CompletionShells, ", "))
	}
	if !slices.Contains(ui.ThemeNames(), c.Theme) {
		return apperrors.NewConfigError("unknown theme %q (want one of %s)", c.Theme, strings.Join(ui.ThemeNames(), ", "))
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return apperrors.NewConfigError("invalid log level %q (want one of %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and applies, in decreasing
// priority, flags, ACCAI_ environment variables, the targets file and the
// defaults. Positional arguments are joined into the prompt when --prompt is
// absent.
//
// Parameters:
//   - programName: The name shown in usage messages.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Receives usage and flag parsing errors.
//
// Returns:
//   - AppConfig: The validated configuration.
//   - error: flag.ErrHelp when help was requested, the flag parsing error,
//     or a ConfigError from the targets file or validation.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options] [prompt]\n\n", programName)
		fmt.Fprintln(errorWriter, "Compare simulated responses from several AI models.")
		fmt.Fprintln(errorWriter, "Without a prompt the interactive dashboard is started.")
		fmt.Fprintln(errorWriter, "\nOptions:")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEnvironment variables use the %s prefix (e.g. %sTARGETS, %sTIMEOUT).\n", EnvPrefix, EnvPrefix, EnvPrefix)
	}

	config := AppConfig{
		Latency:  DefaultLatency,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
		Theme:    ui.DefaultThemeName,
	}
	var targets string

	fs.StringVar(&config.Prompt, "prompt", "", "Prompt to submit (runs once and exits).")
	fs.StringVar(&config.Prompt, "p", "", "Prompt to submit (shorthand).")
	fs.StringVar(&targets, "targets", strings.Join(DefaultTargets(), ","), "Comma-separated, ordered list of model targets.")
	fs.StringVar(&targets, "t", strings.Join(DefaultTargets(), ","), "Model targets (shorthand).")
	fs.StringVar(&config.TargetsFile, "targets-file", "", "YAML file with targets, latency and timeout.")
	fs.DurationVar(&config.Latency, "latency", DefaultLatency, "Simulated per-target latency (e.g. 800ms).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of a submission (e.g. 10s).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Seed for generated metrics (0 = random).")
	fs.BoolVar(&config.TUI, "tui", false, "Start the interactive dashboard.")
	fs.BoolVar(&config.REPL, "repl", false, "Read prompts from standard input, one per line.")
	fs.BoolVar(&config.JSON, "json", false, "Print the final state as JSON.")
	fs.StringVar(&config.OutputFile, "output", "", "Write a report to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Write a report to this file (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only result contents.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print per-target details.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Theme, "theme", ui.DefaultThemeName, "Color theme: "+strings.Join(ui.ThemeNames(), ", ")+".")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: "+strings.Join(validLogLevels, ", ")+".")
	fs.StringVar(&config.LogFile, "log-file", "", "Write logs to this file.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script ("+strings.Join(CompletionShells, ", ")+") and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	config.Targets = splitTargets(targets)
	config.PromptSet = isFlagSetAny(fs, "prompt", "p")
	if !config.PromptSet && fs.NArg() > 0 {
		config.Prompt = strings.Join(fs.Args(), " ")
		config.PromptSet = true
	}

	applyEnvOverrides(&config, fs)

	if config.TargetsFile != "" {
		file, err := LoadTargetsFile(config.TargetsFile)
		if err != nil {
			return AppConfig{}, err
		}
		applyTargetsFile(&config, file, fs)
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// splitTargets splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitTargets(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
