package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether the named flag was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	return isFlagSetAny(fs, name)
}

// isFlagSetAny reports whether any of names was given on the command line.
// Aliases such as -t and --targets are checked together.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		for _, n := range names {
			if f.Name == n {
				set = true
			}
		}
	})
	return set
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the ACCAI_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Submission
	{"PROMPT", []string{"prompt", "p"}, func(c *AppConfig, v string) {
		c.Prompt = v
		c.PromptSet = true
	}},
	{"TARGETS", []string{"targets", "t"}, func(c *AppConfig, v string) {
		if targets := splitTargets(v); len(targets) > 0 {
			c.Targets = targets
		}
	}},
	{"TARGETS_FILE", []string{"targets-file"}, func(c *AppConfig, v string) {
		c.TargetsFile = v
	}},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},

	// Duration overrides
	{"LATENCY", []string{"latency"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Latency = parsed
		}
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) {
		c.OutputFile = v
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) {
		c.LogLevel = v
	}},
	{"LOG_FILE", []string{"log-file"}, func(c *AppConfig, v string) {
		c.LogFile = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) {
		c.Theme = strings.ToLower(v)
	}},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"JSON", []string{"json"}, func(c *AppConfig, v string) {
		c.JSON = parseBoolEnv(v, c.JSON)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"REPL", []string{"repl"}, func(c *AppConfig, v string) {
		c.REPL = parseBoolEnv(v, c.REPL)
	}},
}

// parseBoolEnv reads a yes/no style value. Unrecognized values leave
// fallback in place.
func parseBoolEnv(val string, fallback bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}

// envSet reports whether the ACCAI_-prefixed variable is set to a non-empty value.
func envSet(key string) bool {
	return os.Getenv(EnvPrefix+key) != ""
}

// applyEnvOverrides copies ACCAI_* variables into config unless the matching
// flag was given explicitly. Flags win over the environment, which wins over
// defaults.
//
// Supported environment variables (all prefixed with ACCAI_):
//   - PROMPT, TARGETS, TARGETS_FILE, SEED, LATENCY, TIMEOUT, OUTPUT,
//     LOG_LEVEL, LOG_FILE, METRICS_ADDR, THEME, VERBOSE, QUIET, JSON, NO_COLOR,
//     TUI, REPL
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
