package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/accai/internal/errors"
)

// Resolution chain for targets and timings (highest priority first):
//   1. CLI flags (--targets, --latency, --timeout, --seed)
//   2. Environment variables (ACCAI_TARGETS, etc.)
//   3. Targets file (--targets-file, this file)
//   4. Static defaults in config.go

// TargetsFile is the on-disk description of the target set.
//
//	targets:
//	  - Cohere
//	  - Gemini Pro
//	latency: 800ms
//	timeout: 10s
//	seed: 42
type TargetsFile struct {
	Targets []string `yaml:"targets"`
	Latency string   `yaml:"latency,omitempty"`
	Timeout string   `yaml:"timeout,omitempty"`
	Seed    uint64   `yaml:"seed,omitempty"`

	latency time.Duration
	timeout time.Duration
}

// LoadTargetsFile reads and validates a YAML targets file.
func LoadTargetsFile(path string) (TargetsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TargetsFile{}, apperrors.NewConfigError("cannot read targets file: %v", err)
	}
	return ParseTargetsFile(data)
}

// ParseTargetsFile decodes a targets file from YAML. Unknown keys are rejected.
func ParseTargetsFile(data []byte) (TargetsFile, error) {
	var file TargetsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return TargetsFile{}, apperrors.NewConfigError("invalid targets file: %v", err)
	}

	for i, name := range file.Targets {
		file.Targets[i] = strings.TrimSpace(name)
	}

	var err error
	if file.latency, err = parseOptionalDuration("latency", file.Latency); err != nil {
		return TargetsFile{}, err
	}
	if file.timeout, err = parseOptionalDuration("timeout", file.Timeout); err != nil {
		return TargetsFile{}, err
	}
	return file, nil
}

func parseOptionalDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, apperrors.NewConfigError("invalid %s %q in targets file", field, value)
	}
	return d, nil
}

// applyTargetsFile copies file values into config for every field that was
// set neither by a flag nor by an environment variable.
func applyTargetsFile(config *AppConfig, file TargetsFile, fs *flag.FlagSet) {
	if len(file.Targets) > 0 && !isFlagSetAny(fs, "targets", "t") && !envSet("TARGETS") {
		config.Targets = file.Targets
	}
	if file.Latency != "" && !isFlagSet(fs, "latency") && !envSet("LATENCY") {
		config.Latency = file.latency
	}
	if file.Timeout != "" && !isFlagSet(fs, "timeout") && !envSet("TIMEOUT") {
		config.Timeout = file.timeout
	}
	if file.Seed != 0 && !isFlagSet(fs, "seed") && !envSet("SEED") {
		config.Seed = file.Seed
	}
}
