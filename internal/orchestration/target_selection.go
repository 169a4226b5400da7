package orchestration

import (
	"github.com/agbru/accai/internal/config"
	"github.com/agbru/accai/internal/target"
)

// NewRegistryFromConfig builds the ordered target registry from the
// configuration, falling back to config.DefaultTargets when none are set.
func NewRegistryFromConfig(cfg config.AppConfig) (*target.Registry, error) {
	names := cfg.Targets
	if len(names) == 0 {
		names = config.DefaultTargets()
	}
	return target.NewRegistry(names)
}

// NewGeneratorFromConfig builds the simulated generator for cfg: per-target
// seeded metrics and per-target latency with jitter. A non-zero cfg.Seed
// makes every submission sequence reproducible.
func NewGeneratorFromConfig(cfg config.AppConfig) *target.SimulatedGenerator {
	return target.NewSeededGenerator(
		cfg.Seed,
		target.WithLatency(cfg.Latency),
		target.WithJitter(true),
	)
}
