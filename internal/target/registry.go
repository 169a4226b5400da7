package target

import (
	"slices"
	"strings"

	apperrors "github.com/agbru/accai/internal/errors"
)

// Registry is the fixed, ordered set of targets of a session.
type Registry struct {
	targets []ModelTarget
}

// NewRegistry builds a registry from target names, keeping their order.
// Names must be non-empty and unique.
func NewRegistry(names []string) (*Registry, error) {
	if len(names) == 0 {
		return nil, apperrors.NewConfigError("at least one target is required")
	}
	targets := make([]ModelTarget, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, apperrors.NewConfigError("target names must not be empty")
		}
		t := ModelTarget(name)
		if slices.Contains(targets, t) {
			return nil, apperrors.NewConfigError("duplicate target %q", name)
		}
		targets = append(targets, t)
	}
	return &Registry{targets: targets}, nil
}

// Targets returns a copy of the targets in configuration order.
func (r *Registry) Targets() []ModelTarget {
	return slices.Clone(r.targets)
}

// Len returns the number of targets.
func (r *Registry) Len() int { return len(r.targets) }

// Placeholders returns one placeholder result per target, in order.
func (r *Registry) Placeholders() []ModelResult {
	out := make([]ModelResult, len(r.targets))
	for i, t := range r.targets {
		out[i] = Placeholder(t)
	}
	return out
}
