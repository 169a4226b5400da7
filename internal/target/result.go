package target

import (
	"github.com/agbru/accai/internal/format"
)

// PlaceholderText is displayed for a target that has no result yet.
const PlaceholderText = "Output will appear here..."

// ModelTarget names a simulated backend. Targets are static for the session.
type ModelTarget string

// String returns the target name.
func (t ModelTarget) String() string { return string(t) }

// Metrics holds the synthetic figures attached to a result.
type Metrics struct {
	// ElapsedSeconds is the simulated generation time, rounded to tenths.
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	// TokenCount is the simulated number of generated tokens.
	TokenCount int `json:"token_count"`
	// ConfidenceScore is a percentage in [0, 100].
	ConfidenceScore float64 `json:"confidence"`
}

// Elapsed renders ElapsedSeconds as "1.3s".
func (m Metrics) Elapsed() string { return format.FormatElapsed(m.ElapsedSeconds) }

// Confidence renders ConfidenceScore as "87.2%".
func (m Metrics) Confidence() string { return format.FormatConfidence(m.ConfidenceScore) }

// Tokens renders TokenCount with thousands separators.
func (m Metrics) Tokens() string { return format.FormatTokens(m.TokenCount) }

// ModelResult is the output of one target for one submission. A new value is
// created on every submission; results are replaced, never merged.
type ModelResult struct {
	Target  ModelTarget `json:"target"`
	Content string      `json:"content"`
	Metrics Metrics     `json:"metrics"`
	// Ready is false for placeholders created before any submission
	// succeeded. A ready result may still have empty content.
	Ready bool `json:"ready"`
}

// Placeholder returns the result shown for t before its first submission.
func Placeholder(t ModelTarget) ModelResult {
	return ModelResult{Target: t}
}

// DisplayContent returns the text to show for r: the placeholder text when
// the result is not ready, the content otherwise.
func (r ModelResult) DisplayContent() string {
	if !r.Ready {
		return PlaceholderText
	}
	return r.Content
}
