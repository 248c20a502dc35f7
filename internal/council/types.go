// Package council implements the deliberation engine: several models answer a
// task independently, critique one another pairwise, three rank aggregations
// score the critiques, and a chairman model writes the final synthesis.
package council

import (
	"time"

	"github.com/neves/zen-council/internal/ai"
	"github.com/neves/zen-council/internal/rank"
)

// Output modes.
const (
	ModePerspectives = "perspectives"
	ModeSynthesis    = "synthesis"
	ModeBoth         = "both"
)

// Role is one seat at the council: a display name bound to a model with its
// own system prompt and sampling parameters. Weight is accepted and kept on
// the role only; it does not appear in the output and does not influence
// aggregation.
type Role struct {
	Name         string            `json:"name" yaml:"name"`
	SystemPrompt string            `json:"system_prompt,omitempty" yaml:"system_prompt"`
	Model        string            `json:"model" yaml:"model"`
	Sampling     ai.SamplingParams `json:"sampling,omitempty" yaml:"sampling"`
	Weight       float64           `json:"weight,omitempty" yaml:"weight"`
}

// Answer is one role's response. A failed generation still yields an Answer
// with OK=false and the error recorded.
type Answer struct {
	Role    string        `json:"role"`
	Model   string        `json:"model"`
	Text    string        `json:"text"`
	OK      bool          `json:"ok"`
	Error   string        `json:"error,omitempty"`
	Tokens  int           `json:"tokens,omitempty"`
	Latency time.Duration `json:"latency_ms,omitempty"`
}

// Verdict is one parsed pairwise judgment. CandA and CandB are role names of
// the two candidates in index order; Margin is in [-2, +2] with positive
// favoring CandA. Raw keeps the judge's reply for diagnostics.
type Verdict struct {
	Judge  string `json:"judge"`
	CandA  string `json:"cand_a"`
	CandB  string `json:"cand_b"`
	Margin int    `json:"margin"`
	Raw    string `json:"-"`
}

// Options tunes one deliberation. Construct from DefaultOptions and override.
type Options struct {
	OutputMode    string   `json:"output_mode,omitempty"`
	Anonymize     bool     `json:"anonymize"`
	Review        bool     `json:"review"`
	Reviewers     []string `json:"reviewers,omitempty"`
	Aggregation   string   `json:"aggregation,omitempty"`
	ChairmanModel string   `json:"chairman_model,omitempty"`
}

// DefaultOptions returns the documented defaults: both outputs, anonymized
// peer review enabled, Borda echoed as the primary method.
func DefaultOptions() Options {
	return Options{
		OutputMode:  ModeBoth,
		Anonymize:   true,
		Review:      true,
		Aggregation: "borda",
	}
}

// Metadata records counts and timings for one deliberation.
type Metadata struct {
	DeliberationID  string        `json:"deliberation_id"`
	PrimaryMethod   string        `json:"primary_method,omitempty"`
	VerdictCount    int           `json:"verdict_count"`
	Unparseable     int           `json:"unparseable"`
	FailedCalls     int           `json:"failed_calls"`
	UnscoredBT      []string      `json:"unscored_bradley_terry,omitempty"`
	GenerationTime  time.Duration `json:"generation_ms"`
	ReviewTime      time.Duration `json:"review_ms"`
	SynthesisTime   time.Duration `json:"synthesis_ms"`
}

// CouncilOutput is the deliberation result: every perspective, the score map
// per aggregation method, and the chairman's synthesis when requested.
type CouncilOutput struct {
	Task              string                 `json:"task"`
	Results           []Answer               `json:"results"`
	AggregationScores map[string]rank.Scores `json:"aggregation_scores"`
	Synthesis         string                 `json:"synthesis,omitempty"`
	Meta              Metadata               `json:"metadata"`
}
