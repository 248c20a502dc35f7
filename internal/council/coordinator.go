package council

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/neves/zen-council/internal/ai"
	"github.com/neves/zen-council/internal/logging"
	"github.com/neves/zen-council/internal/rank"
)

const (
	// DefaultDeadline bounds one whole deliberation.
	DefaultDeadline = 10 * time.Minute

	defaultJudgeTemperature = 0.3
)

// Engine runs deliberations over an injectable provider.
type Engine struct {
	provider         ai.Provider
	log              logging.Logger
	deadline         time.Duration
	judgeTemperature float64
}

// EngineConfig tunes an Engine. Zero values take defaults.
type EngineConfig struct {
	Logger           logging.Logger
	Deadline         time.Duration
	JudgeTemperature float64
}

// NewEngine creates a deliberation engine on top of the given provider.
func NewEngine(provider ai.Provider, cfg EngineConfig) *Engine {
	e := &Engine{
		provider:         provider,
		log:              cfg.Logger,
		deadline:         cfg.Deadline,
		judgeTemperature: cfg.JudgeTemperature,
	}
	if e.log == nil {
		e.log = logging.NewLogger()
	}
	if e.deadline <= 0 {
		e.deadline = DefaultDeadline
	}
	if e.judgeTemperature <= 0 {
		e.judgeTemperature = defaultJudgeTemperature
	}
	return e
}

// Request is one deliberation input.
type Request struct {
	Task    string
	Roles   []Role
	Options Options
	// Events receives progress notifications; nil disables them.
	Events EventSink
}

// Deliberate runs the full pipeline: generation, peer review, aggregation,
// synthesis. Per-stage failures degrade to failed answers, missing verdicts,
// empty score maps, or an absent synthesis; the call itself fails only on
// malformed input or when cancellation left fewer than two usable answers.
func (e *Engine) Deliberate(ctx context.Context, req Request) (*CouncilOutput, error) {
	opts := normalizeOptions(req.Options)
	req.Options = opts
	if err := validate(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.deadline)
	defer cancel()

	out := &CouncilOutput{
		Task:              req.Task,
		AggregationScores: map[string]rank.Scores{},
		Meta: Metadata{
			DeliberationID: uuid.New().String(),
			PrimaryMethod:  opts.Aggregation,
		},
	}

	// Stage 1: generation.
	genStart := time.Now()
	out.Results = e.generate(ctx, req.Task, req.Roles, req.Events)
	out.Meta.GenerationTime = time.Since(genStart)

	var candidates []Answer
	for _, a := range out.Results {
		if a.OK {
			candidates = append(candidates, a)
		}
	}

	if ctx.Err() != nil && len(candidates) < 2 {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	}

	// Stage 2: peer review and aggregation.
	if opts.Review && len(candidates) >= 2 {
		judges := selectJudges(req.Roles, candidates, opts.Reviewers)
		revStart := time.Now()
		rev := e.review(ctx, req.Task, candidates, judges, opts.Anonymize, req.Events)
		out.Meta.ReviewTime = time.Since(revStart)
		out.Meta.VerdictCount = len(rev.verdicts)
		out.Meta.Unparseable = rev.unparseable
		out.Meta.FailedCalls = rev.failed

		if len(rev.verdicts) > 0 {
			names := make([]string, len(candidates))
			for i, c := range candidates {
				names[i] = c.Role
			}
			flat := make([]rank.Verdict, len(rev.verdicts))
			for i, v := range rev.verdicts {
				flat[i] = rank.Verdict{A: v.CandA, B: v.CandB, Margin: v.Margin}
			}
			for _, agg := range rank.Methods() {
				scores := agg.Score(flat, names)
				out.AggregationScores[agg.Name()] = scores
				if agg.Name() == "bradley_terry" {
					out.Meta.UnscoredBT = scores.Unscored
				}
			}
		}
	}

	// Stage 3: synthesis.
	if opts.OutputMode != ModePerspectives && len(candidates) > 0 && ctx.Err() == nil {
		synStart := time.Now()
		synthesis, err := e.synthesize(ctx, req.Task, candidates, out.AggregationScores, opts.ChairmanModel, opts.Anonymize)
		out.Meta.SynthesisTime = time.Since(synStart)
		if err != nil {
			e.log.Error("[Council] Synthesis failed: %v", err)
		} else {
			out.Synthesis = synthesis
			req.Events.emit(Event{Type: EventSynthesisCompleted})
		}
	}

	return out, nil
}

// normalizeOptions fills the documented defaults for omitted fields.
func normalizeOptions(opts Options) Options {
	if opts.OutputMode == "" {
		opts.OutputMode = ModeBoth
	}
	if opts.Aggregation == "" {
		opts.Aggregation = "borda"
	}
	return opts
}

// validate checks the request shape; failures surface as ErrInvalidRequest.
func validate(req Request) error {
	if req.Task == "" {
		return fmt.Errorf("%w: task is empty", ErrInvalidRequest)
	}
	if len(req.Roles) < 2 {
		return fmt.Errorf("%w: need at least 2 roles, got %d", ErrInvalidRequest, len(req.Roles))
	}
	seen := make(map[string]bool, len(req.Roles))
	for i, r := range req.Roles {
		if r.Name == "" {
			return fmt.Errorf("%w: role %d has no name", ErrInvalidRequest, i)
		}
		if r.Model == "" {
			return fmt.Errorf("%w: role %q has no model", ErrInvalidRequest, r.Name)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: duplicate role name %q", ErrInvalidRequest, r.Name)
		}
		seen[r.Name] = true
	}
	opts := req.Options
	if opts.OutputMode != "" && opts.OutputMode != ModePerspectives && opts.OutputMode != ModeSynthesis && opts.OutputMode != ModeBoth {
		return fmt.Errorf("%w: unknown output mode %q", ErrInvalidRequest, opts.OutputMode)
	}
	if opts.OutputMode != ModePerspectives && opts.ChairmanModel == "" {
		return fmt.Errorf("%w: chairman model required for synthesis", ErrInvalidRequest)
	}
	switch opts.Aggregation {
	case "", "borda", "bradley_terry", "elo":
	default:
		return fmt.Errorf("%w: unknown aggregation %q", ErrInvalidRequest, opts.Aggregation)
	}
	for _, name := range opts.Reviewers {
		if !seen[name] {
			return fmt.Errorf("%w: reviewer %q is not a role", ErrInvalidRequest, name)
		}
	}
	return nil
}

// selectJudges resolves the judge set: the requested reviewer subset, or all
// successful roles when none was given. Judges must have succeeded at
// generation; a failed role cannot judge.
func selectJudges(roles []Role, candidates []Answer, reviewers []string) []Role {
	succeeded := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		succeeded[c.Role] = true
	}

	wanted := succeeded
	if len(reviewers) > 0 {
		wanted = make(map[string]bool, len(reviewers))
		for _, name := range reviewers {
			if succeeded[name] {
				wanted[name] = true
			}
		}
	}

	var judges []Role
	for _, r := range roles {
		if wanted[r.Name] {
			judges = append(judges, r)
		}
	}
	return judges
}
