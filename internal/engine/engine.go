package engine

import (
	"context"
	"log/slog"

	"github.com/harulab/AibouCheck/internal/models"
)

// Opts holds configuration options for the engine.
type Opts struct {
	Scheme      TierScheme
	Policy      ClassifyPolicy
	Supplements *SupplementGenerator
}

// Option defines a configuration option for the engine.
type Option func(*Opts)

// WithTierScheme selects the play-time bucketing scheme.
func WithTierScheme(scheme TierScheme) Option {
	return func(o *Opts) { o.Scheme = scheme }
}

// WithClassifyPolicy selects the pooled-text or per-axis policy.
func WithClassifyPolicy(policy ClassifyPolicy) Option {
	return func(o *Opts) { o.Policy = policy }
}

// WithSupplements enables GenAI supplemental remarks. Without this
// option replies are fully deterministic.
func WithSupplements(sg *SupplementGenerator) Option {
	return func(o *Opts) { o.Supplements = sg }
}

// Engine is the reply orchestrator. It is safe for concurrent use: all
// lexicon and template tables are read-only.
type Engine struct {
	scheme      TierScheme
	policy      ClassifyPolicy
	supplements *SupplementGenerator
}

// New creates an engine with the canonical defaults: three-tier play
// time, pooled-text classification, no supplements.
func New(opts ...Option) *Engine {
	cfg := Opts{Scheme: ThreeTier, Policy: PolicyPooled}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{scheme: cfg.Scheme, policy: cfg.Policy, supplements: cfg.Supplements}
}

// GenerateHealthReply classifies the four answers and composes the
// persona reply. The reply path is total: it always returns usable
// text, for any tone id and any answer strings including empty ones.
// Failures along the way (parse miss, classification miss, unknown
// tone, missing template entry, supplement failure) only ever shrink
// the output, never abort it.
func (e *Engine) GenerateHealthReply(ctx context.Context, tone models.Tone, answers models.AnswerSet) string {
	minutes, found := ExtractPlayMinutes(answers.PlayTime)
	if !found {
		slog.Debug("no play duration found in answer, defaulting to zero minutes")
	}

	tags := Tags{PlayTime: ClassifyPlayTime(minutes, e.scheme)}
	tags.Condition, tags.Sleep, tags.Mood = ClassifyAnswers(answers, e.policy)

	slog.Debug("answers classified",
		"tone", tone,
		"minutes", minutes,
		"play_time", tags.PlayTime,
		"condition", tags.Condition,
		"sleep", tags.Sleep,
		"mood", tags.Mood)

	var supplements []string
	if e.supplements != nil {
		supplements = e.supplements.Generate(ctx, tone, answers)
	}

	return Compose(tone, tags, supplements)
}
