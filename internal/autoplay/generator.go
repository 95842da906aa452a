// File: internal/autoplay/generator.go
package autoplay

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
	"github.com/xkilldash9x/autoplay-cli/internal/element"
	"github.com/xkilldash9x/autoplay-cli/internal/humanoid"
	"github.com/xkilldash9x/autoplay-cli/internal/observability"
	"github.com/xkilldash9x/autoplay-cli/internal/synth"
	"github.com/xkilldash9x/autoplay-cli/internal/timeline"
)

// Result is the outcome of one generation run.
type Result struct {
	RunID string `json:"run_id"`
	// Events is the number of timeline events the samples were synthesized from.
	Events  int                    `json:"events"`
	Samples []schemas.ActionSample `json:"samples"`
}

// Generator runs the element → timeline → samples pipeline. It holds no per-run state,
// so one Generator may serve concurrent callers.
type Generator struct {
	logger *zap.Logger
	sink   observability.Sink
}

// NewGenerator creates a generator. A nil logger falls back to a no-op logger and a
// nil sink discards diagnostics.
func NewGenerator(logger *zap.Logger, sink observability.Sink) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		logger: logger.Named("autoplay"),
		sink:   observability.OrNop(sink),
	}
}

// Generate turns elements, sorted by start time, into action samples. An empty element
// list yields an empty result.
func (g *Generator) Generate(elements []element.Element, opts Options) (Result, error) {
	res := Result{RunID: uuid.New().String()}
	logger := g.logger.With(zap.String("run_id", res.RunID))

	if err := opts.Validate(); err != nil {
		return res, err
	}
	if len(elements) == 0 {
		logger.Debug("No elements to generate from.")
		return res, nil
	}
	if err := element.Validate(elements); err != nil {
		return res, fmt.Errorf("invalid elements: %w", err)
	}

	start := time.Now()
	tl, err := timeline.NewBuilder(opts.Builder, g.sink).Build(elements)
	if err != nil {
		return res, fmt.Errorf("failed to build timeline: %w", err)
	}
	res.Events = tl.Len()

	synthCfg := opts.Synth.ResolveReaction(elements)
	s, err := synth.New(synthCfg, g.sink)
	if err != nil {
		return res, fmt.Errorf("failed to create synthesizer: %w", err)
	}
	res.Samples = s.Synthesize(tl)

	if opts.Humanize {
		h, err := humanoid.New(opts.Humanizer, g.sink)
		if err != nil {
			return res, fmt.Errorf("failed to create humanizer: %w", err)
		}
		if res.Samples, err = h.Humanize(res.Samples); err != nil {
			return res, fmt.Errorf("failed to humanize samples: %w", err)
		}
	}

	logger.Debug("Generation complete.",
		zap.Int("elements", len(elements)),
		zap.Int("events", res.Events),
		zap.Int("samples", len(res.Samples)),
		zap.Float64("reaction_ms", synthCfg.ReactionTime),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}
