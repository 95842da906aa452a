// File: internal/preset/preset.go
package preset

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/autoplay-cli/internal/autoplay"
	"github.com/xkilldash9x/autoplay-cli/internal/config"
	"github.com/xkilldash9x/autoplay-cli/internal/timeline"
)

// Preset names a bundle of generator options.
type Preset int

const (
	// Default follows holds and releases lazily, without humanization.
	Default Preset = iota
	// Stiff emits the raw timeline with no hold following, for timing debugging.
	Stiff
	// Playful smooths the trajectory with a cubic spline bouncing off the borders.
	Playful
	// Playerlike bundles hits, follows holds and reacts with a preempt-relative delay.
	Playerlike
	// RuleBreaker smooths everything, ignoring hold paths.
	RuleBreaker
)

type info struct {
	name        string
	description string
}

var registry = map[Preset]info{
	Default:     {"default", "Default"},
	Stiff:       {"stiff", "Abstract timing debug"},
	Playful:     {"playful", "Cubic spline with border bounce"},
	Playerlike:  {"player-like", "Player-like"},
	RuleBreaker: {"rule-breaker", "Rule breaker"},
}

// All lists the presets in declaration order.
func All() []Preset {
	return []Preset{Default, Stiff, Playful, Playerlike, RuleBreaker}
}

func (p Preset) String() string {
	if i, ok := registry[p]; ok {
		return i.name
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// Description returns the human-readable label of the preset.
func (p Preset) Description() string {
	return registry[p].description
}

// Parse resolves a preset by name or description, ignoring case and treating spaces,
// dashes and underscores alike.
func Parse(s string) (Preset, error) {
	key := normalize(s)
	for _, p := range All() {
		i := registry[p]
		if key == normalize(i.name) || key == normalize(i.description) {
			return p, nil
		}
	}
	return Default, fmt.Errorf("unknown preset %q", s)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Options returns the generator options of the preset.
func Options(p Preset) (autoplay.Options, error) {
	opts := autoplay.DefaultOptions()
	switch p {
	case Default:
	case Stiff:
		opts.Builder.Follow = false
		opts.Synth.ReleaseWait = 150
		opts.Synth.ReleaseDelay = 50
	case Playful:
		opts.Humanize = true
		opts.Humanizer.Bounce = true
	case Playerlike:
		opts.Humanize = true
		opts.Humanizer.Bounce = true
		opts.Humanizer.CoerceCircles = true
		opts.Humanizer.CoerceHolds = true
		opts.Humanizer.NoiseAmplitude = 2
		opts.Synth.ReactionTime = -0.2
	case RuleBreaker:
		opts.Builder.Follow = false
		opts.Humanize = true
		opts.Humanizer.CoerceCircles = true
		opts.Synth.ReactionTime = 0
	default:
		return opts, fmt.Errorf("unknown preset %d", int(p))
	}
	return opts, nil
}

// Resolve builds the options selected by a generator configuration: the named preset
// with the configured seed and any overrides applied.
func Resolve(cfg config.GeneratorConfig) (Preset, autoplay.Options, error) {
	p, err := Parse(cfg.Preset)
	if err != nil {
		return p, autoplay.Options{}, err
	}
	opts, err := Options(p)
	if err != nil {
		return p, opts, err
	}
	opts.Humanizer.Seed = cfg.Seed
	Apply(&opts, cfg.Overrides)
	if err := opts.Validate(); err != nil {
		return p, opts, fmt.Errorf("preset %s with overrides: %w", p, err)
	}
	return p, opts, nil
}

// Apply copies every set override into opts.
func Apply(opts *autoplay.Options, o config.OverrideConfig) {
	setFloat(&opts.Synth.ReactionTime, o.ReactionTime)
	setFloat(&opts.Synth.ReleaseWait, o.ReleaseWait)
	setFloat(&opts.Synth.ReleaseDelay, o.ReleaseDelay)
	setFloat(&opts.Synth.AntiRebindOffset, o.AntiRebindOffset)
	setFloat(&opts.Synth.AntiRebindTime, o.AntiRebindTime)
	setFloat(&opts.Synth.SpinRadius, o.SpinRadius)
	setFloat(&opts.Synth.SpinRate, o.SpinRate)

	setBool(&opts.Builder.Follow, o.Follow)
	setFloat(&opts.Builder.FollowInterval, o.FollowInterval)
	if o.LegacyOrdering != nil {
		opts.Builder.Policy = timeline.CanonicalOrder
		if *o.LegacyOrdering {
			opts.Builder.Policy = timeline.LegacyOrder //nolint:staticcheck
		}
	}

	setBool(&opts.Humanize, o.Humanize)
	setBool(&opts.Humanizer.Bounce, o.Bounce)
	setFloat(&opts.Humanizer.Step, o.Step)
	setFloat(&opts.Humanizer.JumpGuard, o.JumpGuard)
	setFloat(&opts.Humanizer.NoiseAmplitude, o.NoiseAmplitude)
	setBool(&opts.Humanizer.CoerceCircles, o.CoerceCircles)
	setBool(&opts.Humanizer.CoerceHolds, o.CoerceHolds)
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
