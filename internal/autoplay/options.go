// File: internal/autoplay/options.go
package autoplay

import (
	"fmt"

	"github.com/xkilldash9x/autoplay-cli/internal/humanoid"
	"github.com/xkilldash9x/autoplay-cli/internal/synth"
	"github.com/xkilldash9x/autoplay-cli/internal/timeline"
)

// Options bundles the parameters of every pipeline stage.
type Options struct {
	Builder timeline.BuilderConfig
	Synth   synth.Config
	// Humanize enables spline resampling of the synthesized samples.
	Humanize  bool
	Humanizer humanoid.Config
}

// DefaultOptions returns the stage defaults with humanization disabled.
func DefaultOptions() Options {
	return Options{
		Builder:   timeline.DefaultBuilderConfig(),
		Synth:     synth.DefaultConfig(),
		Humanizer: humanoid.DefaultConfig(),
	}
}

// Validate checks every stage's parameters.
func (o Options) Validate() error {
	if err := o.Builder.Validate(); err != nil {
		return fmt.Errorf("timeline options invalid: %w", err)
	}
	if err := o.Synth.Validate(); err != nil {
		return fmt.Errorf("synth options invalid: %w", err)
	}
	if o.Humanize {
		if err := o.Humanizer.Validate(); err != nil {
			return fmt.Errorf("humanizer options invalid: %w", err)
		}
	}
	return nil
}
