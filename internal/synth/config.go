// File: internal/synth/config.go
package synth

import (
	"fmt"

	"github.com/xkilldash9x/autoplay-cli/internal/element"
)

// FallbackReactionTime is used for a relative reaction time when no element carries a
// usable preempt.
const FallbackReactionTime = 80.0

// Config holds the action synthesizer parameters. Times are in milliseconds.
type Config struct {
	// ReactionTime is added to ReleaseWait and drives the anti-rebind samples. A
	// negative value is a fraction of the first element's preempt; see ResolveReaction.
	ReactionTime float64
	// ReleaseWait is the minimum gap after a release-eligible event before the button
	// is let go.
	ReleaseWait float64
	// ReleaseDelay places the release sample after the last event.
	ReleaseDelay float64

	AntiRebindOffset float64
	// AntiRebindTime is the minimum idle span required before anti-rebind samples are added.
	AntiRebindTime float64

	SpinRadius float64
	// SpinRate is the spin angular velocity in radians per millisecond.
	SpinRate float64
	SpinStep float64
}

// DefaultConfig returns the parameters of the default preset.
func DefaultConfig() Config {
	return Config{
		ReactionTime:     0,
		ReleaseWait:      350,
		ReleaseDelay:     120,
		AntiRebindOffset: 15,
		AntiRebindTime:   40,
		SpinRadius:       50,
		SpinRate:         0.05,
		SpinStep:         10,
	}
}

// Validate checks the parameters for consistency.
func (c Config) Validate() error {
	if c.ReleaseWait < 0 || c.ReleaseDelay < 0 {
		return fmt.Errorf("release wait and delay must not be negative")
	}
	if c.ReleaseDelay > c.ReleaseWait {
		return fmt.Errorf("release delay (%v) must not exceed release wait (%v)", c.ReleaseDelay, c.ReleaseWait)
	}
	if c.SpinStep <= 0 {
		return fmt.Errorf("spin step must be positive, got %v", c.SpinStep)
	}
	if c.AntiRebindOffset < 0 || c.AntiRebindTime < 0 {
		return fmt.Errorf("anti-rebind offset and time must not be negative")
	}
	return nil
}

// ResolveReaction returns a copy of c with an absolute reaction time. A negative
// reaction time is scaled by the first positive preempt among elements.
func (c Config) ResolveReaction(elements []element.Element) Config {
	if c.ReactionTime >= 0 {
		return c
	}
	if preempt, ok := element.FirstPreempt(elements); ok {
		c.ReactionTime = -c.ReactionTime * preempt
	} else {
		c.ReactionTime = FallbackReactionTime
	}
	return c
}
