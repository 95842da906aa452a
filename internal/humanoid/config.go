// File: internal/humanoid/config.go
package humanoid

import "fmt"

// Config holds the trajectory humanizer parameters. Times are in milliseconds and
// distances in playfield units.
type Config struct {
	// Step is the resampling interval between raw samples.
	Step float64
	// JumpGuard is the smallest gap between raw samples that still gets interpolated.
	// Values below Step are raised to Step.
	JumpGuard float64

	// Bounce reflects interpolated positions that leave the playfield back inside.
	Bounce bool
	// NoiseAmplitude scales the Perlin drift applied to interpolated positions.
	NoiseAmplitude float64
	NoiseFrequency float64
	Seed           int64

	// CoerceCircles pulls the approach onto a fresh press to within CoerceRadius.
	CoerceCircles bool
	// CoerceHolds interpolates linearly while one button stays pressed.
	CoerceHolds  bool
	CoerceRadius float64
}

// DefaultConfig returns the humanizer parameters used by the spline presets.
func DefaultConfig() Config {
	return Config{
		Step:           25,
		JumpGuard:      80,
		NoiseFrequency: 0.0008,
		CoerceRadius:   16,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("humanizer step must be positive, got %v", c.Step)
	}
	if c.JumpGuard < 0 {
		return fmt.Errorf("humanizer jump guard must not be negative, got %v", c.JumpGuard)
	}
	if c.NoiseAmplitude < 0 || c.NoiseFrequency < 0 {
		return fmt.Errorf("noise amplitude and frequency must not be negative")
	}
	if c.CoerceRadius < 0 {
		return fmt.Errorf("coerce radius must not be negative, got %v", c.CoerceRadius)
	}
	return nil
}

// threshold is the effective jump-guard gap.
func (c Config) threshold() float64 {
	if c.JumpGuard < c.Step {
		return c.Step
	}
	return c.JumpGuard
}
