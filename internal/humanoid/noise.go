// File: internal/humanoid/noise.go
package humanoid

import (
	"github.com/aquilax/go-perlin"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
)

// Standard Perlin parameters.
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = int32(3)
)

// drift is a deterministic two-axis Perlin displacement over time.
type drift struct {
	x, y      *perlin.Perlin
	amplitude float64
	frequency float64
}

func newDrift(seed int64, amplitude, frequency float64) *drift {
	return &drift{
		x:         perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed),
		y:         perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed+1), // Offset seed for Y noise
		amplitude: amplitude,
		frequency: frequency,
	}
}

// At returns the displacement at time t.
func (d *drift) At(t float64) schemas.Vector2D {
	if d == nil || d.amplitude == 0 {
		return schemas.Vector2D{}
	}
	return schemas.Vector2D{
		X: d.x.Noise1D(t*d.frequency) * d.amplitude,
		Y: d.y.Noise1D(t*d.frequency) * d.amplitude,
	}
}
