// File: internal/humanoid/bounds.go
package humanoid

import (
	"math"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
)

// reflect folds v back into [0, limit] as if it bounced off the edges.
func reflect(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	period := 2 * limit
	v = math.Mod(v, period)
	if v < 0 {
		v += period
	}
	if v > limit {
		v = period - v
	}
	return v
}

// bounce keeps p inside the playfield by reflecting each axis at the borders.
func bounce(p schemas.Vector2D) schemas.Vector2D {
	return schemas.Vector2D{
		X: reflect(p.X, schemas.PlayfieldWidth),
		Y: reflect(p.Y, schemas.PlayfieldHeight),
	}
}

// pullWithin moves p toward target until it is at most radius away.
func pullWithin(p, target schemas.Vector2D, radius float64) schemas.Vector2D {
	offset := p.Sub(target)
	if offset.Mag() <= radius {
		return p
	}
	return target.Add(offset.Normalize().Mul(radius))
}
