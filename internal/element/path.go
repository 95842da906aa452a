// File: internal/element/path.go
package element

import (
	"math"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
)

// Path is a polyline approximation of a hold path's curve in local (unstacked)
// playfield coordinates. The first point is the path head.
type Path struct {
	Points []schemas.Vector2D
}

// Length returns the arc length of the polyline.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i].Dist(p.Points[i-1])
	}
	return total
}

// PositionAt returns the local position at the given fraction of the path's arc
// length. Progress is clamped to [0, 1].
func (p Path) PositionAt(progress float64) schemas.Vector2D {
	switch len(p.Points) {
	case 0:
		return schemas.Vector2D{}
	case 1:
		return p.Points[0]
	}

	progress = math.Max(0, math.Min(1, progress))
	remaining := progress * p.Length()
	for i := 1; i < len(p.Points); i++ {
		from, to := p.Points[i-1], p.Points[i]
		l := to.Dist(from)
		if l == 0 {
			continue
		}
		if remaining <= l {
			return from.Lerp(to, remaining/l)
		}
		remaining -= l
	}
	return p.Points[len(p.Points)-1]
}
