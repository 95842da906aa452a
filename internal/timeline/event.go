// File: internal/timeline/event.go
package timeline

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
)

// Facet is a bit in an event's facet set.
type Facet uint8

const (
	FacetCircleHit Facet = 1 << iota
	FacetHoldSlide
	FacetHoldTick
	FacetHoldEnd
	FacetSpinStart
	FacetSpinEnd
)

var facetNames = []struct {
	f    Facet
	name string
}{
	{FacetCircleHit, "circle-hit"},
	{FacetHoldSlide, "hold-slide"},
	{FacetHoldTick, "hold-tick"},
	{FacetHoldEnd, "hold-end"},
	{FacetSpinStart, "spin-start"},
	{FacetSpinEnd, "spin-end"},
}

func (f Facet) String() string {
	var parts []string
	for _, n := range facetNames {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event is an abstract timeline entry synthesized from gameplay elements, prior to
// becoming an input sample.
type Event struct {
	Time float64
	// Position is meaningless when HasPosition is false (spin markers).
	Position    schemas.Vector2D
	HasPosition bool
	Facets      Facet
	// Key is the originating element's 1-based index, 0 for synthetic events.
	Key int
}

func (e Event) Has(f Facet) bool { return e.Facets&f != 0 }

func (e Event) CircleHit() bool { return e.Has(FacetCircleHit) }
func (e Event) HoldSlide() bool { return e.Has(FacetHoldSlide) }
func (e Event) HoldTick() bool  { return e.Has(FacetHoldTick) }
func (e Event) HoldEnd() bool   { return e.Has(FacetHoldEnd) }
func (e Event) SpinStart() bool { return e.Has(FacetSpinStart) }
func (e Event) SpinEnd() bool   { return e.Has(FacetSpinEnd) }

// IsEngage reports whether the event requires a fresh button press.
func (e Event) IsEngage() bool { return e.CircleHit() }

// IsHold reports whether a button must stay down through the event.
func (e Event) IsHold() bool { return e.HoldSlide() || e.SpinStart() }

// IsRelease reports whether the button may be let go after the event.
func (e Event) IsRelease() bool {
	return (e.CircleHit() || e.HoldEnd() || e.SpinEnd()) && !e.IsHold()
}

// IsMarker reports whether the event only delimits a spin session and carries no position.
func (e Event) IsMarker() bool { return !e.HasPosition }

func (e Event) String() string {
	if !e.HasPosition {
		return fmt.Sprintf("{%.2f <marker> %s key=%d}", e.Time, e.Facets, e.Key)
	}
	return fmt.Sprintf("{%.2f (%.1f,%.1f) %s key=%d}", e.Time, e.Position.X, e.Position.Y, e.Facets, e.Key)
}
