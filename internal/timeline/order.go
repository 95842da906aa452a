// File: internal/timeline/order.go
package timeline

// OrderPolicy selects the tie-break direction of spin markers among same-time events.
// Every other rule of the ordering is fixed.
type OrderPolicy struct {
	// SpinStartLast sorts spin-start markers after other same-time events.
	SpinStartLast bool
	// SpinEndFirst sorts spin-end markers before the remaining same-time events.
	SpinEndFirst bool
}

var (
	// CanonicalOrder starts a spin ahead of colliding events and ends it after them.
	CanonicalOrder = OrderPolicy{}

	// LegacyOrder reproduces the earlier generator, which spun on the last frame of a
	// time collision and ended spins first.
	//
	// Deprecated: retained to reproduce old output; use CanonicalOrder.
	LegacyOrder = OrderPolicy{SpinStartLast: true, SpinEndFirst: true}
)

// preferFirst orders events on a single facet: -1 when only a has it, 1 when only b
// has it, 0 otherwise.
func preferFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

// Compare is the total order of the timeline. It returns a negative number when a
// sorts before b, positive when after, and 0 when the events are interchangeable.
func (p OrderPolicy) Compare(a, b Event) int {
	if a.Time < b.Time {
		return -1
	}
	if a.Time > b.Time {
		return 1
	}

	if c := preferFirst(a.SpinStart(), b.SpinStart()); c != 0 {
		if p.SpinStartLast {
			return -c
		}
		return c
	}

	// Hits go ahead of everything else at the same instant, reproducing note lock.
	if c := preferFirst(a.CircleHit(), b.CircleHit()); c != 0 {
		return c
	}

	// Synthetic events (key 0) never displace real hits.
	if a.Key != b.Key {
		switch {
		case a.Key == 0:
			return 1
		case b.Key == 0:
			return -1
		case a.Key < b.Key:
			return -1
		default:
			return 1
		}
	}

	if c := preferFirst(a.HoldTick(), b.HoldTick()); c != 0 {
		return c
	}
	if c := preferFirst(a.HoldEnd(), b.HoldEnd()); c != 0 {
		return c
	}
	// Prefer continuing a hold over popping out for a trailing hit.
	if c := preferFirst(a.HoldSlide(), b.HoldSlide()); c != 0 {
		return c
	}

	if c := preferFirst(a.SpinEnd(), b.SpinEnd()); c != 0 {
		if p.SpinEndFirst {
			return c
		}
		return -c
	}

	return 0
}
