// File: internal/timeline/order_test.go
package timeline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
)

func positioned(t float64, facets Facet, key int) Event {
	return Event{Time: t, Position: schemas.Vector2D{X: 10, Y: 10}, HasPosition: true, Facets: facets, Key: key}
}

func marker(t float64, facets Facet) Event {
	return Event{Time: t, Facets: facets}
}

func TestOrderPolicy_Compare(t *testing.T) {
	tests := []struct {
		name   string
		policy OrderPolicy
		a, b   Event
		want   int
	}{
		{"earlier time first", CanonicalOrder, positioned(10, 0, 0), positioned(20, FacetCircleHit, 1), -1},
		{"later time last", CanonicalOrder, positioned(30, FacetCircleHit, 1), positioned(20, 0, 0), 1},
		{"spin start first", CanonicalOrder, marker(10, FacetSpinStart), positioned(10, FacetCircleHit, 1), -1},
		{"legacy spin start last", LegacyOrder, marker(10, FacetSpinStart), positioned(10, FacetCircleHit, 1), 1},
		{"circle hit before tick", CanonicalOrder, positioned(10, FacetHoldTick|FacetHoldSlide, 0), positioned(10, FacetCircleHit, 3), 1},
		{"lower key first", CanonicalOrder, positioned(10, FacetCircleHit, 2), positioned(10, FacetCircleHit, 5), -1},
		{"zero key after real key", CanonicalOrder, positioned(10, FacetHoldEnd, 0), positioned(10, FacetHoldSlide, 4), 1},
		{"tick before end", CanonicalOrder, positioned(10, FacetHoldTick|FacetHoldSlide, 0), positioned(10, FacetHoldEnd, 0), -1},
		{"end before slide", CanonicalOrder, positioned(10, FacetHoldEnd, 0), positioned(10, FacetHoldSlide, 0), -1},
		{"slide before bare", CanonicalOrder, positioned(10, FacetHoldSlide, 0), positioned(10, 0, 0), -1},
		{"spin end last", CanonicalOrder, marker(10, FacetSpinEnd), positioned(10, 0, 0), 1},
		{"legacy spin end first", LegacyOrder, marker(10, FacetSpinEnd), positioned(10, 0, 0), -1},
		{"interchangeable", CanonicalOrder, positioned(10, FacetHoldSlide, 0), positioned(10, FacetHoldSlide, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, tt.policy.Compare(tt.b, tt.a), "comparison must be antisymmetric")
		})
	}
}

func TestTimeline_InsertKeepsEqualEventsInInsertionOrder(t *testing.T) {
	tl := New(CanonicalOrder)
	first := positioned(100, FacetHoldSlide, 0)
	second := first
	second.Position = schemas.Vector2D{X: 99, Y: 99}

	assert.Equal(t, 0, tl.Insert(first))
	assert.Equal(t, 1, tl.Insert(second))
	assert.Equal(t, 0, tl.Insert(positioned(50, 0, 0)))

	require.Equal(t, 3, tl.Len())
	assert.Equal(t, first, tl.Events()[1])
	assert.Equal(t, second, tl.Events()[2])
}

// randomEvent draws from a small space of times and facets so collisions are frequent.
func randomEvent(r *rand.Rand) Event {
	t := float64(r.Intn(6) * 10)
	switch r.Intn(7) {
	case 0:
		return marker(t, FacetSpinStart)
	case 1:
		return marker(t, FacetSpinEnd)
	case 2:
		return positioned(t, FacetCircleHit, 1+r.Intn(4))
	case 3:
		return positioned(t, FacetCircleHit|FacetHoldSlide|FacetHoldTick, 1+r.Intn(4))
	case 4:
		return positioned(t, FacetHoldTick|FacetHoldSlide, 0)
	case 5:
		return positioned(t, FacetHoldEnd|FacetHoldTick, 0)
	default:
		return positioned(t, FacetHoldSlide, r.Intn(2))
	}
}

func TestTimeline_SortInvariantUnderPermutation(t *testing.T) {
	for _, policy := range []OrderPolicy{CanonicalOrder, LegacyOrder} {
		r := rand.New(rand.NewSource(1))
		for round := 0; round < 200; round++ {
			events := make([]Event, 3+r.Intn(30))
			for i := range events {
				events[i] = randomEvent(r)
			}

			tl := New(policy)
			for _, i := range r.Perm(len(events)) {
				tl.Insert(events[i])
			}

			require.Equal(t, len(events), tl.Len())
			require.NoError(t, tl.Verify(), "round %d", round)
		}
	}
}

func TestTimeline_VerifyReportsDisorder(t *testing.T) {
	tl := New(CanonicalOrder)
	tl.events = []Event{positioned(20, 0, 0), positioned(10, 0, 0)}
	err := tl.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}

func TestEvent_DerivedFacets(t *testing.T) {
	hit := positioned(0, FacetCircleHit, 1)
	assert.True(t, hit.IsEngage())
	assert.True(t, hit.IsRelease())
	assert.False(t, hit.IsHold())

	entry := positioned(0, FacetCircleHit|FacetHoldSlide|FacetHoldTick, 1)
	assert.True(t, entry.IsEngage())
	assert.True(t, entry.IsHold())
	assert.False(t, entry.IsRelease())

	end := positioned(0, FacetHoldEnd|FacetHoldTick, 0)
	assert.True(t, end.IsRelease())

	start := marker(0, FacetSpinStart)
	assert.True(t, start.IsMarker())
	assert.True(t, start.IsHold())
	assert.Equal(t, "spin-start", start.Facets.String())
	assert.Equal(t, "none", Facet(0).String())
}
