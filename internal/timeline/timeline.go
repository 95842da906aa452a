// File: internal/timeline/timeline.go
package timeline

import (
	"fmt"
	"sort"
)

// Timeline is an ordered sequence of events, kept sorted under its OrderPolicy.
// Insertion places each event after every event it does not sort before, so
// interchangeable events keep their insertion order.
type Timeline struct {
	policy OrderPolicy
	events []Event
}

// New creates an empty timeline ordered by policy.
func New(policy OrderPolicy) *Timeline {
	return &Timeline{policy: policy}
}

// Insert adds an event at its sorted position and returns that position.
func (t *Timeline) Insert(e Event) int {
	i := sort.Search(len(t.events), func(i int) bool {
		return t.policy.Compare(e, t.events[i]) < 0
	})
	t.events = append(t.events, Event{})
	copy(t.events[i+1:], t.events[i:])
	t.events[i] = e
	return i
}

// Len returns the number of events.
func (t *Timeline) Len() int { return len(t.events) }

// Events returns the ordered events. The slice must not be modified.
func (t *Timeline) Events() []Event { return t.events }

// Policy returns the ordering policy of the timeline.
func (t *Timeline) Policy() OrderPolicy { return t.policy }

// Verify checks that every adjacent pair of events satisfies the ordering.
func (t *Timeline) Verify() error {
	for i := 1; i < len(t.events); i++ {
		if t.policy.Compare(t.events[i-1], t.events[i]) > 0 {
			return fmt.Errorf("events %d and %d out of order: %s before %s", i-1, i, t.events[i-1], t.events[i])
		}
	}
	return nil
}
