// File: internal/timeline/tracker.go
package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
	"github.com/xkilldash9x/autoplay-cli/internal/element"
)

// ErrNoCheckpoints is returned when a hold path has nothing to track.
var ErrNoCheckpoints = errors.New("hold path has no usable checkpoints")

// Sample is one (time, position) point emitted by a Tracker.
type Sample struct {
	Time     float64
	Position schemas.Vector2D
	// Legacy marks the synthetic legacy scoring sample.
	Legacy bool
	// Final marks the tail sample; the tracker is done after emitting it.
	Final bool
}

// Tracker enumerates a hold path's internal checkpoints after its entry as a strictly
// time-monotonic stream, ending with the tail sample.
//
// It is a pull-based generator: the next tick or repeat checkpoint is held in a
// buffered slot, and a pending legacy sample is emitted ahead of it whenever it falls
// earlier in time.
type Tracker struct {
	path   *element.HoldPath
	cursor int

	buffered    *Sample
	legacy      *Sample
	lastEmitted float64

	peeked *Sample
	done   bool
}

// NewTracker initializes a tracker at the path's entry point.
func NewTracker(path *element.HoldPath) (*Tracker, error) {
	t := &Tracker{
		path:        path,
		lastEmitted: path.StartTime(),
	}
	if path.HasLegacySample() {
		length := path.Duration()
		progress := math.Max(0.5, (length-path.LegacyLastTickOffset)/length)
		t.legacy = &Sample{
			Time:     path.StartTime() + length*progress,
			Position: path.PositionAt(progress),
			Legacy:   true,
		}
	}
	if len(path.Checkpoints) == 0 && t.legacy == nil {
		return nil, fmt.Errorf("element %d: %w", path.Index(), ErrNoCheckpoints)
	}
	return t, nil
}

// Path returns the tracked hold path.
func (t *Tracker) Path() *element.HoldPath { return t.path }

// Done reports whether the tail sample has been emitted.
func (t *Tracker) Done() bool { return t.done && t.peeked == nil }

// Peek returns the next sample without consuming it.
func (t *Tracker) Peek() (Sample, bool) {
	if t.peeked == nil {
		if t.done {
			return Sample{}, false
		}
		s := t.pull()
		t.peeked = &s
	}
	return *t.peeked, true
}

// Next consumes and returns the next sample. ok is false once the tracker is done.
func (t *Tracker) Next() (Sample, bool) {
	s, ok := t.Peek()
	if ok {
		t.peeked = nil
	}
	return s, ok
}

// pull produces the next sample. It must not be called after the tail.
func (t *Tracker) pull() Sample {
	if t.buffered == nil {
		t.buffered = t.nextCheckpoint()
	}

	if t.legacy != nil {
		switch {
		case t.buffered == nil || t.legacy.Time < t.buffered.Time:
			return t.emitLegacy()
		case t.legacy.Time == t.buffered.Time:
			// A coincident checkpoint stands in for the legacy sample.
			t.legacy = nil
		}
	}

	if t.buffered != nil {
		s := *t.buffered
		t.buffered = nil
		t.lastEmitted = s.Time
		return s
	}

	t.done = true
	return Sample{
		Time:     t.path.EndTime(),
		Position: t.path.EndPosition(),
		Final:    true,
	}
}

func (t *Tracker) emitLegacy() Sample {
	s := *t.legacy
	t.legacy = nil
	t.lastEmitted = s.Time
	return s
}

// nextCheckpoint advances the cursor to the next tick or repeat strictly between the
// last emitted time and the path end. Heads, tails and anything else are skipped.
func (t *Tracker) nextCheckpoint() *Sample {
	for t.cursor < len(t.path.Checkpoints) {
		cp := t.path.Checkpoints[t.cursor]
		t.cursor++
		if cp.Kind != element.CheckpointTick && cp.Kind != element.CheckpointRepeat {
			continue
		}
		if cp.Time <= t.lastEmitted || cp.Time >= t.path.EndTime() {
			continue
		}
		return &Sample{Time: cp.Time, Position: t.path.Absolute(cp.Position)}
	}
	return nil
}
