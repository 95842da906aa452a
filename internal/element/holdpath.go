// File: internal/element/holdpath.go
package element

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
)

// ErrMalformedHoldPath is returned for hold paths that cannot be tracked.
var ErrMalformedHoldPath = errors.New("malformed hold path")

// CheckpointKind classifies a hold path's internal timed sub-points.
type CheckpointKind uint8

const (
	CheckpointHead CheckpointKind = iota + 1
	CheckpointTick
	CheckpointRepeat
	CheckpointTail
)

// Checkpoint is a timed sub-point of a hold path. Position is in local (unstacked)
// space; add the owning path's StackOffset to get absolute coordinates.
type Checkpoint struct {
	Kind     CheckpointKind
	Time     float64
	Position schemas.Vector2D
}

// HoldPath is a hold-and-drag element: the button is held from StartTime to EndTime
// while the cursor follows Path, possibly back and forth RepeatCount times.
type HoldPath struct {
	Base
	End         float64
	Path        Path
	StackOffset schemas.Vector2D
	RepeatCount int
	// LegacyLastTickOffset, when positive, injects an extra scoring checkpoint near the
	// end of the path to reproduce the historical last-tick timing.
	LegacyLastTickOffset float64
	Checkpoints          []Checkpoint
}

func (*HoldPath) Kind() Kind         { return KindHoldPath }
func (h *HoldPath) EndTime() float64 { return h.End }

// Duration is the time between the start and end of the path.
func (h *HoldPath) Duration() float64 { return h.End - h.Start }

// SpanCount is the number of head-to-tail traversals of the path.
func (h *HoldPath) SpanCount() int { return h.RepeatCount + 1 }

// Absolute converts a local path position into absolute playfield space.
func (h *HoldPath) Absolute(local schemas.Vector2D) schemas.Vector2D {
	return local.Add(h.StackOffset)
}

// PositionAt returns the absolute cursor position at the given fraction of the path's
// total duration, accounting for direction reversals on repeats.
func (h *HoldPath) PositionAt(progress float64) schemas.Vector2D {
	progress = math.Max(0, math.Min(1, progress))
	spans := float64(h.SpanCount())
	spanProgress := progress * spans
	span := math.Floor(spanProgress)
	if span >= spans {
		span = spans - 1
	}
	within := spanProgress - span
	if int(span)%2 == 1 {
		within = 1 - within
	}
	return h.Absolute(h.Path.PositionAt(within))
}

// PositionAtTime returns the absolute position at an absolute time within the path.
func (h *HoldPath) PositionAtTime(t float64) schemas.Vector2D {
	d := h.Duration()
	if d <= 0 {
		return h.Pos
	}
	return h.PositionAt((t - h.Start) / d)
}

// EndPosition is the absolute cursor position at the end of the path.
func (h *HoldPath) EndPosition() schemas.Vector2D {
	return h.PositionAt(1)
}

// HasLegacySample reports whether a legacy last-tick sample applies to this path.
func (h *HoldPath) HasLegacySample() bool {
	return h.LegacyLastTickOffset > 0 && h.Duration() > 0
}

// HoldPathSpec describes a hold path from which checkpoints are derived.
type HoldPathSpec struct {
	Index                int
	Start, End           float64
	Points               []schemas.Vector2D
	StackOffset          schemas.Vector2D
	Repeats              int
	TickTimes            []float64
	LegacyLastTickOffset float64
	Preempt              float64
}

// NewHoldPath builds a hold path and derives its head, tick, repeat and tail checkpoints.
// Tick times outside (Start, End) are ignored.
func NewHoldPath(hs HoldPathSpec) (*HoldPath, error) {
	if len(hs.Points) == 0 {
		return nil, fmt.Errorf("%w: element %d has no path points", ErrMalformedHoldPath, hs.Index)
	}
	if hs.End < hs.Start {
		return nil, fmt.Errorf("%w: element %d ends at %.2f before it starts at %.2f",
			ErrMalformedHoldPath, hs.Index, hs.End, hs.Start)
	}
	if hs.Repeats < 0 {
		return nil, fmt.Errorf("%w: element %d has negative repeat count", ErrMalformedHoldPath, hs.Index)
	}

	h := &HoldPath{
		Base: Base{
			Idx:         hs.Index,
			Start:       hs.Start,
			TimePreempt: hs.Preempt,
		},
		End:                  hs.End,
		Path:                 Path{Points: hs.Points},
		StackOffset:          hs.StackOffset,
		RepeatCount:          hs.Repeats,
		LegacyLastTickOffset: hs.LegacyLastTickOffset,
	}
	h.Pos = h.Absolute(hs.Points[0])

	local := func(t float64) schemas.Vector2D {
		return h.PositionAtTime(t).Sub(h.StackOffset)
	}

	cps := []Checkpoint{{Kind: CheckpointHead, Time: h.Start, Position: hs.Points[0]}}
	for _, t := range hs.TickTimes {
		if t <= h.Start || t >= h.End {
			continue
		}
		cps = append(cps, Checkpoint{Kind: CheckpointTick, Time: t, Position: local(t)})
	}
	spanDuration := h.Duration() / float64(h.SpanCount())
	for i := 1; i <= h.RepeatCount; i++ {
		t := h.Start + spanDuration*float64(i)
		cps = append(cps, Checkpoint{Kind: CheckpointRepeat, Time: t, Position: local(t)})
	}
	cps = append(cps, Checkpoint{Kind: CheckpointTail, Time: h.End, Position: local(h.End)})

	sort.SliceStable(cps, func(i, j int) bool { return cps[i].Time < cps[j].Time })
	h.Checkpoints = cps
	return h, nil
}
