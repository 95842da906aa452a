// File: internal/timeline/builder.go
package timeline

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
	"github.com/xkilldash9x/autoplay-cli/internal/element"
	"github.com/xkilldash9x/autoplay-cli/internal/observability"
)

const (
	// AnchorLead is how far ahead of the first element the resting anchor is placed.
	AnchorLead = 1000.0
	// DefaultFollowInterval is the hold-follow sampling interval in milliseconds.
	DefaultFollowInterval = 16.0
)

// AnchorPosition is the resting cursor position before play starts (bottom centre).
var AnchorPosition = schemas.Vector2D{X: schemas.PlayfieldWidth / 2, Y: schemas.PlayfieldHeight}

// BuilderConfig controls timeline construction.
type BuilderConfig struct {
	Policy OrderPolicy
	// Follow injects intermediate hold-slide events along an uninterrupted hold path.
	Follow         bool
	FollowInterval float64
}

// DefaultBuilderConfig returns canonical ordering with hold following enabled.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		Policy:         CanonicalOrder,
		Follow:         true,
		FollowInterval: DefaultFollowInterval,
	}
}

// Validate checks the builder parameters.
func (c BuilderConfig) Validate() error {
	if c.Follow && c.FollowInterval <= 0 {
		return fmt.Errorf("follow interval must be positive when follow is enabled, got %v", c.FollowInterval)
	}
	return nil
}

// Builder merges gameplay elements into a single ordered Timeline.
type Builder struct {
	cfg  BuilderConfig
	sink observability.Sink
}

// NewBuilder creates a builder. A nil sink discards diagnostics.
func NewBuilder(cfg BuilderConfig, sink observability.Sink) *Builder {
	return &Builder{cfg: cfg, sink: observability.OrNop(sink)}
}

// activeHold is a hold path currently being drained.
type activeHold struct {
	tracker  *Tracker
	lastTime float64
}

// spinSession is the merged span of overlapping spin zones.
type spinSession struct {
	end float64
}

// buildState is the sweep state of a single Build call.
type buildState struct {
	cfg  BuilderConfig
	sink observability.Sink
	tl   *Timeline

	holds      []activeHold
	followable bool
	spin       *spinSession
}

// Build sweeps the elements, which must be sorted by start time, and returns the
// resulting timeline. An empty input yields an empty timeline.
func (b *Builder) Build(elements []element.Element) (*Timeline, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	st := &buildState{
		cfg:        b.cfg,
		sink:       b.sink,
		tl:         New(b.cfg.Policy),
		followable: b.cfg.Follow,
	}
	if len(elements) == 0 {
		return st.tl, nil
	}

	st.insert(Event{
		Time:        elements[0].StartTime() - AnchorLead,
		Position:    AnchorPosition,
		HasPosition: true,
	})

	maxEnd := math.Inf(-1)
	for _, el := range elements {
		maxEnd = math.Max(maxEnd, el.EndTime())
		st.advance(el.StartTime())

		// Anything starting while a hold is still in progress interrupts it.
		if len(st.holds) > 0 {
			st.followable = false
		}

		switch el := el.(type) {
		case *element.Tap:
			st.insert(Event{
				Time:        el.StartTime(),
				Position:    el.Position(),
				HasPosition: true,
				Facets:      FacetCircleHit,
				Key:         el.Index(),
			})
		case *element.HoldPath:
			if err := st.addHold(el); err != nil {
				return nil, err
			}
		case *element.SpinZone:
			st.addSpin(el)
		default:
			return nil, fmt.Errorf("element %d: unsupported element type %T", el.Index(), el)
		}
	}
	st.advance(maxEnd + 1)
	st.propagateSlides()

	b.sink.Record("timeline.built",
		zap.Int("elements", len(elements)),
		zap.Int("events", st.tl.Len()),
	)
	return st.tl, nil
}

func (st *buildState) insert(e Event) {
	pos := st.tl.Insert(e)
	st.sink.Record("timeline.insert", zap.Int("position", pos), zap.Stringer("event", e))
}

// advance moves the sweep to time t, draining holds and closing a passed spin session.
func (st *buildState) advance(t float64) {
	st.drainHolds(t)
	if st.spin != nil && t > st.spin.end {
		st.insert(Event{Time: st.spin.end, Facets: FacetSpinEnd})
		st.spin = nil
	}
}

func (st *buildState) addHold(h *element.HoldPath) error {
	tracker, err := NewTracker(h)
	if err != nil {
		return err
	}
	st.insert(Event{
		Time:        h.StartTime(),
		Position:    h.Position(),
		HasPosition: true,
		Facets:      FacetCircleHit | FacetHoldSlide | FacetHoldTick,
		Key:         h.Index(),
	})
	st.holds = append(st.holds, activeHold{tracker: tracker, lastTime: h.StartTime()})
	return nil
}

// addSpin opens a spin session or extends the current one.
func (st *buildState) addSpin(z *element.SpinZone) {
	if st.spin != nil {
		st.spin.end = math.Max(st.spin.end, z.EndTime())
		return
	}
	st.spin = &spinSession{end: z.EndTime()}
	st.insert(Event{Time: z.StartTime(), Facets: FacetSpinStart})
}

// drainHolds emits every tracked sample earlier than t, plus any tail landing exactly
// on t, and drops finished trackers. A path whose tail is all that remains is finished
// by the time an element starting at t is considered.
func (st *buildState) drainHolds(t float64) {
	if len(st.holds) == 0 {
		return
	}
	follow := st.followable && len(st.holds) == 1

	still := st.holds[:0]
	for _, h := range st.holds {
		for {
			s, ok := h.tracker.Peek()
			if !ok || s.Time > t || (s.Time == t && !s.Final) {
				break
			}
			h.tracker.Next()

			if follow {
				st.follow(h, s.Time)
			}
			h.lastTime = s.Time

			if s.Final {
				st.insert(Event{
					Time:        s.Time,
					Position:    s.Position,
					HasPosition: true,
					Facets:      FacetHoldEnd | FacetHoldTick,
				})
				continue
			}
			st.insert(Event{
				Time:        s.Time,
				Position:    s.Position,
				HasPosition: true,
				Facets:      FacetHoldTick | FacetHoldSlide,
			})
		}
		if !h.tracker.Done() {
			still = append(still, h)
		}
	}
	st.holds = still

	if len(st.holds) == 0 {
		st.followable = st.cfg.Follow
	}
}

// follow injects hold-slide events every FollowInterval from the last drained sample
// up to, but not including, next.
func (st *buildState) follow(h activeHold, next float64) {
	path := h.tracker.Path()
	for k := 1; ; k++ {
		ft := h.lastTime + float64(k)*st.cfg.FollowInterval
		if ft >= next {
			return
		}
		st.insert(Event{
			Time:        ft,
			Position:    path.PositionAtTime(ft),
			HasPosition: true,
			Facets:      FacetHoldSlide,
		})
	}
}

// propagateSlides marks every positioned event between a hold entry and its hold end
// as a hold-slide, so nothing in between releases the button.
func (st *buildState) propagateSlides() {
	active := 0
	events := st.tl.events
	for i := range events {
		e := &events[i]
		switch {
		case e.CircleHit() && e.HoldSlide() && e.HoldTick():
			active++
		case e.HoldEnd():
			if active > 0 {
				active--
			}
		case active > 0 && e.HasPosition && !e.HoldSlide():
			e.Facets |= FacetHoldSlide
		}
	}
}
