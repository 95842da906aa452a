// File: internal/synth/synthesizer.go
package synth

import (
	"math"

	"go.uber.org/zap"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
	"github.com/xkilldash9x/autoplay-cli/internal/element"
	"github.com/xkilldash9x/autoplay-cli/internal/observability"
	"github.com/xkilldash9x/autoplay-cli/internal/timeline"
)

// Synthesizer turns a timeline into timestamped cursor and button samples.
type Synthesizer struct {
	cfg  Config
	sink observability.Sink
}

// New creates a synthesizer. The reaction time in cfg must already be resolved; a
// negative value is treated as zero. A nil sink discards diagnostics.
func New(cfg Config, sink observability.Sink) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ReactionTime = math.Max(0, cfg.ReactionTime)
	return &Synthesizer{cfg: cfg, sink: observability.OrNop(sink)}, nil
}

// state is the walk state of a single Synthesize call.
type state struct {
	hand     Hand
	spinning bool
	eligible bool

	// lastTime is the time of the previous event, markers included.
	lastTime float64
	lastPos  schemas.Vector2D
	// emitted reports whether out holds at least one sample.
	emitted bool

	out []schemas.ActionSample
}

func (st *state) emit(t float64, pos schemas.Vector2D, button schemas.MouseButton) {
	st.out = append(st.out, schemas.ActionSample{Time: t, Position: pos, Button: button})
	st.lastPos = pos
	st.emitted = true
}

func (st *state) lastSampleTime() float64 {
	if !st.emitted {
		return math.Inf(-1)
	}
	return st.out[len(st.out)-1].Time
}

// Synthesize walks the timeline once. The result holds one sample per positioned
// event plus the spin and release samples between them, and a closing release when
// the last event lets go of the button.
func (s *Synthesizer) Synthesize(tl *timeline.Timeline) []schemas.ActionSample {
	events := tl.Events()
	if len(events) == 0 {
		return nil
	}

	st := &state{
		lastTime: events[0].Time,
		out:      make([]schemas.ActionSample, 0, len(events)),
	}
	for _, e := range events {
		// The button stays down for the whole spin session, whatever lands inside it.
		if st.spinning {
			s.spin(st, e.Time)
		} else if st.eligible && e.Time-st.lastTime > s.cfg.ReleaseWait+s.cfg.ReactionTime {
			s.release(st, e.Time)
		}

		switch {
		case e.SpinStart():
			st.hand = st.hand.OrPrimary()
			st.spinning = true
			st.eligible = false
			st.lastTime = e.Time
			continue
		case e.SpinEnd():
			st.spinning = false
			st.eligible = true
			st.lastTime = e.Time
			continue
		}

		switch {
		case e.IsEngage():
			st.hand = st.hand.Alternate()
			st.eligible = false
		case e.IsHold() && !st.hand.Held():
			st.hand = HandPrimary
			st.eligible = false
		}
		if e.IsRelease() || (e.CircleHit() && !e.IsHold()) {
			st.eligible = true
		}

		if e.HasPosition {
			st.emit(e.Time, e.Position, st.hand.Button())
		}
		st.lastTime = e.Time
	}
	// Let go after the last release-eligible event.
	if st.eligible {
		s.release(st, math.Inf(1))
	}

	s.sink.Record("synth.done", zap.Int("events", len(events)), zap.Int("samples", len(st.out)))
	return st.out
}

// spin emits circular samples from the previous event time up to, not including, until.
func (s *Synthesizer) spin(st *state, until float64) {
	button := st.hand.Button()
	after := st.lastSampleTime()
	for k := 0; ; k++ {
		t := st.lastTime + float64(k)*s.cfg.SpinStep
		if t >= until {
			return
		}
		if t <= after {
			continue
		}
		angle := t * s.cfg.SpinRate
		offset := schemas.Vector2D{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(s.cfg.SpinRadius)
		st.emit(t, element.SpinCentre.Add(offset), button)
	}
}

// release lets go of the button after a long enough gap and, with a positive
// reaction time, pins the cursor ahead of the next event so smoothing cannot
// wander into a false press.
func (s *Synthesizer) release(st *state, next float64) {
	at := st.lastTime + s.cfg.ReleaseDelay
	pos := st.lastPos
	st.emit(at, pos, schemas.ButtonNone)
	st.hand = HandUnset
	st.eligible = false
	s.sink.Record("synth.release", zap.Float64("time", at), zap.Float64("next", next))

	rt := s.cfg.ReactionTime
	if rt <= 0 || math.IsInf(next, 1) {
		return
	}
	ready := next - rt
	if ready-at <= s.cfg.AntiRebindTime {
		return
	}
	for _, t := range []float64{ready - s.cfg.AntiRebindOffset, ready} {
		if t > at && t > st.lastSampleTime() {
			st.emit(t, pos, schemas.ButtonNone)
		}
	}
}
