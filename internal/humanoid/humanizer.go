// File: internal/humanoid/humanizer.go
package humanoid

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/interp"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
	"github.com/xkilldash9x/autoplay-cli/internal/observability"
)

const (
	// anchorLead pins the spline ends this far before the first and after the last sample.
	anchorLead = 1000.0
)

// Humanizer resamples an action sequence along a smooth cursor trajectory.
type Humanizer struct {
	cfg   Config
	drift *drift
	sink  observability.Sink
}

// New creates a humanizer. A nil sink discards diagnostics.
func New(cfg Config, sink observability.Sink) (*Humanizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Humanizer{cfg: cfg, sink: observability.OrNop(sink)}
	if cfg.NoiseAmplitude > 0 {
		h.drift = newDrift(cfg.Seed, cfg.NoiseAmplitude, cfg.NoiseFrequency)
	}
	return h, nil
}

// trajectory is a pair of per-axis interpolants over time.
type trajectory struct {
	x, y interp.NaturalCubic
}

func (tr *trajectory) at(t float64) schemas.Vector2D {
	return schemas.Vector2D{X: tr.x.Predict(t), Y: tr.y.Predict(t)}
}

// fitTrajectory collapses same-time samples (the last one wins), brackets them with
// anchors pinned to the first and last positions, and fits both axes.
func fitTrajectory(samples []schemas.ActionSample) (*trajectory, error) {
	first, last := samples[0], samples[len(samples)-1]

	ts := make([]float64, 0, len(samples)+3)
	xs := make([]float64, 0, len(samples)+3)
	ys := make([]float64, 0, len(samples)+3)
	push := func(t float64, p schemas.Vector2D) {
		if n := len(ts); n > 0 && ts[n-1] == t {
			xs[n-1], ys[n-1] = p.X, p.Y
			return
		}
		ts = append(ts, t)
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}

	push(first.Time-anchorLead, first.Position)
	for _, s := range samples {
		push(s.Time, s.Position)
	}
	push(last.Time+anchorLead, last.Position)
	push(last.Time+2*anchorLead, last.Position)

	tr := &trajectory{}
	if err := tr.x.Fit(ts, xs); err != nil {
		return nil, fmt.Errorf("fitting x trajectory: %w", err)
	}
	if err := tr.y.Fit(ts, ys); err != nil {
		return nil, fmt.Errorf("fitting y trajectory: %w", err)
	}
	return tr, nil
}

// Humanize returns the raw samples with interpolated samples inserted every Step
// between them. Raw samples pass through unchanged. Spans around raw samples closer
// together than the jump guard are left uninterpolated. Samples must be ordered by
// time.
func (h *Humanizer) Humanize(samples []schemas.ActionSample) ([]schemas.ActionSample, error) {
	if len(samples) == 0 {
		return nil, nil
	}
	for k := 1; k < len(samples); k++ {
		if samples[k].Time < samples[k-1].Time {
			return nil, fmt.Errorf("sample %d at %.2f precedes sample %d at %.2f",
				k, samples[k].Time, k-1, samples[k-1].Time)
		}
	}

	tr, err := fitTrajectory(samples)
	if err != nil {
		return nil, err
	}

	dense := h.denseSpans(samples)
	out := make([]schemas.ActionSample, 0, len(samples))
	out = append(out, samples[0])
	interpolated := 0
	for k := 1; k < len(samples); k++ {
		if !dense[k] {
			n := len(out)
			out = h.interpolate(out, tr, samples[k-1], samples[k])
			interpolated += len(out) - n
		}
		out = append(out, samples[k])
	}

	h.sink.Record("humanize.done",
		zap.Int("raw", len(samples)),
		zap.Int("interpolated", interpolated),
	)
	return out, nil
}

// denseSpans marks, for each k, whether the span ending at sample k is too close to a
// short gap to interpolate: the gap before k−1, the span itself, or the gap after k.
func (h *Humanizer) denseSpans(samples []schemas.ActionSample) []bool {
	threshold := h.cfg.threshold()
	n := len(samples)
	short := func(i int) bool {
		// Gap between samples i and i+1.
		return i >= 0 && i+1 < n && samples[i+1].Time-samples[i].Time < threshold
	}
	dense := make([]bool, n)
	for k := 1; k < n; k++ {
		dense[k] = short(k-2) || short(k-1) || short(k)
	}
	return dense
}

// interpolate appends samples strictly between prev and cur, carrying prev's button.
func (h *Humanizer) interpolate(out []schemas.ActionSample, tr *trajectory, prev, cur schemas.ActionSample) []schemas.ActionSample {
	span := cur.Time - prev.Time
	holding := h.cfg.CoerceHolds && prev.Button.Pressed() && prev.Button == cur.Button
	start := len(out)

	for k := 1; ; k++ {
		t := prev.Time + float64(k)*h.cfg.Step
		if t >= cur.Time {
			break
		}

		var pos schemas.Vector2D
		if holding {
			pos = prev.Position.Lerp(cur.Position, (t-prev.Time)/span)
		} else {
			pos = tr.at(t).Add(h.drift.At(t))
			if h.cfg.Bounce {
				pos = bounce(pos)
			}
		}
		out = append(out, schemas.ActionSample{Time: t, Position: pos, Button: prev.Button})
	}

	press := cur.Button.Pressed() && cur.Button != prev.Button
	if h.cfg.CoerceCircles && press && len(out) > start {
		last := &out[len(out)-1]
		last.Position = pullWithin(last.Position, cur.Position, h.cfg.CoerceRadius)
	}
	return out
}
