// File: internal/humanoid/humanizer_test.go
package humanoid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
	"github.com/xkilldash9x/autoplay-cli/internal/observability"
)

func sample(t, x, y float64, b schemas.MouseButton) schemas.ActionSample {
	return schemas.ActionSample{Time: t, Position: schemas.Vector2D{X: x, Y: y}, Button: b}
}

func newHumanizer(t *testing.T, cfg Config) *Humanizer {
	t.Helper()
	h, err := New(cfg, nil)
	require.NoError(t, err)
	return h
}

// rawIndices returns the output index of each input sample, failing if any is missing
// or out of order.
func rawIndices(t *testing.T, in, out []schemas.ActionSample) []int {
	t.Helper()
	idx := make([]int, 0, len(in))
	j := 0
	for _, s := range in {
		for j < len(out) && out[j] != s {
			j++
		}
		require.Less(t, j, len(out), "raw sample %+v missing from output", s)
		idx = append(idx, j)
		j++
	}
	return idx
}

func TestHumanize_Empty(t *testing.T) {
	out, err := newHumanizer(t, DefaultConfig()).Humanize(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHumanize_DenseInputUnchanged(t *testing.T) {
	var in []schemas.ActionSample
	for i := 0; i < 40; i++ {
		in = append(in, sample(float64(i*10), float64(i*7%512), float64(i*3%384), schemas.ButtonLeft))
	}
	out, err := newHumanizer(t, DefaultConfig()).Humanize(in)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("dense input was modified (-want +got):\n%s", diff)
	}
}

func TestHumanize_Resampling(t *testing.T) {
	in := []schemas.ActionSample{
		sample(0, 256, 384, schemas.ButtonNone),
		sample(1000, 100, 100, schemas.ButtonLeft),
		sample(2000, 300, 200, schemas.ButtonLeft),
		sample(3000, 400, 100, schemas.ButtonNone),
	}
	core, logs := observer.New(zap.DebugLevel)
	h, err := New(DefaultConfig(), observability.NewZapSink(zap.New(core)))
	require.NoError(t, err)

	out, err := h.Humanize(in)
	require.NoError(t, err)

	// 39 samples strictly inside each 1000ms span at a 25ms step.
	require.Len(t, out, len(in)+3*39)
	assert.Equal(t, []int{0, 40, 80, 120}, rawIndices(t, in, out))

	for i := 1; i < len(out); i++ {
		assert.Greater(t, out[i].Time, out[i-1].Time)
	}
	assert.Equal(t, 25.0, out[1].Time)
	assert.Equal(t, schemas.ButtonNone, out[1].Button, "interpolated samples carry the previous button")
	assert.Equal(t, schemas.ButtonLeft, out[41].Button)
	assert.Equal(t, schemas.ButtonLeft, out[81].Button)

	entries := logs.FilterMessage("humanize.done").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(117), entries[0].ContextMap()["interpolated"])
}

func TestHumanize_JumpGuard(t *testing.T) {
	in := []schemas.ActionSample{
		sample(0, 10, 10, schemas.ButtonNone),
		sample(1000, 100, 100, schemas.ButtonLeft),
		sample(1010, 120, 100, schemas.ButtonRight),
		sample(2000, 200, 200, schemas.ButtonRight),
		sample(3000, 300, 300, schemas.ButtonNone),
		sample(4000, 400, 300, schemas.ButtonLeft),
	}
	out, err := newHumanizer(t, DefaultConfig()).Humanize(in)
	require.NoError(t, err)

	// Spans ending at samples 1..3 sit next to the 10ms gap and stay raw.
	idx := rawIndices(t, in, out)
	assert.Equal(t, []int{0, 1, 2, 3, 43, 83}, idx)
	assert.Len(t, out, len(in)+2*39)
}

func TestHumanize_CoerceHolds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoerceHolds = true
	in := []schemas.ActionSample{
		sample(0, 0, 0, schemas.ButtonLeft),
		sample(1000, 100, 0, schemas.ButtonLeft),
		sample(2000, 100, 200, schemas.ButtonNone),
	}
	out, err := newHumanizer(t, cfg).Humanize(in)
	require.NoError(t, err)

	for _, s := range out {
		if s.Time > 0 && s.Time < 1000 {
			assert.InDelta(t, s.Time/10, s.Position.X, 1e-9)
			assert.InDelta(t, 0.0, s.Position.Y, 1e-9)
		}
	}
}

func TestHumanize_CoerceCircles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoerceCircles = true
	cfg.CoerceRadius = 1
	press := sample(1000, 400, 300, schemas.ButtonLeft)
	in := []schemas.ActionSample{sample(0, 0, 0, schemas.ButtonNone), press}

	out, err := newHumanizer(t, cfg).Humanize(in)
	require.NoError(t, err)
	require.Len(t, out, 41)

	approach := out[39]
	assert.Equal(t, 975.0, approach.Time)
	assert.LessOrEqual(t, approach.Position.Dist(press.Position), 1+1e-9)
}

func TestHumanize_Bounce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bounce = true
	in := []schemas.ActionSample{
		sample(0, 0, 0, schemas.ButtonNone),
		sample(300, 512, 384, schemas.ButtonLeft),
		sample(600, 0, 0, schemas.ButtonRight),
		sample(900, 512, 0, schemas.ButtonLeft),
	}
	out, err := newHumanizer(t, cfg).Humanize(in)
	require.NoError(t, err)
	require.Greater(t, len(out), len(in))

	for _, s := range out {
		assert.GreaterOrEqual(t, s.Position.X, 0.0)
		assert.LessOrEqual(t, s.Position.X, float64(schemas.PlayfieldWidth))
		assert.GreaterOrEqual(t, s.Position.Y, 0.0)
		assert.LessOrEqual(t, s.Position.Y, float64(schemas.PlayfieldHeight))
	}
}

func TestHumanize_NoiseIsSeeded(t *testing.T) {
	in := []schemas.ActionSample{
		sample(0, 100, 100, schemas.ButtonNone),
		sample(1000, 200, 200, schemas.ButtonLeft),
		sample(2000, 300, 100, schemas.ButtonNone),
	}
	cfg := DefaultConfig()
	cfg.NoiseAmplitude = 8
	cfg.Seed = 7

	a, err := newHumanizer(t, cfg).Humanize(in)
	require.NoError(t, err)
	b, err := newHumanizer(t, cfg).Humanize(in)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a, b), "equal seeds must give identical output")

	quiet := DefaultConfig()
	c, err := newHumanizer(t, quiet).Humanize(in)
	require.NoError(t, err)
	require.Equal(t, len(a), len(c))
	assert.NotEmpty(t, cmp.Diff(a, c), "noise should move interpolated samples")
	assert.Equal(t, rawIndices(t, in, a), rawIndices(t, in, c))
}

func TestHumanize_RejectsUnorderedSamples(t *testing.T) {
	_, err := newHumanizer(t, DefaultConfig()).Humanize([]schemas.ActionSample{
		sample(100, 0, 0, schemas.ButtonNone),
		sample(50, 0, 0, schemas.ButtonNone),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precedes")
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Step = 0
	_, err := New(bad, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step must be positive")

	bad = DefaultConfig()
	bad.NoiseAmplitude = -1
	assert.Error(t, bad.Validate())

	low := DefaultConfig()
	low.JumpGuard = 5
	assert.Equal(t, low.Step, low.threshold())
}

func TestBounds(t *testing.T) {
	assert.Equal(t, 10.0, reflect(-10, 512))
	assert.Equal(t, 494.0, reflect(530, 512))
	assert.Equal(t, 100.0, reflect(100, 512))
	assert.Equal(t, 0.0, reflect(5, 0))

	target := schemas.Vector2D{X: 0, Y: 0}
	assert.Equal(t, schemas.Vector2D{X: 3, Y: 4}, pullWithin(schemas.Vector2D{X: 3, Y: 4}, target, 5))
	pulled := pullWithin(schemas.Vector2D{X: 30, Y: 40}, target, 5)
	assert.InDelta(t, 3.0, pulled.X, 1e-9)
	assert.InDelta(t, 4.0, pulled.Y, 1e-9)
}
