package viewport

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/raykavin/backview/pkg/core"
	"github.com/raykavin/backview/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

// rampSamples returns samples at t = 0..n-1 with equity = 100+t and price = 50-t/2
func rampSamples(n int) []core.SamplePoint {
	samples := make([]core.SamplePoint, n)
	for i := range samples {
		samples[i] = core.SamplePoint{
			Time: int64(i),
			Values: map[string]float64{
				core.KeyEquity: 100 + float64(i),
				core.KeyPrice:  50 - float64(i)/2,
			},
		}
	}
	return samples
}

func newTestController(samples []core.SamplePoint, options ...Option) *Controller {
	options = append([]Option{WithMinSpan(time.Millisecond)}, options...)
	return NewController(nil, samples, core.KeyEquity, options...)
}

func assertInterval(t *testing.T, expected, actual domain.Interval) {
	t.Helper()
	assert.InDelta(t, expected.Lo, actual.Lo, tolerance, "lo")
	assert.InDelta(t, expected.Hi, actual.Hi, tolerance, "hi")
}

func TestController_Reset(t *testing.T) {
	c := newTestController(rampSamples(101))

	assert.Equal(t, domain.Interval{Lo: 0, Hi: 100}, c.State().Time)
	assert.Equal(t, domain.Interval{Lo: 0, Hi: 100}, c.Bounds())

	c.ZoomAt(30, true)
	require.NotEqual(t, domain.Interval{Lo: 0, Hi: 100}, c.State().Time)

	c.Reset()
	first := c.State()
	c.Reset()
	second := c.State()

	assert.Equal(t, first, second)
	assert.Equal(t, domain.Interval{Lo: 0, Hi: 100}, second.Time)
}

func TestController_ZoomAtKeepsCursorAnchored(t *testing.T) {
	c := newTestController(rampSamples(101))

	c.ZoomAtFactor(25, true, 2)
	assertInterval(t, domain.Interval{Lo: 12.5, Hi: 62.5}, c.State().Time)

	state := c.State().Time
	assert.InDelta(t, 0.25, (25-state.Lo)/state.Span(), tolerance)

	c.ZoomAtFactor(25, false, 2)
	assertInterval(t, domain.Interval{Lo: 0, Hi: 100}, c.State().Time)
}

func TestController_ZoomAtClampsCursor(t *testing.T) {
	c := newTestController(rampSamples(101))
	c.ZoomAtFactor(50, true, 2)
	require.Equal(t, domain.Interval{Lo: 25, Hi: 75}, c.State().Time)

	// a cursor left of the window behaves as a cursor on the left edge
	c.ZoomAtFactor(-1000, true, 2)
	assertInterval(t, domain.Interval{Lo: 25, Hi: 50}, c.State().Time)
}

func TestController_ZoomOutIsClamped(t *testing.T) {
	c := newTestController(rampSamples(101))
	c.ZoomAtFactor(90, true, 4)
	require.InDelta(t, 25, c.State().Time.Span(), tolerance)

	c.ZoomAtFactor(67.5, false, 3)
	state := c.State().Time
	assert.InDelta(t, 75, state.Span(), tolerance)
	assert.Equal(t, 100.0, state.Hi)
	assert.InDelta(t, 25, state.Lo, tolerance)
}

func TestController_NoOpZoomAtLimits(t *testing.T) {
	t.Run("zoom out at full extent", func(t *testing.T) {
		c := newTestController(rampSamples(101))
		calls := 0
		c.Subscribe(func(State) { calls++ })

		before := c.State()
		c.ZoomAt(40, false)
		assert.Equal(t, before, c.State())
		assert.Zero(t, calls)
	})

	t.Run("zoom in at min span", func(t *testing.T) {
		c := newTestController(rampSamples(101), WithMinSpan(10*time.Millisecond))
		for i := 0; i < 50; i++ {
			c.ZoomAt(50, true)
		}
		require.InDelta(t, 10, c.State().Time.Span(), tolerance)

		before := c.State()
		c.ZoomAt(50, true)
		c.ZoomAt(52, true)
		assert.Equal(t, before, c.State())
	})

	t.Run("invalid input", func(t *testing.T) {
		c := newTestController(rampSamples(101))
		before := c.State()

		c.ZoomAt(math.NaN(), true)
		c.ZoomAtFactor(50, true, 1)
		c.ZoomAtFactor(50, true, 0.5)
		c.ZoomAtFactor(50, true, math.Inf(1))
		c.PanBy(math.NaN())
		c.PanBy(math.Inf(-1))

		assert.Equal(t, before, c.State())
	})
}

func TestController_PanSaturates(t *testing.T) {
	c := newTestController(rampSamples(101))
	c.ZoomAtFactor(0, true, 5)
	require.Equal(t, domain.Interval{Lo: 0, Hi: 20}, c.State().Time)

	c.PanBy(-50)
	assert.Equal(t, domain.Interval{Lo: 0, Hi: 20}, c.State().Time)

	c.PanBy(10)
	assert.Equal(t, domain.Interval{Lo: 10, Hi: 30}, c.State().Time)

	c.PanBy(50)
	assert.Equal(t, domain.Interval{Lo: 60, Hi: 80}, c.State().Time)

	c.PanBy(50)
	assert.Equal(t, domain.Interval{Lo: 80, Hi: 100}, c.State().Time)

	c.PanBy(-1000)
	assert.Equal(t, domain.Interval{Lo: 0, Hi: 20}, c.State().Time)
}

func TestController_PanAtFullExtentIsNoOp(t *testing.T) {
	c := newTestController(rampSamples(101))
	before := c.State()

	c.PanBy(25)
	c.PanBy(-25)

	assert.Equal(t, before, c.State())
}

func TestController_Autoscale(t *testing.T) {
	samples := []core.SamplePoint{
		{Time: 0, Values: map[string]float64{core.KeyEquity: 10}},
		{Time: 1, Values: map[string]float64{core.KeyEquity: 50}},
		{Time: 2, Values: map[string]float64{core.KeyEquity: 30}},
	}

	c := newTestController(samples)
	assertInterval(t, domain.Interval{Lo: 6, Hi: 54}, c.State().Value)
	assert.False(t, c.State().AutoValue)
}

func TestController_AutoscaleFollowsWindow(t *testing.T) {
	c := newTestController(rampSamples(101))
	assertInterval(t, domain.Interval{Lo: 90, Hi: 210}, c.State().Value)

	c.ZoomAtFactor(0, true, 5)
	// equity 100..120 visible, padded by 2
	assertInterval(t, domain.Interval{Lo: 98, Hi: 122}, c.State().Value)
	assert.Len(t, c.Visible(), 21)

	c.PanBy(80)
	assertInterval(t, domain.Interval{Lo: 178, Hi: 202}, c.State().Value)
}

func TestController_SetActiveSeries(t *testing.T) {
	c := newTestController(rampSamples(101))
	c.ZoomAtFactor(0, true, 5)
	window := c.State().Time

	c.SetActiveSeries(core.KeyPrice)

	state := c.State()
	assert.Equal(t, core.KeyPrice, state.ActiveSeriesKey)
	assert.Equal(t, window, state.Time)
	// price 40..50 visible, padded by 1
	assertInterval(t, domain.Interval{Lo: 39, Hi: 51}, state.Value)
}

func TestController_AutoValueFallback(t *testing.T) {
	samples := rampSamples(101)
	for i := 1; i < 100; i++ {
		delete(samples[i].Values, core.KeyEquity)
	}

	c := newTestController(samples)
	assertInterval(t, domain.Interval{Lo: 90, Hi: 210}, c.State().Value)

	c.ZoomAtFactor(50, true, 5)
	state := c.State()
	assert.True(t, state.AutoValue)
	assertInterval(t, domain.Interval{Lo: 90, Hi: 210}, state.Value)
}

func TestController_DegenerateData(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c := newTestController(nil)
		state := c.State()

		assert.Equal(t, domain.Interval{}, state.Time)
		assert.Equal(t, domain.Interval{}, state.Value)
		assert.True(t, state.AutoValue)
		assert.True(t, state.Value.IsFinite())

		assert.NotPanics(t, func() {
			c.ZoomAt(0, true)
			c.ZoomAt(0, false)
			c.PanBy(10)
			c.SetActiveSeries(core.KeyPrice)
			c.Reset()
		})
		assert.Empty(t, c.Visible())
	})

	t.Run("single sample", func(t *testing.T) {
		c := newTestController([]core.SamplePoint{
			{Time: 5000, Values: map[string]float64{core.KeyEquity: 1000}},
		})
		state := c.State()

		assert.Equal(t, domain.Interval{Lo: 5000, Hi: 5000}, state.Time)
		assert.Equal(t, domain.Interval{Lo: 990, Hi: 1010}, state.Value)

		c.ZoomAt(5000, true)
		c.PanBy(-1)
		assert.Equal(t, state, c.State())
	})

	t.Run("span shorter than min span", func(t *testing.T) {
		c := NewController(nil, rampSamples(101), core.KeyEquity)
		assert.Equal(t, 100.0, c.MinSpan())

		before := c.State()
		c.ZoomAt(50, true)
		assert.Equal(t, before, c.State())
	})
}

func TestController_SetSamples(t *testing.T) {
	c := newTestController(rampSamples(11))
	c.ZoomAtFactor(5, true, 2)

	var last State
	c.Subscribe(func(s State) { last = s })

	c.SetSamples(rampSamples(201))
	assert.Equal(t, domain.Interval{Lo: 0, Hi: 200}, c.State().Time)
	assert.Equal(t, c.State(), last)
	assert.Len(t, c.Samples(), 201)
}

func TestController_SortsSamples(t *testing.T) {
	samples := rampSamples(5)
	samples[0], samples[4] = samples[4], samples[0]

	c := newTestController(samples)
	assert.Equal(t, domain.Interval{Lo: 0, Hi: 4}, c.Bounds())
	assert.Equal(t, int64(4), samples[0].Time, "caller slice is not modified")
	assert.Len(t, c.Visible(), 5)
}

func TestController_DefaultMinSpan(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]core.SamplePoint, 0, 24*10)
	for i := 0; i < 24*10; i++ {
		samples = append(samples, core.SamplePoint{
			Time:   start.Add(time.Duration(i) * time.Hour).UnixMilli(),
			Values: map[string]float64{core.KeyEquity: float64(i)},
		})
	}

	c := NewController(nil, samples, core.KeyEquity)
	for i := 0; i < 100; i++ {
		c.ZoomAt(c.State().Time.Mid(), true)
	}

	assert.InDelta(t, float64(time.Hour/time.Millisecond), c.State().Time.Span(), 0.01)
}

func TestController_BoundsInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	c := newTestController(rampSamples(1001), WithMinSpan(5*time.Millisecond))
	bounds := c.Bounds()

	for i := 0; i < 5000; i++ {
		state := c.State().Time
		switch rnd.Intn(4) {
		case 0, 1:
			cursor := state.Lo + rnd.Float64()*state.Span()
			c.ZoomAtFactor(cursor, rnd.Intn(2) == 0, 1+rnd.Float64()*3)
		case 2:
			c.PanBy((rnd.Float64() - 0.5) * 800)
		case 3:
			if rnd.Intn(20) == 0 {
				c.Reset()
			}
		}

		next := c.State()
		require.GreaterOrEqual(t, next.Time.Lo, bounds.Lo)
		require.LessOrEqual(t, next.Time.Hi, bounds.Hi)
		require.GreaterOrEqual(t, next.Time.Span(), 5-tolerance)
		require.LessOrEqual(t, next.Value.Lo, next.Value.Hi)
		require.True(t, next.Value.IsFinite())
	}
}

func TestController_PanPreservesSpan(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	c := newTestController(rampSamples(1001))
	c.ZoomAtFactor(300, true, 3)
	span := c.State().Time.Span()

	for i := 0; i < 1000; i++ {
		c.PanBy((rnd.Float64() - 0.5) * 400)
		require.InDelta(t, span, c.State().Time.Span(), tolerance)
	}
}
