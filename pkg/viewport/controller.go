// Package viewport owns the visible time window and value range of the chart
// and applies zoom, pan and reset requests to them.
package viewport

import (
	"math"
	"slices"
	"sort"

	"github.com/raykavin/backview/pkg/core"
	"github.com/raykavin/backview/pkg/domain"
	"github.com/raykavin/backview/pkg/logger"
	"github.com/raykavin/backview/pkg/logger/zerolog"
)

// spanTolerance is the relative span change below which a zoom is a no-op
const spanTolerance = 1e-9

// Controller is the single owner of the viewport State. It is not safe for
// concurrent use; callers serialize access the way a UI event loop does.
type Controller struct {
	log logger.Logger

	minSpan     float64
	zoomFactor  float64
	padFraction float64
	fixedPad    float64

	samples   []core.SamplePoint
	bounds    domain.Interval
	state     State
	listeners []func(State)
}

// NewController creates a controller over aligned samples. The initial state
// is the reset state: the full data extent for activeKey.
func NewController(log logger.Logger, samples []core.SamplePoint, activeKey string, options ...Option) *Controller {
	if log == nil {
		log = zerolog.Nop()
	}

	c := &Controller{log: log}
	defaults(c)
	for _, option := range options {
		option(c)
	}

	c.load(samples)
	c.commit(c.derive(c.bounds, activeKey))

	return c
}

// State returns the current viewport state
func (c *Controller) State() State {
	return c.state
}

// Bounds returns the full time extent of the data
func (c *Controller) Bounds() domain.Interval {
	return c.bounds
}

// Samples returns the aligned samples backing the viewport
func (c *Controller) Samples() []core.SamplePoint {
	return c.samples
}

// ZoomFactor returns the factor applied by ZoomAt
func (c *Controller) ZoomFactor() float64 {
	return c.zoomFactor
}

// MinSpan returns the effective minimum window span. It never exceeds the
// data extent, so short series can still be shown in full.
func (c *Controller) MinSpan() float64 {
	return min(c.minSpan, c.bounds.Span())
}

// Visible returns the samples inside the current time window
func (c *Controller) Visible() []core.SamplePoint {
	return c.window(c.state.Time)
}

// Subscribe registers a callback invoked after every state change
func (c *Controller) Subscribe(listener func(State)) {
	c.listeners = append(c.listeners, listener)
}

// SetSamples replaces the data behind the viewport and resets it
func (c *Controller) SetSamples(samples []core.SamplePoint) {
	c.load(samples)
	c.log.WithFields(map[string]any{
		"samples": len(c.samples),
		"from":    c.bounds.Lo,
		"to":      c.bounds.Hi,
	}).Debug("viewport data changed")
	c.Reset()
}

// Reset shows the full data extent
func (c *Controller) Reset() {
	c.commit(c.derive(c.bounds, c.state.ActiveSeriesKey))
}

// SetActiveSeries switches the series that drives the value range. The time
// window is kept as is.
func (c *Controller) SetActiveSeries(key string) {
	c.commit(c.derive(c.state.Time, key))
}

// ZoomAt zooms the time window around cursorTime by the configured factor
func (c *Controller) ZoomAt(cursorTime float64, in bool) {
	c.ZoomAtFactor(cursorTime, in, c.zoomFactor)
}

// ZoomAtFactor rescales the time window so cursorTime keeps its relative
// position. The result is clamped to the data extent and never narrower than
// MinSpan; a zoom that would not change the span leaves the state untouched.
func (c *Controller) ZoomAtFactor(cursorTime float64, in bool, factor float64) {
	if !isFinite(cursorTime) || !isFinite(factor) || factor <= 1 {
		c.log.WithFields(map[string]any{
			"cursor": cursorTime,
			"factor": factor,
		}).Debug("zoom ignored: invalid input")
		return
	}

	current := c.state.Time
	cursor := current.ClampValue(cursorTime)

	scale := 1 / factor
	if !in {
		scale = factor
	}

	next := domain.Interval{
		Lo: cursor - (cursor-current.Lo)*scale,
		Hi: cursor + (current.Hi-cursor)*scale,
	}
	next = domain.WithMinSpan(next, c.MinSpan(), c.bounds)

	if math.Abs(next.Span()-current.Span()) <= spanTolerance*max(1, current.Span()) {
		c.log.WithField("span", current.Span()).Debug("zoom ignored: span at limit")
		return
	}

	c.commit(c.derive(next, c.state.ActiveSeriesKey))
}

// PanBy shifts the time window by delta. The span is never changed: a shift
// past the data extent is shortened so the window rests on the boundary.
func (c *Controller) PanBy(delta float64) {
	if !isFinite(delta) || delta == 0 {
		return
	}

	current := c.state.Time
	span := current.Span()

	var next domain.Interval
	switch {
	case current.Lo+delta < c.bounds.Lo:
		next = domain.Interval{Lo: c.bounds.Lo, Hi: min(c.bounds.Lo+span, c.bounds.Hi)}
	case current.Hi+delta > c.bounds.Hi:
		next = domain.Interval{Lo: max(c.bounds.Hi-span, c.bounds.Lo), Hi: c.bounds.Hi}
	default:
		next = current.Shift(delta)
	}

	if next == current {
		c.log.WithField("delta", delta).Debug("pan saturated at data boundary")
		return
	}

	c.commit(c.derive(next, c.state.ActiveSeriesKey))
}

// derive builds the full state for a time window, autoscaling the value range
// from the samples visible in it.
func (c *Controller) derive(window domain.Interval, key string) State {
	next := State{
		Time:            window,
		ActiveSeriesKey: key,
	}

	if value, ok := domain.ValueRangeOf(c.window(window), key, c.padFraction, c.fixedPad); ok {
		next.Value = value
		return next
	}

	next.AutoValue = true
	if value, ok := domain.ValueRangeOf(c.samples, key, c.padFraction, c.fixedPad); ok {
		next.Value = value
	}

	return next
}

func (c *Controller) commit(next State) {
	if next == c.state {
		return
	}
	c.state = next
	for _, listener := range c.listeners {
		listener(next)
	}
}

func (c *Controller) load(samples []core.SamplePoint) {
	if !slices.IsSortedFunc(samples, compareSamples) {
		samples = slices.Clone(samples)
		slices.SortStableFunc(samples, compareSamples)
	}

	c.samples = samples
	c.bounds = domain.Interval{}
	if len(samples) > 0 {
		c.bounds = domain.Interval{
			Lo: float64(samples[0].Time),
			Hi: float64(samples[len(samples)-1].Time),
		}
	}
}

func (c *Controller) window(iv domain.Interval) []core.SamplePoint {
	from := sort.Search(len(c.samples), func(i int) bool {
		return float64(c.samples[i].Time) >= iv.Lo
	})
	to := sort.Search(len(c.samples), func(i int) bool {
		return float64(c.samples[i].Time) > iv.Hi
	})
	if from >= to {
		return nil
	}
	return c.samples[from:to]
}

func compareSamples(a, b core.SamplePoint) int {
	switch {
	case a.Time < b.Time:
		return -1
	case a.Time > b.Time:
		return 1
	default:
		return 0
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
