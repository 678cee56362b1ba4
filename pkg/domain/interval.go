// Package domain holds the interval arithmetic behind the chart viewport:
// time windows, value ranges and the linear pixel mapping between them.
package domain

import (
	"math"

	"github.com/samber/lo"
)

// Interval is a closed 1-D range with Lo <= Hi.
type Interval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// NewInterval builds an interval, swapping the bounds when given in reverse
func NewInterval(lo, hi float64) Interval {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Interval{Lo: lo, Hi: hi}
}

// Span returns Hi - Lo
func (i Interval) Span() float64 {
	return i.Hi - i.Lo
}

// Mid returns the interval midpoint
func (i Interval) Mid() float64 {
	return i.Lo + i.Span()/2
}

// Contains reports whether v lies inside the closed interval
func (i Interval) Contains(v float64) bool {
	return v >= i.Lo && v <= i.Hi
}

// Shift moves both bounds by delta
func (i Interval) Shift(delta float64) Interval {
	return Interval{Lo: i.Lo + delta, Hi: i.Hi + delta}
}

// ClampValue constrains v to the interval
func (i Interval) ClampValue(v float64) float64 {
	return lo.Clamp(v, i.Lo, i.Hi)
}

// Equal compares two intervals with an absolute tolerance
func (i Interval) Equal(other Interval, eps float64) bool {
	return math.Abs(i.Lo-other.Lo) <= eps && math.Abs(i.Hi-other.Hi) <= eps
}

// IsFinite reports whether both bounds are finite numbers
func (i Interval) IsFinite() bool {
	return isFinite(i.Lo) && isFinite(i.Hi)
}

// Clamp returns an interval fully inside bounds. The span of iv is kept when
// it fits, otherwise bounds itself is returned.
func Clamp(iv, bounds Interval) Interval {
	span := iv.Span()
	if span >= bounds.Span() {
		return bounds
	}
	if iv.Lo < bounds.Lo {
		return Interval{Lo: bounds.Lo, Hi: min(bounds.Lo+span, bounds.Hi)}
	}
	if iv.Hi > bounds.Hi {
		return Interval{Lo: max(bounds.Hi-span, bounds.Lo), Hi: bounds.Hi}
	}
	return iv
}

// WithMinSpan widens iv symmetrically around its midpoint until it spans at
// least minSpan, then clamps the result to bounds.
func WithMinSpan(iv Interval, minSpan float64, bounds Interval) Interval {
	if iv.Span() < minSpan {
		half := minSpan / 2
		mid := iv.Mid()
		iv = Interval{Lo: mid - half, Hi: mid + half}
	}
	return Clamp(iv, bounds)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
