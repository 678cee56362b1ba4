package domain

import (
	"github.com/raykavin/backview/pkg/core"
)

const (
	DefaultPadFraction = 0.1
	DefaultFixedPad    = 10.0
)

// ValueRangeOf scans points for the extent of key, ignoring absent and
// non-finite entries. A flat extent is padded by fixedPad on both sides,
// any other extent by padFraction of its span. When no finite value exists
// ok is false and the caller decides the fallback.
func ValueRangeOf(points []core.SamplePoint, key string, padFraction, fixedPad float64) (iv Interval, ok bool) {
	values := make(core.Series[float64], 0, len(points))
	for _, p := range points {
		if v, present := p.FiniteValue(key); present {
			values = append(values, v)
		}
	}

	lo, hi, ok := values.MinMax()
	if !ok {
		return Interval{}, false
	}

	pad := (hi - lo) * padFraction
	if lo == hi {
		pad = fixedPad
	}

	return Interval{Lo: lo - pad, Hi: hi + pad}, true
}
