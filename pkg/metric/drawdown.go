// Package metric computes statistics over the samples visible in the chart.
package metric

import (
	"github.com/raykavin/backview/pkg/core"
)

const KeyDrawdown = "drawdown"

// Drawdown is the deepest decline from a running peak. Value is a fraction of
// the peak, 0.25 meaning the curve lost 25% between Start and End.
type Drawdown struct {
	Value float64 `json:"value"`
	Start int64   `json:"start"`
	End   int64   `json:"end"`
}

// MaxDrawdown scans the finite values of key. ok is false when no decline
// from a positive peak exists.
func MaxDrawdown(points []core.SamplePoint, key string) (dd Drawdown, ok bool) {
	var (
		peak     float64
		peakTime int64
		seen     bool
	)

	for _, p := range points {
		v, present := p.FiniteValue(key)
		if !present {
			continue
		}
		if !seen || v > peak {
			peak, peakTime, seen = v, p.Time, true
			continue
		}
		if peak <= 0 {
			continue
		}
		if loss := (peak - v) / peak; loss > dd.Value {
			dd = Drawdown{Value: loss, Start: peakTime, End: p.Time}
			ok = true
		}
	}

	return dd, ok
}

// DrawdownCurve derives the underwater curve of an equity curve: for every
// point the percentage below the running peak (0 at a new high, negative
// otherwise). Points before the first positive value are skipped.
func DrawdownCurve(curve core.Curve) core.Curve {
	out := core.Curve{Key: KeyDrawdown, Points: make([]core.Point, 0, len(curve.Points))}

	peak := 0.0
	for _, p := range curve.Points {
		peak = max(peak, p.Value)
		if peak <= 0 {
			continue
		}
		out.Points = append(out.Points, core.Point{
			Time:  p.Time,
			Value: (p.Value - peak) / peak * 100,
		})
	}

	return out
}
