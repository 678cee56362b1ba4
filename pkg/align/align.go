// Package align merges the equity and price curves into the single sample
// sequence that backs the chart viewport.
package align

import (
	"slices"

	"github.com/StudioSol/set"
	"github.com/raykavin/backview/pkg/core"
)

// Align merges a primary and an optional secondary curve into samples sorted
// by timestamp. Each sample holds only the values recorded at that exact
// timestamp; nothing is interpolated. A timestamp repeated inside one curve
// keeps the latest value seen. Curves without a key are ignored.
func Align(primary, secondary core.Curve) []core.SamplePoint {
	timestamps := set.NewLinkedHashSetINT64()
	valuesByTime := make(map[int64]map[string]float64)

	for _, curve := range []core.Curve{primary, secondary} {
		if curve.Key == "" {
			continue
		}

		for _, point := range curve.Points {
			values, ok := valuesByTime[point.Time]
			if !ok {
				values = make(map[string]float64, 2)
				valuesByTime[point.Time] = values
				timestamps.Add(point.Time)
			}
			values[curve.Key] = point.Value
		}
	}

	ordered := make([]int64, 0, len(valuesByTime))
	for ts := range timestamps.Iter() {
		ordered = append(ordered, ts)
	}
	slices.Sort(ordered)

	samples := make([]core.SamplePoint, 0, len(ordered))
	for _, ts := range ordered {
		samples = append(samples, core.SamplePoint{
			Time:   ts,
			Values: valuesByTime[ts],
		})
	}

	return samples
}

// Keys returns the distinct value keys present in the samples in first-seen order
func Keys(samples []core.SamplePoint) []string {
	keys := set.NewLinkedHashSetString()
	for _, sample := range samples {
		sorted := make([]string, 0, len(sample.Values))
		for key := range sample.Values {
			sorted = append(sorted, key)
		}
		slices.Sort(sorted)
		for _, key := range sorted {
			keys.Add(key)
		}
	}

	out := make([]string, 0)
	for key := range keys.Iter() {
		out = append(out, key)
	}
	return out
}
