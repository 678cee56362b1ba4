package metric

import (
	"math"

	"github.com/raykavin/backview/pkg/core"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one series inside the visible window
type Summary struct {
	Key     string
	Count   int
	First   float64
	Last    float64
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
	Returns core.Series[float64]
}

// Change returns the relative change between the first and the last value
func (s Summary) Change() float64 {
	if s.Count == 0 || s.First == 0 {
		return 0
	}
	return s.Last/s.First - 1
}

// Summarize collects the finite values of key from points
func Summarize(points []core.SamplePoint, key string) Summary {
	values := core.Series[float64](lo.FilterMap(points, func(p core.SamplePoint, _ int) (float64, bool) {
		return p.FiniteValue(key)
	}))

	summary := Summary{Key: key, Count: len(values)}
	if len(values) == 0 {
		return summary
	}

	summary.First = values[0]
	summary.Last = values.Last(0)
	summary.Min = floats.Min(values)
	summary.Max = floats.Max(values)
	summary.Mean, summary.StdDev = stat.MeanStdDev(values, nil)
	if math.IsNaN(summary.StdDev) {
		summary.StdDev = 0
	}
	summary.Returns = core.Returns(values)

	return summary
}
