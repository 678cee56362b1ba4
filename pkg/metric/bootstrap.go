package metric

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// BootstrapInterval is the confidence interval estimated by resampling
type BootstrapInterval struct {
	Lower  float64
	Upper  float64
	StdDev float64
	Mean   float64
}

// Bootstrap estimates the confidence interval of measure over values by
// drawing rounds resamples with replacement from rnd.
func Bootstrap(rnd *rand.Rand, values []float64, measure func([]float64) float64, rounds int, confidence float64) BootstrapInterval {
	if len(values) == 0 || rounds <= 0 {
		return BootstrapInterval{}
	}

	data := make([]float64, rounds)
	sample := make([]float64, len(values))
	for i := range data {
		for j := range sample {
			sample[j] = values[rnd.Intn(len(values))]
		}
		data[i] = measure(sample)
	}
	sort.Float64s(data)

	tail := 1 - confidence
	mean, stdDev := stat.MeanStdDev(data, nil)

	return BootstrapInterval{
		Lower:  stat.Quantile(tail/2, stat.LinInterp, data, nil),
		Upper:  stat.Quantile(1-tail/2, stat.LinInterp, data, nil),
		StdDev: stdDev,
		Mean:   mean,
	}
}

// Mean is a measure for Bootstrap
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}
