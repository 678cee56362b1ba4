package core

import (
	"math"
	"time"
)

// Point is a single observation of a curve, time in epoch milliseconds
type Point struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}

// TimeUTC returns the point timestamp as time.Time
func (p Point) TimeUTC() time.Time {
	return time.UnixMilli(p.Time).UTC()
}

// Curve is a named, time ordered sequence of points (equity curve, price curve)
type Curve struct {
	Key    string
	Points []Point
}

// Empty reports whether the curve carries no points
func (c Curve) Empty() bool {
	return len(c.Points) == 0
}

// Values returns the curve values as a series
func (c Curve) Values() Series[float64] {
	values := make(Series[float64], len(c.Points))
	for i, p := range c.Points {
		values[i] = p.Value
	}
	return values
}

// SamplePoint is one aligned timestamp of the chart. A key missing from
// Values means the curve has no sample at that timestamp.
type SamplePoint struct {
	Time   int64              `json:"time"`
	Values map[string]float64 `json:"values"`
}

// Value returns the value of key and whether it is present
func (s SamplePoint) Value(key string) (float64, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// FiniteValue returns the value of key only when present and finite
func (s SamplePoint) FiniteValue(key string) (float64, bool) {
	v, ok := s.Values[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
