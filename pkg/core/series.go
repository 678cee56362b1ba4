package core

import (
	"golang.org/x/exp/constraints"
)

// Series is an ordered list of values taken from a curve or a sample window
type Series[T constraints.Ordered] []T

// Values returns the underlying slice of values
func (s Series[T]) Values() []T {
	return s
}

// Length returns the number of values in the series
func (s Series[T]) Length() int {
	return len(s)
}

// Last returns the value at a specified position from the end
// position 0 is the last value, 1 is the second-to-last, etc.
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// LastValues returns a slice with the last 'size' values
// If size exceeds the length, returns the entire series
func (s Series[T]) LastValues(size int) Series[T] {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// MinMax returns the smallest and largest value, ok is false for an empty series
func (s Series[T]) MinMax() (lo, hi T, ok bool) {
	if len(s) == 0 {
		return lo, hi, false
	}
	lo, hi = s[0], s[0]
	for _, v := range s[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, true
}

// Returns computes the relative change between consecutive values,
// skipping steps whose base is zero
func Returns[T constraints.Float](s Series[T]) Series[T] {
	if len(s) < 2 {
		return Series[T]{}
	}
	out := make(Series[T], 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		if s[i-1] == 0 {
			continue
		}
		out = append(out, (s[i]-s[i-1])/s[i-1])
	}
	return out
}
