package viewport

import (
	"math"
	"time"

	"github.com/raykavin/backview/pkg/domain"
)

const (
	DefaultMinSpan    = time.Hour
	DefaultZoomFactor = 1.2
)

// Option defines a function type for configuring a Controller instance
type Option func(*Controller)

// WithMinSpan sets the narrowest time window a zoom can produce
func WithMinSpan(span time.Duration) Option {
	return func(c *Controller) {
		if span > 0 {
			c.minSpan = float64(span) / float64(time.Millisecond)
		}
	}
}

// WithZoomFactor sets the scale applied by a single wheel tick
func WithZoomFactor(factor float64) Option {
	return func(c *Controller) {
		if factor > 1 && !math.IsInf(factor, 0) {
			c.zoomFactor = factor
		}
	}
}

// WithPadding sets the autoscale padding: a fraction of the visible range, or
// a fixed amount when the visible values are flat
func WithPadding(fraction, fixed float64) Option {
	return func(c *Controller) {
		if fraction >= 0 {
			c.padFraction = fraction
		}
		if fixed >= 0 {
			c.fixedPad = fixed
		}
	}
}

func defaults(c *Controller) {
	c.minSpan = float64(DefaultMinSpan) / float64(time.Millisecond)
	c.zoomFactor = DefaultZoomFactor
	c.padFraction = domain.DefaultPadFraction
	c.fixedPad = domain.DefaultFixedPad
}
