package backview

import (
	"math/rand"
	"time"

	"github.com/raykavin/backview/pkg/logger"
	"github.com/raykavin/backview/pkg/viewport"
)

// Option is a functional option for configuring an Engine instance
type Option func(*Engine)

// WithLogger replaces DefaultLog for the engine and its components
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithMinSpan sets the narrowest time window reachable by zooming in
func WithMinSpan(span time.Duration) Option {
	return func(e *Engine) {
		e.viewportOptions = append(e.viewportOptions, viewport.WithMinSpan(span))
	}
}

// WithZoomFactor sets the factor applied by one wheel step
func WithZoomFactor(factor float64) Option {
	return func(e *Engine) {
		e.viewportOptions = append(e.viewportOptions, viewport.WithZoomFactor(factor))
	}
}

// WithPadding sets the value axis padding, see domain.ValueRangeOf
func WithPadding(fraction, fixed float64) Option {
	return func(e *Engine) {
		e.viewportOptions = append(e.viewportOptions, viewport.WithPadding(fraction, fixed))
	}
}

// WithActiveSeries selects the series driving the value axis. By default it
// is the primary curve.
func WithActiveSeries(key string) Option {
	return func(e *Engine) {
		e.activeKey = key
	}
}

// WithRand sets the random source of the bootstrap in Summary
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) {
		e.rnd = rnd
	}
}
