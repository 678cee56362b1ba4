// Package gesture turns pointer, wheel and double-click events on the chart
// surface into viewport operations.
package gesture

import (
	"math"

	"github.com/raykavin/backview/pkg/domain"
	"github.com/raykavin/backview/pkg/logger"
	"github.com/raykavin/backview/pkg/logger/zerolog"
	"github.com/raykavin/backview/pkg/viewport"
)

// Viewport is the part of viewport.Controller the router drives
type Viewport interface {
	State() viewport.State
	ZoomAt(cursorTime float64, in bool)
	PanBy(delta float64)
	Reset()
}

// Router is the gesture state machine of one chart surface. The router only
// reads the viewport state; every change goes through Viewport methods.
type Router struct {
	log      logger.Logger
	viewport Viewport
	state    State
	hovered  bool
}

// NewRouter creates a router in the Idle state
func NewRouter(log logger.Logger, vp Viewport) *Router {
	if log == nil {
		log = zerolog.Nop()
	}
	return &Router{
		log:      log,
		viewport: vp,
		state:    Idle{},
	}
}

// State returns the current pan state
func (r *Router) State() State {
	return r.state
}

// ScrollSuppressed reports whether default page scrolling must be blocked
// for wheel events over the surface, which is the case while hovered.
func (r *Router) ScrollSuppressed() bool {
	return r.hovered
}

// PointerEnter marks the surface as hovered
func (r *Router) PointerEnter() {
	r.hovered = true
}

// PointerLeave clears the hover flag and releases any drag in progress, so a
// pointer leaving while pressed cannot leave the pan stuck.
func (r *Router) PointerLeave() {
	r.hovered = false
	r.release()
}

// PointerDown starts a pan anchored at pixel x and the current time window
func (r *Router) PointerDown(x float64, surface Surface) {
	if !isFinite(x) {
		return
	}
	r.state = Panning{
		AnchorPixelX: x,
		AnchorTime:   r.viewport.State().Time,
	}
	r.log.WithField("x", x).Trace("pan started")
}

// PointerMove pans the viewport while a drag is active. The window follows
// the pointer from the anchor, dragging right reveals earlier data.
func (r *Router) PointerMove(x float64, surface Surface) {
	panning, ok := r.state.(Panning)
	if !ok {
		return
	}

	scale := domain.NewScale(panning.AnchorTime, surface.Left, surface.Width)
	delta, ok := scale.PixelsToDomain(x - panning.AnchorPixelX)
	if !ok {
		r.log.WithField("width", surface.Width).Debug("pan ignored: empty surface")
		return
	}

	target := panning.AnchorTime.Shift(-delta)
	r.viewport.PanBy(target.Lo - r.viewport.State().Time.Lo)
}

// PointerUp ends a drag
func (r *Router) PointerUp() {
	r.release()
}

// Wheel zooms around the time under the cursor, in for negative deltaY and
// out for positive. The returned flag tells the host to prevent the default
// page scroll.
func (r *Router) Wheel(x, deltaY float64, surface Surface) bool {
	preventDefault := r.hovered

	if deltaY == 0 || !isFinite(deltaY) {
		return preventDefault
	}

	scale := domain.NewScale(r.viewport.State().Time, surface.Left, surface.Width)
	cursor, ok := scale.PixelToDomain(x)
	if !ok {
		r.log.WithField("width", surface.Width).Debug("zoom ignored: empty surface")
		return preventDefault
	}

	r.viewport.ZoomAt(cursor, deltaY < 0)
	return preventDefault
}

// DoubleClick resets the viewport and ends any drag
func (r *Router) DoubleClick() {
	r.viewport.Reset()
	r.release()
}

// Dispatch routes a serialized event. It returns whether the default page
// scroll must be prevented for the event.
func (r *Router) Dispatch(ev Event) bool {
	r.log.Tracef("gesture %s", ev)

	switch ev.Kind {
	case KindPointerDown:
		r.PointerDown(ev.X, ev.Surface)
	case KindPointerMove:
		r.PointerMove(ev.X, ev.Surface)
	case KindPointerUp:
		r.PointerUp()
	case KindPointerEnter:
		r.PointerEnter()
	case KindPointerLeave:
		r.PointerLeave()
	case KindWheel:
		return r.Wheel(ev.X, ev.DeltaY, ev.Surface)
	case KindDoubleClick:
		r.DoubleClick()
	default:
		r.log.WithField("kind", ev.Kind).Warn("unknown gesture event")
	}

	return false
}

func (r *Router) release() {
	if _, ok := r.state.(Panning); ok {
		r.log.Trace("pan released")
	}
	r.state = Idle{}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
