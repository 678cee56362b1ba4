package domain

// Scale maps a domain interval linearly onto the horizontal pixel extent
// of the drawing surface.
type Scale struct {
	Domain Interval
	Left   float64
	Width  float64
}

// NewScale builds a scale for a surface whose bounding box starts at left
func NewScale(domain Interval, left, width float64) Scale {
	return Scale{Domain: domain, Left: left, Width: width}
}

// Valid reports whether the surface can be inverted
func (s Scale) Valid() bool {
	return s.Width > 0 && isFinite(s.Width) && isFinite(s.Left)
}

// PixelToDomain inverts the mapping. The result is clamped into the domain so
// rounding at the surface edges never produces a point outside the window.
func (s Scale) PixelToDomain(x float64) (float64, bool) {
	if !s.Valid() || !isFinite(x) {
		return 0, false
	}
	ratio := (x - s.Left) / s.Width
	return s.Domain.ClampValue(s.Domain.Lo + ratio*s.Domain.Span()), true
}

// DomainToPixel maps a domain coordinate onto the surface
func (s Scale) DomainToPixel(v float64) (float64, bool) {
	span := s.Domain.Span()
	if !s.Valid() || span <= 0 {
		return 0, false
	}
	return s.Left + (v-s.Domain.Lo)/span*s.Width, true
}

// PixelsToDomain converts a horizontal pixel distance into a domain distance
func (s Scale) PixelsToDomain(dx float64) (float64, bool) {
	if !s.Valid() || !isFinite(dx) {
		return 0, false
	}
	return dx / s.Width * s.Domain.Span(), true
}
