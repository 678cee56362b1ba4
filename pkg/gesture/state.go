package gesture

import "github.com/raykavin/backview/pkg/domain"

// State is the pan state of the router: Idle or Panning.
type State interface {
	isState()
}

// Idle means no pointer is pressed on the surface
type Idle struct{}

// Panning remembers where the drag started and the time window at that moment
type Panning struct {
	AnchorPixelX float64
	AnchorTime   domain.Interval
}

func (Idle) isState()    {}
func (Panning) isState() {}

// Surface is the horizontal extent of the drawing surface bounding box
type Surface struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}
