package gesture

import "fmt"

type Kind string

const (
	KindPointerDown  Kind = "pointerdown"
	KindPointerMove  Kind = "pointermove"
	KindPointerUp    Kind = "pointerup"
	KindPointerEnter Kind = "pointerenter"
	KindPointerLeave Kind = "pointerleave"
	KindWheel        Kind = "wheel"
	KindDoubleClick  Kind = "dblclick"
)

// Event is a serialized surface event, as posted by the browser or read
// from a replay script
type Event struct {
	Kind    Kind    `json:"kind"`
	X       float64 `json:"x"`
	DeltaY  float64 `json:"delta_y"`
	Surface Surface `json:"surface"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s x=%.1f dy=%.1f", e.Kind, e.X, e.DeltaY)
}
