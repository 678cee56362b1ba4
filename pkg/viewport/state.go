package viewport

import (
	"github.com/raykavin/backview/pkg/domain"
)

// State is the visible part of the chart. A new value replaces the previous
// one on every controller operation; fields are never updated one by one.
type State struct {
	Time            domain.Interval `json:"time"`
	Value           domain.Interval `json:"value"`
	ActiveSeriesKey string          `json:"active_series"`
	// AutoValue is set when the visible window holds no finite value for the
	// active series and Value falls back to the full data extent.
	AutoValue bool `json:"auto_value"`
}
