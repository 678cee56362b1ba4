package plot

import (
	"fmt"
	"math"
	"time"

	"github.com/raykavin/backview/pkg/core"
	"github.com/raykavin/backview/pkg/domain"
	"github.com/raykavin/backview/pkg/metric"
	"github.com/raykavin/backview/pkg/viewport"
	"github.com/samber/lo"
)

// sample is the JSON form of core.SamplePoint. Non-finite values cannot be
// encoded and are sent as null.
type sample struct {
	Time   int64               `json:"time"`
	Values map[string]*float64 `json:"values"`
}

// drawdown represents maximum drawdown information
type drawdown struct {
	Value string    `json:"value"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// viewportPayload is the body returned by every viewport endpoint
type viewportPayload struct {
	Time         domain.Interval `json:"time"`
	Value        domain.Interval `json:"value"`
	ActiveSeries string          `json:"active_series"`
	AutoValue    bool            `json:"auto_value"`
	Samples      []sample        `json:"samples"`
	MaxDrawdown  *drawdown       `json:"max_drawdown"`
}

type gestureResponse struct {
	PreventDefault bool            `json:"prevent_default"`
	Viewport       viewportPayload `json:"viewport"`
}

func newViewportPayload(state viewport.State, visible []core.SamplePoint) viewportPayload {
	payload := viewportPayload{
		Time:         state.Time,
		Value:        state.Value,
		ActiveSeries: state.ActiveSeriesKey,
		AutoValue:    state.AutoValue,
		Samples: lo.Map(visible, func(p core.SamplePoint, _ int) sample {
			return sample{
				Time: p.Time,
				Values: lo.MapValues(p.Values, func(v float64, _ string) *float64 {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						return nil
					}
					return &v
				}),
			}
		}),
	}

	if dd, ok := metric.MaxDrawdown(visible, state.ActiveSeriesKey); ok {
		payload.MaxDrawdown = &drawdown{
			Value: fmt.Sprintf("%.1f", dd.Value*100),
			Start: time.UnixMilli(dd.Start).UTC(),
			End:   time.UnixMilli(dd.End).UTC(),
		}
	}

	return payload
}
