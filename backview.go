// Package backview is the viewport engine of the backtest equity chart: it
// aligns the equity and price curves, tracks the visible window and turns
// surface gestures into zoom and pan operations.
package backview

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/backview/pkg/align"
	"github.com/raykavin/backview/pkg/core"
	"github.com/raykavin/backview/pkg/gesture"
	"github.com/raykavin/backview/pkg/logger"
	"github.com/raykavin/backview/pkg/logger/zerolog"
	"github.com/raykavin/backview/pkg/metric"
	"github.com/raykavin/backview/pkg/viewport"
)

const (
	bootstrapRounds     = 10000
	bootstrapConfidence = 0.95
	histogramBins       = 15
)

// Engine wires the aligned samples, the viewport controller and the gesture
// router of one chart
type Engine struct {
	log             logger.Logger
	activeKey       string
	rnd             *rand.Rand
	viewportOptions []viewport.Option

	controller *viewport.Controller
	router     *gesture.Router
}

// New creates an engine over a primary curve and an optional secondary one.
// Pass the zero core.Curve when there is no secondary series.
func New(primary, secondary core.Curve, options ...Option) *Engine {
	engine := &Engine{
		log:       DefaultLog,
		activeKey: primary.Key,
	}

	for _, option := range options {
		option(engine)
	}

	if engine.log == nil {
		engine.log = zerolog.Nop()
	}
	if engine.rnd == nil {
		engine.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	samples := align.Align(primary, secondary)
	engine.log.WithFields(map[string]any{
		"samples":   len(samples),
		"primary":   primary.Key,
		"secondary": secondary.Key,
	}).Debug("curves aligned")

	engine.controller = viewport.NewController(engine.log, samples, engine.activeKey, engine.viewportOptions...)
	engine.router = gesture.NewRouter(engine.log, engine.controller)

	return engine
}

// SetCurves replaces the data of the chart and resets the viewport. The
// active series is kept when the new curves still carry it.
func (e *Engine) SetCurves(primary, secondary core.Curve) {
	samples := align.Align(primary, secondary)
	e.controller.SetSamples(samples)

	if !slices.Contains(align.Keys(samples), e.activeKey) && primary.Key != "" {
		e.activeKey = primary.Key
		e.controller.SetActiveSeries(e.activeKey)
	}
}

// SetActiveSeries selects the series driving the value axis
func (e *Engine) SetActiveSeries(key string) {
	e.activeKey = key
	e.controller.SetActiveSeries(key)
}

// Controller returns the viewport controller
func (e *Engine) Controller() *viewport.Controller {
	return e.controller
}

// Router returns the gesture router
func (e *Engine) Router() *gesture.Router {
	return e.router
}

// State returns the current viewport
func (e *Engine) State() viewport.State {
	return e.controller.State()
}

// Keys returns the series keys present in the data
func (e *Engine) Keys() []string {
	return align.Keys(e.controller.Samples())
}

// Dispatch routes a surface event, see gesture.Router.Dispatch
func (e *Engine) Dispatch(ev gesture.Event) bool {
	return e.router.Dispatch(ev)
}

// Summary writes statistics of the visible window: one table row per series,
// the distribution of the active series returns and their bootstrap
// confidence interval.
func (e *Engine) Summary(w io.Writer) error {
	state := e.controller.State()
	visible := e.controller.Visible()

	buffer := bytes.NewBuffer(nil)
	table := tablewriter.NewWriter(buffer)
	table.SetHeader([]string{"Series", "Points", "First", "Last", "Change", "Min", "Max", "Mean", "Std Dev", "Max DD"})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	for _, key := range align.Keys(visible) {
		summary := metric.Summarize(visible, key)
		maxDrawdown := "-"
		if dd, ok := metric.MaxDrawdown(visible, key); ok {
			maxDrawdown = fmt.Sprintf("%.1f %%", dd.Value*100)
		}

		table.Append([]string{
			key,
			fmt.Sprintf("%d", summary.Count),
			fmt.Sprintf("%.2f", summary.First),
			fmt.Sprintf("%.2f", summary.Last),
			fmt.Sprintf("%.1f %%", summary.Change()*100),
			fmt.Sprintf("%.2f", summary.Min),
			fmt.Sprintf("%.2f", summary.Max),
			fmt.Sprintf("%.2f", summary.Mean),
			fmt.Sprintf("%.2f", summary.StdDev),
			maxDrawdown,
		})
	}

	table.SetFooter([]string{
		"WINDOW",
		fmt.Sprintf("%d", len(visible)),
		formatMillis(state.Time.Lo),
		formatMillis(state.Time.Hi),
		"", "", "", "", "", "",
	})
	table.Render()

	fmt.Fprintln(w, buffer.String())

	returns := metric.Summarize(visible, state.ActiveSeriesKey).Returns
	if returns.Length() == 0 {
		return nil
	}

	fmt.Fprintf(w, "------ RETURN (%s) -------\n", state.ActiveSeriesKey)
	returnsPercent := make([]float64, returns.Length())
	for i, r := range returns {
		returnsPercent[i] = r * 100
	}
	hist := histogram.Hist(histogramBins, returnsPercent)
	if err := histogram.Fprint(w, hist, histogram.Linear(10)); err != nil {
		return fmt.Errorf("failed to print histogram: %w", err)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "------ CONFIDENCE INTERVAL (%.0f%%) -------\n", bootstrapConfidence*100)
	interval := metric.Bootstrap(e.rnd, returns, metric.Mean, bootstrapRounds, bootstrapConfidence)
	fmt.Fprintf(w, "RETURN:      %.3f%% (%.3f%% ~ %.3f%%)\n",
		interval.Mean*100, interval.Lower*100, interval.Upper*100)

	return nil
}

func formatMillis(ms float64) string {
	return time.UnixMilli(int64(ms)).UTC().Format(time.DateTime)
}
