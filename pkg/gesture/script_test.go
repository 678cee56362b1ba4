package gesture

import (
	"strings"
	"testing"

	"github.com/raykavin/backview/pkg/domain"
	"github.com/raykavin/backview/pkg/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadScript(t *testing.T) {
	script := `
# zoom in at the middle, then drag right
{"kind":"pointerenter"}
{"kind":"wheel","x":50,"delta_y":-120,"surface":{"left":0,"width":100}}

{"kind":"pointerdown","x":50,"surface":{"left":0,"width":100}}
{"kind":"pointermove","x":60,"surface":{"left":0,"width":100}}
{"kind":"pointerup"}
`
	events, err := ReadScript(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, events, 5)

	assert.Equal(t, KindPointerEnter, events[0].Kind)
	assert.Equal(t, Event{Kind: KindWheel, X: 50, DeltaY: -120, Surface: Surface{Left: 0, Width: 100}}, events[1])
	assert.Equal(t, KindPointerUp, events[4].Kind)

	_, err = ReadScript(strings.NewReader("{\"kind\":\"wheel\"}\nnot json\n"))
	require.ErrorContains(t, err, "line 2")
}

func TestRouter_Replay(t *testing.T) {
	rec := &recorder{state: viewport.State{Time: domain.Interval{Lo: 0, Hi: 100}}}
	router := NewRouter(nil, rec)

	router.Replay([]Event{
		{Kind: KindPointerEnter},
		{Kind: KindWheel, X: 50, DeltaY: -1, Surface: Surface{Width: 100}},
		{Kind: KindDoubleClick},
	})

	assert.Equal(t, 1, rec.zooms)
	assert.Equal(t, 1, rec.resets)
	assert.True(t, router.ScrollSuppressed())
}
