package storage

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/raykavin/backview/pkg/core"
	"github.com/raykavin/backview/pkg/logger/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStorage(t *testing.T) *BuntStorage {
	t.Helper()
	store, err := FromMemory(zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBuntStorage_SaveAndLoad(t *testing.T) {
	store := newMemoryStorage(t)

	err := store.SaveCurve(core.Curve{Key: core.KeyEquity, Points: []core.Point{
		{Time: 3000, Value: 103},
		{Time: 1000, Value: 101},
		{Time: 2000, Value: 102},
		{Time: 1000, Value: 100},
	}})
	require.NoError(t, err)

	curve, err := store.Curve(core.KeyEquity)
	require.NoError(t, err)
	assert.Equal(t, core.KeyEquity, curve.Key)
	assert.Equal(t, []core.Point{
		{Time: 1000, Value: 100},
		{Time: 2000, Value: 102},
		{Time: 3000, Value: 103},
	}, curve.Points)
}

func TestBuntStorage_SaveReplaces(t *testing.T) {
	store := newMemoryStorage(t)

	require.NoError(t, store.SaveCurve(core.Curve{Key: core.KeyPrice, Points: []core.Point{{Time: 1, Value: 1}, {Time: 2, Value: 2}}}))
	require.NoError(t, store.SaveCurve(core.Curve{Key: core.KeyPrice, Points: []core.Point{{Time: 5, Value: 5}}}))

	curve, err := store.Curve(core.KeyPrice)
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{Time: 5, Value: 5}}, curve.Points)
}

func TestBuntStorage_Keys(t *testing.T) {
	store := newMemoryStorage(t)

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, store.SaveCurve(core.Curve{Key: core.KeyPrice, Points: []core.Point{{Time: 1, Value: 1}}}))
	require.NoError(t, store.SaveCurve(core.Curve{Key: core.KeyEquity, Points: []core.Point{{Time: 1, Value: 1}}}))

	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{core.KeyEquity, core.KeyPrice}, keys)
}

func TestBuntStorage_Errors(t *testing.T) {
	store := newMemoryStorage(t)

	_, err := store.Curve("missing")
	require.ErrorIs(t, err, core.ErrCurveNotFound)

	err = store.SaveCurve(core.Curve{})
	require.ErrorIs(t, err, core.ErrEmptyCurveKey)
}

func TestBuntStorage_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curves.db")

	store, err := FromFile(zerolog.Nop(), path)
	require.NoError(t, err)
	require.NoError(t, store.SaveCurve(core.Curve{Key: core.KeyEquity, Points: []core.Point{{Time: 7, Value: 70}}}))
	require.NoError(t, store.Close())

	reopened, err := FromFile(zerolog.Nop(), path)
	require.NoError(t, err)
	defer reopened.Close()

	curve, err := reopened.Curve(core.KeyEquity)
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{Time: 7, Value: 70}}, curve.Points)
}

func TestBuntStorage_SkipsNonFinite(t *testing.T) {
	store := newMemoryStorage(t)

	err := store.SaveCurve(core.Curve{Key: core.KeyPrice, Points: []core.Point{
		{Time: 1000, Value: 1},
		{Time: 2000, Value: math.NaN()},
		{Time: 3000, Value: math.Inf(1)},
	}})
	require.NoError(t, err)

	curve, err := store.Curve(core.KeyPrice)
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{Time: 1000, Value: 1}}, curve.Points)
}
