package core

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	expected := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC).UnixMilli()

	tt := []struct {
		name string
		raw  string
	}{
		{"rfc3339", "2024-03-01T12:30:00Z"},
		{"rfc3339 offset", "2024-03-01T14:30:00+02:00"},
		{"iso without zone", "2024-03-01T12:30:00"},
		{"space separated", "2024-03-01 12:30:00"},
		{"epoch seconds", "1709296200"},
		{"epoch millis", "1709296200000"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimestamp(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}

	t.Run("date only", func(t *testing.T) {
		got, err := ParseTimestamp("2024-03-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), got)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseTimestamp("yesterday")
		require.ErrorIs(t, err, ErrInvalidTimestamp)

		_, err = ParseTimestamp("  ")
		require.ErrorIs(t, err, ErrInvalidTimestamp)
	})
}

func TestEpochToMillis(t *testing.T) {
	_, err := EpochToMillis(math.NaN())
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	got, err := EpochToMillis(0)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var payload struct {
		A Timestamp `json:"a"`
		B Timestamp `json:"b"`
	}

	err := json.Unmarshal([]byte(`{"a": "2024-03-01T12:30:00Z", "b": 1709296200000}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, payload.A, payload.B)

	err = json.Unmarshal([]byte(`{"a": true}`), &payload)
	require.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestSeries(t *testing.T) {
	s := Series[float64]{100, 110, 99, 0, 10}

	lo, hi, ok := s.MinMax()
	require.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 110.0, hi)
	assert.Equal(t, 10.0, s.Last(0))
	assert.Equal(t, Series[float64]{0, 10}, s.LastValues(2))

	returns := Returns(s)
	require.Len(t, returns, 3)
	assert.InDelta(t, 0.1, returns[0], 1e-9)
	assert.InDelta(t, -0.1, returns[1], 1e-9)

	_, _, ok = Series[float64]{}.MinMax()
	assert.False(t, ok)
}
