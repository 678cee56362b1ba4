package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/raykavin/backview/pkg/core"
	"github.com/samber/lo"
)

// record is one entry of an exported equity curve, e.g.
// {"timestamp": "2024-01-02T00:00:00", "equity": 10250.5}
type record map[string]json.RawMessage

// LoadJSON reads a curve from a JSON array of records. The value is taken from
// the field named after key, falling back to "value", "equity" or "close".
func LoadJSON(r io.Reader, key string) (core.Curve, error) {
	if key == "" {
		return core.Curve{}, core.ErrEmptyCurveKey
	}

	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return core.Curve{}, ErrEmptyInput
		}
		return core.Curve{}, fmt.Errorf("failed to decode json: %w", err)
	}

	points := make([]core.Point, 0, len(records))
	for i, rec := range records {
		point, err := rec.point(key)
		if err != nil {
			return core.Curve{}, fmt.Errorf("record %d: %w", i, err)
		}
		points = append(points, point)
	}

	return core.Curve{Key: key, Points: points}, nil
}

func (r record) point(key string) (core.Point, error) {
	timeField, ok := lo.Find(timeHeaders, func(name string) bool { return r[name] != nil })
	if !ok {
		return core.Point{}, fmt.Errorf("%w: time", ErrMissingColumn)
	}
	valueField, ok := lo.Find(append([]string{key}, valueHeaders...), func(name string) bool { return r[name] != nil })
	if !ok {
		return core.Point{}, fmt.Errorf("%w: value for %s", ErrMissingColumn, key)
	}

	var ts core.Timestamp
	if err := json.Unmarshal(r[timeField], &ts); err != nil {
		return core.Point{}, err
	}

	// null values are kept as NaN so the sample stays present but non-finite
	var value *float64
	if err := json.Unmarshal(r[valueField], &value); err != nil {
		return core.Point{}, fmt.Errorf("invalid value: %w", err)
	}
	if value == nil {
		return core.Point{Time: int64(ts), Value: math.NaN()}, nil
	}

	return core.Point{Time: int64(ts), Value: *value}, nil
}
