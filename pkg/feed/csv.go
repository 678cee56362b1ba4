// Package feed reads equity and price curves exported by the backtest
// dashboard, as CSV tables or JSON records.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/raykavin/backview/pkg/core"
	"github.com/samber/lo"
)

var (
	ErrEmptyInput    = errors.New("empty input")
	ErrMissingColumn = errors.New("missing column")

	timeHeaders  = []string{"time", "timestamp", "date", "datetime"}
	valueHeaders = []string{"value", "equity", "close", "price"}
)

// columns holds the position of the time and value columns of a CSV file
type columns struct {
	time  int
	value int
}

// parseHeaders locates the columns by name. A first row starting with a
// timestamp is data, not header, and the default columns 0 and 1 apply.
func parseHeaders(header []string, key string) (cols columns, hasHeader bool, err error) {
	if _, err := core.ParseTimestamp(header[0]); err == nil {
		return columns{time: 0, value: 1}, false, nil
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	find := func(candidates []string) (int, bool) {
		name, ok := lo.Find(candidates, func(name string) bool {
			_, exists := index[name]
			return exists
		})
		return index[name], ok
	}

	var ok bool
	if cols.time, ok = find(timeHeaders); !ok {
		return cols, true, fmt.Errorf("%w: time", ErrMissingColumn)
	}
	if cols.value, ok = find(append([]string{strings.ToLower(key)}, valueHeaders...)); !ok {
		return cols, true, fmt.Errorf("%w: value for %s", ErrMissingColumn, key)
	}

	return cols, true, nil
}

// LoadCSV reads a curve from CSV rows of time and value
func LoadCSV(r io.Reader, key string) (core.Curve, error) {
	if key == "" {
		return core.Curve{}, core.ErrEmptyCurveKey
	}

	lines, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return core.Curve{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(lines) == 0 {
		return core.Curve{}, ErrEmptyInput
	}

	cols, hasHeader, err := parseHeaders(lines[0], key)
	if err != nil {
		return core.Curve{}, err
	}
	if hasHeader {
		lines = lines[1:]
	}

	points := make([]core.Point, 0, len(lines))
	for i, line := range lines {
		point, err := parsePointFromLine(line, cols)
		if err != nil {
			return core.Curve{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		points = append(points, point)
	}

	return core.Curve{Key: key, Points: points}, nil
}

// LoadCSVFile opens path and reads a curve from it
func LoadCSVFile(path, key string) (core.Curve, error) {
	file, err := os.Open(path)
	if err != nil {
		return core.Curve{}, err
	}
	defer file.Close()

	return LoadCSV(file, key)
}

func parsePointFromLine(line []string, cols columns) (core.Point, error) {
	if len(line) <= max(cols.time, cols.value) {
		return core.Point{}, fmt.Errorf("%w: got %d fields", ErrMissingColumn, len(line))
	}

	ts, err := core.ParseTimestamp(line[cols.time])
	if err != nil {
		return core.Point{}, err
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(line[cols.value]), 64)
	if err != nil {
		return core.Point{}, fmt.Errorf("invalid value %q: %w", line[cols.value], err)
	}

	return core.Point{Time: ts, Value: value}, nil
}
