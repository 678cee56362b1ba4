package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/raykavin/backview/pkg/core"
	"github.com/raykavin/backview/pkg/logger"
	"github.com/raykavin/backview/pkg/logger/zerolog"
	"github.com/tidwall/buntdb"
)

const (
	curvePrefix    = "curve:"
	curveTimeIndex = "curve_time"
)

var _ core.CurveStorage = (*BuntStorage)(nil)

// BuntStorage implements core.CurveStorage using BuntDB. Each point is a JSON
// document under "curve:<key>:<time>".
type BuntStorage struct {
	db  *buntdb.DB
	log logger.Logger
}

// FromMemory creates an in-memory storage
func FromMemory(log logger.Logger) (*BuntStorage, error) {
	return NewBuntStorage(log, ":memory:")
}

// FromFile creates a file-based storage
func FromFile(log logger.Logger, file string) (*BuntStorage, error) {
	return NewBuntStorage(log, file)
}

// NewBuntStorage opens a BuntDB database and prepares the time index
func NewBuntStorage(log logger.Logger, sourceFile string) (*BuntStorage, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	err = db.CreateIndex(curveTimeIndex, curvePrefix+"*", buntdb.IndexJSON("time"))
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	if log == nil {
		log = zerolog.Nop()
	}

	return &BuntStorage{db: db, log: log}, nil
}

// SaveCurve replaces every stored point of the curve
func (b *BuntStorage) SaveCurve(curve core.Curve) error {
	if curve.Key == "" {
		return core.ErrEmptyCurveKey
	}

	return b.db.Update(func(tx *buntdb.Tx) error {
		var stale []string
		err := tx.AscendKeys(curvePattern(curve.Key), func(key, _ string) bool {
			stale = append(stale, key)
			return true
		})
		if err != nil {
			return fmt.Errorf("failed to list curve %s: %w", curve.Key, err)
		}

		for _, key := range stale {
			if _, err := tx.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}

		for _, point := range curve.Points {
			// JSON has no NaN; a missing point reads back as absent anyway
			if math.IsNaN(point.Value) || math.IsInf(point.Value, 0) {
				continue
			}

			content, err := json.Marshal(point)
			if err != nil {
				return fmt.Errorf("failed to marshal point: %w", err)
			}

			if _, _, err = tx.Set(pointKey(curve.Key, point.Time), string(content), nil); err != nil {
				return fmt.Errorf("failed to store point: %w", err)
			}
		}

		return nil
	})
}

// Curve loads the points of a curve ordered by time
func (b *BuntStorage) Curve(key string) (core.Curve, error) {
	curve := core.Curve{Key: key, Points: make([]core.Point, 0)}

	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(curvePattern(key), func(_, value string) bool {
			var point core.Point
			if err := json.Unmarshal([]byte(value), &point); err != nil {
				b.log.WithError(err).Warn("skipping malformed point")
				return true
			}
			curve.Points = append(curve.Points, point)
			return true
		})
	})
	if err != nil {
		return core.Curve{}, fmt.Errorf("failed to load curve %s: %w", key, err)
	}

	if len(curve.Points) == 0 {
		return core.Curve{}, fmt.Errorf("%w: %s", core.ErrCurveNotFound, key)
	}

	slices.SortFunc(curve.Points, func(a, b core.Point) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		default:
			return 0
		}
	})

	return curve, nil
}

// Keys lists the stored curve keys in alphabetical order
func (b *BuntStorage) Keys() ([]string, error) {
	seen := make(map[string]struct{})

	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend(curveTimeIndex, func(key, _ string) bool {
			name := strings.TrimPrefix(key, curvePrefix)
			if idx := strings.LastIndexByte(name, ':'); idx >= 0 {
				seen[name[:idx]] = struct{}{}
			}
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over curves: %w", err)
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys, nil
}

// Close closes the database connection
func (b *BuntStorage) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func curvePattern(key string) string {
	return curvePrefix + key + ":*"
}

func pointKey(key string, ts int64) string {
	return fmt.Sprintf("%s%s:%d", curvePrefix, key, ts)
}
