package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// epochSecondsLimit separates epoch seconds from epoch milliseconds.
// 1e11 seconds is year 5138, 1e11 milliseconds is March 1973.
const epochSecondsLimit = 1e11

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp converts an ISO-8601 string or an epoch number (seconds or
// milliseconds) into epoch milliseconds. Strings without zone are read as UTC.
func ParseTimestamp(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}

	if epoch, err := strconv.ParseFloat(raw, 64); err == nil {
		return EpochToMillis(epoch)
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts.UnixMilli(), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}

// EpochToMillis normalizes an epoch number to milliseconds
func EpochToMillis(epoch float64) (int64, error) {
	if math.IsNaN(epoch) || math.IsInf(epoch, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimestamp, epoch)
	}
	if math.Abs(epoch) < epochSecondsLimit {
		epoch *= 1000
	}
	return int64(math.Round(epoch)), nil
}

// Timestamp accepts either a JSON string or a JSON number
type Timestamp int64

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var (
		millis int64
		err    error
	)
	switch value := raw.(type) {
	case string:
		millis, err = ParseTimestamp(value)
	case float64:
		millis, err = EpochToMillis(value)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidTimestamp, string(data))
	}
	if err != nil {
		return err
	}

	*t = Timestamp(millis)
	return nil
}
