package core

import "errors"

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrCurveNotFound    = errors.New("curve not found")
	ErrEmptyCurveKey    = errors.New("empty curve key")
)
