package core

// Series keys understood by the dashboard chart.
const (
	KeyEquity = "equity"
	KeyPrice  = "price"
)

// CurveStorage defines the interface for curve storage operations
type CurveStorage interface {
	// SaveCurve replaces every stored point of the curve key
	SaveCurve(curve Curve) error

	// Curve loads the points of a curve ordered by time
	Curve(key string) (Curve, error)

	// Keys lists the stored curve keys
	Keys() ([]string, error)
}
