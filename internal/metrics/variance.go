package metrics

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrDivisionByZero is returned instead of propagating NaN or Inf.
	ErrDivisionByZero   = errors.New("metrics: division by zero")
	ErrNonAdditiveField = errors.New("metrics: field cannot be summed across platforms")
)

type Direction string

const (
	Over  Direction = "over"
	Under Direction = "under"
)

// VarianceResult is the signed percentage difference of an actual against a target.
type VarianceResult struct {
	Percent   decimal.Decimal `json:"percent" yaml:"percent"`
	Direction Direction       `json:"direction" yaml:"direction"`
}

var hundred = decimal.NewFromInt(100)

// Variance returns round((actual-projected)/projected*100, 1). Direction is
// Over when actual >= projected. It knows nothing about metric polarity.
func Variance(actual, projected decimal.Decimal) (VarianceResult, error) {
	if projected.IsZero() {
		return VarianceResult{}, ErrDivisionByZero
	}
	pct := actual.Sub(projected).Div(projected).Mul(hundred).Round(1)
	dir := Under
	if actual.GreaterThanOrEqual(projected) {
		dir = Over
	}
	return VarianceResult{Percent: pct, Direction: dir}, nil
}
