package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/AngelCh415/bcm-report/internal/models"
)

// Share is one platform's slice of a field total.
type Share struct {
	Label      string          `json:"label" yaml:"label"`
	Value      decimal.Decimal `json:"value" yaml:"value"`
	Percentage decimal.Decimal `json:"percentage" yaml:"percentage"`
}

var ten = decimal.NewFromInt(10)

// Breakdown returns each platform's share of field as a one-decimal percentage,
// in input order. Tenths are apportioned by largest remainder so the shares
// always add up to exactly 100.0.
func Breakdown(ps []models.PlatformMetrics, field models.Field) ([]Share, error) {
	if !field.Additive() {
		return nil, ErrNonAdditiveField
	}
	labels := make([]string, len(ps))
	values := make([]decimal.Decimal, len(ps))
	for i, p := range ps {
		labels[i] = p.Platform
		values[i] = field.Of(p)
	}
	return apportion(labels, values)
}

func apportion(labels []string, values []decimal.Decimal) ([]Share, error) {
	out := make([]Share, len(values))
	if len(values) == 0 {
		return out, nil
	}
	sum := decimal.Sum(decimal.Zero, values...)
	if sum.IsZero() {
		return nil, ErrDivisionByZero
	}

	tenths := make([]decimal.Decimal, len(values))
	rems := make([]decimal.Decimal, len(values))
	allotted := decimal.Zero
	for i, v := range values {
		raw := v.Div(sum).Mul(hundred).Mul(ten)
		tenths[i] = raw.Floor()
		rems[i] = raw.Sub(tenths[i])
		allotted = allotted.Add(tenths[i])
	}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rems[order[a]].GreaterThan(rems[order[b]])
	})
	short := int(decimal.NewFromInt(1000).Sub(allotted).IntPart())
	for k := 0; k < short && k < len(order); k++ {
		tenths[order[k]] = tenths[order[k]].Add(decimal.NewFromInt(1))
	}

	for i := range values {
		out[i] = Share{Label: labels[i], Value: values[i], Percentage: tenths[i].Div(ten)}
	}
	return out, nil
}
