package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Field selects one numeric column of PlatformMetrics / PeriodTotals.
type Field string

const (
	FieldSpend   Field = "spend"
	FieldOrders  Field = "orders"
	FieldRevenue Field = "revenue"
	FieldROAS    Field = "roas"
)

var ErrUnknownField = errors.New("unknown field")

// Polarity tells which direction of a variance is favorable.
type Polarity int

const (
	HigherIsBetter Polarity = iota
	LowerIsBetter
)

func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldSpend, FieldOrders, FieldRevenue, FieldROAS:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

func (f Field) Label() string {
	switch f {
	case FieldSpend:
		return "Spend"
	case FieldOrders:
		return "Orders"
	case FieldRevenue:
		return "Revenue"
	case FieldROAS:
		return "ROAS"
	}
	return string(f)
}

func (f Field) Polarity() Polarity {
	if f == FieldSpend {
		return LowerIsBetter
	}
	return HigherIsBetter
}

// Additive reports whether values of the field can be summed across platforms.
func (f Field) Additive() bool { return f != FieldROAS }

// Monetary reports whether the field is a currency amount.
func (f Field) Monetary() bool { return f == FieldSpend || f == FieldRevenue }

func (f Field) Of(m PlatformMetrics) decimal.Decimal {
	return f.pick(m.Spend, m.Orders, m.Revenue, m.ROAS)
}

func (f Field) OfTotals(t PeriodTotals) decimal.Decimal {
	return f.pick(t.Spend, t.Orders, t.Revenue, t.ROAS)
}

func (f Field) pick(spend decimal.Decimal, orders int, revenue, roas decimal.Decimal) decimal.Decimal {
	switch f {
	case FieldSpend:
		return spend
	case FieldOrders:
		return decimal.NewFromInt(int64(orders))
	case FieldRevenue:
		return revenue
	case FieldROAS:
		return roas
	}
	return decimal.Zero
}
