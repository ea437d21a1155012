package metrics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AngelCh415/bcm-report/internal/models"
	"github.com/AngelCh415/bcm-report/internal/store"
)

// Comparison pairs a value with the target it is measured against.
type Comparison struct {
	Field    models.Field    `json:"field" yaml:"field"`
	Value    decimal.Decimal `json:"value" yaml:"value"`
	Target   decimal.Decimal `json:"target" yaml:"target"`
	Variance VarianceResult  `json:"variance" yaml:"variance"`
}

// Favorable applies the field polarity to the variance direction.
func (c Comparison) Favorable() bool {
	if c.Field.Polarity() == models.LowerIsBetter {
		return c.Variance.Direction == Under
	}
	return c.Variance.Direction == Over
}

type Service struct{ ds *store.Dataset }

func NewService(ds *store.Dataset) *Service { return &Service{ds: ds} }

// Compare measures the totals of one source against another for field.
func (s *Service) Compare(field models.Field, value, target models.Source) (Comparison, error) {
	vt, err := s.ds.Totals(value)
	if err != nil {
		return Comparison{}, err
	}
	tt, err := s.ds.Totals(target)
	if err != nil {
		return Comparison{}, err
	}
	c := Comparison{Field: field, Value: field.OfTotals(vt), Target: field.OfTotals(tt)}
	c.Variance, err = Variance(c.Value, c.Target)
	if err != nil {
		return Comparison{}, fmt.Errorf("%s %s vs %s: %w", field, value, target, err)
	}
	return c, nil
}

// CompareAll runs Compare for every field in order.
func (s *Service) CompareAll(value, target models.Source, fields ...models.Field) ([]Comparison, error) {
	out := make([]Comparison, 0, len(fields))
	for _, f := range fields {
		c, err := s.Compare(f, value, target)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Shares is Breakdown over one of the dataset's platform lists.
func (s *Service) Shares(src models.Source, field models.Field) ([]Share, error) {
	ps, err := s.ds.Platforms(src)
	if err != nil {
		return nil, err
	}
	shares, err := Breakdown(ps, field)
	if err != nil {
		return nil, fmt.Errorf("%s shares of %s: %w", field, src, err)
	}
	return shares, nil
}

// ShareOf returns the percentage a platform holds in a source for field.
func (s *Service) ShareOf(src models.Source, field models.Field, platform string) (decimal.Decimal, error) {
	shares, err := s.Shares(src, field)
	if err != nil {
		return decimal.Zero, err
	}
	for _, sh := range shares {
		if sh.Label == platform {
			return sh.Percentage, nil
		}
	}
	return decimal.Zero, nil
}

// Relative scales each value against the largest one, as a one-decimal
// percentage. Used for bar widths in ranked lists.
func Relative(values []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	peak := decimal.Zero
	for _, v := range values {
		if v.GreaterThan(peak) {
			peak = v
		}
	}
	if peak.IsZero() {
		for i := range out {
			out[i] = decimal.Zero
		}
		return out
	}
	for i, v := range values {
		out[i] = v.Div(peak).Mul(hundred).Round(1)
	}
	return out
}
