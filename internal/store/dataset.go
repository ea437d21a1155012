package store

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/AngelCh415/bcm-report/internal/models"
)

//go:embed default_report.yaml
var defaultReport []byte

// Epsilon is the reconciliation tolerance between a total and the sum of its platforms.
var Epsilon = decimal.New(1, -2)

// Dataset is the loaded, reconciled report data. It is never mutated after
// construction, so it can be shared freely between goroutines.
type Dataset struct {
	ds       models.ReportDataset
	warnings []RoasWarning
}

// RoasWarning flags a stated ROAS that does not match revenue/spend.
type RoasWarning struct {
	Source   models.Source
	Platform string // empty for the period total
	Stated   decimal.Decimal
	Computed decimal.Decimal
}

// Load reads a YAML dataset from path. An empty path loads the embedded default report.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Parse(defaultReport)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Parse(b)
}

// Default returns the embedded report.
func Default() (*Dataset, error) { return Parse(defaultReport) }

func Parse(b []byte) (*Dataset, error) {
	var ds models.ReportDataset
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, &ConfigError{Reason: "parsing yaml: " + err.Error()}
	}
	return New(ds)
}

// New validates and reconciles an injected dataset.
func New(ds models.ReportDataset) (*Dataset, error) {
	if err := validateDoc(ds); err != nil {
		return nil, err
	}
	if err := reconcile(ds); err != nil {
		return nil, err
	}
	return &Dataset{ds: ds, warnings: checkRoas(ds)}, nil
}

func (d *Dataset) Report() models.ReportMeta { return d.ds.Report }
func (d *Dataset) Current() models.CurrentPeriod { return cloneCurrent(d.ds.Current) }
func (d *Dataset) Next() models.NextPeriod { return cloneNext(d.ds.Next) }
func (d *Dataset) Insights() models.Insights { return d.ds.Insights }
func (d *Dataset) Plan() models.Plan { return d.ds.Plan }
func (d *Dataset) RoasWarnings() []RoasWarning { return append([]RoasWarning(nil), d.warnings...) }
func (d *Dataset) Profiles() []models.PlatformProfile {
	return append([]models.PlatformProfile(nil), d.ds.Platforms...)
}

// Dataset returns a copy of the underlying document.
func (d *Dataset) Dataset() models.ReportDataset {
	out := d.ds
	out.Current = cloneCurrent(d.ds.Current)
	out.Next = cloneNext(d.ds.Next)
	out.Platforms = d.Profiles()
	return out
}

// Profile looks a platform profile up by name; the zero profile carries just the name.
func (d *Dataset) Profile(name string) models.PlatformProfile {
	for _, p := range d.ds.Platforms {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return models.PlatformProfile{Name: name}
}

func (d *Dataset) Platforms(src models.Source) ([]models.PlatformMetrics, error) {
	ps, _, err := d.slice(src)
	if err != nil {
		return nil, err
	}
	return append([]models.PlatformMetrics(nil), ps...), nil
}

func (d *Dataset) Totals(src models.Source) (models.PeriodTotals, error) {
	_, t, err := d.slice(src)
	return t, err
}

// Period returns the calendar window a source belongs to.
func (d *Dataset) Period(src models.Source) (models.Period, error) {
	switch src {
	case models.CurrentActual, models.CurrentProjected:
		return d.ds.Current.Period, nil
	case models.NextProjected:
		return d.ds.Next.Period, nil
	}
	return models.Period{}, fmt.Errorf("%w: %q", models.ErrUnknownSource, src)
}

func (d *Dataset) slice(src models.Source) ([]models.PlatformMetrics, models.PeriodTotals, error) {
	return sliceOf(d.ds, src)
}

func sliceOf(ds models.ReportDataset, src models.Source) ([]models.PlatformMetrics, models.PeriodTotals, error) {
	switch src {
	case models.CurrentActual:
		return ds.Current.Actual, ds.Current.ActualTotal, nil
	case models.CurrentProjected:
		return ds.Current.Projected, ds.Current.ProjectedTotal, nil
	case models.NextProjected:
		return ds.Next.Projected, ds.Next.ProjectedTotal, nil
	}
	return nil, models.PeriodTotals{}, fmt.Errorf("%w: %q", models.ErrUnknownSource, src)
}

var docValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func validateDoc(ds models.ReportDataset) error {
	err := docValidator.Struct(ds)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ConfigError{Reason: err.Error()}
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &ConfigError{
			Field:  strings.TrimPrefix(fe.Namespace(), "ReportDataset."),
			Reason: fmt.Sprintf("failed %q validation (value %v)", fe.Tag(), fe.Value()),
		})
	}
	return errors.Join(errs...)
}

func reconcile(ds models.ReportDataset) error {
	var errs []error
	known := map[string]struct{}{}
	for _, src := range models.Sources() {
		ps, total, _ := sliceOf(ds, src)
		period := string(src)

		seen := map[string]struct{}{}
		for _, p := range ps {
			key := strings.ToLower(p.Platform)
			if _, dup := seen[key]; dup {
				errs = append(errs, &ConfigError{Period: period, Platform: p.Platform, Reason: "duplicate platform"})
			}
			seen[key] = struct{}{}
			known[key] = struct{}{}
		}

		sum := models.Totals(ps)
		for _, f := range []models.Field{models.FieldSpend, models.FieldOrders, models.FieldRevenue} {
			want, got := f.OfTotals(sum), f.OfTotals(total)
			if got.Sub(want).Abs().GreaterThan(Epsilon) {
				errs = append(errs, &ConfigError{
					Period: period,
					Field:  string(f),
					Reason: fmt.Sprintf("total %s does not match platform sum %s", got.String(), want.String()),
				})
			}
		}
	}

	unknown := func(section, name string) {
		if _, ok := known[strings.ToLower(name)]; !ok {
			errs = append(errs, &ConfigError{Platform: name, Field: section, Reason: "unknown platform"})
		}
	}
	for _, p := range ds.Platforms {
		unknown("platforms", p.Name)
	}
	for _, f := range ds.Insights.Findings {
		unknown("insights.findings", f.Platform)
	}
	for _, r := range ds.Insights.Recommendations {
		unknown("insights.recommendations", r.Platform)
	}
	return errors.Join(errs...)
}

var roasTolerance = decimal.New(1, -2)

func checkRoas(ds models.ReportDataset) []RoasWarning {
	var out []RoasWarning
	check := func(src models.Source, platform string, spend, revenue, stated decimal.Decimal) {
		if spend.IsZero() {
			return
		}
		computed := revenue.Div(spend).Round(2)
		if computed.Sub(stated).Abs().GreaterThan(roasTolerance) {
			out = append(out, RoasWarning{Source: src, Platform: platform, Stated: stated, Computed: computed})
		}
	}
	for _, src := range models.Sources() {
		ps, total, _ := sliceOf(ds, src)
		for _, p := range ps {
			check(src, p.Platform, p.Spend, p.Revenue, p.ROAS)
		}
		check(src, "", total.Spend, total.Revenue, total.ROAS)
	}
	return out
}

func cloneCurrent(c models.CurrentPeriod) models.CurrentPeriod {
	c.Actual = append([]models.PlatformMetrics(nil), c.Actual...)
	c.Projected = append([]models.PlatformMetrics(nil), c.Projected...)
	return c
}

func cloneNext(n models.NextPeriod) models.NextPeriod {
	n.Projected = append([]models.PlatformMetrics(nil), n.Projected...)
	return n
}
