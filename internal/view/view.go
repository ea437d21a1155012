// Package view assembles report sections from the dataset and owns the
// selected tab. A ReportView is not safe for concurrent use; create one per
// request or CLI run.
package view

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AngelCh415/bcm-report/internal/charts"
	"github.com/AngelCh415/bcm-report/internal/metrics"
	"github.com/AngelCh415/bcm-report/internal/models"
	"github.com/AngelCh415/bcm-report/internal/store"
)

// SelectHook observes a tab transition after it happened.
type SelectHook func(from, to models.Tab)

type Option func(*ReportView)

func WithSelectHook(h SelectHook) Option {
	return func(v *ReportView) { v.onSelect = h }
}

// WithTab starts the view on t instead of the overview. Invalid tabs are ignored.
func WithTab(t models.Tab) Option {
	return func(v *ReportView) {
		if t.Valid() {
			v.tab = t
		}
	}
}

type ReportView struct {
	ds       *store.Dataset
	svc      *metrics.Service
	tab      models.Tab
	onSelect SelectHook
}

func New(ds *store.Dataset, opts ...Option) *ReportView {
	v := &ReportView{ds: ds, svc: metrics.NewService(ds), tab: models.TabOverview}
	for _, o := range opts {
		o(v)
	}
	return v
}

func (v *ReportView) Tab() models.Tab { return v.tab }

// Select moves to t. Any tab is reachable from any other; re-selecting the
// current tab changes nothing and does not fire the hook.
func (v *ReportView) Select(t models.Tab) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", models.ErrUnknownTab, int(t))
	}
	if t == v.tab {
		return nil
	}
	from := v.tab
	v.tab = t
	if v.onSelect != nil {
		v.onSelect(from, t)
	}
	return nil
}

// Render builds the section of the selected tab.
func (v *ReportView) Render() (Section, error) { return v.RenderTab(v.tab) }

// RenderTab builds the section of t without changing the selection.
func (v *ReportView) RenderTab(t models.Tab) (Section, error) {
	switch t {
	case models.TabOverview:
		return v.buildOverview()
	case models.TabPlatforms:
		return v.buildPlatforms()
	case models.TabInsights:
		return v.buildInsights()
	case models.TabNextPeriodPlan:
		return v.buildPlan()
	}
	return nil, fmt.Errorf("%w: %d", models.ErrUnknownTab, int(t))
}

// TabLabel is the navigation caption of t.
func (v *ReportView) TabLabel(t models.Tab) string {
	switch t {
	case models.TabOverview:
		return "Overview"
	case models.TabPlatforms:
		return "Platform Performance"
	case models.TabInsights:
		return "Key Insights"
	case models.TabNextPeriodPlan:
		return v.ds.Next().Period.Name + " Plan"
	}
	return t.String()
}

var cardTitles = map[models.Field]string{
	models.FieldSpend:   "Total Spend",
	models.FieldOrders:  "Total Orders",
	models.FieldRevenue: "Total Revenue",
	models.FieldROAS:    "Average ROAS",
}

var cardFields = []models.Field{models.FieldSpend, models.FieldOrders, models.FieldRevenue, models.FieldROAS}

func (v *ReportView) buildOverview() (OverviewSection, error) {
	cmp, err := v.svc.CompareAll(models.CurrentActual, models.CurrentProjected, cardFields...)
	if err != nil {
		return OverviewSection{}, err
	}
	cur := v.ds.Report().Currency
	out := OverviewSection{Cards: make([]MetricCard, 0, len(cmp))}
	for _, c := range cmp {
		out.Cards = append(out.Cards, MetricCard{
			Title:         cardTitles[c.Field],
			Field:         c.Field,
			Value:         c.Value,
			Target:        c.Target,
			Variance:      c.Variance,
			Favorable:     c.Favorable(),
			Label:         VarianceLabel(c),
			Display:       display(cur, c.Field, c.Value),
			TargetDisplay: display(cur, c.Field, c.Target),
		})
	}
	out.Summary = budgetSummary(cur, cmp[0])
	out.Charts = v.chartRefs(charts.SpendRevenueVsProjection, charts.OrdersVsProjection, charts.SpendDistribution)
	return out, nil
}

// VarianceLabel phrases a comparison for a metric card: spend reads in
// budget terms, every other field against its target.
func VarianceLabel(c metrics.Comparison) string {
	pct := FormatPercent(c.Variance.Percent.Abs())
	if c.Field.Polarity() == models.LowerIsBetter {
		if c.Variance.Direction == metrics.Under {
			return pct + " under budget"
		}
		return pct + " over budget"
	}
	if c.Variance.Direction == metrics.Over {
		return pct + " above target"
	}
	return pct + " below target"
}

func budgetSummary(currency string, spend metrics.Comparison) Summary {
	word := "less"
	if spend.Variance.Direction == metrics.Over {
		word = "more"
	}
	return Summary{
		Headline: "Budget Performance",
		Text: fmt.Sprintf("Spent %s %s than projected spends (%s vs %s)",
			FormatPercent(spend.Variance.Percent.Abs()), word,
			FormatMoney(currency, spend.Value), FormatMoney(currency, spend.Target)),
		Favorable: spend.Favorable(),
	}
}

func (v *ReportView) buildPlatforms() (PlatformsSection, error) {
	ps, err := v.ds.Platforms(models.CurrentActual)
	if err != nil {
		return PlatformsSection{}, err
	}
	shares := map[models.Field][]metrics.Share{}
	for _, f := range []models.Field{models.FieldSpend, models.FieldOrders, models.FieldRevenue} {
		s, err := v.svc.Shares(models.CurrentActual, f)
		if err != nil {
			return PlatformsSection{}, err
		}
		shares[f] = s
	}
	out := PlatformsSection{Period: v.ds.Current().Period, Cards: make([]PlatformCard, 0, len(ps))}
	for i, p := range ps {
		prof := v.ds.Profile(p.Platform)
		out.Cards = append(out.Cards, PlatformCard{
			Platform:     p.Platform,
			Badge:        prof.Badge,
			Note:         prof.Note,
			Primary:      i == 0,
			Spend:        p.Spend,
			Orders:       p.Orders,
			Revenue:      p.Revenue,
			ROAS:         p.ROAS,
			SpendShare:   shares[models.FieldSpend][i].Percentage,
			OrderShare:   shares[models.FieldOrders][i].Percentage,
			RevenueShare: shares[models.FieldRevenue][i].Percentage,
		})
	}
	return out, nil
}

func (v *ReportView) buildInsights() (InsightsSection, error) {
	in := v.ds.Insights()
	out := InsightsSection{
		Period:          v.ds.Current().Period,
		NextPeriod:      v.ds.Next().Period,
		WinnerAd:        in.WinnerAd,
		Recommendations: in.Recommendations,
	}

	revenues := make([]decimal.Decimal, len(in.Products))
	for i, p := range in.Products {
		revenues[i] = p.Revenue
		out.ProductsRevenue = out.ProductsRevenue.Add(p.Revenue)
	}
	for i, w := range metrics.Relative(revenues) {
		out.Products = append(out.Products, ProductBar{Name: in.Products[i].Name, Revenue: revenues[i], Width: w})
	}

	orders := make([]decimal.Decimal, len(in.Locations))
	for i, l := range in.Locations {
		orders[i] = decimal.NewFromInt(int64(l.Orders))
		out.LocationOrders += l.Orders
		out.LocationShare = out.LocationShare.Add(l.Share)
	}
	for i, w := range metrics.Relative(orders) {
		l := in.Locations[i]
		out.Locations = append(out.Locations, LocationBar{City: l.City, Orders: l.Orders, Share: l.Share, Width: w})
	}

	// group findings by platform, keeping first-appearance order
	index := map[string]int{}
	for _, f := range in.Findings {
		key := strings.ToLower(f.Platform)
		i, ok := index[key]
		if !ok {
			i = len(out.Findings)
			index[key] = i
			out.Findings = append(out.Findings, PlatformFindings{Platform: f.Platform})
		}
		out.Findings[i].Findings = append(out.Findings[i].Findings, f)
	}
	return out, nil
}

var planTitles = map[models.Field]string{
	models.FieldSpend:   "Projected Spend",
	models.FieldOrders:  "Projected Orders",
	models.FieldRevenue: "Projected Revenue",
	models.FieldROAS:    "Target ROAS",
}

func (v *ReportView) buildPlan() (PlanSection, error) {
	cur, next := v.ds.Current().Period, v.ds.Next()
	plan := v.ds.Plan()
	currency := v.ds.Report().Currency

	cmp, err := v.svc.CompareAll(models.NextProjected, models.CurrentActual, cardFields...)
	if err != nil {
		return PlanSection{}, err
	}
	out := PlanSection{
		Period:      next.Period,
		Base:        cur,
		Summary:     plan.Summary,
		Cards:       make([]MetricCard, 0, len(cmp)),
		Actions:     plan.Actions,
		Experiments: plan.Experiments,
		Risks:       plan.Risks,
	}
	for _, c := range cmp {
		out.Cards = append(out.Cards, MetricCard{
			Title:         planTitles[c.Field],
			Field:         c.Field,
			Value:         c.Value,
			Target:        c.Target,
			Variance:      c.Variance,
			Favorable:     c.Variance.Direction == metrics.Over,
			Label:         FormatSignedPercent(c.Variance.Percent) + " vs " + cur.ShortName + " actual",
			Display:       display(currency, c.Field, c.Value),
			TargetDisplay: display(currency, c.Field, c.Target),
		})
	}

	for _, p := range next.Projected {
		budget, err := v.svc.ShareOf(models.NextProjected, models.FieldSpend, p.Platform)
		if err != nil {
			return PlanSection{}, err
		}
		out.Platforms = append(out.Platforms, PlanPlatform{
			Platform:    p.Platform,
			BudgetShare: budget,
			Spend:       p.Spend,
			Orders:      p.Orders,
			Revenue:     p.Revenue,
			ROAS:        p.ROAS,
			Strategies:  v.ds.Profile(p.Platform).Strategies,
		})
	}
	out.Charts = v.chartRefs(charts.PlanSpendRevenue, charts.PlanOrders)
	return out, nil
}

func (v *ReportView) chartRefs(ids ...string) []ChartRef {
	out := make([]ChartRef, 0, len(ids))
	for _, id := range ids {
		if spec, ok := charts.Lookup(v.ds, id); ok {
			out = append(out, ChartRef{ID: spec.ID, Title: spec.Title, Kind: spec.Kind})
		}
	}
	return out
}

func display(currency string, f models.Field, d decimal.Decimal) string {
	switch {
	case f.Monetary():
		return FormatMoney(currency, d)
	case f == models.FieldROAS:
		return FormatROAS(d)
	}
	return FormatNumber(d, 0)
}
