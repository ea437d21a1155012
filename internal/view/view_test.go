package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/bcm-report/internal/metrics"
	"github.com/AngelCh415/bcm-report/internal/models"
	"github.com/AngelCh415/bcm-report/internal/store"
)

func newView(t *testing.T, opts ...Option) *ReportView {
	t.Helper()
	ds, err := store.Default()
	require.NoError(t, err)
	return New(ds, opts...)
}

type transition struct{ from, to models.Tab }

func TestSelectSequence(t *testing.T) {
	var seen []transition
	v := newView(t, WithSelectHook(func(from, to models.Tab) {
		seen = append(seen, transition{from, to})
	}))
	assert.Equal(t, models.TabOverview, v.Tab())

	for _, tab := range []models.Tab{models.TabPlatforms, models.TabInsights, models.TabInsights, models.TabOverview} {
		require.NoError(t, v.Select(tab))
	}
	assert.Equal(t, models.TabOverview, v.Tab())
	assert.Equal(t, []transition{
		{models.TabOverview, models.TabPlatforms},
		{models.TabPlatforms, models.TabInsights},
		{models.TabInsights, models.TabOverview},
	}, seen)
}

func TestSelectAnyToAny(t *testing.T) {
	for _, from := range models.Tabs() {
		for _, to := range models.Tabs() {
			v := newView(t, WithTab(from))
			require.NoError(t, v.Select(to))
			assert.Equal(t, to, v.Tab())
		}
	}
}

func TestSelectUnknownTabKeepsState(t *testing.T) {
	v := newView(t, WithTab(models.TabInsights))
	err := v.Select(models.Tab(7))
	assert.ErrorIs(t, err, models.ErrUnknownTab)
	assert.Equal(t, models.TabInsights, v.Tab())

	_, err = v.RenderTab(models.Tab(-1))
	assert.ErrorIs(t, err, models.ErrUnknownTab)
}

func TestRenderDispatchesOnTab(t *testing.T) {
	v := newView(t)
	for _, tab := range models.Tabs() {
		require.NoError(t, v.Select(tab))
		sec, err := v.Render()
		require.NoError(t, err)
		assert.Equal(t, tab, sec.Tab())
	}
}

func TestOverviewSection(t *testing.T) {
	sec, err := newView(t).RenderTab(models.TabOverview)
	require.NoError(t, err)
	ov, ok := sec.(OverviewSection)
	require.True(t, ok)

	assert.Equal(t, "Budget Performance", ov.Summary.Headline)
	assert.Equal(t, "Spent 11.1% less than projected spends (₹462,889.23 vs ₹520,800)", ov.Summary.Text)
	assert.True(t, ov.Summary.Favorable)

	require.Len(t, ov.Cards, 4)
	titles := []string{"Total Spend", "Total Orders", "Total Revenue", "Average ROAS"}
	labels := []string{"11.1% under budget", "7.4% below target", "23.3% below target", "13.6% below target"}
	for i, c := range ov.Cards {
		assert.Equal(t, titles[i], c.Title)
		assert.Equal(t, labels[i], c.Label)
	}
	assert.True(t, ov.Cards[0].Favorable)
	assert.False(t, ov.Cards[1].Favorable)
	assert.Equal(t, "₹462,889.23", ov.Cards[0].Display)
	assert.Equal(t, "672", ov.Cards[1].Display)
	assert.Equal(t, "2.04x", ov.Cards[3].Display)
	assert.Len(t, ov.Charts, 3)
}

func TestVarianceLabelPolarity(t *testing.T) {
	over := metrics.VarianceResult{Percent: mustDec("5.0"), Direction: metrics.Over}
	assert.Equal(t, "5.0% over budget", VarianceLabel(metrics.Comparison{Field: models.FieldSpend, Variance: over}))
	assert.Equal(t, "5.0% above target", VarianceLabel(metrics.Comparison{Field: models.FieldRevenue, Variance: over}))
}

func TestPlatformsSection(t *testing.T) {
	sec, err := newView(t).RenderTab(models.TabPlatforms)
	require.NoError(t, err)
	ps := sec.(PlatformsSection)

	require.Len(t, ps.Cards, 2)
	meta, google := ps.Cards[0], ps.Cards[1]
	assert.True(t, meta.Primary)
	assert.Equal(t, "Primary Platform", meta.Badge)
	assert.Equal(t, "98.7", meta.SpendShare.StringFixed(1))
	assert.Equal(t, "99.9", meta.OrderShare.StringFixed(1))
	assert.Equal(t, "99.8", meta.RevenueShare.StringFixed(1))
	assert.Equal(t, "1.3", google.SpendShare.StringFixed(1))
	assert.Equal(t, "0.1", google.OrderShare.StringFixed(1))
	assert.Equal(t, "0.2", google.RevenueShare.StringFixed(1))
	assert.NotEmpty(t, google.Note)
}

func TestInsightsSection(t *testing.T) {
	sec, err := newView(t).RenderTab(models.TabInsights)
	require.NoError(t, err)
	in := sec.(InsightsSection)

	widths := make([]string, len(in.Products))
	for i, p := range in.Products {
		widths[i] = p.Width.StringFixed(1)
	}
	assert.Equal(t, []string{"100.0", "98.3", "86.9", "86.5", "80.4"}, widths)
	assert.Equal(t, "157250.4", in.ProductsRevenue.String())
	locWidths := make([]string, len(in.Locations))
	for i, l := range in.Locations {
		locWidths[i] = l.Width.StringFixed(1)
	}
	assert.Equal(t, []string{"100.0", "86.3", "66.7", "52.9", "31.4"}, locWidths)
	assert.Equal(t, "Mumbai", in.Locations[0].City)
	assert.Equal(t, 51, in.Locations[0].Orders)
	assert.Equal(t, 172, in.LocationOrders)
	assert.Equal(t, "34.13", in.LocationShare.String())

	require.Len(t, in.Findings, 2)
	assert.Equal(t, "Meta", in.Findings[0].Platform)
	assert.Len(t, in.Findings[0].Findings, 4)
	assert.Equal(t, "Google", in.Findings[1].Platform)
	assert.Len(t, in.Findings[1].Findings, 2)
	assert.Equal(t, "October 2025", in.NextPeriod.Name)
}

func TestPlanSection(t *testing.T) {
	sec, err := newView(t).RenderTab(models.TabNextPeriodPlan)
	require.NoError(t, err)
	plan := sec.(PlanSection)

	labels := make([]string, len(plan.Cards))
	for i, c := range plan.Cards {
		labels[i] = c.Label
	}
	assert.Equal(t, []string{
		"+12.5% vs Sept actual",
		"+8.0% vs Sept actual",
		"+30.4% vs Sept actual",
		"+15.7% vs Sept actual",
	}, labels)
	assert.Equal(t, "Target ROAS", plan.Cards[3].Title)

	require.Len(t, plan.Platforms, 2)
	assert.Equal(t, "94.0", plan.Platforms[0].BudgetShare.StringFixed(1))
	assert.Equal(t, "6.0", plan.Platforms[1].BudgetShare.StringFixed(1))
	assert.Len(t, plan.Platforms[1].Strategies, 4)
	assert.Len(t, plan.Charts, 2)
	assert.Len(t, plan.Risks, 4)
}

func TestTabLabel(t *testing.T) {
	v := newView(t)
	assert.Equal(t, "Overview", v.TabLabel(models.TabOverview))
	assert.Equal(t, "October 2025 Plan", v.TabLabel(models.TabNextPeriodPlan))
}

func TestWritePage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	for _, tab := range models.Tabs() {
		t.Run(tab.String(), func(t *testing.T) {
			v := newView(t)
			require.NoError(t, v.Select(tab))

			var buf bytes.Buffer
			require.NoError(t, engine.WritePage(&buf, v))
			html := buf.String()
			assert.Contains(t, html, "BCM Monthly Report for - Shop Fusio")
			assert.Contains(t, html, `href="/report?tab=`+tab.String()+`" class="active"`)
		})
	}
}

func TestWritePageContent(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, engine.WritePage(&buf, newView(t)))
	assert.Contains(t, buf.String(), "11.1% under budget")
	assert.Contains(t, buf.String(), `src="/charts/spend-distribution.png"`)

	v := newView(t, WithTab(models.TabNextPeriodPlan))
	buf.Reset()
	require.NoError(t, engine.WritePage(&buf, v))
	assert.Contains(t, buf.String(), "12.5% vs Sept actual")
	assert.Contains(t, buf.String(), "94.0% of budget")

	v = newView(t, WithTab(models.TabInsights))
	buf.Reset()
	require.NoError(t, engine.WritePage(&buf, v))
	assert.Contains(t, buf.String(), "10.12%")
	assert.Contains(t, buf.String(), "172 orders (34.13%)")
	assert.Contains(t, buf.String(), `style="width: 86.3%"`)
	assert.NotContains(t, buf.String(), "10.1%<")
}
