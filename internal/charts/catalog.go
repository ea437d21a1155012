package charts

import (
	"github.com/AngelCh415/bcm-report/internal/models"
	"github.com/AngelCh415/bcm-report/internal/store"
)

const (
	SpendRevenueVsProjection = "spend-revenue-vs-projection"
	OrdersVsProjection       = "orders-vs-projection"
	SpendDistribution        = "spend-distribution"
	PlanSpendRevenue         = "plan-spend-revenue"
	PlanOrders               = "plan-orders"
)

// Catalog returns the charts shown on the report, named after the dataset's periods.
func Catalog(ds *store.Dataset) []ChartSpec {
	cur, next := ds.Current().Period, ds.Next().Period
	actualVsProjected := []SeriesRef{
		{Name: "Actual", Source: models.CurrentActual},
		{Name: "Projected", Source: models.CurrentProjected},
	}
	plan := []SeriesRef{
		{Name: cur.Name + " Actual", Source: models.CurrentActual},
		{Name: next.Name + " Projection", Source: models.NextProjected},
	}
	return []ChartSpec{
		{
			ID:        SpendRevenueVsProjection,
			Title:     "Spend & Revenue: Actual vs Projected",
			Kind:      KindBar,
			Dimension: ByMetric,
			Fields:    []models.Field{models.FieldSpend, models.FieldRevenue},
			Series:    actualVsProjected,
		},
		{
			ID:        OrdersVsProjection,
			Title:     "Orders: Actual vs Projected",
			Kind:      KindBar,
			Dimension: ByMetric,
			Fields:    []models.Field{models.FieldOrders},
			Series:    actualVsProjected,
		},
		{
			ID:        SpendDistribution,
			Title:     "Spend Distribution by Platform",
			Kind:      KindPie,
			Dimension: ByPlatform,
			Fields:    []models.Field{models.FieldSpend},
			Series:    []SeriesRef{{Name: "Spend", Source: models.CurrentActual}},
		},
		{
			ID:        PlanSpendRevenue,
			Title:     "Spend & Revenue Comparison",
			Kind:      KindBar,
			Dimension: ByMetric,
			Fields:    []models.Field{models.FieldSpend, models.FieldRevenue},
			Series:    plan,
		},
		{
			ID:        PlanOrders,
			Title:     "Orders Comparison",
			Kind:      KindBar,
			Dimension: ByMetric,
			Fields:    []models.Field{models.FieldOrders},
			Series:    plan,
		},
	}
}

func Lookup(ds *store.Dataset, id string) (ChartSpec, bool) {
	for _, s := range Catalog(ds) {
		if s.ID == id {
			return s, true
		}
	}
	return ChartSpec{}, false
}
