package view

import (
	"github.com/shopspring/decimal"

	"github.com/AngelCh415/bcm-report/internal/charts"
	"github.com/AngelCh415/bcm-report/internal/metrics"
	"github.com/AngelCh415/bcm-report/internal/models"
)

// Section is the rendered content of exactly one tab. The set of
// implementations is closed: one per models.Tab.
type Section interface {
	Tab() models.Tab
	templateName() string
}

type ChartRef struct {
	ID    string      `json:"id" yaml:"id"`
	Title string      `json:"title" yaml:"title"`
	Kind  charts.Kind `json:"kind" yaml:"kind"`
}

// MetricCard shows a value against its target with a polarity-aware label.
type MetricCard struct {
	Title         string                 `json:"title" yaml:"title"`
	Field         models.Field           `json:"field" yaml:"field"`
	Value         decimal.Decimal        `json:"value" yaml:"value"`
	Target        decimal.Decimal        `json:"target" yaml:"target"`
	Variance      metrics.VarianceResult `json:"variance" yaml:"variance"`
	Favorable     bool                   `json:"favorable" yaml:"favorable"`
	Label         string                 `json:"label" yaml:"label"`
	Display       string                 `json:"display" yaml:"display"`
	TargetDisplay string                 `json:"target_display" yaml:"target_display"`
}

type Summary struct {
	Headline  string `json:"headline" yaml:"headline"`
	Text      string `json:"text" yaml:"text"`
	Favorable bool   `json:"favorable" yaml:"favorable"`
}

type OverviewSection struct {
	Summary Summary      `json:"summary" yaml:"summary"`
	Cards   []MetricCard `json:"cards" yaml:"cards"`
	Charts  []ChartRef   `json:"charts" yaml:"charts"`
}

func (OverviewSection) Tab() models.Tab { return models.TabOverview }
func (OverviewSection) templateName() string { return "overview" }

type PlatformCard struct {
	Platform     string          `json:"platform" yaml:"platform"`
	Badge        string          `json:"badge,omitempty" yaml:"badge,omitempty"`
	Note         string          `json:"note,omitempty" yaml:"note,omitempty"`
	Primary      bool            `json:"primary" yaml:"primary"`
	Spend        decimal.Decimal `json:"spend" yaml:"spend"`
	Orders       int             `json:"orders" yaml:"orders"`
	Revenue      decimal.Decimal `json:"revenue" yaml:"revenue"`
	ROAS         decimal.Decimal `json:"roas" yaml:"roas"`
	SpendShare   decimal.Decimal `json:"spend_share" yaml:"spend_share"`
	OrderShare   decimal.Decimal `json:"order_share" yaml:"order_share"`
	RevenueShare decimal.Decimal `json:"revenue_share" yaml:"revenue_share"`
}

type PlatformsSection struct {
	Period models.Period  `json:"period" yaml:"period"`
	Cards  []PlatformCard `json:"cards" yaml:"cards"`
}

func (PlatformsSection) Tab() models.Tab { return models.TabPlatforms }
func (PlatformsSection) templateName() string { return "platforms" }

type ProductBar struct {
	Name    string          `json:"name" yaml:"name"`
	Revenue decimal.Decimal `json:"revenue" yaml:"revenue"`
	// Width is the revenue relative to the best product, in percent.
	Width decimal.Decimal `json:"width" yaml:"width"`
}

// LocationBar is one city of the top-locations card.
type LocationBar struct {
	City   string          `json:"city" yaml:"city"`
	Orders int             `json:"orders" yaml:"orders"`
	Share  decimal.Decimal `json:"share" yaml:"share"`
	Width  decimal.Decimal `json:"width" yaml:"width"`
}

type PlatformFindings struct {
	Platform string           `json:"platform" yaml:"platform"`
	Findings []models.Finding `json:"findings" yaml:"findings"`
}

type InsightsSection struct {
	Period          models.Period           `json:"period" yaml:"period"`
	Products        []ProductBar            `json:"products" yaml:"products"`
	ProductsRevenue decimal.Decimal         `json:"products_revenue" yaml:"products_revenue"`
	Locations       []LocationBar           `json:"locations" yaml:"locations"`
	LocationOrders  int                     `json:"location_orders" yaml:"location_orders"`
	LocationShare   decimal.Decimal         `json:"location_share" yaml:"location_share"`
	WinnerAd        *models.WinnerAd        `json:"winner_ad,omitempty" yaml:"winner_ad,omitempty"`
	Findings        []PlatformFindings      `json:"findings" yaml:"findings"`
	Recommendations []models.Recommendation `json:"recommendations" yaml:"recommendations"`
	NextPeriod      models.Period           `json:"next_period" yaml:"next_period"`
}

func (InsightsSection) Tab() models.Tab { return models.TabInsights }
func (InsightsSection) templateName() string { return "insights" }

type PlanPlatform struct {
	Platform    string          `json:"platform" yaml:"platform"`
	BudgetShare decimal.Decimal `json:"budget_share" yaml:"budget_share"`
	Spend       decimal.Decimal `json:"spend" yaml:"spend"`
	Orders      int             `json:"orders" yaml:"orders"`
	Revenue     decimal.Decimal `json:"revenue" yaml:"revenue"`
	ROAS        decimal.Decimal `json:"roas" yaml:"roas"`
	Strategies  []string        `json:"strategies,omitempty" yaml:"strategies,omitempty"`
}

type PlanSection struct {
	Period      models.Period  `json:"period" yaml:"period"`
	Base        models.Period  `json:"base" yaml:"base"`
	Summary     string         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Cards       []MetricCard   `json:"cards" yaml:"cards"`
	Platforms   []PlanPlatform `json:"platforms" yaml:"platforms"`
	Charts      []ChartRef     `json:"charts" yaml:"charts"`
	Actions     []string       `json:"actions,omitempty" yaml:"actions,omitempty"`
	Experiments []string       `json:"experiments,omitempty" yaml:"experiments,omitempty"`
	Risks       []string       `json:"risks,omitempty" yaml:"risks,omitempty"`
}

func (PlanSection) Tab() models.Tab { return models.TabNextPeriodPlan }
func (PlanSection) templateName() string { return "plan" }
