package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlatformMetrics struct {
	Platform string          `yaml:"platform" json:"platform" validate:"required"`
	Spend    decimal.Decimal `yaml:"spend" json:"spend" validate:"gte=0"`
	Orders   int             `yaml:"orders" json:"orders" validate:"gte=0"`
	Revenue  decimal.Decimal `yaml:"revenue" json:"revenue" validate:"gte=0"`
	ROAS     decimal.Decimal `yaml:"roas" json:"roas" validate:"gte=0"`
}

// PeriodTotals is the aggregate of a platform list; ROAS is carried as given.
type PeriodTotals struct {
	Spend   decimal.Decimal `yaml:"spend" json:"spend" validate:"gte=0"`
	Orders  int             `yaml:"orders" json:"orders" validate:"gte=0"`
	Revenue decimal.Decimal `yaml:"revenue" json:"revenue" validate:"gte=0"`
	ROAS    decimal.Decimal `yaml:"roas" json:"roas" validate:"gte=0"`
}

type Period struct {
	Name      string    `yaml:"name" json:"name" validate:"required"`
	ShortName string    `yaml:"short_name" json:"short_name" validate:"required"`
	Start     time.Time `yaml:"start" json:"start"`
	End       time.Time `yaml:"end" json:"end"`
}

type CurrentPeriod struct {
	Period         Period            `yaml:"period" json:"period"`
	Actual         []PlatformMetrics `yaml:"actual" json:"actual" validate:"required,min=1,dive"`
	Projected      []PlatformMetrics `yaml:"projected" json:"projected" validate:"required,min=1,dive"`
	ActualTotal    PeriodTotals      `yaml:"actual_total" json:"actual_total"`
	ProjectedTotal PeriodTotals      `yaml:"projected_total" json:"projected_total"`
}

type NextPeriod struct {
	Period         Period            `yaml:"period" json:"period"`
	Projected      []PlatformMetrics `yaml:"projected" json:"projected" validate:"required,min=1,dive"`
	ProjectedTotal PeriodTotals      `yaml:"projected_total" json:"projected_total"`
}

type ReportMeta struct {
	Title    string `yaml:"title" json:"title" validate:"required"`
	Client   string `yaml:"client" json:"client" validate:"required"`
	Currency string `yaml:"currency" json:"currency"`
}

// PlatformProfile carries the narrative attached to a platform across tabs.
type PlatformProfile struct {
	Name       string   `yaml:"name" json:"name" validate:"required"`
	Badge      string   `yaml:"badge" json:"badge"`
	Note       string   `yaml:"note" json:"note,omitempty"`
	Strategies []string `yaml:"strategies" json:"strategies,omitempty"`
}

type Product struct {
	Name    string          `yaml:"name" json:"name" validate:"required"`
	Revenue decimal.Decimal `yaml:"revenue" json:"revenue" validate:"gte=0"`
}

type Location struct {
	City   string          `yaml:"city" json:"city" validate:"required"`
	Share  decimal.Decimal `yaml:"share" json:"share" validate:"gte=0"`
	Orders int             `yaml:"orders" json:"orders" validate:"gte=0"`
}

type Highlight struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type WinnerAd struct {
	Name       string      `yaml:"name" json:"name"`
	Tagline    string      `yaml:"tagline" json:"tagline,omitempty"`
	Copy       string      `yaml:"copy" json:"copy,omitempty"`
	Highlights []Highlight `yaml:"highlights" json:"highlights,omitempty"`
	Summary    string      `yaml:"summary" json:"summary,omitempty"`
}

type Finding struct {
	Platform string   `yaml:"platform" json:"platform" validate:"required"`
	Title    string   `yaml:"title" json:"title" validate:"required"`
	Body     string   `yaml:"body" json:"body,omitempty"`
	Bullets  []string `yaml:"bullets" json:"bullets,omitempty"`
}

type Recommendation struct {
	Platform string   `yaml:"platform" json:"platform" validate:"required"`
	Items    []string `yaml:"items" json:"items"`
}

type Insights struct {
	Products        []Product        `yaml:"products" json:"products" validate:"dive"`
	Locations       []Location       `yaml:"locations" json:"locations" validate:"dive"`
	WinnerAd        *WinnerAd        `yaml:"winner_ad" json:"winner_ad,omitempty"`
	Findings        []Finding        `yaml:"findings" json:"findings" validate:"dive"`
	Recommendations []Recommendation `yaml:"recommendations" json:"recommendations" validate:"dive"`
}

type Plan struct {
	Summary     string   `yaml:"summary" json:"summary,omitempty"`
	Actions     []string `yaml:"actions" json:"actions,omitempty"`
	Experiments []string `yaml:"experiments" json:"experiments,omitempty"`
	Risks       []string `yaml:"risks" json:"risks,omitempty"`
}

// ReportDataset is the full static input of one report.
type ReportDataset struct {
	Report    ReportMeta        `yaml:"report" json:"report"`
	Current   CurrentPeriod     `yaml:"current" json:"current"`
	Next      NextPeriod        `yaml:"next" json:"next"`
	Platforms []PlatformProfile `yaml:"platforms" json:"platforms" validate:"dive"`
	Insights  Insights          `yaml:"insights" json:"insights"`
	Plan      Plan              `yaml:"plan" json:"plan"`
}

// Totals sums spend, orders and revenue of a platform list. ROAS is left zero.
func Totals(ps []PlatformMetrics) PeriodTotals {
	var t PeriodTotals
	for _, p := range ps {
		t.Spend = t.Spend.Add(p.Spend)
		t.Orders += p.Orders
		t.Revenue = t.Revenue.Add(p.Revenue)
	}
	return t
}
