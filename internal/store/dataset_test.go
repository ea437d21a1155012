package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/bcm-report/internal/models"
)

func TestDefaultDatasetReconciles(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Shop Fusio", ds.Report().Client)
	assert.Equal(t, "September 2025", ds.Current().Period.Name)
	assert.Equal(t, "Oct", ds.Next().Period.ShortName)

	total, err := ds.Totals(models.CurrentActual)
	require.NoError(t, err)
	assert.Equal(t, "462889.23", total.Spend.String())
	assert.Equal(t, 672, total.Orders)

	ps, err := ds.Platforms(models.NextProjected)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "Meta", ps[0].Platform)

	assert.Len(t, ds.Insights().Products, 5)
	assert.NotNil(t, ds.Insights().WinnerAd)
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "BCM Monthly Report", ds.Report().Title)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAccessorsReturnCopies(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	ps, err := ds.Platforms(models.CurrentActual)
	require.NoError(t, err)
	ps[0].Spend = decimal.Zero

	cur := ds.Current()
	cur.Actual[0].Platform = "changed"

	again, err := ds.Platforms(models.CurrentActual)
	require.NoError(t, err)
	assert.Equal(t, "456937.35", again[0].Spend.String())
	assert.Equal(t, "Meta", again[0].Platform)
}

func TestPeriodAndProfile(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	p, err := ds.Period(models.CurrentProjected)
	require.NoError(t, err)
	assert.Equal(t, "Sept", p.ShortName)
	p, err = ds.Period(models.NextProjected)
	require.NoError(t, err)
	assert.Equal(t, "Oct", p.ShortName)
	_, err = ds.Period(models.Source("bogus"))
	assert.ErrorIs(t, err, models.ErrUnknownSource)

	assert.Equal(t, "Testing Phase", ds.Profile("google").Badge)
	assert.Equal(t, models.PlatformProfile{Name: "TikTok"}, ds.Profile("TikTok"))
}

func TestReconcileReportsPeriodAndField(t *testing.T) {
	doc := strings.Replace(string(defaultReport),
		`actual_total: { spend: "462889.23"`, `actual_total: { spend: "462889"`, 1)

	_, err := Parse([]byte(doc))
	require.Error(t, err)

	ces := ConfigErrors(err)
	require.Len(t, ces, 1)
	assert.Equal(t, string(models.CurrentActual), ces[0].Period)
	assert.Equal(t, "spend", ces[0].Field)
	assert.Contains(t, ces[0].Error(), "period=current-actual")
}

func TestReconcileToleratesEpsilon(t *testing.T) {
	doc := strings.Replace(string(defaultReport),
		`actual_total: { spend: "462889.23"`, `actual_total: { spend: "462889.24"`, 1)
	_, err := Parse([]byte(doc))
	assert.NoError(t, err)
}

func TestReconcileDuplicateAndUnknownPlatforms(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)
	doc := ds.Dataset()

	doc.Current.Projected = append(doc.Current.Projected, doc.Current.Projected[1])
	doc.Insights.Findings = append(doc.Insights.Findings, models.Finding{Platform: "TikTok", Title: "Reels"})

	_, err = New(doc)
	require.Error(t, err)

	var reasons []string
	for _, ce := range ConfigErrors(err) {
		reasons = append(reasons, ce.Reason)
	}
	assert.Contains(t, reasons, "duplicate platform")
	assert.Contains(t, reasons, "unknown platform")
}

func TestValidationRejectsNegativeAndEmpty(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	doc := ds.Dataset()
	doc.Current.Actual[1].Spend = decimal.RequireFromString("-1")
	_, err = New(doc)
	require.Error(t, err)
	ces := ConfigErrors(err)
	require.NotEmpty(t, ces)
	assert.Contains(t, ces[0].Field, "Spend")

	doc = ds.Dataset()
	doc.Next.Projected = nil
	_, err = New(doc)
	require.Error(t, err)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	doc := strings.Replace(string(defaultReport), "report:\n", "report:\n  colour: green\n", 1)
	_, err := Parse([]byte(doc))
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Reason, "parsing yaml")
}

func TestRoasWarnings(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	// the stated Sept figures are revenue/spend rounded, so nothing to flag
	for _, w := range ds.RoasWarnings() {
		assert.NotEqual(t, models.CurrentActual, w.Source, "unexpected warning %+v", w)
	}

	doc := ds.Dataset()
	doc.Current.Actual[0].ROAS = decimal.RequireFromString("3.10")
	flagged, err := New(doc)
	require.NoError(t, err)

	var found bool
	for _, w := range flagged.RoasWarnings() {
		if w.Source == models.CurrentActual && w.Platform == "Meta" {
			found = true
			assert.Equal(t, "2.06", w.Computed.StringFixed(2))
		}
	}
	assert.True(t, found)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, defaultReport, 0o600))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Shop Fusio", ds.Report().Client)
}
