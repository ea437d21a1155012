package httpx

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/bcm-report/internal/observability"
	"github.com/AngelCh415/bcm-report/internal/store"
)

func newServer(t *testing.T, opts Options) (*httptest.Server, *observability.Metrics) {
	t.Helper()
	ds, err := store.Default()
	require.NoError(t, err)
	m := observability.NewMetrics()
	h, err := NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), ds, m, opts)
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, m
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestRouteStatuses(t *testing.T) {
	srv, _ := newServer(t, Options{})
	tests := []struct {
		path string
		code int
	}{
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusOK},
		{"/", http.StatusFound},
		{"/report", http.StatusOK},
		{"/report?tab=insights", http.StatusOK},
		{"/report?tab=next-period-plan", http.StatusOK},
		{"/report?tab=october", http.StatusBadRequest},
		{"/api/report", http.StatusOK},
		{"/api/tabs", http.StatusOK},
		{"/api/tabs/platforms", http.StatusOK},
		{"/api/tabs/bogus", http.StatusNotFound},
		{"/api/charts", http.StatusOK},
		{"/api/charts/plan-orders", http.StatusOK},
		{"/api/charts/plan-orders?format=csv", http.StatusOK},
		{"/api/charts/plan-orders?format=xml", http.StatusBadRequest},
		{"/api/charts/nope", http.StatusNotFound},
		{"/api/platforms/current-actual.csv", http.StatusOK},
		{"/api/platforms/next-actual.csv", http.StatusNotFound},
		{"/api/variance?actual=462889&projected=520800", http.StatusOK},
		{"/api/variance?actual=1&projected=0", http.StatusUnprocessableEntity},
		{"/api/variance?actual=abc&projected=1", http.StatusBadRequest},
		{"/charts/spend-distribution.png", http.StatusOK},
		{"/charts/nope.png", http.StatusNotFound},
		{"/metrics", http.StatusOK},
		{"/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, _ := get(t, srv, tt.path)
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func TestRootRedirectsToReport(t *testing.T) {
	srv, _ := newServer(t, Options{})
	resp, _ := get(t, srv, "/")
	assert.Equal(t, "/report", resp.Header.Get("Location"))
}

func TestProblemBody(t *testing.T) {
	srv, _ := newServer(t, Options{})
	resp, body := get(t, srv, "/api/variance?actual=1&projected=0")
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	var p problem
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, http.StatusUnprocessableEntity, p.Status)
	assert.Equal(t, "Unprocessable Entity", p.Title)
	assert.Contains(t, p.Detail, "division by zero")
}

func TestVarianceJSON(t *testing.T) {
	srv, _ := newServer(t, Options{})
	_, body := get(t, srv, "/api/variance?actual=672&projected=726")

	var got struct {
		Percent   string `json:"percent"`
		Direction string `json:"direction"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "-7.4", got.Percent)
	assert.Equal(t, "under", got.Direction)
}

func TestTabJSON(t *testing.T) {
	srv, _ := newServer(t, Options{})
	_, body := get(t, srv, "/api/tabs/next-period-plan")

	var got struct {
		ID      string `json:"id"`
		Label   string `json:"label"`
		Section struct {
			Cards []struct {
				Label string `json:"label"`
			} `json:"cards"`
		} `json:"section"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "next-period-plan", got.ID)
	assert.Equal(t, "October 2025 Plan", got.Label)
	require.Len(t, got.Section.Cards, 4)
	assert.Equal(t, "+12.5% vs Sept actual", got.Section.Cards[0].Label)
}

func TestTabsList(t *testing.T) {
	srv, _ := newServer(t, Options{})
	_, body := get(t, srv, "/api/tabs")

	var got []tabInfo
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 4)
	assert.Equal(t, "Platform Performance", got[1].Label)
}

func TestChartCSVAndPNG(t *testing.T) {
	srv, _ := newServer(t, Options{ChartWidth: 400, ChartHeight: 200})

	resp, body := get(t, srv, "/api/charts/orders-vs-projection?format=csv")
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Category", "Actual", "Projected"}, rows[0])
	assert.Equal(t, []string{"Orders", "672.00", "726.00"}, rows[1])

	resp, body = get(t, srv, "/charts/plan-spend-revenue.png")
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))
}

func TestPlatformsCSV(t *testing.T) {
	srv, _ := newServer(t, Options{})
	resp, body := get(t, srv, "/api/platforms/next-projected.csv")
	assert.Equal(t, `attachment; filename="next-projected-oct.csv"`, resp.Header.Get("Content-Disposition"))
	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "520800.00", rows[3][1])
}

func TestReportPageHTML(t *testing.T) {
	srv, _ := newServer(t, Options{})
	resp, body := get(t, srv, "/report?tab=platforms")
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "Platform Performance: September 2025")
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestMetricsCountTabs(t *testing.T) {
	srv, _ := newServer(t, Options{})
	get(t, srv, "/report?tab=insights")
	get(t, srv, "/api/tabs/insights")
	get(t, srv, "/report")

	_, body := get(t, srv, "/metrics")
	out := string(body)
	assert.Contains(t, out, `bcm_tab_selects_total{from="overview",to="insights"} 2`)
	assert.Contains(t, out, `bcm_tab_renders_total{tab="insights"} 2`)
	assert.Contains(t, out, `bcm_tab_renders_total{tab="overview"} 1`)
	assert.True(t, strings.Contains(out, `route="/api/tabs/{tab}"`))
}

func TestRateLimit(t *testing.T) {
	srv, _ := newServer(t, Options{RateLimitPerMin: 2})
	for i := 0; i < 2; i++ {
		resp, _ := get(t, srv, "/api/tabs")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ := get(t, srv, "/api/tabs")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, _ = get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
