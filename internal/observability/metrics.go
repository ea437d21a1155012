// Package observability exposes Prometheus metrics for the report server.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/bcm-report/internal/models"
)

type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	tabRenders      *prometheus.CounterVec
	tabSelects      *prometheus.CounterVec
	chartRenders    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bcm_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bcm_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bcm_tab_renders_total",
		Help: "Report sections rendered, by tab.",
	}, []string{"tab"})
	selects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bcm_tab_selects_total",
		Help: "Tab transitions, by origin and destination tab.",
	}, []string{"from", "to"})
	chartsRendered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bcm_chart_renders_total",
		Help: "Charts served, by chart id and format.",
	}, []string{"chart", "format"})
	registry.MustRegister(requests, duration, renders, selects, chartsRendered)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		tabRenders:      renders,
		tabSelects:      selects,
		chartRenders:    chartsRendered,
	}
}

// Handler serves /metrics. A nil Metrics answers 503.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) TabRendered(t models.Tab) {
	if m == nil {
		return
	}
	m.tabRenders.WithLabelValues(t.String()).Inc()
}

// TabSelected has the signature of a view select hook.
func (m *Metrics) TabSelected(from, to models.Tab) {
	if m == nil {
		return
	}
	m.tabSelects.WithLabelValues(from.String(), to.String()).Inc()
}

func (m *Metrics) ChartRendered(id, format string) {
	if m == nil {
		return
	}
	m.chartRenders.WithLabelValues(id, format).Inc()
}

// Registerer is where extra collectors go to be served next to the report metrics.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
