package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/AngelCh415/bcm-report/internal/charts"
	"github.com/AngelCh415/bcm-report/internal/observability"
	"github.com/AngelCh415/bcm-report/internal/store"
	"github.com/AngelCh415/bcm-report/internal/utils"
	"github.com/AngelCh415/bcm-report/internal/view"
)

type Options struct {
	RequestTimeout  time.Duration
	RateLimitPerMin int
	ChartWidth      int
	ChartHeight     int
	Production      bool
}

type router struct {
	log     *slog.Logger
	ds      *store.Dataset
	engine  *view.Engine
	charts  *charts.Builder
	metrics *observability.Metrics
	opts    Options
}

func NewRouter(log *slog.Logger, ds *store.Dataset, m *observability.Metrics, opts Options) (http.Handler, error) {
	engine, err := view.NewEngine()
	if err != nil {
		return nil, err
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if opts.RateLimitPerMin <= 0 {
		opts.RateLimitPerMin = 120
	}
	rt := &router{log: log, ds: ds, engine: engine, charts: charts.NewBuilder(ds), metrics: m, opts: opts}

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'",
		SSLRedirect:           opts.Production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	mux := chi.NewRouter()
	mux.Use(middleware.RealIP)
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(m.Middleware)
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.Timeout(opts.RequestTimeout))
	mux.Use(secureMiddleware.Handler)
	mux.Use(middleware.Compress(5))

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Method(http.MethodGet, "/metrics", m.Handler())

	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/report", http.StatusFound)
	})
	mux.Get("/report", rt.handleReportPage)
	mux.Get("/charts/{chartID}.png", rt.handleChartPNG)

	mux.Route("/api", func(api chi.Router) {
		api.Use(httprate.Limit(opts.RateLimitPerMin, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				writeProblem(w, http.StatusTooManyRequests, "rate limit exceeded")
			}),
		))
		api.Get("/report", rt.handleDataset)
		api.Get("/tabs", rt.handleTabs)
		api.Get("/tabs/{tab}", rt.handleTab)
		api.Get("/charts", rt.handleChartSpecs)
		api.Get("/charts/{chartID}", rt.handleChartSeries)
		api.Get("/platforms/{source}.csv", rt.handlePlatformsCSV)
		api.Get("/variance", rt.handleVariance)
	})

	return mux, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

// problem is the JSON error body of every failed request.
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(problem{Title: http.StatusText(status), Status: status, Detail: detail})
}
