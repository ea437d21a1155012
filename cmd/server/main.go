package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AngelCh415/bcm-report/internal/config"
	"github.com/AngelCh415/bcm-report/internal/httpx"
	"github.com/AngelCh415/bcm-report/internal/ingest"
	"github.com/AngelCh415/bcm-report/internal/observability"
	"github.com/AngelCh415/bcm-report/internal/store"
	"github.com/AngelCh415/bcm-report/internal/utils"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("config error", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := config.NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := ingest.NewLoader(
		ingest.NewHTTPClient(cfg.FetchTimeout),
		utils.NewBackoff(200*time.Millisecond, cfg.FetchRetries),
		logger,
	)
	ds, err := loader.Load(ctx, cfg.Dataset)
	if err != nil {
		for _, ce := range store.ConfigErrors(err) {
			logger.Error("dataset rejected",
				slog.String("period", ce.Period),
				slog.String("platform", ce.Platform),
				slog.String("field", ce.Field),
				slog.String("reason", ce.Reason))
		}
		logger.Error("loading dataset", slog.String("err", err.Error()))
		os.Exit(1)
	}
	for _, w := range ds.RoasWarnings() {
		logger.Warn("stated roas differs from revenue/spend",
			slog.String("source", string(w.Source)),
			slog.String("platform", w.Platform),
			slog.String("stated", w.Stated.String()),
			slog.String("computed", w.Computed.String()))
	}

	metrics := observability.NewMetrics()
	metrics.Registerer().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r, err := httpx.NewRouter(logger, ds, metrics, httpx.Options{
		RequestTimeout:  cfg.RequestTimeout,
		RateLimitPerMin: cfg.RateLimitPerMin,
		ChartWidth:      cfg.ChartWidth,
		ChartHeight:     cfg.ChartHeight,
		Production:      cfg.IsProduction(),
	})
	if err != nil {
		logger.Error("building router", slog.String("err", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("port", cfg.Port), slog.String("report", ds.Report().Title))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("err", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", slog.String("err", err.Error()))
		}
	}
}
