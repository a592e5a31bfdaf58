// Command server runs the live dashboard. It loads the four source datasets
// once at boot, joins them into the per-capita panel and serves the animated
// choropleth plus the export API over HTTP. Source files are re-read on every
// start; nothing about them is persisted.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jtquiroga/DAA-por-region/internal/dashboard"
	"github.com/jtquiroga/DAA-por-region/internal/dashboard/handler"
	"github.com/jtquiroga/DAA-por-region/internal/export"
	"github.com/jtquiroga/DAA-por-region/internal/export/artifact"
	"github.com/jtquiroga/DAA-por-region/internal/export/history"
	"github.com/jtquiroga/DAA-por-region/internal/figure"
	"github.com/jtquiroga/DAA-por-region/internal/ingest"
	"github.com/jtquiroga/DAA-por-region/internal/platform/config"
	"github.com/jtquiroga/DAA-por-region/internal/platform/httpserver"
	"github.com/jtquiroga/DAA-por-region/internal/platform/logger"
	"github.com/jtquiroga/DAA-por-region/internal/platform/metrics"
	platformredis "github.com/jtquiroga/DAA-por-region/internal/platform/redis"
	"github.com/jtquiroga/DAA-por-region/internal/rates"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)
	m := metrics.New()

	ctx := context.Background()
	sources, err := ingest.Load(ctx, ingest.Paths{
		Transactions: cfg.Sources.Transactions,
		Population:   cfg.Sources.Population,
		Australia:    cfg.Sources.Australia,
		Boundaries:   cfg.Sources.Boundaries,
	})
	if err != nil {
		fatal(log, "load source datasets", err)
	}
	recordSourceStats(log, m, sources)

	if err := sources.Boundaries.Clean(); err != nil {
		fatal(log, "clean region boundaries", err)
	}
	if err := sources.Boundaries.Rotate(cfg.Map.RotationDeg); err != nil {
		fatal(log, "rotate region boundaries", err)
	}
	figures, err := figure.NewBuilder(sources.Boundaries)
	if err != nil {
		fatal(log, "prepare figure builder", err)
	}

	panel := rates.Build(sources)
	if panel.Empty() {
		// The dashboard stays up with an empty slider; the export API will
		// reject runs until real data is supplied.
		log.Warn("no valid transactions in sources, serving an empty dashboard")
	}

	artifacts, err := artifact.Open(ctx, cfg.Artifact)
	if err != nil {
		fatal(log, "open artifact store", err)
	}
	runs, err := history.Open(ctx, cfg.History)
	if err != nil {
		fatal(log, "open export history", err)
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		fatal(log, "connect to redis", err)
	}

	dashOpts := []dashboard.Option{dashboard.WithLogger(log), dashboard.WithMetrics(m)}
	if redisClient != nil {
		dashOpts = append(dashOpts, dashboard.WithCache(dashboard.NewRedisCache(redisClient, cfg.Redis.FrameTTL)))
		log.Info("frame cache enabled", "ttl", cfg.Redis.FrameTTL)
	}
	frames := dashboard.NewService(panel, figures, dashOpts...)

	exports := export.NewService(panel, figures, sources.Boundaries, artifacts, runs,
		export.WithLogger(log),
		export.WithMetrics(m),
		export.WithQueueSize(cfg.Export.QueueSize),
	)
	exports.Start()

	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	handler.New(frames, exports, log, m).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting dashboard",
		"addr", cfg.Addr,
		"years", len(panel.Years),
		"artifact_driver", cfg.Artifact.Driver,
		"history_driver", cfg.History.Driver,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if err := exports.Stop(shutdownCtx); err != nil {
		log.Error("stop export worker", "error", err)
	}
	if closer, ok := runs.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Error("close export history", "error", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("close redis client", "error", err)
		}
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}

// recordSourceStats logs and gauges how many rows each dataset contributed.
func recordSourceStats(log *slog.Logger, m *metrics.Metrics, sources *ingest.Sources) {
	for _, src := range []struct {
		name  string
		stats ingest.SourceStats
	}{
		{"transactions", sources.TransactionStats},
		{"population", sources.PopulationStats},
		{"australia", sources.AustraliaStats},
	} {
		m.SetSourceRows(src.name, "accepted", src.stats.Rows)
		m.SetSourceRows(src.name, "skipped", src.stats.Skipped)
		log.Info("source loaded", "source", src.name, "rows", src.stats.Rows, "skipped", src.stats.Skipped)
	}
}
