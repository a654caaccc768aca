// Command download fetches the race classification and FP4 analysis sheets
// of every configured event into the data directory.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pyhub-apps/motopace/internal/config"
	"github.com/pyhub-apps/motopace/pkg/fetch"
	"github.com/pyhub-apps/motopace/pkg/logger"
	"github.com/pyhub-apps/motopace/pkg/metrics"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("download")

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(ctx, "failed to load config", logger.Error(err))
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	universe, err := cfg.Universe()
	if err != nil {
		log.Fatal(ctx, "invalid event universe", logger.Error(err))
	}
	start, end := universe.Years()
	log.Info(ctx, "download starting",
		logger.Int("start_year", start),
		logger.Int("end_year", end),
		logger.Int("events", len(universe.Keys())))

	m := metrics.NewManager()
	fetcher := fetch.NewFetcher(cfg.DataDir,
		fetch.WithTimeout(cfg.HTTPTimeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithLogger(log),
		fetch.WithMetrics(m),
	)

	report, err := fetch.NewDownloader(fetcher, cfg.BaseURL, cfg.Series, log).DownloadAll(ctx, universe)
	if exportErr := m.WriteTextfile(cfg.MetricsFile); exportErr != nil {
		log.Warn(ctx, "metrics not exported", logger.Error(exportErr))
	}
	if err != nil {
		log.Fatal(ctx, "download interrupted",
			logger.Int("stored", report.Stored),
			logger.Error(err))
	}
}
