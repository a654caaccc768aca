// Command preprocess turns every downloaded race/practice pair into a CSV
// of practice rank against race rank.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pyhub-apps/motopace/internal/config"
	"github.com/pyhub-apps/motopace/pkg/batch"
	"github.com/pyhub-apps/motopace/pkg/logger"
	"github.com/pyhub-apps/motopace/pkg/metrics"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("preprocess")

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

	m := metrics.NewManager()
	driver := batch.NewDriver(cfg.DataDir,
		batch.WithClassificationTemplate(cfg.Classification),
		batch.WithPracticeTemplate(cfg.Practice),
		batch.WithThresholdFactor(cfg.ThresholdFactor),
		batch.WithUniverse(universe),
		batch.WithLogger(log),
		batch.WithMetrics(m),
	)

	report, err := driver.Run(ctx)
	if exportErr := m.WriteTextfile(cfg.MetricsFile); exportErr != nil {
		log.Warn(ctx, "metrics not exported", logger.Error(exportErr))
	}
	if err != nil {
		log.Fatal(ctx, "preprocessing aborted",
			logger.String("run_id", report.RunID),
			logger.Int("processed", len(report.Outcomes)),
			logger.Error(err))
	}
}
