package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/riskibarqy/matchdata-sync/internal/app"
	"github.com/riskibarqy/matchdata-sync/internal/config"
	"github.com/riskibarqy/matchdata-sync/internal/observability"
	"github.com/riskibarqy/matchdata-sync/internal/platform/logging"
	"github.com/riskibarqy/matchdata-sync/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"environment", cfg.AppEnv,
	)
	logging.SetDefault(logger)

	// run returns before exiting so its deferred flushes always happen.
	if err := run(cfg, logger); err != nil {
		logger.Error("sync failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.Config, logger *logging.Logger) error {
	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("flush traces failed", "error", err)
		}
	}()

	svc, err := app.NewSyncService(cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, span := otel.Tracer("matchdata-sync/cmd/sync").Start(ctx, "sync.run")
	defer span.End()

	result, err := svc.Run(ctx, usecase.SyncInput{
		Today:  time.Now().UTC(),
		DryRun: cfg.DryRun,
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	logger.Info("sync finished",
		"run_id", result.RunID,
		"fetched_matches", result.FetchedMatches,
		"untrusted_matches", result.UntrustedMatches,
		"malformed_matches", result.MalformedMatches,
		"new_matches", result.NewMatches,
		"updated_events", result.UpdatedEvents,
		"dry_run", result.DryRun,
	)
	return nil
}
