package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/incident-tickets/internal/api/cli"
	"github.com/spec-kit/incident-tickets/internal/api/dto"
	"github.com/spec-kit/incident-tickets/internal/config"
	"github.com/spec-kit/incident-tickets/internal/events"
	"github.com/spec-kit/incident-tickets/internal/observability"
	"github.com/spec-kit/incident-tickets/internal/service"
	"github.com/spec-kit/incident-tickets/pkg/util/errorutil"
)

func main() {
	batchPath := flag.String("f", "", "YAML or JSON batch file; runs the walkthrough when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	tickets := service.NewTicketService(service.TicketDependencies{
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	runner := cli.NewRunner(tickets, logger, os.Stdout)

	logger.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version))

	code := run(ctx, runner, *batchPath, logger)
	logger.Info("ticket operations", zap.Any("metrics", metrics.Snapshot()))
	if code != 0 {
		_ = logger.Sync()
		os.Exit(code)
	}
}

func run(ctx context.Context, runner *cli.Runner, batchPath string, logger *zap.Logger) int {
	if batchPath == "" {
		if err := runner.RunDemo(ctx); err != nil {
			logError(logger, err)
			return 1
		}
		return 0
	}

	f, err := os.Open(batchPath)
	if err != nil {
		logger.Error("failed to open batch file", zap.String("path", batchPath), zap.Error(err))
		return 1
	}
	defer f.Close()

	batch, err := dto.DecodeBatch(f)
	if err != nil {
		logError(logger, errorutil.NewInvalidInput("decode batch "+batchPath, err))
		return 1
	}

	report, err := runner.RunBatch(ctx, batch)
	if err != nil {
		logError(logger, err)
		return 1
	}
	if report.Failed > 0 {
		return 2
	}
	return 0
}

func logError(logger *zap.Logger, err error) {
	domainErr := errorutil.ToDomainError(err)
	logger.Error("run failed",
		zap.String("code", domainErr.Code),
		zap.Any("details", domainErr.Details),
		zap.Error(domainErr))
}
