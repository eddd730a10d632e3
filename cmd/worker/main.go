package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/imprenta-pos/imprenta-pos/internal/app"
	"github.com/imprenta-pos/imprenta-pos/internal/ledger"
	"github.com/imprenta-pos/imprenta-pos/internal/platform/cache"
	"github.com/imprenta-pos/imprenta-pos/internal/platform/salesapi"
	"github.com/imprenta-pos/imprenta-pos/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if !cfg.CacheEnabled() {
		logger.Error("worker requires REDIS_ADDR to be configured")
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	remote := salesapi.NewClient(cfg.SalesAPIURL, cfg.SalesAPITimeout)
	snapshotCache := ledger.NewCache(redisClient, cfg.CacheTTL)
	ledgerService := ledger.NewService(remote, snapshotCache, logger)

	refreshJob := &jobs.LedgerRefreshJob{Service: ledgerService, Logger: logger}

	refreshTask, err := jobs.NewLedgerRefreshTask(jobs.LedgerRefreshPayload{Reason: "scheduled"})
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLedgerRefresh, Handler: refreshJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.LedgerRefreshCron, Task: refreshTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
