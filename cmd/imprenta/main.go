package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/imprenta-pos/imprenta-pos/internal/app"
	"github.com/imprenta-pos/imprenta-pos/internal/ledger"
	"github.com/imprenta-pos/imprenta-pos/internal/platform/cache"
	"github.com/imprenta-pos/imprenta-pos/internal/platform/salesapi"
	"github.com/imprenta-pos/imprenta-pos/internal/refdata"
	"github.com/imprenta-pos/imprenta-pos/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	remote := salesapi.NewClient(cfg.SalesAPIURL, cfg.SalesAPITimeout)
	if err := remote.Ping(ctx); err != nil {
		logger.Warn("sales data service ping", slog.Any("error", err))
	}

	var snapshotCache *ledger.Cache
	var jobHandler *jobs.Handler
	if cfg.CacheEnabled() {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, snapshot cache disabled", slog.Any("error", err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
			snapshotCache = ledger.NewCache(redisClient, cfg.CacheTTL)

			inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
			defer func() {
				if err := inspector.Close(); err != nil {
					logger.Warn("inspector close", slog.Any("error", err))
				}
			}()
			jobHandler = jobs.NewHandler(inspector, logger)
		}
	}

	ledgerService := ledger.NewService(remote, snapshotCache, logger)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	refdataService := refdata.NewService(remote, logger)
	refdataHandler := refdata.NewHandler(logger, refdataService)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		LedgerHandler:  ledgerHandler,
		RefDataHandler: refdataHandler,
		JobHandler:     jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
