package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/itbizone/itbizone-api/internal/app"
	"github.com/itbizone/itbizone-api/internal/document"
	"github.com/itbizone/itbizone-api/internal/platform/cache"
	"github.com/itbizone/itbizone-api/internal/platform/db"
	"github.com/itbizone/itbizone-api/internal/quotations"
	"github.com/itbizone/itbizone-api/jobs"
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Asynq keeps its own connection; only the PDF byte cache is lost.
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	generator := document.NewGenerator(document.DefaultCompany, cfg.LogoPath, nil)
	quotationRepo := quotations.NewRepository(pool)
	quotationCache := quotations.NewCache(redisClient, cfg.CacheTTL)
	quotationService := quotations.NewService(quotationRepo, quotationCache, generator, nil, nil, logger)

	warmupJob := jobs.NewPDFWarmupJob(quotationService, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypePDFWarmup, Handler: warmupJob.Handle},
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
