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

	"github.com/hibiken/asynq"

	"github.com/itbizone/itbizone-api/internal/app"
	"github.com/itbizone/itbizone-api/internal/auth"
	"github.com/itbizone/itbizone-api/internal/document"
	"github.com/itbizone/itbizone-api/internal/newsletter"
	"github.com/itbizone/itbizone-api/internal/observability"
	"github.com/itbizone/itbizone-api/internal/platform/cache"
	"github.com/itbizone/itbizone-api/internal/platform/db"
	"github.com/itbizone/itbizone-api/internal/quotations"
	"github.com/itbizone/itbizone-api/internal/site"
	"github.com/itbizone/itbizone-api/jobs"
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	// The listing and PDF caches degrade to pass-through without Redis, so
	// a failed connection is not fatal for the API.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
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

	taskClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init task client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Warn("task client close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	adminGate := auth.NewAPIKeyGate(cfg.AdminAPIKeyHash, logger)

	generator := document.NewGenerator(document.DefaultCompany, cfg.LogoPath, nil)

	quotationRepo := quotations.NewRepository(dbpool)
	quotationCache := quotations.NewCache(redisClient, cfg.CacheTTL)
	quotationService := quotations.NewService(quotationRepo, quotationCache, generator, taskClient, metrics, logger)
	quotationHandler := quotations.NewHandler(logger, quotationService)

	newsletterRepo := newsletter.NewRepository(dbpool)
	newsletterService := newsletter.NewService(newsletterRepo, taskClient, logger)
	newsletterHandler := newsletter.NewHandler(logger, newsletterService)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Metrics:           metrics,
		AdminGate:         adminGate,
		QuotationHandler:  quotationHandler,
		NewsletterHandler: newsletterHandler,
		SiteHandler:       site.NewHandler(),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
