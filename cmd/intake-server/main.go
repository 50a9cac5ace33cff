// cmd/intake-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	commonaws "bizplan-intake/internal/common/aws"
	"bizplan-intake/internal/common/config"
	"bizplan-intake/internal/common/database"
	commonhttp "bizplan-intake/internal/common/http"
	"bizplan-intake/internal/common/logger"
	"bizplan-intake/internal/common/observability"
	"bizplan-intake/internal/intake"
	"bizplan-intake/internal/lookup"
	"bizplan-intake/internal/models"
	"bizplan-intake/internal/places"
	"bizplan-intake/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("apiBaseUrl", cfg.API.BaseURL),
		zap.String("lookupSource", cfg.Lookup.Source),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics exporter unavailable", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx := context.Background()
	checks := map[string]server.Pinger{}

	apiClient := commonhttp.NewClient(config.GetDuration(cfg.API.Timeout))

	// --- Lookup lists ---
	var (
		businessTypes lookup.Lister[models.BusinessType]
		industryTypes lookup.Lister[models.IndustryType]
	)

	switch cfg.Lookup.Source {
	case config.LookupSourceStore:
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		checks["postgres"] = pg
		zapLog.Info("PostgreSQL connected successfully")

		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		checks["redis"] = redis
		zapLog.Info("Redis connected successfully")

		store := lookup.NewStore(pg.DB, redis.Client, config.GetDuration(cfg.Lookup.CacheTTL), log)
		businessTypes = store.BusinessTypeLister()
		industryTypes = store.IndustryTypeLister()

	default:
		bt := lookup.NewRemoteSource[models.BusinessType](cfg.API.BaseURL, lookup.BusinessTypesPath, lookup.ListBusinessTypes, apiClient, log)
		it := lookup.NewRemoteSource[models.IndustryType](cfg.API.BaseURL, lookup.IndustryTypesPath, lookup.ListIndustryTypes, apiClient, log)
		defer bt.Close()
		defer it.Close()
		businessTypes, industryTypes = bt, it
	}

	// --- Operator notification ---
	var notifier *commonaws.SubmissionNotifier
	if cfg.Notifications.SES.Enabled {
		sesClient, err := commonaws.NewSESClient(ctx, cfg.Notifications.SES.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		notifier = commonaws.NewSubmissionNotifier(sesClient, cfg.Notifications.SES.FromEmail, cfg.Notifications.SES.ToEmail)
		zapLog.Info("SES notifications enabled", zap.String("to", cfg.Notifications.SES.ToEmail))
	}

	deps := server.Deps{
		Config:        cfg,
		Logger:        log,
		Submitter:     intake.NewSubmitter(cfg.API.BaseURL, apiClient, obs, log),
		BusinessTypes: businessTypes,
		IndustryTypes: industryTypes,
		Places: places.NewDetailsClient(cfg.Places.DetailsURL, cfg.Places.APIKey,
			commonhttp.NewClient(config.GetDuration(cfg.Places.Timeout)), obs, log),
		Checks: checks,
	}
	if notifier != nil {
		deps.Notifier = notifier
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.NewRouter(deps),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Intake server stopped")
}
