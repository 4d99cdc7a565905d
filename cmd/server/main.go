package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/naologic/reflow/internal/api"
	"github.com/naologic/reflow/internal/config"
	"github.com/naologic/reflow/internal/job"
	"github.com/naologic/reflow/internal/logger"
	"github.com/naologic/reflow/internal/metrics"
	"github.com/naologic/reflow/internal/repository"
	"github.com/naologic/reflow/internal/repository/memory"
	"github.com/naologic/reflow/internal/repository/postgres"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()

	db, err := openDatabase(cfg)
	if err != nil {
		zapLogger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	var scheduler *job.JobScheduler
	if cfg.RedisAddr != "" {
		scheduler, err = job.NewJobScheduler(cfg.RedisAddr, db)
		if err != nil {
			zapLogger.Fatal("failed to start job scheduler", zap.Error(err))
		}
		defer scheduler.Close()

		worker := job.NewWorker(cfg.RedisAddr, db, m, zapLogger)
		go func() {
			if err := worker.Run(); err != nil {
				zapLogger.Error("asynq worker stopped", zap.Error(err))
			}
		}()
	} else {
		zapLogger.Warn("REDIS_ADDR not set; asynchronous reflow jobs are disabled")
	}

	router := api.NewRouter(db, scheduler, m, zapLogger)
	router.Echo().GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info("starting server", zap.String("addr", cfg.ServerAddr))
		if err := router.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := router.Echo().Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown error", zap.Error(err))
	}
}

// openDatabase returns the Postgres-backed repository set when DATABASE_URL
// is configured, falling back to the in-memory implementation otherwise.
func openDatabase(cfg config.Config) (repository.Database, error) {
	if cfg.DatabaseURL == "" {
		return memory.NewDatabase(), nil
	}
	return postgres.NewDatabase(cfg.DatabaseURL)
}
