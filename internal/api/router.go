package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/naologic/reflow/internal/job"
	"github.com/naologic/reflow/internal/metrics"
	"github.com/naologic/reflow/internal/repository"
)

// Router wires the reflow HTTP API onto an Echo instance.
type Router struct {
	echo      *echo.Echo
	scheduler *job.JobScheduler
	handlers  *Handlers
}

// NewRouter creates a new Echo router with all reflow routes registered.
func NewRouter(db repository.Database, scheduler *job.JobScheduler, m *metrics.Metrics, logger *zap.Logger) *Router {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	r := &Router{
		echo:      e,
		scheduler: scheduler,
		handlers:  NewHandlers(db, scheduler, m, logger),
	}

	r.registerRoutes()

	return r
}

// Echo exposes the underlying Echo instance, e.g. to mount /metrics.
func (r *Router) Echo() *echo.Echo {
	return r.echo
}

// registerRoutes configures all API routes.
func (r *Router) registerRoutes() {
	r.echo.GET("/api/health", r.handlers.Health)
	r.echo.GET("/api/health/db", r.handlers.HealthDB)
	r.echo.GET("/api/health/redis", r.handlers.HealthRedis)

	reflowGroup := r.echo.Group("/api/reflow")
	reflowGroup.POST("", r.handlers.Reflow)
	reflowGroup.POST("/jobs", r.handlers.EnqueueReflowJob)
	reflowGroup.GET("/jobs/:id", r.handlers.GetReflowJobStatus)
	reflowGroup.GET("/runs", r.handlers.ListReflowRuns)
	reflowGroup.GET("/runs/:id", r.handlers.GetReflowRun)
}

// Start starts the HTTP server.
func (r *Router) Start(addr string) error {
	return r.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (r *Router) Shutdown() error {
	return r.echo.Shutdown(context.Background())
}
