package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/job"
	"github.com/naologic/reflow/internal/metrics"
	"github.com/naologic/reflow/internal/reflow"
	"github.com/naologic/reflow/internal/repository"
)

// Handlers contains all HTTP request handlers.
type Handlers struct {
	db        repository.Database
	scheduler *job.JobScheduler
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewHandlers creates the handler set backing the reflow API.
func NewHandlers(db repository.Database, scheduler *job.JobScheduler, m *metrics.Metrics, logger *zap.Logger) *Handlers {
	return &Handlers{db: db, scheduler: scheduler, metrics: m, logger: logger}
}

// Reflow runs the core reflow pipeline synchronously over a request body
// containing work orders, work centers, and manufacturing orders, and
// returns the ReflowResult.
func (h *Handlers) Reflow(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
	}

	workOrders, workCenters, manufacturingOrders, err := repository.DecodeReflowRequest(body)
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	result := reflow.Reflow(workOrders, workCenters, manufacturingOrders)
	elapsed := time.Since(start)

	h.logger.Info("reflow invoked",
		zap.Int("work_order_count", len(workOrders)),
		zap.Int("changed_count", len(result.Changes)),
		zap.Bool("infeasible", result.Infeasible),
		zap.Duration("elapsed", elapsed),
	)
	h.metrics.ObserveResult(elapsed.Seconds(), result.Infeasible, len(result.Changes))

	if result.Infeasible {
		centersByID := make(map[string]*entity.WorkCenter, len(workCenters))
		for _, wc := range workCenters {
			centersByID[wc.ID] = wc
		}
		ordersByID := make(map[string]*entity.ManufacturingOrder, len(manufacturingOrders))
		for _, mo := range manufacturingOrders {
			ordersByID[mo.ID] = mo
		}
		_, diagnostics := reflow.CheckAll(result.WorkOrders, centersByID, ordersByID)
		return ValidationErrorResponse(c, diagnostics)
	}
	return SuccessResponse(c, http.StatusOK, result)
}

// ReflowJobRequest is the body of POST /api/reflow/jobs.
type ReflowJobRequest struct {
	WorkCenterIDs []string `json:"work_center_ids" validate:"required"`
}

// EnqueueReflowJob queues an asynchronous reflow invocation for a work
// center scope and returns the job id.
func (h *Handlers) EnqueueReflowJob(c echo.Context) error {
	var req ReflowJobRequest
	if err := c.Bind(&req); err != nil {
		return ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}
	if len(req.WorkCenterIDs) == 0 {
		return ErrorResponse(c, http.StatusBadRequest, "work_center_ids must not be empty")
	}

	info, err := h.scheduler.EnqueueReflow(c.Request().Context(), req.WorkCenterIDs)
	if err != nil {
		return ErrorResponse(c, http.StatusInternalServerError, fmt.Sprintf("failed to enqueue reflow job: %v", err))
	}

	return SuccessResponse(c, http.StatusAccepted, map[string]interface{}{
		"job_id": info.ID,
		"status": "queued",
	})
}

// GetReflowJobStatus returns the Asynq status of a previously queued
// reflow job.
func (h *Handlers) GetReflowJobStatus(c echo.Context) error {
	id := c.Param("id")

	info, err := h.scheduler.GetTaskInfo("default", id)
	if err != nil {
		return ErrorResponse(c, http.StatusNotFound, fmt.Sprintf("job not found: %v", err))
	}

	return SuccessResponse(c, http.StatusOK, map[string]interface{}{
		"job_id": info.ID,
		"state":  info.State.String(),
	})
}

// GetReflowRun returns a persisted reflow run and its change list by id.
func (h *Handlers) GetReflowRun(c echo.Context) error {
	id := c.Param("id")

	run, err := h.db.ReflowRunRepository().GetByID(c.Request().Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrorResponse(c, http.StatusNotFound, err.Error())
		}
		return ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return SuccessResponse(c, http.StatusOK, run)
}

// ListReflowRuns returns the most recently requested reflow runs, optionally
// bounded by a ?limit= query parameter (default 20).
func (h *Handlers) ListReflowRuns(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	runs, err := h.db.ReflowRunRepository().ListRecent(c.Request().Context(), limit)
	if err != nil {
		return ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}

	return SuccessResponse(c, http.StatusOK, runs)
}

// Health returns the overall service health status.
func (h *Handlers) Health(c echo.Context) error {
	return SuccessResponse(c, http.StatusOK, map[string]interface{}{
		"status": "UP",
	})
}

// HealthDB returns database connectivity health.
func (h *Handlers) HealthDB(c echo.Context) error {
	if err := h.db.Health(c.Request().Context()); err != nil {
		return ErrorResponse(c, http.StatusServiceUnavailable, fmt.Sprintf("database unhealthy: %v", err))
	}
	return SuccessResponse(c, http.StatusOK, map[string]interface{}{
		"database": "UP",
	})
}

// HealthRedis returns Asynq/Redis connectivity health by probing the job
// inspector for a task id that will never exist. A "task not found" result
// proves the inspector reached Redis; any other error means it didn't.
func (h *Handlers) HealthRedis(c echo.Context) error {
	_, err := h.scheduler.GetTaskInfo("default", "healthcheck-probe")
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		return ErrorResponse(c, http.StatusServiceUnavailable, fmt.Sprintf("redis unhealthy: %v", err))
	}
	return SuccessResponse(c, http.StatusOK, map[string]interface{}{
		"redis": "UP",
	})
}
