package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/metrics"
	"github.com/naologic/reflow/internal/reflow"
	"github.com/naologic/reflow/internal/repository"
)

// JobHandlers executes reflow jobs dequeued by an Asynq server.
type JobHandlers struct {
	db      repository.Database
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewJobHandlers creates a new job handlers instance.
func NewJobHandlers(db repository.Database, m *metrics.Metrics, logger *zap.Logger) *JobHandlers {
	return &JobHandlers{db: db, metrics: m, logger: logger}
}

// RegisterHandlers registers all job handlers with the Asynq mux.
func (h *JobHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeReflow, h.HandleReflow)
}

// HandleReflow reloads the current work orders/centers/manufacturing orders
// for a job's scope, runs the core reflow pipeline, and persists the
// revised work orders and the run's outcome. A retried job re-invokes
// reflow fresh rather than resuming partial work, consistent with the
// core's statelessness.
func (h *JobHandlers) HandleReflow(ctx context.Context, t *asynq.Task) error {
	var payload ReflowPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	run, err := h.db.ReflowRunRepository().GetByID(ctx, payload.RunID)
	if err != nil {
		return fmt.Errorf("reflow run %s not found: %w", payload.RunID, err)
	}
	run.Status = entity.ReflowRunRunning
	if err := h.db.ReflowRunRepository().Update(ctx, run); err != nil {
		h.logger.Warn("failed to mark reflow run running", zap.String("run_id", run.ID), zap.Error(err))
	}

	workOrders, centers, manufacturingOrders, err := loadScope(ctx, h.db, payload.WorkCenterIDs)
	if err != nil {
		h.failRun(ctx, run, err)
		h.metrics.ObserveJob("failure")
		return fmt.Errorf("failed to load reflow scope: %w", err)
	}

	start := time.Now()
	result := reflow.Reflow(workOrders, centers, manufacturingOrders)
	elapsed := time.Since(start)

	h.logger.Info("reflow job completed",
		zap.String("run_id", run.ID),
		zap.Int("work_order_count", len(workOrders)),
		zap.Int("changed_count", len(result.Changes)),
		zap.Bool("infeasible", result.Infeasible),
		zap.Duration("elapsed", elapsed),
	)
	h.metrics.ObserveResult(elapsed.Seconds(), result.Infeasible, len(result.Changes))

	for _, wo := range result.WorkOrders {
		if err := h.db.WorkOrderRepository().Update(ctx, wo); err != nil {
			h.failRun(ctx, run, err)
			h.metrics.ObserveJob("failure")
			return fmt.Errorf("failed to persist revised work order %s: %w", wo.ID, err)
		}
	}

	run.Status = entity.ReflowRunCompleted
	run.CompletedAt = entity.Now()
	run.Result = &result
	if err := h.db.ReflowRunRepository().Update(ctx, run); err != nil {
		h.metrics.ObserveJob("failure")
		return fmt.Errorf("failed to persist reflow run outcome: %w", err)
	}

	h.metrics.ObserveJob("success")
	return nil
}

func (h *JobHandlers) failRun(ctx context.Context, run *entity.ReflowRun, cause error) {
	run.Status = entity.ReflowRunFailed
	run.CompletedAt = entity.Now()
	run.Error = cause.Error()
	if err := h.db.ReflowRunRepository().Update(ctx, run); err != nil {
		h.logger.Error("failed to persist failed reflow run", zap.String("run_id", run.ID), zap.Error(err))
	}
}
