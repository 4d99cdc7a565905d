package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// JobScheduler manages reflow job enqueueing to Asynq.
type JobScheduler struct {
	client    *asynq.Client
	db        repository.Database
	redisAddr string
}

// NewJobScheduler creates a new job scheduler bound to redisAddr and the
// repositories used to seed and persist reflow runs.
func NewJobScheduler(redisAddr string, db repository.Database) (*JobScheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &JobScheduler{client: client, db: db, redisAddr: redisAddr}, nil
}

// TypeReflow is the Asynq task type for an asynchronous reflow invocation.
const TypeReflow = "reflow:run"

// ReflowPayload is the Asynq task payload for a reflow job. It carries only
// the scope to reflow, not the loaded collections themselves — the handler
// reloads them fresh when the job runs, to reflect the latest persisted
// state rather than a stale snapshot taken at enqueue time.
type ReflowPayload struct {
	RunID         string   `json:"run_id"`
	WorkCenterIDs []string `json:"work_center_ids"`
}

// EnqueueReflow records a pending reflow run and queues it to be processed
// by HandleReflow against the given work center scope.
func (s *JobScheduler) EnqueueReflow(ctx context.Context, workCenterIDs []string) (*asynq.TaskInfo, error) {
	run := &entity.ReflowRun{
		ID:          uuid.NewString(),
		Status:      entity.ReflowRunPending,
		RequestedAt: entity.Now(),
	}
	if err := s.db.ReflowRunRepository().Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record reflow run: %w", err)
	}

	payload := ReflowPayload{RunID: run.ID, WorkCenterIDs: workCenterIDs}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeReflow, payloadBytes)

	info, err := s.client.EnqueueContext(ctx, task, asynq.TaskID(run.ID), asynq.MaxRetry(2), asynq.Timeout(2*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue reflow job: %w", err)
	}

	return info, nil
}

// Close closes the job scheduler and releases resources.
func (s *JobScheduler) Close() error {
	return s.client.Close()
}

// GetTaskInfo retrieves the current Asynq status of a previously enqueued
// reflow job by its run id.
func (s *JobScheduler) GetTaskInfo(queue, taskID string) (*asynq.TaskInfo, error) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: s.redisAddr})
	defer inspector.Close()

	return inspector.GetTaskInfo(queue, taskID)
}
