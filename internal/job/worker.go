package job

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/naologic/reflow/internal/metrics"
	"github.com/naologic/reflow/internal/repository"
)

// Worker runs an Asynq server that dequeues and processes reflow jobs.
type Worker struct {
	server   *asynq.Server
	handlers *JobHandlers
}

// NewWorker builds a worker bound to redisAddr with a single default queue,
// matching the concurrency and retry shape EnqueueReflow assumes.
func NewWorker(redisAddr string, db repository.Database, m *metrics.Metrics, logger *zap.Logger) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	return &Worker{
		server:   server,
		handlers: NewJobHandlers(db, m, logger),
	}
}

// Run starts the worker and blocks until it stops or errors.
func (w *Worker) Run() error {
	mux := asynq.NewServeMux()
	w.handlers.RegisterHandlers(mux)
	return w.server.Run(mux)
}
