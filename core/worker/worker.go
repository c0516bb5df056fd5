package worker

import (
	"context"

	"gclub-api/core/logger"

	"github.com/hibiken/asynq"
)

// Worker runs periodic background tasks. Sweep code registers a task type
// with a cron spec and a handler; what triggers the task (asynq on redis
// here) stays invisible to the registrant.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func New(redisOpt asynq.RedisClientOpt) *Worker {
	return &Worker{
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: 2,
		}),
		scheduler: asynq.NewScheduler(redisOpt, nil),
		mux:       asynq.NewServeMux(),
	}
}

// RegisterPeriodic schedules handler to run on the given cron spec
// ("@every 1m" or standard cron syntax).
func (w *Worker) RegisterPeriodic(taskType, cronSpec string, handler func(ctx context.Context) error) error {
	w.mux.HandleFunc(taskType, func(ctx context.Context, _ *asynq.Task) error {
		return handler(ctx)
	})

	entryID, err := w.scheduler.Register(cronSpec, asynq.NewTask(taskType, nil))
	if err != nil {
		logger.Error("Worker:RegisterPeriodic", "task", taskType, "error", err)
		return err
	}
	logger.Info("Worker:RegisterPeriodic", "task", taskType, "cron", cronSpec, "entry", entryID)
	return nil
}

func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	return w.scheduler.Start()
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}
