package queue

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/ventas-api/pkg/logger"
)

// NewServer servidor asynq que consume la cola de predicción.
func NewServer(opt asynq.RedisClientOpt, concurrency int, log *logger.Logger) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 4
	}
	l := log.Named("worker")
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueuePrediction: 10,
			"default":       1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			l.Error().Err(err).Str("task", task.Type()).Msg("tarea fallida")
		}),
		ShutdownTimeout: 30 * time.Second,
	})
}

// NewScheduler programa el reentrenamiento diario con la expresión cron indicada.
func NewScheduler(opt asynq.RedisClientOpt, cronspec string) (*asynq.Scheduler, error) {
	s := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: time.UTC,
		LogLevel: asynq.WarnLevel,
	})
	_, err := s.Register(cronspec, asynq.NewTask(TypeRetrainAll, nil),
		asynq.Queue(QueuePrediction),
		asynq.MaxRetry(1),
		asynq.Timeout(30*time.Minute),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
