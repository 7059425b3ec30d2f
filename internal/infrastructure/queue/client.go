package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/ventas-api/internal/application/ports"
)

var _ ports.TaskQueue = (*Client)(nil)

// Client encola tareas para el worker.
type Client struct {
	client *asynq.Client
}

// NewClient construye el cliente.
func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

// EnqueueTrain encola el entrenamiento de un modelo y devuelve el ID de la tarea.
func (c *Client) EnqueueTrain(ctx context.Context, req ports.TrainRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("queue: serializar tarea: %w", err)
	}
	task := asynq.NewTask(TypeTrainModel, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueuePrediction),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		return "", fmt.Errorf("queue: encolar %s: %w", TypeTrainModel, err)
	}
	return info.ID, nil
}

// Close libera la conexión a Redis.
func (c *Client) Close() error {
	return c.client.Close()
}
