// Package queue encola y procesa las tareas en segundo plano con asynq sobre Redis.
package queue

import "github.com/hibiken/asynq"

// Tipos de tarea.
const (
	TypeTrainModel  = "prediction:train"
	TypeRetrainAll  = "prediction:retrain_all"
	QueuePrediction = "prediction"
)

// RedisOpt opciones de conexión compartidas por cliente, servidor y scheduler.
func RedisOpt(addr, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: addr, Password: password, DB: db}
}
