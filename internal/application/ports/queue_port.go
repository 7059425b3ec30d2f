package ports

import "context"

// TrainRequest parámetros de un reentrenamiento en segundo plano.
type TrainRequest struct {
	CompanyID   string `json:"company_id"`
	ProductID   string `json:"product_id,omitempty"`
	TimeUnit    string `json:"time_unit"`
	DaysHistory int    `json:"days_history"`
}

// TaskQueue encola trabajos para el worker. Devuelve el ID de la tarea.
type TaskQueue interface {
	EnqueueTrain(ctx context.Context, req TrainRequest) (string, error)
}
