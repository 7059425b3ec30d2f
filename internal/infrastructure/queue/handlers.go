package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// Trainer lo implementa prediction.UseCase.
type Trainer interface {
	Train(ctx context.Context, req ports.TrainRequest) error
	RetrainAll(ctx context.Context) (int, error)
}

// Handlers procesa las tareas de predicción.
type Handlers struct {
	trainer Trainer
	log     *logger.Logger
}

// NewHandlers construye los handlers.
func NewHandlers(trainer Trainer, log *logger.Logger) *Handlers {
	return &Handlers{trainer: trainer, log: log.Named("worker")}
}

// Register asocia cada tipo de tarea con su handler.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeTrainModel, h.HandleTrain)
	mux.HandleFunc(TypeRetrainAll, h.HandleRetrainAll)
}

// HandleTrain entrena un modelo. Un payload ilegible no se reintenta.
func (h *Handlers) HandleTrain(ctx context.Context, t *asynq.Task) error {
	var req ports.TrainRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		return fmt.Errorf("payload inválido: %v: %w", err, asynq.SkipRetry)
	}
	h.log.Info().Str("company_id", req.CompanyID).Str("product_id", req.ProductID).Str("unit", req.TimeUnit).Msg("entrenando modelo")
	return h.trainer.Train(ctx, req)
}

// HandleRetrainAll reentrenamiento diario de todas las compañías con ventas.
func (h *Handlers) HandleRetrainAll(ctx context.Context, _ *asynq.Task) error {
	n, err := h.trainer.RetrainAll(ctx)
	if err != nil {
		return err
	}
	h.log.Info().Int("trained", n).Msg("reentrenamiento programado terminado")
	return nil
}
