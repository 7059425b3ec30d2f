package prediction

import (
	"context"
	"errors"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/forecast"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// UseCase expone el predictor a la API y al worker.
type UseCase struct {
	predictor   *Predictor
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	tenant      *usecase.TenantResolver
	queue       ports.TaskQueue // nil si no hay Redis
	log         *logger.Logger
}

// NewUseCase construye el caso de uso. queue puede ser nil.
func NewUseCase(
	predictor *Predictor,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	tenant *usecase.TenantResolver,
	queue ports.TaskQueue,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		predictor:   predictor,
		productRepo: productRepo,
		companyRepo: companyRepo,
		tenant:      tenant,
		queue:       queue,
		log:         log.Named("prediction"),
	}
}

// Predict predicción de ventas de la compañía del usuario (o de uno de sus productos).
func (uc *UseCase) Predict(ctx context.Context, userID string, in dto.PredictRequest) (*dto.PredictResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	key := ModelKey{CompanyID: companyID, ProductID: in.ProductID, TimeUnit: in.TimeUnit}

	var productName string
	var price float64
	if in.ProductID != "" {
		product, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		productName = product.Name
		price = product.Price.InexactFloat64()
	}

	forecasts, err := uc.predictor.PredictFutureSales(ctx, key, in.DaysAhead, in.DaysHistory)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PredictionPoint, 0, len(forecasts))
	for _, f := range forecasts {
		pt := dto.PredictionPoint{Date: f.Date.Format("2006-01-02"), PredictedQuantity: f.Quantity}
		if in.ProductID != "" {
			sales := forecast.Round2(f.Quantity * price)
			pt.ProductID = in.ProductID
			pt.ProductName = productName
			pt.PredictedSales = &sales
		}
		out = append(out, pt)
	}
	return &dto.PredictResponse{Predictions: out}, nil
}

// EnqueueTrain encola un reentrenamiento para el worker. ErrUnavailable si no hay cola.
func (uc *UseCase) EnqueueTrain(ctx context.Context, userID string, in dto.PredictRequest) (*dto.TrainQueuedResponse, error) {
	if uc.queue == nil {
		return nil, domain.ErrUnavailable
	}
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.ProductID != "" {
		product, err := uc.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}
	taskID, err := uc.queue.EnqueueTrain(ctx, ports.TrainRequest{
		CompanyID:   companyID,
		ProductID:   in.ProductID,
		TimeUnit:    in.TimeUnit,
		DaysHistory: in.DaysHistory,
	})
	if err != nil {
		return nil, err
	}
	return &dto.TrainQueuedResponse{Message: "Entrenamiento encolado", TaskID: taskID}, nil
}

// Train entrena el modelo indicado (tarea del worker). Datos insuficientes no es un error de la tarea.
func (uc *UseCase) Train(ctx context.Context, req ports.TrainRequest) error {
	if !forecast.ValidUnit(req.TimeUnit) {
		return domain.ErrInvalidInput
	}
	if req.DaysHistory <= 0 {
		req.DaysHistory = dto.DefaultDaysHistory
	}
	key := ModelKey{CompanyID: req.CompanyID, ProductID: req.ProductID, TimeUnit: req.TimeUnit}
	_, err := uc.predictor.Train(ctx, key, req.DaysHistory)
	if errors.Is(err, forecast.ErrTooFewPoints) {
		uc.log.Warn().Str("model", key.String()).Msg("datos insuficientes, no se entrena")
		return nil
	}
	return err
}

// RetrainAll reentrena el modelo diario de cada compañía con ventas. Devuelve cuántos se entrenaron.
// Un fallo en una compañía no detiene a las demás.
func (uc *UseCase) RetrainAll(ctx context.Context) (int, error) {
	companies, err := uc.companyRepo.ListWithSales(ctx)
	if err != nil {
		return 0, err
	}
	trained := 0
	for _, c := range companies {
		if ctx.Err() != nil {
			return trained, ctx.Err()
		}
		key := ModelKey{CompanyID: c.ID, TimeUnit: forecast.UnitDay}
		if _, err := uc.predictor.Train(ctx, key, dto.DefaultDaysHistory); err != nil {
			uc.log.Warn().Err(err).Str("company_id", c.ID).Msg("reentrenamiento fallido")
			continue
		}
		trained++
	}
	uc.log.Info().Int("companies", len(companies)).Int("trained", trained).Msg("reentrenamiento diario terminado")
	return trained, nil
}
