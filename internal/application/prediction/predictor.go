package prediction

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/ventas-api/internal/domain/forecast"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// MaxModelAge antigüedad a partir de la cual un modelo se reentrena.
const MaxModelAge = 24 * time.Hour

// Forecast predicción de un día.
type Forecast struct {
	Date     time.Time
	Quantity float64
}

// Predictor entrena, persiste y consulta modelos de ventas por compañía/producto/unidad.
// Las peticiones concurrentes sobre la misma clave comparten un único entrenamiento.
type Predictor struct {
	sales SalesSeries
	store ModelStore
	log   *logger.Logger
	group singleflight.Group
	now   func() time.Time
}

// NewPredictor construye el predictor.
func NewPredictor(sales SalesSeries, store ModelStore, log *logger.Logger) *Predictor {
	return &Predictor{sales: sales, store: store, log: log.Named("prediction"), now: time.Now}
}

// Train entrena con las ventas de los últimos daysHistory días y guarda el modelo.
// Devuelve forecast.ErrTooFewPoints si no hay suficientes períodos.
func (p *Predictor) Train(ctx context.Context, key ModelKey, daysHistory int) (*forecast.Model, error) {
	now := p.now()
	series, err := p.sales.SeriesByPeriod(ctx, repository.SalesSeriesQuery{
		CompanyID: key.CompanyID,
		ProductID: key.ProductID,
		Since:     now.AddDate(0, 0, -daysHistory),
		TimeUnit:  key.TimeUnit,
	})
	if err != nil {
		return nil, err
	}
	points := make([]forecast.Point, 0, len(series))
	for _, s := range series {
		points = append(points, forecast.Point{Period: s.Period, Quantity: float64(s.Quantity), Total: s.Total})
	}
	m, err := forecast.Train(points, key.TimeUnit, now)
	if err != nil {
		return nil, err
	}
	if err := p.store.Save(ctx, key, m); err != nil {
		return nil, err
	}
	p.log.Info().
		Str("model", key.String()).
		Int("points", m.Points).
		Msg("modelo de ventas entrenado")
	return m, nil
}

// Model devuelve el modelo guardado si está vigente; si no, lo entrena.
func (p *Predictor) Model(ctx context.Context, key ModelKey, daysHistory int) (*forecast.Model, error) {
	m, err := p.store.Load(ctx, key)
	if err == nil && m.IsFresh(p.now(), MaxModelAge) {
		return m, nil
	}
	if err != nil {
		p.log.Debug().Err(err).Str("model", key.String()).Msg("modelo no disponible, se reentrena")
	}
	// el entrenamiento es compartido: no depende de la cancelación de quien llegó primero
	shared := context.WithoutCancel(ctx)
	v, err, _ := p.group.Do(key.String(), func() (any, error) {
		return p.Train(shared, key, daysHistory)
	})
	if err != nil {
		return nil, err
	}
	return v.(*forecast.Model), nil
}

// PredictFutureSales predicción diaria para los próximos daysAhead días.
// Sin datos suficientes para entrenar devuelve una lista vacía (no es un error).
func (p *Predictor) PredictFutureSales(ctx context.Context, key ModelKey, daysAhead, daysHistory int) ([]Forecast, error) {
	m, err := p.Model(ctx, key, daysHistory)
	if errors.Is(err, forecast.ErrTooFewPoints) {
		p.log.Warn().Str("model", key.String()).Msg("datos insuficientes para predecir")
		return []Forecast{}, nil
	}
	if err != nil {
		return nil, err
	}
	dates := forecast.FutureDates(p.now(), daysAhead)
	qty := m.Forecast(dates)
	out := make([]Forecast, len(dates))
	for i := range dates {
		out[i] = Forecast{Date: dates[i], Quantity: qty[i]}
	}
	return out, nil
}
