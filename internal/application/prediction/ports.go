package prediction

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain/forecast"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ModelKey identifica un modelo: compañía, producto opcional y unidad de tiempo.
type ModelKey struct {
	CompanyID string
	ProductID string // vacío = modelo de toda la compañía
	TimeUnit  string
}

// String nombre estable del modelo: company_{id}[_product_{pid}]_{unit}.
func (k ModelKey) String() string {
	if k.ProductID != "" {
		return fmt.Sprintf("company_%s_product_%s_%s", k.CompanyID, k.ProductID, k.TimeUnit)
	}
	return fmt.Sprintf("company_%s_%s", k.CompanyID, k.TimeUnit)
}

// ModelStore persistencia de modelos entrenados.
// Load devuelve domain.ErrModelStale si el modelo no existe o no se puede leer.
type ModelStore interface {
	Load(ctx context.Context, key ModelKey) (*forecast.Model, error)
	Save(ctx context.Context, key ModelKey, m *forecast.Model) error
}

// SalesSeries fuente del histórico agregado (lo implementa SaleRepository).
type SalesSeries interface {
	SeriesByPeriod(ctx context.Context, q repository.SalesSeriesQuery) ([]repository.SalesPeriod, error)
}
