package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SalesSeriesQuery parámetros de la serie histórica de ventas.
type SalesSeriesQuery struct {
	CompanyID string
	ProductID string // vacío = todas
	Since     time.Time
	TimeUnit  string // day | week | month
}

// SalesPeriod ventas agregadas de un período truncado.
type SalesPeriod struct {
	Period   time.Time
	Quantity int64
	Total    float64
}

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, int, error)
	Delete(ctx context.Context, id string) error
	// SeriesByPeriod agrega cantidad y total por período, ordenado por período.
	SeriesByPeriod(ctx context.Context, q SalesSeriesQuery) ([]SalesPeriod, error)
}
