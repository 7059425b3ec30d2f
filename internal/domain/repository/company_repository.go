package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByUser compañía propia del usuario o, si no tiene, la compañía donde trabaja.
	GetByUser(ctx context.Context, userID string) (*entity.Company, error)
	// ListByUser compañías propias o donde el usuario trabaja.
	ListByUser(ctx context.Context, userID string) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	UpdateLogo(ctx context.Context, id, logoURL string) error
	Delete(ctx context.Context, id string) error
	// ListWithSales compañías con al menos una venta (reentrenamiento programado).
	ListWithSales(ctx context.Context) ([]*entity.Company, error)
	// ListSummaries compañías con su conteo de productos (CLI).
	ListSummaries(ctx context.Context) ([]CompanySummary, error)
}

// CompanySummary compañía con su número de productos.
type CompanySummary struct {
	Company       entity.Company
	ProductsCount int
}
