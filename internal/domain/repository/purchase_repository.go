package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para Purchase.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	Update(ctx context.Context, purchase *entity.Purchase) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Purchase, int, error)
	Delete(ctx context.Context, id string) error
	// Statistics suma y promedio de total_cost de la compañía (cero si no hay compras).
	Statistics(ctx context.Context, companyID string) (total, average decimal.Decimal, err error)
}
