package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Search string
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta al stock del producto.
	AdjustStock(ctx context.Context, id string, delta int) error
	ListByCompany(ctx context.Context, companyID string, f ProductFilter) ([]*entity.Product, int, error)
	ListAllByCompany(ctx context.Context, companyID string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
