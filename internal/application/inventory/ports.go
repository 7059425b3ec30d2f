package inventory

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el movimiento y su efecto en el stock se guarden juntos o no se guarden.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// CacheInvalidator el mismo contrato que usan los productos.
type CacheInvalidator = usecase.CacheInvalidator
