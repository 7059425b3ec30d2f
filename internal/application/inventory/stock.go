package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// movements dependencias comunes de compras y ventas.
type movements struct {
	tx     TxRunner
	tenant *usecase.TenantResolver
	cache  CacheInvalidator
	log    *logger.Logger
}

// applyStock bloquea cada producto (SELECT FOR UPDATE, en orden de ID para evitar
// interbloqueos), valida que pertenezca a la compañía y aplica el ajuste.
func applyStock(ctx context.Context, productRepo repository.ProductRepository, companyID string, changes []inventory.StockChange) error {
	sort.Slice(changes, func(i, j int) bool { return changes[i].ProductID < changes[j].ProductID })
	for _, ch := range changes {
		product, err := productRepo.GetForUpdate(ctx, ch.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if !inventory.CanApply(product.Stock, ch.Delta) {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.AdjustStock(ctx, ch.ProductID, ch.Delta); err != nil {
			return err
		}
	}
	return nil
}

// invalidate un fallo de cache no revierte el movimiento ya confirmado; solo se registra.
func (m *movements) invalidate(ctx context.Context, companyID string) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Invalidate(ctx, companyID); err != nil {
		m.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la cache de reportes")
	}
}
