package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// PurchaseUseCase registra compras: cada escritura ajusta el stock en la misma transacción.
type PurchaseUseCase struct {
	movements
	repo repository.PurchaseRepository
}

// NewPurchaseUseCase construye el caso de uso. cache puede ser nil.
func NewPurchaseUseCase(
	tx TxRunner,
	repo repository.PurchaseRepository,
	tenant *usecase.TenantResolver,
	cache CacheInvalidator,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		movements: movements{tx: tx, tenant: tenant, cache: cache, log: log.Named("purchases")},
		repo:      repo,
	}
}

// Create suma la cantidad comprada al stock del producto.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Purchase{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ProductID: in.ProductID,
		Supplier:  in.Supplier,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Date != nil {
		p.Date = *in.Date
	}
	p.ComputeTotal()

	err = uc.tx.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository, purchaseRepo repository.PurchaseRepository) error {
		changes := []inventory.StockChange{{ProductID: p.ProductID, Delta: p.StockEffect()}}
		if err := applyStock(ctx, productRepo, companyID, changes); err != nil {
			return err
		}
		return purchaseRepo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return uc.reload(ctx, p.ID)
}

func (uc *PurchaseUseCase) GetByID(ctx context.Context, userID, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.scoped(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromPurchase(p)
	return &out, nil
}

func (uc *PurchaseUseCase) List(ctx context.Context, userID string, limit, offset int) (*dto.PurchaseListResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromPurchase(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Update recalcula total_cost y rebalancea el stock (también si cambia el producto).
// El efecto anterior se toma de la fila releída con bloqueo dentro de la transacción.
func (uc *PurchaseUseCase) Update(ctx context.Context, userID, id string, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository, purchaseRepo repository.PurchaseRepository) error {
		p, err := lockPurchase(ctx, purchaseRepo, companyID, id)
		if err != nil {
			return err
		}
		oldProductID, oldEffect := p.ProductID, p.StockEffect()

		p.ProductID = in.ProductID
		p.Supplier = in.Supplier
		p.Quantity = in.Quantity
		p.UnitCost = in.UnitCost
		if in.Date != nil {
			p.Date = *in.Date
		}
		p.UpdatedAt = time.Now()
		p.ComputeTotal()

		changes := inventory.Rebalance(oldProductID, oldEffect, p.ProductID, p.StockEffect())
		if err := applyStock(ctx, productRepo, companyID, changes); err != nil {
			return err
		}
		return purchaseRepo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return uc.reload(ctx, id)
}

// Delete revierte el efecto de la compra en el stock.
func (uc *PurchaseUseCase) Delete(ctx context.Context, userID, id string) error {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return err
	}
	err = uc.tx.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository, purchaseRepo repository.PurchaseRepository) error {
		p, err := lockPurchase(ctx, purchaseRepo, companyID, id)
		if err != nil {
			return err
		}
		changes := inventory.Rebalance(p.ProductID, p.StockEffect(), "", 0)
		if err := applyStock(ctx, productRepo, companyID, changes); err != nil {
			return err
		}
		return purchaseRepo.Delete(ctx, p.ID)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

func lockPurchase(ctx context.Context, purchaseRepo repository.PurchaseRepository, companyID, id string) (*entity.Purchase, error) {
	p, err := purchaseRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Statistics total y promedio de las compras de la compañía.
func (uc *PurchaseUseCase) Statistics(ctx context.Context, userID string) (*dto.PurchaseStatisticsResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, avg, err := uc.repo.Statistics(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.PurchaseStatisticsResponse{TotalPurchases: total, AveragePurchase: avg}, nil
}

func (uc *PurchaseUseCase) scoped(ctx context.Context, userID, id string) (*entity.Purchase, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// reload relee la compra para devolver el nombre del producto.
func (uc *PurchaseUseCase) reload(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromPurchase(p)
	return &out, nil
}
