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

// SaleUseCase registra ventas con bloqueo de fila sobre el producto (SELECT FOR UPDATE)
// y Commit/Rollback; una venta sin stock suficiente se rechaza con ErrInsufficientStock.
type SaleUseCase struct {
	movements
	repo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso. cache puede ser nil.
func NewSaleUseCase(
	tx TxRunner,
	repo repository.SaleRepository,
	tenant *usecase.TenantResolver,
	cache CacheInvalidator,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		movements: movements{tx: tx, tenant: tenant, cache: cache, log: log.Named("sales")},
		repo:      repo,
	}
}

// Create descuenta la cantidad vendida del stock del producto.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	s := NewSale(companyID, userID, in, time.Now())
	if err := uc.Record(ctx, s); err != nil {
		return nil, err
	}
	return uc.reload(ctx, s.ID)
}

// NewSale arma la venta con su total calculado.
func NewSale(companyID, soldBy string, in dto.SaleRequest, now time.Time) *entity.Sale {
	s := &entity.Sale{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ProductID: in.ProductID,
		Customer:  in.Customer,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if soldBy != "" {
		s.SoldBy = &soldBy
	}
	if in.Date != nil {
		s.Date = *in.Date
	}
	s.ComputeTotal()
	return s
}

// Record guarda una venta ya armada junto con su efecto en el stock (también lo usa el generador de ventas).
func (uc *SaleUseCase) Record(ctx context.Context, s *entity.Sale) error {
	err := uc.tx.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, _ repository.PurchaseRepository) error {
		changes := []inventory.StockChange{{ProductID: s.ProductID, Delta: s.StockEffect()}}
		if err := applyStock(ctx, productRepo, s.CompanyID, changes); err != nil {
			return err
		}
		return saleRepo.Create(ctx, s)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, s.CompanyID)
	return nil
}

func (uc *SaleUseCase) GetByID(ctx context.Context, userID, id string) (*dto.SaleResponse, error) {
	s, err := uc.scoped(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromSale(s)
	return &out, nil
}

func (uc *SaleUseCase) List(ctx context.Context, userID string, limit, offset int) (*dto.SaleListResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromSale(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Update recalcula total_price y rebalancea el stock (también si cambia el producto).
// El efecto anterior se toma de la fila releída con bloqueo dentro de la transacción.
func (uc *SaleUseCase) Update(ctx context.Context, userID, id string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, _ repository.PurchaseRepository) error {
		s, err := lockSale(ctx, saleRepo, companyID, id)
		if err != nil {
			return err
		}
		oldProductID, oldEffect := s.ProductID, s.StockEffect()

		s.ProductID = in.ProductID
		s.Customer = in.Customer
		s.Quantity = in.Quantity
		s.UnitPrice = in.UnitPrice
		if in.Date != nil {
			s.Date = *in.Date
		}
		s.UpdatedAt = time.Now()
		s.ComputeTotal()

		changes := inventory.Rebalance(oldProductID, oldEffect, s.ProductID, s.StockEffect())
		if err := applyStock(ctx, productRepo, companyID, changes); err != nil {
			return err
		}
		return saleRepo.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return uc.reload(ctx, id)
}

// Delete devuelve al stock las unidades vendidas.
func (uc *SaleUseCase) Delete(ctx context.Context, userID, id string) error {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return err
	}
	err = uc.tx.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, _ repository.PurchaseRepository) error {
		s, err := lockSale(ctx, saleRepo, companyID, id)
		if err != nil {
			return err
		}
		changes := inventory.Rebalance(s.ProductID, s.StockEffect(), "", 0)
		if err := applyStock(ctx, productRepo, companyID, changes); err != nil {
			return err
		}
		return saleRepo.Delete(ctx, s.ID)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

// lockSale bloquea la venta y verifica que sea de la compañía.
func lockSale(ctx context.Context, saleRepo repository.SaleRepository, companyID, id string) (*entity.Sale, error) {
	s, err := saleRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

func (uc *SaleUseCase) scoped(ctx context.Context, userID, id string) (*entity.Sale, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

func (uc *SaleUseCase) reload(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromSale(s)
	return &out, nil
}
