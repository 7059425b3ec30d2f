package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// CacheInvalidator descarta los reportes cacheados de una compañía.
// Lo implementa ports.ReportCache; aquí basta con este método.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}

// ProductUseCase casos de uso CRUD para productos. Stock solo cambia vía compras y ventas.
// Toda escritura invalida los reportes de la compañía (conteos, stock y valor de inventario).
type ProductUseCase struct {
	repo   repository.ProductRepository
	tenant *TenantResolver
	cache  CacheInvalidator
	log    *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, tenant *TenantResolver, cache CacheInvalidator, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, tenant: tenant, cache: cache, log: log.Named("products")}
}

func (uc *ProductUseCase) invalidate(ctx context.Context, companyID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la cache de reportes")
	}
}

// Create crea un producto en la compañía del usuario.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID ErrNotFound si no existe, ErrForbidden si es de otra compañía.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.scoped(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// List lista productos de la compañía con paginación y búsqueda por nombre.
func (uc *ProductUseCase) List(ctx context.Context, userID, search string, limit, offset int) (*dto.ProductListResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.ListByCompany(ctx, companyID, repository.ProductFilter{
		Search: strings.TrimSpace(search),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Update actualiza nombre, descripción o precio. Stock no es editable.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.scoped(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, product.CompanyID)
	out := dto.FromProduct(product)
	return &out, nil
}

// Delete elimina el producto (sus ventas y compras caen en cascada).
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	product, err := uc.scoped(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, product.CompanyID)
	return nil
}

func (uc *ProductUseCase) scoped(ctx context.Context, userID, id string) (*entity.Product, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}
