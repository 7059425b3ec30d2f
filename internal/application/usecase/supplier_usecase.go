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
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo   repository.SupplierRepository
	tenant *TenantResolver
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, tenant *TenantResolver) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, tenant: tenant}
}

func (uc *SupplierUseCase) Create(ctx context.Context, userID string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, userID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.scoped(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

func (uc *SupplierUseCase) List(ctx context.Context, userID string, limit, offset int) (*dto.SupplierListResponse, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromSupplier(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, userID, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.scoped(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.Name = strings.TrimSpace(in.Name)
	s.Email = in.Email
	s.Phone = in.Phone
	s.Address = in.Address
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.scoped(ctx, userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SupplierUseCase) scoped(ctx context.Context, userID, id string) (*entity.Supplier, error) {
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
