package usecase

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TenantResolver resuelve la compañía sobre la que opera un usuario.
type TenantResolver struct {
	companyRepo repository.CompanyRepository
}

// NewTenantResolver construye el resolver.
func NewTenantResolver(companyRepo repository.CompanyRepository) *TenantResolver {
	return &TenantResolver{companyRepo: companyRepo}
}

// CompanyOf compañía propia o, si no tiene, la compañía donde trabaja. ErrNoCompany si ninguna.
func (t *TenantResolver) CompanyOf(ctx context.Context, userID string) (*entity.Company, error) {
	company, err := t.companyRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNoCompany
	}
	return company, nil
}

// CompanyIDOf atajo de CompanyOf que devuelve solo el ID.
func (t *TenantResolver) CompanyIDOf(ctx context.Context, userID string) (string, error) {
	company, err := t.CompanyOf(ctx, userID)
	if err != nil {
		return "", err
	}
	return company.ID, nil
}
