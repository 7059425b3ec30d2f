package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByDocument(ctx context.Context, documentNumber string) (*entity.User, error)
	// SetRoleAndCompany asigna rol (por nombre) y compañía; companyID vacío conserva la actual.
	SetRoleAndCompany(ctx context.Context, userID, roleName, companyID string) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
	ListAll(ctx context.Context) ([]*entity.User, error)
}
