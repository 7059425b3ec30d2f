package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// PermissionService verifica los permisos de un usuario.
// Es el único punto de la aplicación que conoce la precedencia usuario → rol.
type PermissionService struct {
	permRepo repository.PermissionRepository
}

// NewPermissionService construye el servicio de permisos.
func NewPermissionService(permRepo repository.PermissionRepository) *PermissionService {
	return &PermissionService{permRepo: permRepo}
}

// HasPermission informa si el usuario tiene el permiso (directo o vía su rol).
// Devuelve false (sin error) si no lo tiene; error solo ante fallos de infraestructura.
func (s *PermissionService) HasPermission(ctx context.Context, userID, codename string) (bool, error) {
	if userID == "" || codename == "" {
		return false, fmt.Errorf("permission: userID y codename son obligatorios")
	}
	return s.permRepo.HasPermission(ctx, userID, codename)
}

// SetupCatalog siembra el catálogo y asigna los permisos de cada rol (idempotente).
func (s *PermissionService) SetupCatalog(ctx context.Context) error {
	roles := map[string][]string{
		entity.RoleEntrepreneur: entity.RolePermissions(entity.RoleEntrepreneur),
		entity.RoleEmployee:     entity.RolePermissions(entity.RoleEmployee),
	}
	return s.permRepo.EnsureCatalog(ctx, entity.PermissionCatalog, roles)
}
