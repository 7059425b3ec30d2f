package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// PermissionRepository permisos por usuario y por rol.
type PermissionRepository interface {
	// HasPermission: permiso directo del usuario o, si no, del rol del usuario.
	HasPermission(ctx context.Context, userID, codename string) (bool, error)
	// ListForUser permisos efectivos (directos ∪ rol), ordenados por codename.
	ListForUser(ctx context.Context, userID string) ([]string, error)
	// GrantToUser agrega permisos directos (idempotente). Ignora codenames inexistentes.
	GrantToUser(ctx context.Context, userID string, codenames []string) error
	// ReplaceUserPermissions reemplaza el conjunto de permisos directos.
	ReplaceUserPermissions(ctx context.Context, userID string, codenames []string) error
	// EnsureCatalog crea los permisos y roles faltantes y asigna los permisos de cada rol.
	EnsureCatalog(ctx context.Context, catalog []entity.Permission, rolePerms map[string][]string) error
}
