package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo permisos directos (user_permissions) y por rol (role_permissions).
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// HasPermission revisa primero los permisos directos y luego los del rol del usuario.
func (r *PermissionRepo) HasPermission(ctx context.Context, userID, codename string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_permissions up
			JOIN permissions p ON p.id = up.permission_id
			WHERE up.user_id = $1 AND p.codename = $2
		) OR EXISTS (
			SELECT 1 FROM users u
			JOIN role_permissions rp ON rp.role_id = u.role_id
			JOIN permissions p ON p.id = rp.permission_id
			WHERE u.id = $1 AND p.codename = $2
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, userID, codename).Scan(&ok); err != nil {
		return false, fmt.Errorf("has permission: %w", err)
	}
	return ok, nil
}

// ListForUser permisos efectivos del usuario.
func (r *PermissionRepo) ListForUser(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT p.codename FROM user_permissions up
		JOIN permissions p ON p.id = up.permission_id
		WHERE up.user_id = $1
		UNION
		SELECT p.codename FROM users u
		JOIN role_permissions rp ON rp.role_id = u.role_id
		JOIN permissions p ON p.id = rp.permission_id
		WHERE u.id = $1
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// GrantToUser agrega permisos directos; los ya asignados se ignoran.
func (r *PermissionRepo) GrantToUser(ctx context.Context, userID string, codenames []string) error {
	if len(codenames) == 0 {
		return nil
	}
	query := `
		INSERT INTO user_permissions (user_id, permission_id)
		SELECT $1, id FROM permissions WHERE codename = ANY($2)
		ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, query, userID, codenames); err != nil {
		return fmt.Errorf("grant permissions: %w", err)
	}
	return nil
}

// ReplaceUserPermissions borra los permisos directos y asigna el nuevo conjunto.
// Debe ejecutarse dentro de una tx para que el reemplazo sea atómico.
func (r *PermissionRepo) ReplaceUserPermissions(ctx context.Context, userID string, codenames []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_permissions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear permissions: %w", err)
	}
	return r.GrantToUser(ctx, userID, codenames)
}

// EnsureCatalog upsert del catálogo, creación de roles y asignación de permisos por rol.
func (r *PermissionRepo) EnsureCatalog(ctx context.Context, catalog []entity.Permission, rolePerms map[string][]string) error {
	for _, p := range catalog {
		_, err := r.q.Exec(ctx, `
			INSERT INTO permissions (id, codename, name, resource) VALUES ($1, $2, $3, $4)
			ON CONFLICT (codename) DO UPDATE SET name = EXCLUDED.name, resource = EXCLUDED.resource`,
			uuid.New().String(), p.Codename, p.Name, p.Resource,
		)
		if err != nil {
			return fmt.Errorf("upsert permission %s: %w", p.Codename, err)
		}
	}
	for role, codes := range rolePerms {
		_, err := r.q.Exec(ctx,
			`INSERT INTO roles (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			uuid.New().String(), role,
		)
		if err != nil {
			return fmt.Errorf("ensure role %s: %w", role, err)
		}
		_, err = r.q.Exec(ctx, `
			INSERT INTO role_permissions (role_id, permission_id)
			SELECT r.id, p.id FROM roles r, permissions p
			WHERE r.name = $1 AND p.codename = ANY($2)
			ON CONFLICT DO NOTHING`, role, codes)
		if err != nil {
			return fmt.Errorf("grant role %s: %w", role, err)
		}
	}
	return nil
}
