package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `
	u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone_number, COALESCE(u.document_number, ''),
	u.role_id, COALESCE(r.name, ''), u.company_id, u.is_active, u.date_joined, u.updated_at`

const userFrom = ` FROM users u LEFT JOIN roles r ON r.id = u.role_id`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.DocumentNumber,
		&u.RoleID, &u.RoleName, &u.CompanyID, &u.IsActive, &u.DateJoined, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario. Documento vacío se guarda como NULL (empleados sin documento).
// Email o documento repetido -> ErrEmailAlreadyExists / ErrDocumentExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone_number, document_number,
			role_id, company_id, is_active, date_joined, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.PhoneNumber,
		user.DocumentNumber, user.RoleID, user.CompanyID, user.IsActive, user.DateJoined, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if violatedConstraint(err) == "users_document_number_key" {
				return domain.ErrDocumentExists
			}
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID con el nombre de su rol.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT`+userColumns+userFrom+` WHERE u.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT`+userColumns+userFrom+` WHERE lower(u.email) = lower($1)`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetByDocument obtiene un usuario por número de documento.
func (r *UserRepo) GetByDocument(ctx context.Context, documentNumber string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT`+userColumns+userFrom+` WHERE u.document_number = $1`, documentNumber))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by document: %w", err)
	}
	return u, nil
}

// SetRoleAndCompany asigna el rol por nombre y, si companyID no está vacío, la compañía.
func (r *UserRepo) SetRoleAndCompany(ctx context.Context, userID, roleName, companyID string) error {
	query := `
		UPDATE users SET
			role_id = (SELECT id FROM roles WHERE name = $2),
			company_id = COALESCE($3::uuid, company_id),
			updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, userID, roleName, nullIfEmpty(companyID))
	if err != nil {
		return fmt.Errorf("set user role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany empleados (y dueño si tiene company_id) de una compañía.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	return r.list(ctx, `SELECT`+userColumns+userFrom+` WHERE u.company_id = $1 ORDER BY u.date_joined`, companyID)
}

// ListAll todos los usuarios (CLI).
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	return r.list(ctx, `SELECT`+userColumns+userFrom+` ORDER BY u.email`)
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
