package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `c.id, c.owner_id, c.name, c.description, c.address, c.phone, c.email, c.logo_url, c.created_at, c.updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Address, &c.Phone, &c.Email,
		&c.LogoURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, owner_id, name, description, address, phone, email, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.OwnerID, company.Name, company.Description, company.Address,
		company.Phone, company.Email, company.LogoURL, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByUser la compañía propia tiene prioridad sobre la compañía donde el usuario es empleado.
func (r *CompanyRepo) GetByUser(ctx context.Context, userID string) (*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + ` FROM companies c
		WHERE c.owner_id = $1
		   OR c.id = (SELECT company_id FROM users WHERE id = $1)
		ORDER BY (c.owner_id = $1) DESC, c.created_at
		LIMIT 1`
	c, err := scanCompany(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by user: %w", err)
	}
	return c, nil
}

// ListByUser compañías propias o donde trabaja el usuario.
func (r *CompanyRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + ` FROM companies c
		WHERE c.owner_id = $1
		   OR c.id = (SELECT company_id FROM users WHERE id = $1)
		ORDER BY c.created_at`
	return r.list(ctx, query, userID)
}

// Update actualiza los datos editables (no owner ni logo).
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, description = $3, address = $4, phone = $5, email = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Description, company.Address, company.Phone, company.Email, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLogo guarda la URL pública del logo.
func (r *CompanyRepo) UpdateLogo(ctx context.Context, id, logoURL string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE companies SET logo_url = $2, updated_at = now() WHERE id = $1`, id, logoURL)
	if err != nil {
		return fmt.Errorf("update company logo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la empresa; productos, ventas y compras caen en cascada.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

// ListWithSales compañías con al menos una venta registrada.
func (r *CompanyRepo) ListWithSales(ctx context.Context) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + ` FROM companies c
		WHERE EXISTS (SELECT 1 FROM sales s WHERE s.company_id = c.id)
		ORDER BY c.created_at`
	return r.list(ctx, query)
}

// ListSummaries todas las compañías con su número de productos.
func (r *CompanyRepo) ListSummaries(ctx context.Context) ([]repository.CompanySummary, error) {
	query := `
		SELECT ` + companyColumns + `, (SELECT count(*) FROM products p WHERE p.company_id = c.id)
		FROM companies c ORDER BY c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list company summaries: %w", err)
	}
	defer rows.Close()
	var out []repository.CompanySummary
	for rows.Next() {
		var s repository.CompanySummary
		c := &s.Company
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Address, &c.Phone, &c.Email,
			&c.LogoURL, &c.CreatedAt, &c.UpdatedAt, &s.ProductsCount); err != nil {
			return nil, fmt.Errorf("scan company summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CompanyRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
