package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleSelect = `
	SELECT s.id, s.company_id, s.product_id, p.name, s.customer, s.quantity, s.unit_price, s.total_price,
		s.date, s.sold_by, s.created_at, s.updated_at
	FROM sales s JOIN products p ON p.id = s.product_id`

func scanSale(row interface{ Scan(...any) error }) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.CompanyID, &s.ProductID, &s.ProductName, &s.Customer, &s.Quantity,
		&s.UnitPrice, &s.TotalPrice, &s.Date, &s.SoldBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, company_id, product_id, customer, quantity, unit_price, total_price, date, sold_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.CompanyID, s.ProductID, s.Customer, s.Quantity, s.UnitPrice, s.TotalPrice, s.Date, s.SoldBy,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, saleSelect+` WHERE s.id = $1`, id)
}

// GetForUpdate bloquea solo la fila de la venta; el producto se bloquea aparte al ajustar el stock.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, saleSelect+` WHERE s.id = $1 FOR UPDATE OF s`, id)
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales SET product_id = $2, customer = $3, quantity = $4, unit_price = $5, total_price = $6,
			date = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.ProductID, s.Customer, s.Quantity, s.UnitPrice, s.TotalPrice, s.Date, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany ventas de la empresa, más recientes primero.
func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}
	list, err := querySales(ctx, r.q,
		saleSelect+` WHERE s.company_id = $1 ORDER BY s.date DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SeriesByPeriod date_trunc('week') de PostgreSQL empieza en lunes (ISO).
func (r *SaleRepo) SeriesByPeriod(ctx context.Context, q repository.SalesSeriesQuery) ([]repository.SalesPeriod, error) {
	switch q.TimeUnit {
	case "day", "week", "month":
	default:
		return nil, domain.ErrInvalidInput
	}
	query := `
		SELECT date_trunc($2, s.date) AS period, SUM(s.quantity), SUM(s.total_price)::float8
		FROM sales s
		WHERE s.company_id = $1 AND s.date >= $3 AND ($4 = '' OR s.product_id::text = $4)
		GROUP BY period
		ORDER BY period`
	rows, err := r.q.Query(ctx, query, q.CompanyID, q.TimeUnit, q.Since, q.ProductID)
	if err != nil {
		return nil, fmt.Errorf("sales series: %w", err)
	}
	defer rows.Close()
	var out []repository.SalesPeriod
	for rows.Next() {
		var p repository.SalesPeriod
		if err := rows.Scan(&p.Period, &p.Quantity, &p.Total); err != nil {
			return nil, fmt.Errorf("scan sales period: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func querySales(ctx context.Context, q Querier, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
