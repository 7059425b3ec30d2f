package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseSelect = `
	SELECT pu.id, pu.company_id, pu.product_id, p.name, pu.supplier, pu.quantity, pu.unit_cost, pu.total_cost,
		pu.date, pu.created_at, pu.updated_at
	FROM purchases pu JOIN products p ON p.id = pu.product_id`

func scanPurchase(row interface{ Scan(...any) error }) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.CompanyID, &p.ProductID, &p.ProductName, &p.Supplier, &p.Quantity,
		&p.UnitCost, &p.TotalCost, &p.Date, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (id, company_id, product_id, supplier, quantity, unit_cost, total_cost, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.CompanyID, p.ProductID, p.Supplier, p.Quantity, p.UnitCost, p.TotalCost, p.Date, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, purchaseSelect+` WHERE pu.id = $1`, id)
}

func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, purchaseSelect+` WHERE pu.id = $1 FOR UPDATE OF pu`, id)
}

func (r *PurchaseRepo) get(ctx context.Context, query, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (r *PurchaseRepo) Update(ctx context.Context, p *entity.Purchase) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchases SET product_id = $2, supplier = $3, quantity = $4, unit_cost = $5, total_cost = $6,
			date = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.ProductID, p.Supplier, p.Quantity, p.UnitCost, p.TotalCost, p.Date, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany compras de la empresa, más recientes primero.
func (r *PurchaseRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Purchase, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM purchases WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}
	list, err := queryPurchases(ctx, r.q,
		purchaseSelect+` WHERE pu.company_id = $1 ORDER BY pu.date DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Statistics usa COALESCE para devolver cero si la empresa no tiene compras.
func (r *PurchaseRepo) Statistics(ctx context.Context, companyID string) (total, average decimal.Decimal, err error) {
	err = r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_cost), 0), COALESCE(AVG(total_cost), 0)
		FROM purchases WHERE company_id = $1`, companyID,
	).Scan(&total, &average)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("purchase statistics: %w", err)
	}
	return total, average.Round(2), nil
}

func queryPurchases(ctx context.Context, q Querier, query string, args ...any) ([]*entity.Purchase, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
