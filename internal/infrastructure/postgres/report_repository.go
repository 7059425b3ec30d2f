package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de negocio.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Totals una sola ida a la DB con subconsultas escalares.
func (r *ReportRepo) Totals(ctx context.Context, companyID string, lowStockThreshold int) (repository.CompanyTotals, error) {
	const query = `
	SELECT
	    (SELECT COALESCE(SUM(total_price), 0) FROM sales     WHERE company_id = $1) AS sales_total,
	    (SELECT COUNT(*)                       FROM sales     WHERE company_id = $1) AS sales_count,
	    (SELECT COALESCE(SUM(total_cost), 0)  FROM purchases WHERE company_id = $1) AS purchases_total,
	    (SELECT COUNT(*)                       FROM purchases WHERE company_id = $1) AS purchases_count,
	    COUNT(p.id)                                                                  AS products_count,
	    COALESCE(SUM(p.stock), 0)                                                    AS stock_units,
	    COALESCE(SUM(p.stock * p.price), 0)                                          AS inventory_value,
	    COUNT(p.id) FILTER (WHERE p.stock <= $2)                                     AS low_stock
	FROM products p
	WHERE p.company_id = $1`

	var t repository.CompanyTotals
	err := r.q.QueryRow(ctx, query, companyID, lowStockThreshold).Scan(
		&t.SalesTotal,
		&t.SalesCount,
		&t.PurchasesTotal,
		&t.PurchasesCount,
		&t.ProductsCount,
		&t.StockUnits,
		&t.InventoryValue,
		&t.LowStockCount,
	)
	if err != nil {
		return repository.CompanyTotals{}, fmt.Errorf("reports.Totals: %w", err)
	}
	return t, nil
}

// ProductActivity los agregados por período y los históricos se calculan en CTEs separados
// para no multiplicar filas en el JOIN.
func (r *ReportRepo) ProductActivity(ctx context.Context, companyID string, start, end time.Time) ([]repository.ProductActivity, error) {
	const query = `
	WITH sold AS (
	    SELECT product_id, SUM(quantity) AS units, SUM(total_price) AS revenue
	    FROM sales
	    WHERE company_id = $1 AND date BETWEEN $2 AND $3
	    GROUP BY product_id
	), bought AS (
	    SELECT product_id, SUM(quantity) AS units, SUM(total_cost) AS cost
	    FROM purchases
	    WHERE company_id = $1 AND date BETWEEN $2 AND $3
	    GROUP BY product_id
	), bought_all AS (
	    SELECT product_id, SUM(quantity) AS units, SUM(total_cost) AS cost
	    FROM purchases
	    WHERE company_id = $1
	    GROUP BY product_id
	)
	SELECT
	    p.id, p.name, p.price, p.stock,
	    COALESCE(s.units, 0), COALESCE(s.revenue, 0),
	    COALESCE(b.units, 0), COALESCE(b.cost, 0),
	    COALESCE(ba.units, 0), COALESCE(ba.cost, 0)
	FROM products p
	LEFT JOIN sold       s  ON s.product_id  = p.id
	LEFT JOIN bought     b  ON b.product_id  = p.id
	LEFT JOIN bought_all ba ON ba.product_id = p.id
	WHERE p.company_id = $1
	ORDER BY p.name`

	rows, err := r.q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports.ProductActivity: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductActivity
	for rows.Next() {
		var a repository.ProductActivity
		if err := rows.Scan(
			&a.ProductID, &a.ProductName, &a.Price, &a.Stock,
			&a.UnitsSold, &a.Revenue,
			&a.UnitsPurchased, &a.PurchasedCost,
			&a.AllTimeUnitsPurchased, &a.AllTimePurchaseCost,
		); err != nil {
			return nil, fmt.Errorf("reports.ProductActivity scan: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

func (r *ReportRepo) MonthlySales(ctx context.Context, companyID string, since time.Time) ([]repository.MonthlyAmount, error) {
	return r.monthly(ctx, `
	SELECT date_trunc('month', date) AS month, COALESCE(SUM(total_price), 0), COUNT(*)
	FROM sales WHERE company_id = $1 AND date >= $2
	GROUP BY month ORDER BY month`, companyID, since)
}

func (r *ReportRepo) MonthlyPurchases(ctx context.Context, companyID string, since time.Time) ([]repository.MonthlyAmount, error) {
	return r.monthly(ctx, `
	SELECT date_trunc('month', date) AS month, COALESCE(SUM(total_cost), 0), COUNT(*)
	FROM purchases WHERE company_id = $1 AND date >= $2
	GROUP BY month ORDER BY month`, companyID, since)
}

func (r *ReportRepo) monthly(ctx context.Context, query, companyID string, since time.Time) ([]repository.MonthlyAmount, error) {
	rows, err := r.q.Query(ctx, query, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("reports.monthly: %w", err)
	}
	defer rows.Close()
	var out []repository.MonthlyAmount
	for rows.Next() {
		var m repository.MonthlyAmount
		if err := rows.Scan(&m.Month, &m.Total, &m.Count); err != nil {
			return nil, fmt.Errorf("reports.monthly scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RecentMovements UNION ALL de ventas y compras; el LIMIT se aplica sobre la unión.
func (r *ReportRepo) RecentMovements(ctx context.Context, companyID string, limit int) ([]repository.Movement, error) {
	const query = `
	SELECT * FROM (
	    SELECT 'sale' AS type, s.id, s.date, s.product_id, p.name, s.quantity, s.total_price, s.customer
	    FROM sales s JOIN products p ON p.id = s.product_id
	    WHERE s.company_id = $1
	    UNION ALL
	    SELECT 'purchase', pu.id, pu.date, pu.product_id, p.name, pu.quantity, pu.total_cost, pu.supplier
	    FROM purchases pu JOIN products p ON p.id = pu.product_id
	    WHERE pu.company_id = $1
	) m
	ORDER BY m.date DESC
	LIMIT $2`

	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.RecentMovements: %w", err)
	}
	defer rows.Close()
	var out []repository.Movement
	for rows.Next() {
		var m repository.Movement
		if err := rows.Scan(&m.Type, &m.ID, &m.Date, &m.ProductID, &m.ProductName, &m.Quantity, &m.Amount, &m.Counterparty); err != nil {
			return nil, fmt.Errorf("reports.RecentMovements scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ReportRepo) SalesBetween(ctx context.Context, companyID string, start, end time.Time) ([]*entity.Sale, error) {
	return querySales(ctx, r.q, saleSelect+` WHERE s.company_id = $1 AND s.date BETWEEN $2 AND $3 ORDER BY s.date`,
		companyID, start, end)
}

func (r *ReportRepo) PurchasesBetween(ctx context.Context, companyID string, start, end time.Time) ([]*entity.Purchase, error) {
	return queryPurchases(ctx, r.q, purchaseSelect+` WHERE pu.company_id = $1 AND pu.date BETWEEN $2 AND $3 ORDER BY pu.date`,
		companyID, start, end)
}
