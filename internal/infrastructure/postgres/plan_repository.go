package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo lectura de planes sobre PostgreSQL.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador.
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `id, name, description, price, duration_days, max_companies, is_active, created_at`

func scanPlan(row interface{ Scan(...any) error }) (*entity.Plan, error) {
	var p entity.Plan
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DurationDays, &p.MaxCompanies, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List planes ordenados por fecha de creación y nombre.
func (r *PlanRepo) List(ctx context.Context) ([]*entity.Plan, error) {
	rows, err := r.q.Query(ctx, `SELECT `+planColumns+` FROM plans ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.Plan, error) {
	p, err := scanPlan(r.q.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}
