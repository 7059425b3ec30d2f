package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// PlanRepository lectura de planes comerciales.
type PlanRepository interface {
	List(ctx context.Context) ([]*entity.Plan, error)
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
}
