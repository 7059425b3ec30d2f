package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// PlanUseCase lectura pública de planes.
type PlanUseCase struct {
	repo repository.PlanRepository
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(repo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{repo: repo}
}

func (uc *PlanUseCase) List(ctx context.Context) ([]dto.PlanResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromPlan(p))
	}
	return out, nil
}

func (uc *PlanUseCase) GetByID(ctx context.Context, id string) (*dto.PlanResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromPlan(p)
	return &out, nil
}

// SubscriptionUseCase suscripciones del usuario autenticado.
type SubscriptionUseCase struct {
	repo     repository.SubscriptionRepository
	planRepo repository.PlanRepository
	now      func() time.Time
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(repo repository.SubscriptionRepository, planRepo repository.PlanRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{repo: repo, planRepo: planRepo, now: time.Now}
}

// Create la suscripción nace inactiva; se activa con un pago aprobado.
// Falla con ErrActiveSubscription si el usuario ya tiene una vigente.
func (uc *SubscriptionUseCase) Create(ctx context.Context, userID string, in dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	now := uc.now()
	current, err := uc.repo.GetCurrent(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, fmt.Errorf("%w que vence el %s", domain.ErrActiveSubscription, current.EndDate.Format("2006-01-02"))
	}
	plan, err := uc.planRepo.GetByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlanID:    plan.ID,
		PlanName:  plan.Name,
		StartDate: now,
		EndDate:   now.Add(plan.Duration()),
		IsActive:  false,
		CreatedAt: now,
	}
	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	out := dto.FromSubscription(sub)
	return &out, nil
}

func (uc *SubscriptionUseCase) List(ctx context.Context, userID string) ([]dto.SubscriptionResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubscriptionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSubscription(s))
	}
	return out, nil
}

// GetByID las suscripciones ajenas se reportan como inexistentes.
func (uc *SubscriptionUseCase) GetByID(ctx context.Context, userID, id string) (*dto.SubscriptionResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.UserID != userID {
		return nil, domain.ErrNotFound
	}
	out := dto.FromSubscription(s)
	return &out, nil
}
