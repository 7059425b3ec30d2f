package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionSelect = `
	SELECT s.id, s.user_id, s.plan_id, p.name, s.start_date, s.end_date, s.is_active, s.created_at
	FROM subscriptions s JOIN plans p ON p.id = s.plan_id`

func scanSubscription(row interface{ Scan(...any) error }) (*entity.Subscription, error) {
	var s entity.Subscription
	if err := row.Scan(&s.ID, &s.UserID, &s.PlanID, &s.PlanName, &s.StartDate, &s.EndDate, &s.IsActive, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO subscriptions (id, user_id, plan_id, start_date, end_date, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.UserID, s.PlanID, s.StartDate, s.EndDate, s.IsActive, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	s, err := scanSubscription(r.q.QueryRow(ctx, subscriptionSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return s, nil
}

// ListByUser suscripciones del usuario, más recientes primero.
func (r *SubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Subscription, error) {
	rows, err := r.q.Query(ctx, subscriptionSelect+` WHERE s.user_id = $1 ORDER BY s.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SubscriptionRepo) GetCurrent(ctx context.Context, userID string, now time.Time) (*entity.Subscription, error) {
	s, err := scanSubscription(r.q.QueryRow(ctx,
		subscriptionSelect+` WHERE s.user_id = $1 AND s.is_active AND s.end_date > $2 ORDER BY s.end_date DESC LIMIT 1`,
		userID, now))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current subscription: %w", err)
	}
	return s, nil
}

// Activate desactiva las hermanas y activa la indicada. Ejecutar dentro de una tx.
func (r *SubscriptionRepo) Activate(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE subscriptions SET is_active = FALSE
		WHERE user_id = (SELECT user_id FROM subscriptions WHERE id = $1) AND id <> $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("deactivate subscriptions: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `UPDATE subscriptions SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("activate subscription: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
