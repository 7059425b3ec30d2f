package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SubscriptionRepository define el puerto de persistencia para Subscription.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Subscription, error)
	// GetCurrent suscripción activa y no vencida del usuario en now (nil si no hay).
	GetCurrent(ctx context.Context, userID string, now time.Time) (*entity.Subscription, error)
	// Activate activa la suscripción y desactiva las demás del mismo usuario.
	Activate(ctx context.Context, id string) error
}
