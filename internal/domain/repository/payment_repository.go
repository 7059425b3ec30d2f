package repository

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para PaymentTransaction.
type PaymentRepository interface {
	Create(ctx context.Context, tx *entity.PaymentTransaction) error
	GetByID(ctx context.Context, id string) (*entity.PaymentTransaction, error)
	// ListByUser transacciones de las suscripciones del usuario, más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.PaymentTransaction, error)
	// OwnerOf devuelve el user_id dueño de la suscripción de la transacción.
	OwnerOf(ctx context.Context, id string) (string, error)
}
