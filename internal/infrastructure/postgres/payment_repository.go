package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo transacciones de pago sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `
	pt.id, pt.subscription_id, pt.transaction_id, pt.reference, pt.amount, pt.amount_in_cents, pt.currency,
	pt.status, pt.payment_method_type, pt.payment_method_data, pt.gateway_response, pt.created_at, pt.updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*entity.PaymentTransaction, error) {
	var t entity.PaymentTransaction
	var methodData, gateway []byte
	if err := row.Scan(&t.ID, &t.SubscriptionID, &t.TransactionID, &t.Reference, &t.Amount, &t.AmountInCents,
		&t.Currency, &t.Status, &t.PaymentMethodType, &methodData, &gateway, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.PaymentMethodData = methodData
	t.GatewayResponse = gateway
	return &t, nil
}

// Create transaction_id o reference repetidos -> ErrDuplicate.
func (r *PaymentRepo) Create(ctx context.Context, t *entity.PaymentTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payment_transactions (id, subscription_id, transaction_id, reference, amount, amount_in_cents,
			currency, status, payment_method_type, payment_method_data, gateway_response, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.SubscriptionID, t.TransactionID, t.Reference, t.Amount, t.AmountInCents, t.Currency, t.Status,
		t.PaymentMethodType, []byte(t.PaymentMethodData), []byte(t.GatewayResponse), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.PaymentTransaction, error) {
	t, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payment_transactions pt WHERE pt.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return t, nil
}

func (r *PaymentRepo) ListByUser(ctx context.Context, userID string) ([]*entity.PaymentTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payment_transactions pt JOIN subscriptions s ON s.id = pt.subscription_id
		WHERE s.user_id = $1
		ORDER BY pt.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentTransaction
	for rows.Next() {
		t, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// OwnerOf "" si la transacción no existe.
func (r *PaymentRepo) OwnerOf(ctx context.Context, id string) (string, error) {
	var userID string
	err := r.q.QueryRow(ctx, `
		SELECT s.user_id FROM payment_transactions pt JOIN subscriptions s ON s.id = pt.subscription_id
		WHERE pt.id = $1`, id).Scan(&userID)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("payment owner: %w", err)
	}
	return userID, nil
}
