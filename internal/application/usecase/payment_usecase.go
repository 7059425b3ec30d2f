package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// DefaultPaymentMethod método de pago cuando el cliente no indica otro.
const DefaultPaymentMethod = "CARD"

type paymentMethodData struct {
	Type      string `json:"type"`
	Simulated bool   `json:"simulated"`
}

// gatewayResponse respuesta guardada de la pasarela simulada.
type gatewayResponse struct {
	ID            string `json:"id"`
	Reference     string `json:"reference"`
	Status        string `json:"status"`
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
	Simulated     bool   `json:"simulated"`
}

// PaymentTxRunner ejecuta fn con repos de pago y suscripción atados a una transacción.
type PaymentTxRunner interface {
	RunPayment(ctx context.Context, fn func(
		paymentRepo repository.PaymentRepository,
		subscriptionRepo repository.SubscriptionRepository,
	) error) error
}

// PaymentUseCase pasarela simulada: toda transacción se aprueba y activa su suscripción.
type PaymentUseCase struct {
	repo    repository.PaymentRepository
	subRepo repository.SubscriptionRepository
	tx      PaymentTxRunner
	now     func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(repo repository.PaymentRepository, subRepo repository.SubscriptionRepository, tx PaymentTxRunner) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, subRepo: subRepo, tx: tx, now: time.Now}
}

// SimulatedIDs transaction_id y reference deterministas de un pago simulado.
func SimulatedIDs(subscriptionID string, amount decimal.Decimal) (transactionID, reference string) {
	a := amount.StringFixed(2)
	return fmt.Sprintf("sim_%s_%s", subscriptionID, a), fmt.Sprintf("ref_%s_%s", subscriptionID, a)
}

// Create registra la transacción APPROVED y activa la suscripción (desactivando las demás) en la misma tx.
// Un segundo pago con el mismo monto sobre la misma suscripción choca con el índice único (ErrDuplicate).
func (uc *PaymentUseCase) Create(ctx context.Context, userID string, in dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	sub, err := uc.subRepo.GetByID(ctx, in.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.UserID != userID {
		return nil, domain.ErrNotFound
	}

	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	method := in.PaymentMethodType
	if method == "" {
		method = DefaultPaymentMethod
	}
	txID, ref := SimulatedIDs(sub.ID, in.Amount)
	cents := in.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	methodData, err := json.Marshal(paymentMethodData{Type: method, Simulated: true})
	if err != nil {
		return nil, fmt.Errorf("payment method data: %w", err)
	}
	gateway, err := json.Marshal(gatewayResponse{
		ID:            txID,
		Reference:     ref,
		Status:        entity.PaymentApproved,
		AmountInCents: cents,
		Currency:      currency,
		Simulated:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway response: %w", err)
	}

	now := uc.now()
	payment := &entity.PaymentTransaction{
		ID:                uuid.New().String(),
		SubscriptionID:    sub.ID,
		TransactionID:     txID,
		Reference:         ref,
		Amount:            in.Amount,
		AmountInCents:     cents,
		Currency:          currency,
		Status:            entity.PaymentApproved,
		PaymentMethodType: method,
		PaymentMethodData: methodData,
		GatewayResponse:   gateway,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err = uc.tx.RunPayment(ctx, func(paymentRepo repository.PaymentRepository, subRepo repository.SubscriptionRepository) error {
		if err := paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		return subRepo.Activate(ctx, sub.ID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreatePaymentResponse{
		Message:     "Pago simulado exitosamente",
		Transaction: dto.FromPayment(payment),
	}, nil
}

func (uc *PaymentUseCase) List(ctx context.Context, userID string) ([]dto.PaymentResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.FromPayment(t))
	}
	return out, nil
}

// GetByID las transacciones de otros usuarios se reportan como inexistentes.
func (uc *PaymentUseCase) GetByID(ctx context.Context, userID, id string) (*dto.PaymentResponse, error) {
	owner, err := uc.repo.OwnerOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner == "" || owner != userID {
		return nil, domain.ErrNotFound
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromPayment(t)
	return &out, nil
}
