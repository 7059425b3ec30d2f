package dto

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// PlanResponse salida de un plan.
type PlanResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
	MaxCompanies int             `json:"max_companies"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateSubscriptionRequest suscripción a un plan (queda inactiva hasta el pago).
type CreateSubscriptionRequest struct {
	PlanID string `json:"plan"`
}

func (r CreateSubscriptionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PlanID, validation.Required.Error("el plan es obligatorio"), is.UUID),
	)
}

// SubscriptionResponse salida de una suscripción.
type SubscriptionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	PlanID    string    `json:"plan"`
	PlanName  string    `json:"plan_name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePaymentRequest pago simulado de una suscripción.
type CreatePaymentRequest struct {
	SubscriptionID    string          `json:"subscription"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	PaymentMethodType string          `json:"payment_method_type"`
}

func (r CreatePaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SubscriptionID, validation.Required.Error("la suscripción es obligatoria"), is.UUID),
		validation.Field(&r.Amount, positiveDecimal),
		validation.Field(&r.Currency, validation.Length(3, 3), is.UpperCase),
		validation.Field(&r.PaymentMethodType, validation.Length(0, 50)),
	)
}

// PaymentResponse salida de una transacción.
type PaymentResponse struct {
	ID                string          `json:"id"`
	SubscriptionID    string          `json:"subscription"`
	TransactionID     string          `json:"transaction_id"`
	Reference         string          `json:"reference"`
	Amount            decimal.Decimal `json:"amount"`
	AmountInCents     int64           `json:"amount_in_cents"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	PaymentMethodType string          `json:"payment_method_type"`
	PaymentMethodData json.RawMessage `json:"payment_method_data,omitempty"`
	GatewayResponse   json.RawMessage `json:"gateway_response,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreatePaymentResponse respuesta del pago simulado.
type CreatePaymentResponse struct {
	Message     string          `json:"message"`
	Transaction PaymentResponse `json:"transaction"`
}
