package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transacción de pago (nomenclatura Wompi).
const (
	PaymentPending  = "PENDING"
	PaymentApproved = "APPROVED"
	PaymentDeclined = "DECLINED"
	PaymentVoided   = "VOIDED"
	PaymentError    = "ERROR"
)

// DefaultCurrency moneda por defecto de los pagos.
const DefaultCurrency = "COP"

// PaymentTransaction transacción de pago asociada a una suscripción.
type PaymentTransaction struct {
	ID                string
	SubscriptionID    string
	TransactionID     string // único
	Reference         string // único
	Amount            decimal.Decimal
	AmountInCents     int64
	Currency          string
	Status            string
	PaymentMethodType string
	PaymentMethodData json.RawMessage
	GatewayResponse   json.RawMessage
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
