package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPlanDurationDays duración de una suscripción cuando el plan no define otra.
const DefaultPlanDurationDays = 30

// Plan plan comercial que se adquiere mediante una Subscription.
type Plan struct {
	ID           string
	Name         string
	Description  string
	Price        decimal.Decimal
	DurationDays int
	MaxCompanies int
	IsActive     bool
	CreatedAt    time.Time
}

// Duration devuelve la vigencia de una suscripción a este plan.
func (p *Plan) Duration() time.Duration {
	days := p.DurationDays
	if days <= 0 {
		days = DefaultPlanDurationDays
	}
	return time.Duration(days) * 24 * time.Hour
}
