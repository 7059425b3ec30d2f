package entity

import "time"

// Subscription derecho temporal de un usuario sobre un plan. Se crea inactiva
// y se activa con un pago aprobado; un usuario tiene a lo sumo una activa.
type Subscription struct {
	ID        string
	UserID    string
	PlanID    string
	PlanName  string // desnormalizado al leer
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
}

// IsCurrent indica si la suscripción está activa y no vencida en el instante now.
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s != nil && s.IsActive && s.EndDate.After(now)
}
