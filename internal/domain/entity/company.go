package entity

import "time"

// Company representa una organización/tenant del sistema. Dueña de productos,
// proveedores, compras, ventas y empleados.
type Company struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
	LogoURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy indica si userID es el dueño de la compañía.
func (c *Company) IsOwnedBy(userID string) bool {
	return c != nil && c.OwnerID == userID
}
