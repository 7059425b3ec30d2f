package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto de una compañía. Stock se modifica solo como efecto de compras y ventas.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
