package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta: al guardarse resta Quantity del stock del producto.
type Sale struct {
	ID          string
	CompanyID   string
	ProductID   string
	ProductName string // desnormalizado al leer
	Customer    string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Date        time.Time
	SoldBy      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeTotal recalcula TotalPrice = Quantity * UnitPrice.
func (s *Sale) ComputeTotal() {
	s.TotalPrice = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity))).Round(2)
}

// StockEffect cambio que la venta produce en el stock de su producto.
func (s *Sale) StockEffect() int { return -s.Quantity }
