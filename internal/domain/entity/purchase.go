package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase compra de mercancía: al guardarse suma Quantity al stock del producto.
type Purchase struct {
	ID          string
	CompanyID   string
	ProductID   string
	ProductName string // desnormalizado al leer
	Supplier    string
	Quantity    int
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeTotal recalcula TotalCost = Quantity * UnitCost.
func (p *Purchase) ComputeTotal() {
	p.TotalCost = p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity))).Round(2)
}

// StockEffect cambio que la compra produce en el stock de su producto.
func (p *Purchase) StockEffect() int { return p.Quantity }
