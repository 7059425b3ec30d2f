package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CompanyTotals totales crudos de ventas, compras e inventario de una empresa.
// Lo produce la DB; el use case calcula promedios y lo convierte en DTO.
type CompanyTotals struct {
	SalesTotal     decimal.Decimal
	SalesCount     int
	PurchasesTotal decimal.Decimal
	PurchasesCount int
	ProductsCount  int
	StockUnits     int64
	InventoryValue decimal.Decimal // Σ stock * price
	LowStockCount  int
}

// ProductActivity ventas y compras de un producto dentro de un período,
// más el acumulado histórico de compras para el costo promedio ponderado.
type ProductActivity struct {
	ProductID      string
	ProductName    string
	Price          decimal.Decimal
	Stock          int
	UnitsSold      int64
	Revenue        decimal.Decimal
	UnitsPurchased int64
	PurchasedCost  decimal.Decimal
	// Históricos (sin filtro de fechas)
	AllTimeUnitsPurchased int64
	AllTimePurchaseCost   decimal.Decimal
}

// MonthlyAmount suma y conteo de un mes (primer día del mes).
type MonthlyAmount struct {
	Month time.Time
	Total decimal.Decimal
	Count int
}

// Movement venta o compra para el listado de movimientos recientes.
type Movement struct {
	Type         string // sale | purchase
	ID           string
	Date         time.Time
	ProductID    string
	ProductName  string
	Quantity     int
	Amount       decimal.Decimal
	Counterparty string // cliente o proveedor
}

// ReportRepository consultas de lectura para los reportes de negocio.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// Totals usa COALESCE para devolver cero cuando no hay filas.
	Totals(ctx context.Context, companyID string, lowStockThreshold int) (CompanyTotals, error)

	// ProductActivity devuelve una fila por producto de la empresa (incluso sin movimientos).
	ProductActivity(ctx context.Context, companyID string, start, end time.Time) ([]ProductActivity, error)

	// MonthlySales y MonthlyPurchases agrupan por date_trunc('month') desde since. Solo meses con datos.
	MonthlySales(ctx context.Context, companyID string, since time.Time) ([]MonthlyAmount, error)
	MonthlyPurchases(ctx context.Context, companyID string, since time.Time) ([]MonthlyAmount, error)

	// RecentMovements ventas y compras más recientes, mezcladas y ordenadas por fecha desc.
	RecentMovements(ctx context.Context, companyID string, limit int) ([]Movement, error)

	// SalesBetween y PurchasesBetween alimentan las exportaciones (orden por fecha asc).
	SalesBetween(ctx context.Context, companyID string, start, end time.Time) ([]*entity.Sale, error)
	PurchasesBetween(ctx context.Context, companyID string, start, end time.Time) ([]*entity.Purchase, error)
}
