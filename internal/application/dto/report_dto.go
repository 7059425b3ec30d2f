package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatisticsReport resumen general de la compañía.
type StatisticsReport struct {
	Sales          AmountSummary   `json:"sales"`
	Purchases      AmountSummary   `json:"purchases"`
	ProductsCount  int             `json:"products_count"`
	StockUnits     int64           `json:"stock_units"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockCount  int             `json:"low_stock_count"`
	LowStockLimit  int             `json:"low_stock_threshold"`
}

// AmountSummary total, conteo y promedio.
type AmountSummary struct {
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Average decimal.Decimal `json:"average"`
}

// ProfitabilityRow rentabilidad de un producto en el período.
type ProfitabilityRow struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
	Cost        decimal.Decimal `json:"cost"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
}

// ProfitabilityReport productos ordenados por utilidad bruta desc.
type ProfitabilityReport struct {
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Products  []ProfitabilityRow `json:"products"`
	Totals    ProfitabilityRow   `json:"totals"`
}

// RotationRow rotación de inventario de un producto.
type RotationRow struct {
	ProductID        string   `json:"product_id"`
	ProductName      string   `json:"product_name"`
	UnitsSold        int64    `json:"units_sold"`
	UnitsPurchased   int64    `json:"units_purchased"`
	CurrentStock     int      `json:"current_stock"`
	OpeningStock     int64    `json:"opening_stock"`
	AverageInventory float64  `json:"average_inventory"`
	Rotation         float64  `json:"rotation"`
	DaysOfInventory  *float64 `json:"days_of_inventory"`
	Classification   string   `json:"classification"`
}

// RotationReport rotación por producto en los últimos Days días.
type RotationReport struct {
	Days     int           `json:"days"`
	Products []RotationRow `json:"products"`
}

// PurchaseForecastRow sugerencia de compra de un producto.
type PurchaseForecastRow struct {
	Priority          int             `json:"priority"`
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	CurrentStock      int             `json:"current_stock"`
	AvgDailySales     float64         `json:"avg_daily_sales"`
	ProjectedDemand   float64         `json:"projected_demand"`
	SafetyStock       float64         `json:"safety_stock"`
	SuggestedQty      int64           `json:"suggested_qty"`
	DaysUntilStockout *float64        `json:"days_until_stockout"`
	AvgUnitCost       decimal.Decimal `json:"avg_unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}

// PurchaseForecastReport productos a reabastecer, por prioridad.
type PurchaseForecastReport struct {
	Days          int                   `json:"days"`
	Horizon       int                   `json:"horizon"`
	SafetyDays    int                   `json:"safety_days"`
	Products      []PurchaseForecastRow `json:"products"`
	TotalEstimate decimal.Decimal       `json:"total_estimated_cost"`
}

// MonthlyFlowRow flujo de un mes (YYYY-MM).
type MonthlyFlowRow struct {
	Month          string          `json:"month"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	SalesCount     int             `json:"sales_count"`
	PurchasesTotal decimal.Decimal `json:"purchases_total"`
	PurchasesCount int             `json:"purchases_count"`
	NetFlow        decimal.Decimal `json:"net_flow"`
}

// MonthlyFlowReport meses del más antiguo al más reciente.
type MonthlyFlowReport struct {
	Months []MonthlyFlowRow `json:"months"`
}

// MovementRow venta o compra reciente.
type MovementRow struct {
	Type         string          `json:"type"`
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty string          `json:"counterparty"`
}

// RecentMovementsReport movimientos más recientes primero.
type RecentMovementsReport struct {
	Movements []MovementRow `json:"movements"`
}
