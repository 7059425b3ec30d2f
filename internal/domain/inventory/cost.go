// Package inventory contiene las reglas de dominio sobre stock y costo de los
// productos: el efecto de compras y ventas sobre el stock, la rotación y el
// costo promedio que usan los reportes.
package inventory

import "github.com/shopspring/decimal"

// AverageUnitCost costo unitario promedio de un conjunto de compras:
// Σ total_cost / Σ cantidad. Cero si no hubo unidades.
func AverageUnitCost(totalCost decimal.Decimal, units int64) decimal.Decimal {
	if units <= 0 {
		return decimal.Zero
	}
	return totalCost.Div(decimal.NewFromInt(units))
}
