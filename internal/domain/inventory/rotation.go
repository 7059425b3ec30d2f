package inventory

import "math"

// Clasificación de rotación de inventario.
const (
	RotationHigh   = "alta"
	RotationMedium = "media"
	RotationLow    = "baja"
)

// Rotation resultado del cálculo de rotación de un producto en una ventana de días.
type Rotation struct {
	OpeningStock     int
	AverageInventory float64
	Ratio            float64  // unidades vendidas / inventario promedio
	DaysOfInventory  *float64 // nil si no hubo rotación
	Class            string
}

// ComputeRotation calcula la rotación de un producto.
// El stock inicial se reconstruye desde el actual: apertura = actual + vendido - comprado.
func ComputeRotation(currentStock, unitsSold, unitsPurchased, days int) Rotation {
	opening := currentStock + unitsSold - unitsPurchased
	if opening < 0 {
		opening = 0
	}
	avg := float64(opening+currentStock) / 2

	r := Rotation{OpeningStock: opening, AverageInventory: avg, Class: RotationLow}
	switch {
	case unitsSold <= 0:
		return r
	case avg <= 0:
		// Todo lo que entró se vendió dentro de la ventana
		r.Ratio = float64(unitsSold)
	default:
		r.Ratio = float64(unitsSold) / avg
	}
	r.Ratio = math.Round(r.Ratio*100) / 100
	if r.Ratio > 0 && days > 0 {
		d := math.Round(float64(days)/r.Ratio*10) / 10
		r.DaysOfInventory = &d
	}
	switch {
	case r.Ratio >= 4:
		r.Class = RotationHigh
	case r.Ratio >= 1:
		r.Class = RotationMedium
	}
	return r
}
