// Package forecast implementa el modelo de predicción de ventas: variables de
// calendario, estandarización y regresión lineal por mínimos cuadrados.
package forecast

import (
	"fmt"
	"time"
)

// Unidades de agregación del histórico.
const (
	UnitDay   = "day"
	UnitWeek  = "week"
	UnitMonth = "month"
)

// ValidUnit indica si u es una unidad de tiempo soportada.
func ValidUnit(u string) bool {
	return u == UnitDay || u == UnitWeek || u == UnitMonth
}

// NumFeatures número de variables por observación.
const NumFeatures = 4

// Point observación agregada del histórico: un período con su cantidad vendida.
type Point struct {
	Period   time.Time
	Quantity float64
	Total    float64
}

// Weekday día de la semana con lunes = 0 … domingo = 6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Features variables de calendario de una fecha:
// [día de la semana, día del mes, mes, es fin de semana].
func Features(t time.Time) []float64 {
	wd := Weekday(t)
	weekend := 0.0
	if wd >= 5 {
		weekend = 1
	}
	return []float64{float64(wd), float64(t.Day()), float64(t.Month()), weekend}
}

// Truncate lleva t al inicio de su período (semana iniciando en lunes).
func Truncate(t time.Time, unit string) (time.Time, error) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch unit {
	case UnitDay:
		return day, nil
	case UnitWeek:
		return day.AddDate(0, 0, -Weekday(day)), nil
	case UnitMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("forecast: unidad de tiempo inválida %q", unit)
	}
}
