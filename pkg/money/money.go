// Package money formatea montos en pesos para reportes y exportaciones.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Format monto redondeado a pesos con separador de miles: 1234567.4 → "$1.234.567".
func Format(d decimal.Decimal) string {
	return printer.Sprintf("$%d", d.Round(0).IntPart())
}

// Int entero con separador de miles.
func Int(n int64) string {
	return printer.Sprintf("%d", n)
}
