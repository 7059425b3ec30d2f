package dto

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// MaxPageSize límite superior de limit en listados.
const MaxPageSize = 100

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset están fuera de rango.
func (p *PageRequest) DefaultPage(def int) {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta con solo un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// Validatable lo implementan los requests con reglas ozzo.
type Validatable interface {
	Validate() error
}

// IsValidationError indica si err viene de las reglas de validación (y no de un fallo interno).
func IsValidationError(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.Error
	return errors.As(err, &verr)
}

// positiveDecimal regla ozzo para montos > 0. validation.Min no compara decimal.Decimal.
var positiveDecimal = validation.By(func(value any) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return errors.New("debe ser un número")
	}
	if !d.IsPositive() {
		return errors.New("debe ser mayor que cero")
	}
	return nil
})

// nonNegativeDecimal regla ozzo para montos >= 0.
var nonNegativeDecimal = validation.By(func(value any) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return errors.New("debe ser un número")
	}
	if d.IsNegative() {
		return errors.New("no puede ser negativo")
	}
	return nil
})
