package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Valores por defecto de una predicción.
const (
	DefaultDaysAhead   = 30
	DefaultTimeUnit    = "day"
	DefaultDaysHistory = 90
)

// PredictRequest parámetros de la predicción de ventas. ProductID vacío = toda la compañía.
type PredictRequest struct {
	ProductID   string `json:"product_id"`
	DaysAhead   int    `json:"days_ahead"`
	TimeUnit    string `json:"time_unit"`
	DaysHistory int    `json:"days_history"`
}

// ApplyDefaults completa los campos omitidos.
func (r *PredictRequest) ApplyDefaults() {
	if r.DaysAhead == 0 {
		r.DaysAhead = DefaultDaysAhead
	}
	if r.TimeUnit == "" {
		r.TimeUnit = DefaultTimeUnit
	}
	if r.DaysHistory == 0 {
		r.DaysHistory = DefaultDaysHistory
	}
}

func (r PredictRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, is.UUID),
		validation.Field(&r.DaysAhead, validation.Min(1), validation.Max(365)),
		validation.Field(&r.TimeUnit, validation.In("day", "week", "month").Error("debe ser day, week o month")),
		validation.Field(&r.DaysHistory, validation.Min(30), validation.Max(730)),
	)
}

// PredictionPoint predicción de un día.
type PredictionPoint struct {
	Date              string   `json:"date"`
	PredictedQuantity float64  `json:"predicted_quantity"`
	ProductID         string   `json:"product_id,omitempty"`
	ProductName       string   `json:"product_name,omitempty"`
	PredictedSales    *float64 `json:"predicted_sales,omitempty"`
}

// PredictResponse lista de predicciones (vacía si no hubo datos para entrenar).
type PredictResponse struct {
	Predictions []PredictionPoint `json:"predictions"`
}

// TrainQueuedResponse reentrenamiento encolado.
type TrainQueuedResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
}
