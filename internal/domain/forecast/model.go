package forecast

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// MinTrainingPoints períodos mínimos con ventas para entrenar.
const MinTrainingPoints = 3

// Model modelo entrenado y serializable: escalador + regresión + fecha de entrenamiento.
type Model struct {
	Scaler      StandardScaler   `json:"scaler"`
	Regression  LinearRegression `json:"regression"`
	TimeUnit    string           `json:"time_unit"`
	Points      int              `json:"points"`
	LastTrained *time.Time       `json:"last_trained,omitempty"`
}

// Train ajusta un modelo sobre la serie histórica. Devuelve ErrTooFewPoints
// si hay menos de MinTrainingPoints períodos.
func Train(points []Point, unit string, now time.Time) (*Model, error) {
	if len(points) < MinTrainingPoints {
		return nil, ErrTooFewPoints
	}
	x := mat.NewDense(len(points), NumFeatures, nil)
	y := make([]float64, len(points))
	for i, p := range points {
		x.SetRow(i, Features(p.Period))
		y[i] = p.Quantity
	}

	m := &Model{TimeUnit: unit, Points: len(points)}
	xs := m.Scaler.FitTransform(x)
	if err := m.Regression.Fit(xs, y); err != nil {
		return nil, err
	}
	trained := now
	m.LastTrained = &trained
	return m, nil
}

// IsFresh indica si el modelo fue entrenado hace menos de maxAge.
func (m *Model) IsFresh(now time.Time, maxAge time.Duration) bool {
	if m == nil || m.LastTrained == nil {
		return false
	}
	return now.Sub(*m.LastTrained) < maxAge
}

// Forecast cantidad predicha para cada fecha dada, redondeada a 2 decimales y nunca negativa.
func (m *Model) Forecast(dates []time.Time) []float64 {
	if len(dates) == 0 {
		return nil
	}
	x := mat.NewDense(len(dates), NumFeatures, nil)
	for i, d := range dates {
		x.SetRow(i, Features(d))
	}
	raw := m.Regression.Predict(m.Scaler.Transform(x))
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = math.Max(0, Round2(v))
	}
	return out
}

// FutureDates fechas now+1 … now+daysAhead.
func FutureDates(now time.Time, daysAhead int) []time.Time {
	out := make([]time.Time, 0, daysAhead)
	for i := 1; i <= daysAhead; i++ {
		out = append(out, now.AddDate(0, 0, i))
	}
	return out
}

// Round2 redondea a 2 decimales.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
