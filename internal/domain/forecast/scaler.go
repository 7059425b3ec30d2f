package forecast

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler estandariza cada columna a media 0 y desviación 1
// (desviación poblacional; columnas constantes usan escala 1).
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Fit calcula media y escala por columna de x.
func (s *StandardScaler) Fit(x *mat.Dense) {
	_, c := x.Dims()
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, x)
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Scale[j] = std
	}
}

// Transform devuelve una copia estandarizada de x.
func (s *StandardScaler) Transform(x *mat.Dense) *mat.Dense {
	r, c := x.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, x)
	return out
}

// FitTransform combina Fit y Transform.
func (s *StandardScaler) FitTransform(x *mat.Dense) *mat.Dense {
	s.Fit(x)
	return s.Transform(x)
}
