package forecast

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// rcond umbral relativo bajo el cual un valor singular se considera cero.
const rcond = 1e-10

// LinearRegression regresión lineal ordinaria con intercepto.
type LinearRegression struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// Fit ajusta la regresión por mínimos cuadrados. Centra x e y para obtener el
// intercepto y resuelve con SVD, de modo que un sistema subdeterminado o con
// columnas colineales produce la solución de norma mínima.
func (m *LinearRegression) Fit(x *mat.Dense, y []float64) error {
	r, c := x.Dims()
	if r == 0 || r != len(y) {
		return errors.New("forecast: dimensiones inválidas")
	}

	xMean := make([]float64, c)
	for j := 0; j < c; j++ {
		xMean[j] = floats.Sum(mat.Col(nil, j, x)) / float64(r)
	}
	yMean := floats.Sum(y) / float64(r)

	xc := mat.NewDense(r, c, nil)
	xc.Apply(func(_, j int, v float64) float64 { return v - xMean[j] }, x)
	yc := make([]float64, r)
	for i, v := range y {
		yc[i] = v - yMean
	}

	coef, err := minNormSolve(xc, yc)
	if err != nil {
		return err
	}
	m.Coef = coef
	m.Intercept = yMean - floats.Dot(xMean, coef)
	return nil
}

// Predict evalúa el modelo sobre cada fila de x.
func (m *LinearRegression) Predict(x *mat.Dense) []float64 {
	r, _ := x.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = m.Intercept + floats.Dot(x.RawRowView(i), m.Coef)
	}
	return out
}

// minNormSolve resuelve min ||a·x - b|| con ||x|| mínima: x = V · Σ⁺ · Uᵀ · b.
func minNormSolve(a *mat.Dense, b []float64) ([]float64, error) {
	_, c := a.Dims()
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.New("forecast: la factorización SVD no convergió")
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	coef := make([]float64, c)
	if len(values) == 0 || values[0] == 0 {
		return coef, nil
	}
	bv := mat.NewVecDense(len(b), b)
	for k, s := range values {
		if s <= rcond*values[0] {
			break
		}
		uk := u.ColView(k)
		w := mat.Dot(uk, bv) / s
		for j := 0; j < c; j++ {
			coef[j] += w * v.At(j, k)
		}
	}
	return coef, nil
}
