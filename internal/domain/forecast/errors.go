package forecast

import "errors"

// ErrTooFewPoints no hay suficientes períodos con ventas para entrenar.
var ErrTooFewPoints = errors.New("forecast: se requieren al menos 3 períodos con ventas")
