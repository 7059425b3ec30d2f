package inventory

// StockChange ajuste de stock a aplicar sobre un producto.
type StockChange struct {
	ProductID string
	Delta     int
}

// Rebalance calcula los ajustes de stock al reemplazar un movimiento
// (compra o venta) por otro: revierte el efecto anterior y aplica el nuevo.
// Si ambos apuntan al mismo producto se devuelve un único ajuste neto;
// los ajustes nulos se omiten.
func Rebalance(oldProductID string, oldEffect int, newProductID string, newEffect int) []StockChange {
	if oldProductID == newProductID {
		if d := newEffect - oldEffect; d != 0 {
			return []StockChange{{ProductID: newProductID, Delta: d}}
		}
		return nil
	}
	var out []StockChange
	if oldProductID != "" && oldEffect != 0 {
		out = append(out, StockChange{ProductID: oldProductID, Delta: -oldEffect})
	}
	if newProductID != "" && newEffect != 0 {
		out = append(out, StockChange{ProductID: newProductID, Delta: newEffect})
	}
	return out
}

// CanApply indica si aplicar delta sobre stock lo deja en un valor no negativo.
func CanApply(stock, delta int) bool {
	return stock+delta >= 0
}
