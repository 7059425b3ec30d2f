// Package excel genera las exportaciones xlsx de ventas y compras.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/pkg/money"
)

var _ analytics.SpreadsheetExporter = (*Exporter)(nil)

// Exporter implementa analytics.SpreadsheetExporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

var (
	salesHeaders     = []string{"ID", "Fecha", "Producto", "Cliente", "Cantidad", "Precio unitario", "Total"}
	purchasesHeaders = []string{"ID", "Fecha", "Producto", "Proveedor", "Cantidad", "Costo unitario", "Total"}
)

// SalesSheet hoja "Ventas" con una fila por venta y una fila de total.
func (e *Exporter) SalesSheet(sales []*entity.Sale) ([]byte, error) {
	rows := make([][]any, 0, len(sales))
	total := decimal.Zero
	for _, s := range sales {
		rows = append(rows, []any{
			s.ID, s.Date.Format("2006-01-02 15:04"), s.ProductName, s.Customer,
			s.Quantity, s.UnitPrice.InexactFloat64(), s.TotalPrice.InexactFloat64(),
		})
		total = total.Add(s.TotalPrice)
	}
	return build("Ventas", salesHeaders, rows, total)
}

// PurchasesSheet hoja "Compras" con una fila por compra y una fila de total.
func (e *Exporter) PurchasesSheet(purchases []*entity.Purchase) ([]byte, error) {
	rows := make([][]any, 0, len(purchases))
	total := decimal.Zero
	for _, p := range purchases {
		rows = append(rows, []any{
			p.ID, p.Date.Format("2006-01-02 15:04"), p.ProductName, p.Supplier,
			p.Quantity, p.UnitCost.InexactFloat64(), p.TotalCost.InexactFloat64(),
		})
		total = total.Add(p.TotalCost)
	}
	return build("Compras", purchasesHeaders, rows, total)
}

func build(sheet string, headers []string, rows [][]any, total decimal.Decimal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de encabezado: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("excel: estilo de moneda: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("excel: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("excel: %w", err)
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", r+2, err)
		}
	}

	// Fila de total: etiqueta legible en la penúltima columna y valor numérico en la última
	totalRow := len(rows) + 2
	labelCell, _ := excelize.CoordinatesToCellName(len(headers)-1, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(len(headers), totalRow)
	_ = f.SetCellValue(sheet, labelCell, "Total "+money.Format(total))
	_ = f.SetCellValue(sheet, valueCell, total.InexactFloat64())

	// Columnas de montos (las dos últimas)
	from, _ := excelize.CoordinatesToCellName(len(headers)-1, 2)
	to, _ := excelize.CoordinatesToCellName(len(headers), totalRow)
	_ = f.SetCellStyle(sheet, from, to, moneyStyle)

	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "G", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
