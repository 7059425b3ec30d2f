package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

func TestSalesSheet_EncabezadosFilasYTotal(t *testing.T) {
	date := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	sales := []*entity.Sale{
		{ID: "s1", Date: date, ProductName: "Café", Customer: "Ana", Quantity: 2,
			UnitPrice: decimal.NewFromInt(1500), TotalPrice: decimal.NewFromInt(3000)},
		{ID: "s2", Date: date, ProductName: "Pan", Customer: "Luis", Quantity: 1,
			UnitPrice: decimal.NewFromInt(2000), TotalPrice: decimal.NewFromInt(2000)},
	}

	content, err := NewExporter().SalesSheet(sales)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 4) // encabezado + 2 ventas + total

	assert.Equal(t, salesHeaders, rows[0])
	assert.Equal(t, "s1", rows[1][0])
	assert.Equal(t, "2026-03-10 14:30", rows[1][1])
	assert.Equal(t, "Café", rows[1][2])
	assert.Equal(t, "Luis", rows[2][3])

	raw, err := f.GetCellValue("Ventas", "G4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "5000", raw)
}

func TestPurchasesSheet_SinCompras(t *testing.T) {
	content, err := NewExporter().PurchasesSheet(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Compras"}, f.GetSheetList())
	rows, err := f.GetRows("Compras")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, purchasesHeaders, rows[0])
}
