package pdf

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

func TestMonthlyFlowPDF_GeneraDocumento(t *testing.T) {
	company := &entity.Company{Name: "Tienda Uno", Email: "uno@tienda.co"}
	report := &dto.MonthlyFlowReport{Months: []dto.MonthlyFlowRow{
		{Month: "2026-01", SalesTotal: decimal.NewFromInt(120000), SalesCount: 4,
			PurchasesTotal: decimal.NewFromInt(80000), PurchasesCount: 2, NetFlow: decimal.NewFromInt(40000)},
		{Month: "2026-02", SalesTotal: decimal.Zero, PurchasesTotal: decimal.NewFromInt(15000),
			PurchasesCount: 1, NetFlow: decimal.NewFromInt(-15000)},
	}}

	content, err := NewMarotoFlowGenerator().MonthlyFlowPDF(context.Background(), company, report)
	require.NoError(t, err)
	assert.True(t, len(content) > 4)
	assert.Equal(t, "%PDF", string(content[:4]))
}
