package analytics

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SpreadsheetExporter genera hojas de cálculo (xlsx) con los movimientos.
type SpreadsheetExporter interface {
	SalesSheet(sales []*entity.Sale) ([]byte, error)
	PurchasesSheet(purchases []*entity.Purchase) ([]byte, error)
}

// FlowPDFGenerator genera el PDF del flujo mensual.
type FlowPDFGenerator interface {
	MonthlyFlowPDF(ctx context.Context, company *entity.Company, report *dto.MonthlyFlowReport) ([]byte, error)
}
