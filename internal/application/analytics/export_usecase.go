package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// File archivo generado listo para descargar.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Tipos de contenido de las exportaciones.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// ExportUseCase exporta ventas y compras a xlsx y el flujo mensual a PDF.
type ExportUseCase struct {
	repo    repository.ReportRepository
	tenant  *usecase.TenantResolver
	reports *ReportUseCase
	sheets  SpreadsheetExporter
	pdf     FlowPDFGenerator
	now     func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	repo repository.ReportRepository,
	tenant *usecase.TenantResolver,
	reports *ReportUseCase,
	sheets SpreadsheetExporter,
	pdf FlowPDFGenerator,
) *ExportUseCase {
	return &ExportUseCase{repo: repo, tenant: tenant, reports: reports, sheets: sheets, pdf: pdf, now: time.Now}
}

// period rango por defecto: últimos 30 días. ErrInvalidInput si start > end.
func (uc *ExportUseCase) period(start, end time.Time) (time.Time, time.Time, error) {
	if end.IsZero() {
		end = uc.now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -DefaultPeriodDays)
	}
	if start.After(end) {
		return start, end, fmt.Errorf("%w: la fecha inicial es posterior a la final", domain.ErrInvalidInput)
	}
	return start, end, nil
}

// SalesXLSX ventas de la compañía entre start y end.
func (uc *ExportUseCase) SalesXLSX(ctx context.Context, userID string, start, end time.Time) (*File, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	start, end, err = uc.period(start, end)
	if err != nil {
		return nil, err
	}
	sales, err := uc.repo.SalesBetween(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("exportar ventas: %w", err)
	}
	content, err := uc.sheets.SalesSheet(sales)
	if err != nil {
		return nil, fmt.Errorf("exportar ventas: %w", err)
	}
	return &File{Name: fileName("ventas", start, end, "xlsx"), ContentType: ContentTypeXLSX, Content: content}, nil
}

// PurchasesXLSX compras de la compañía entre start y end.
func (uc *ExportUseCase) PurchasesXLSX(ctx context.Context, userID string, start, end time.Time) (*File, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	start, end, err = uc.period(start, end)
	if err != nil {
		return nil, err
	}
	purchases, err := uc.repo.PurchasesBetween(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("exportar compras: %w", err)
	}
	content, err := uc.sheets.PurchasesSheet(purchases)
	if err != nil {
		return nil, fmt.Errorf("exportar compras: %w", err)
	}
	return &File{Name: fileName("compras", start, end, "xlsx"), ContentType: ContentTypeXLSX, Content: content}, nil
}

// MonthlyFlowPDF flujo mensual en PDF con el encabezado de la compañía.
func (uc *ExportUseCase) MonthlyFlowPDF(ctx context.Context, userID string, months int) (*File, error) {
	company, err := uc.tenant.CompanyOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	report, err := uc.reports.monthlyFlow(ctx, company.ID, months)
	if err != nil {
		return nil, err
	}
	content, err := uc.pdf.MonthlyFlowPDF(ctx, company, report)
	if err != nil {
		return nil, fmt.Errorf("pdf: generación fallida: %w", err)
	}
	name := fmt.Sprintf("flujo_mensual_%s.pdf", uc.now().Format("2006-01"))
	return &File{Name: name, ContentType: ContentTypePDF, Content: content}, nil
}

func fileName(prefix string, start, end time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", prefix, start.Format("20060102"), end.Format("20060102"), ext)
}
