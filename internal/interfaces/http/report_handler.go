package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
)

// ReportHandler reportes de negocio y exportaciones.
type ReportHandler struct {
	reports *analytics.ReportUseCase
	exports *analytics.ExportUseCase
}

func NewReportHandler(reports *analytics.ReportUseCase, exports *analytics.ExportUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// Statistics godoc
// @Summary      Estadísticas generales (ventas, compras, stock bajo)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatisticsReport
// @Router       /api/reports/statistics [get]
func (h *ReportHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.reports.Statistics(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Profitability godoc
// @Summary      Rentabilidad por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query     string  false  "YYYY-MM-DD (por defecto hace 30 días)"
// @Param        end_date    query     string  false  "YYYY-MM-DD (por defecto hoy)"
// @Param        limit       query     int     false  "Máximo de productos"
// @Success      200         {object}  dto.ProfitabilityReport
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/reports/profitability [get]
func (h *ReportHandler) Profitability(c *fiber.Ctx) error {
	start, err := queryDate(c, "start_date", false)
	if err != nil {
		return respondError(c, err)
	}
	end, err := queryDate(c, "end_date", true)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.Profitability(c.Context(), GetUserID(c), start, end, c.QueryInt("limit", analytics.DefaultProfitLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rotation godoc
// @Summary      Rotación de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query     int  false  "Días del período (máx. 365)"
// @Success      200   {object}  dto.RotationReport
// @Router       /api/reports/inventory-rotation [get]
func (h *ReportHandler) Rotation(c *fiber.Ctx) error {
	out, err := h.reports.Rotation(c.Context(), GetUserID(c), c.QueryInt("days", analytics.DefaultPeriodDays))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PurchaseForecast godoc
// @Summary      Sugerencia de compras por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days         query     int  false  "Días de historial de ventas"
// @Param        horizon      query     int  false  "Días a cubrir"
// @Param        safety_days  query     int  false  "Días de stock de seguridad"
// @Success      200          {object}  dto.PurchaseForecastReport
// @Router       /api/reports/purchase-forecast [get]
func (h *ReportHandler) PurchaseForecast(c *fiber.Ctx) error {
	out, err := h.reports.PurchaseForecast(c.Context(), GetUserID(c),
		c.QueryInt("days", analytics.DefaultPeriodDays),
		c.QueryInt("horizon", analytics.DefaultForecastHorizon),
		c.QueryInt("safety_days", analytics.DefaultSafetyDays),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MonthlyFlow godoc
// @Summary      Flujo mensual de ventas y compras
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        months  query     int  false  "Meses hacia atrás (máx. 36)"
// @Success      200     {object}  dto.MonthlyFlowReport
// @Router       /api/reports/monthly-flow [get]
func (h *ReportHandler) MonthlyFlow(c *fiber.Ctx) error {
	out, err := h.reports.MonthlyFlow(c.Context(), GetUserID(c), c.QueryInt("months", analytics.DefaultMonths))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecentMovements godoc
// @Summary      Últimos movimientos (ventas y compras)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query     int  false  "Cantidad (máx. 50)"
// @Success      200    {object}  dto.RecentMovementsReport
// @Router       /api/reports/recent-movements [get]
func (h *ReportHandler) RecentMovements(c *fiber.Ctx) error {
	out, err := h.reports.RecentMovements(c.Context(), GetUserID(c), c.QueryInt("limit", analytics.DefaultMovementsLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportSales godoc
// @Summary      Exportar ventas a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export/sales.xlsx [get]
func (h *ReportHandler) ExportSales(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := h.exports.SalesXLSX(c.Context(), GetUserID(c), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

// ExportPurchases godoc
// @Summary      Exportar compras a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export/purchases.xlsx [get]
func (h *ReportHandler) ExportPurchases(c *fiber.Ctx) error {
	start, end, err := period(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := h.exports.PurchasesXLSX(c.Context(), GetUserID(c), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

// MonthlyFlowPDF godoc
// @Summary      Flujo mensual en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        months  query  int  false  "Meses hacia atrás (máx. 36)"
// @Success      200  {file}  file
// @Router       /api/reports/monthly-flow.pdf [get]
func (h *ReportHandler) MonthlyFlowPDF(c *fiber.Ctx) error {
	f, err := h.exports.MonthlyFlowPDF(c.Context(), GetUserID(c), c.QueryInt("months", analytics.DefaultMonths))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

func period(c *fiber.Ctx) (start, end time.Time, err error) {
	if start, err = queryDate(c, "start_date", false); err != nil {
		return
	}
	end, err = queryDate(c, "end_date", true)
	return
}

func sendFile(c *fiber.Ctx, f *analytics.File) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return c.Send(f.Content)
}
