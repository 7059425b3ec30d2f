// Package analytics contiene los reportes de negocio de una compañía: resumen
// general, rentabilidad, rotación de inventario, sugerencia de compras, flujo
// mensual y movimientos recientes, más sus exportaciones.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/inventory"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// Valores por defecto y límites de los parámetros de los reportes.
const (
	LowStockThreshold      = 5
	DefaultPeriodDays      = 30
	DefaultProfitLimit     = 20
	DefaultForecastHorizon = 15
	DefaultSafetyDays      = 7
	DefaultMonths          = 12
	MaxMonths              = 36
	DefaultMovementsLimit  = 10
	MaxMovementsLimit      = 50
	MaxPeriodDays          = 365
)

// ReportUseCase genera los reportes. Los resultados se cachean por compañía;
// cache puede ser nil (sin Redis).
type ReportUseCase struct {
	repo   repository.ReportRepository
	tenant *usecase.TenantResolver
	cache  ports.ReportCache
	ttl    time.Duration
	log    *logger.Logger
	now    func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	repo repository.ReportRepository,
	tenant *usecase.TenantResolver,
	cache ports.ReportCache,
	ttl time.Duration,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{repo: repo, tenant: tenant, cache: cache, ttl: ttl, log: log.Named("reports"), now: time.Now}
}

// cached devuelve la entrada de cache si existe; si no, construye el reporte y lo guarda.
// Los errores de cache solo se registran: el reporte se sirve igual desde la DB.
// La versión se lee antes de construir; sin ella (cache caída) no se guarda nada.
func cached[T any](ctx context.Context, uc *ReportUseCase, companyID, key string, build func() (*T, error)) (*T, error) {
	var (
		version int64
		store   bool
	)
	if uc.cache != nil {
		var hit T
		found, v, err := uc.cache.Get(ctx, companyID, key, &hit)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Str("key", key).Msg("lectura de cache fallida")
		case found:
			return &hit, nil
		default:
			version, store = v, true
		}
	}
	out, err := build()
	if err != nil {
		return nil, err
	}
	if store {
		if err := uc.cache.Set(ctx, companyID, key, version, out, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("escritura de cache fallida")
		}
	}
	return out, nil
}

// Statistics resumen general de ventas, compras e inventario.
func (uc *ReportUseCase) Statistics(ctx context.Context, userID string) (*dto.StatisticsReport, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cached(ctx, uc, companyID, "statistics", func() (*dto.StatisticsReport, error) {
		t, err := uc.repo.Totals(ctx, companyID, LowStockThreshold)
		if err != nil {
			return nil, fmt.Errorf("reportes: totales: %w", err)
		}
		return &dto.StatisticsReport{
			Sales:          summary(t.SalesTotal, t.SalesCount),
			Purchases:      summary(t.PurchasesTotal, t.PurchasesCount),
			ProductsCount:  t.ProductsCount,
			StockUnits:     t.StockUnits,
			InventoryValue: t.InventoryValue.Round(2),
			LowStockCount:  t.LowStockCount,
			LowStockLimit:  LowStockThreshold,
		}, nil
	})
}

func summary(total decimal.Decimal, count int) dto.AmountSummary {
	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(int64(count))).Round(2)
	}
	return dto.AmountSummary{Total: total.Round(2), Count: count, Average: avg}
}

// Profitability utilidad bruta por producto entre start y end (por defecto los últimos 30 días).
// El costo usa el costo unitario promedio ponderado de todas las compras del producto.
func (uc *ReportUseCase) Profitability(ctx context.Context, userID string, start, end time.Time, limit int) (*dto.ProfitabilityReport, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if end.IsZero() {
		end = uc.now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -DefaultPeriodDays)
	}
	if limit <= 0 {
		limit = DefaultProfitLimit
	}
	key := fmt.Sprintf("profitability:%s:%s:%d", start.Format("2006-01-02"), end.Format("2006-01-02"), limit)

	return cached(ctx, uc, companyID, key, func() (*dto.ProfitabilityReport, error) {
		activity, err := uc.repo.ProductActivity(ctx, companyID, start, end)
		if err != nil {
			return nil, fmt.Errorf("reportes: actividad por producto: %w", err)
		}
		rows := make([]dto.ProfitabilityRow, 0, len(activity))
		totals := dto.ProfitabilityRow{ProductName: "Total"}
		for _, a := range activity {
			if a.UnitsSold <= 0 {
				continue
			}
			unitCost := inventory.AverageUnitCost(a.AllTimePurchaseCost, a.AllTimeUnitsPurchased)
			cost := unitCost.Mul(decimal.NewFromInt(a.UnitsSold)).Round(2)
			row := dto.ProfitabilityRow{
				ProductID:   a.ProductID,
				ProductName: a.ProductName,
				UnitsSold:   a.UnitsSold,
				Revenue:     a.Revenue.Round(2),
				Cost:        cost,
				GrossProfit: a.Revenue.Sub(cost).Round(2),
			}
			row.MarginPct = marginPct(row.GrossProfit, row.Revenue)
			rows = append(rows, row)

			totals.UnitsSold += row.UnitsSold
			totals.Revenue = totals.Revenue.Add(row.Revenue)
			totals.Cost = totals.Cost.Add(row.Cost)
			totals.GrossProfit = totals.GrossProfit.Add(row.GrossProfit)
		}
		totals.MarginPct = marginPct(totals.GrossProfit, totals.Revenue)

		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].GrossProfit.GreaterThan(rows[j].GrossProfit)
		})
		if len(rows) > limit {
			rows = rows[:limit]
		}
		return &dto.ProfitabilityReport{StartDate: start, EndDate: end, Products: rows, Totals: totals}, nil
	})
}

func marginPct(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}

// Rotation rotación de inventario por producto en los últimos days días, de mayor a menor.
func (uc *ReportUseCase) Rotation(ctx context.Context, userID string, days int) (*dto.RotationReport, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	days = clampDays(days)

	return cached(ctx, uc, companyID, fmt.Sprintf("rotation:%d", days), func() (*dto.RotationReport, error) {
		end := uc.now()
		activity, err := uc.repo.ProductActivity(ctx, companyID, end.AddDate(0, 0, -days), end)
		if err != nil {
			return nil, fmt.Errorf("reportes: actividad por producto: %w", err)
		}
		rows := make([]dto.RotationRow, 0, len(activity))
		for _, a := range activity {
			r := inventory.ComputeRotation(a.Stock, int(a.UnitsSold), int(a.UnitsPurchased), days)
			rows = append(rows, dto.RotationRow{
				ProductID:        a.ProductID,
				ProductName:      a.ProductName,
				UnitsSold:        a.UnitsSold,
				UnitsPurchased:   a.UnitsPurchased,
				CurrentStock:     a.Stock,
				OpeningStock:     int64(r.OpeningStock),
				AverageInventory: r.AverageInventory,
				Rotation:         r.Ratio,
				DaysOfInventory:  r.DaysOfInventory,
				Classification:   r.Class,
			})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rotation > rows[j].Rotation })
		return &dto.RotationReport{Days: days, Products: rows}, nil
	})
}

// PurchaseForecast sugerencia de compra por producto a partir de la venta diaria promedio
// de los últimos days días. Solo incluye productos con cantidad sugerida > 0.
func (uc *ReportUseCase) PurchaseForecast(ctx context.Context, userID string, days, horizon, safetyDays int) (*dto.PurchaseForecastReport, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	days = clampDays(days)
	if horizon <= 0 {
		horizon = DefaultForecastHorizon
	}
	if safetyDays < 0 {
		safetyDays = DefaultSafetyDays
	}
	key := fmt.Sprintf("purchase-forecast:%d:%d:%d", days, horizon, safetyDays)

	return cached(ctx, uc, companyID, key, func() (*dto.PurchaseForecastReport, error) {
		end := uc.now()
		activity, err := uc.repo.ProductActivity(ctx, companyID, end.AddDate(0, 0, -days), end)
		if err != nil {
			return nil, fmt.Errorf("reportes: actividad por producto: %w", err)
		}
		rows := make([]dto.PurchaseForecastRow, 0)
		total := decimal.Zero
		for _, a := range activity {
			row, ok := forecastRow(a, days, horizon, safetyDays)
			if !ok {
				continue
			}
			total = total.Add(row.EstimatedCost)
			rows = append(rows, row)
		}

		// Primero el que se agota antes; sin ventas (sin fecha de agotamiento) al final.
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].DaysUntilStockout, rows[j].DaysUntilStockout
			switch {
			case a != nil && b != nil && *a != *b:
				return *a < *b
			case a != nil && b == nil:
				return true
			case a == nil && b != nil:
				return false
			}
			return rows[i].SuggestedQty > rows[j].SuggestedQty
		})
		for i := range rows {
			rows[i].Priority = i + 1
		}
		return &dto.PurchaseForecastReport{
			Days:          days,
			Horizon:       horizon,
			SafetyDays:    safetyDays,
			Products:      rows,
			TotalEstimate: total.Round(2),
		}, nil
	})
}

func forecastRow(a repository.ProductActivity, days, horizon, safetyDays int) (dto.PurchaseForecastRow, bool) {
	avg := float64(a.UnitsSold) / float64(days)
	demand := avg * float64(horizon)
	safety := avg * float64(safetyDays)
	suggested := int64(math.Ceil(math.Max(0, demand+safety-float64(a.Stock))))
	if suggested <= 0 {
		return dto.PurchaseForecastRow{}, false
	}
	unitCost := inventory.AverageUnitCost(a.AllTimePurchaseCost, a.AllTimeUnitsPurchased).Round(2)
	row := dto.PurchaseForecastRow{
		ProductID:       a.ProductID,
		ProductName:     a.ProductName,
		CurrentStock:    a.Stock,
		AvgDailySales:   round(avg, 2),
		ProjectedDemand: round(demand, 2),
		SafetyStock:     round(safety, 2),
		SuggestedQty:    suggested,
		AvgUnitCost:     unitCost,
		EstimatedCost:   unitCost.Mul(decimal.NewFromInt(suggested)).Round(2),
	}
	if avg > 0 {
		d := round(float64(a.Stock)/avg, 1)
		row.DaysUntilStockout = &d
	}
	return row, true
}

// MonthlyFlow ventas y compras de los últimos months meses (incluido el actual), del más
// antiguo al más reciente. Los meses sin movimientos aparecen en cero.
func (uc *ReportUseCase) MonthlyFlow(ctx context.Context, userID string, months int) (*dto.MonthlyFlowReport, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.monthlyFlow(ctx, companyID, months)
}

func (uc *ReportUseCase) monthlyFlow(ctx context.Context, companyID string, months int) (*dto.MonthlyFlowReport, error) {
	if months <= 0 {
		months = DefaultMonths
	}
	if months > MaxMonths {
		months = MaxMonths
	}

	return cached(ctx, uc, companyID, fmt.Sprintf("monthly-flow:%d", months), func() (*dto.MonthlyFlowReport, error) {
		now := uc.now()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)

		// Ventas y compras en paralelo
		type result struct {
			rows []repository.MonthlyAmount
			err  error
		}
		salesCh := make(chan result, 1)
		purchasesCh := make(chan result, 1)
		go func() {
			rows, err := uc.repo.MonthlySales(ctx, companyID, first)
			salesCh <- result{rows, err}
		}()
		go func() {
			rows, err := uc.repo.MonthlyPurchases(ctx, companyID, first)
			purchasesCh <- result{rows, err}
		}()
		sales := <-salesCh
		purchases := <-purchasesCh
		if sales.err != nil {
			return nil, fmt.Errorf("reportes: ventas mensuales: %w", sales.err)
		}
		if purchases.err != nil {
			return nil, fmt.Errorf("reportes: compras mensuales: %w", purchases.err)
		}

		out := make([]dto.MonthlyFlowRow, months)
		index := make(map[string]int, months)
		for i := 0; i < months; i++ {
			label := first.AddDate(0, i, 0).Format("2006-01")
			out[i] = dto.MonthlyFlowRow{Month: label, SalesTotal: decimal.Zero, PurchasesTotal: decimal.Zero, NetFlow: decimal.Zero}
			index[label] = i
		}
		for _, m := range sales.rows {
			if i, ok := index[m.Month.Format("2006-01")]; ok {
				out[i].SalesTotal = m.Total.Round(2)
				out[i].SalesCount = m.Count
			}
		}
		for _, m := range purchases.rows {
			if i, ok := index[m.Month.Format("2006-01")]; ok {
				out[i].PurchasesTotal = m.Total.Round(2)
				out[i].PurchasesCount = m.Count
			}
		}
		for i := range out {
			out[i].NetFlow = out[i].SalesTotal.Sub(out[i].PurchasesTotal)
		}
		return &dto.MonthlyFlowReport{Months: out}, nil
	})
}

// RecentMovements últimas ventas y compras mezcladas, la más reciente primero.
func (uc *ReportUseCase) RecentMovements(ctx context.Context, userID string, limit int) (*dto.RecentMovementsReport, error) {
	companyID, err := uc.tenant.CompanyIDOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMovementsLimit
	}
	if limit > MaxMovementsLimit {
		limit = MaxMovementsLimit
	}

	return cached(ctx, uc, companyID, fmt.Sprintf("recent-movements:%d", limit), func() (*dto.RecentMovementsReport, error) {
		moves, err := uc.repo.RecentMovements(ctx, companyID, limit)
		if err != nil {
			return nil, fmt.Errorf("reportes: movimientos recientes: %w", err)
		}
		rows := make([]dto.MovementRow, 0, len(moves))
		for _, m := range moves {
			rows = append(rows, dto.MovementRow{
				Type:         m.Type,
				ID:           m.ID,
				Date:         m.Date,
				ProductID:    m.ProductID,
				ProductName:  m.ProductName,
				Quantity:     m.Quantity,
				Amount:       m.Amount.Round(2),
				Counterparty: m.Counterparty,
			})
		}
		return &dto.RecentMovementsReport{Movements: rows}, nil
	})
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultPeriodDays
	}
	if days > MaxPeriodDays {
		return MaxPeriodDays
	}
	return days
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
