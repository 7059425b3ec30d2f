// Package pdf genera el reporte de flujo mensual en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Compañía + contacto   │  Título + fecha de emisión │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Mes | Ventas | # | Compras | # | Flujo neto         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES del período                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorBand    = &props.Color{Red: 235, Green: 241, Blue: 247}
)

var _ analytics.FlowPDFGenerator = (*MarotoFlowGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoFlowGenerator implementa analytics.FlowPDFGenerator usando Maroto v2.
type MarotoFlowGenerator struct {
	now func() time.Time
}

// NewMarotoFlowGenerator construye el generador.
func NewMarotoFlowGenerator() *MarotoFlowGenerator { return &MarotoFlowGenerator{now: time.Now} }

// MonthlyFlowPDF genera el PDF y devuelve sus bytes.
func (g *MarotoFlowGenerator) MonthlyFlowPDF(
	_ context.Context,
	company *entity.Company,
	report *dto.MonthlyFlowReport,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Flujo mensual", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(4))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Months)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report.Months))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company *entity.Company, issued time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s",
				nonEmpty(company.Email, "—"),
				nonEmpty(company.Phone, "—"),
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FLUJO MENSUAL", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+issued.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Mes", 2, align.Left),
		h("Ventas", 3, align.Right),
		h("#", 1, align.Center),
		h("Compras", 3, align.Right),
		h("#", 1, align.Center),
		h("Flujo neto", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorBand})
}

func tableRows(months []dto.MonthlyFlowRow) []core.Row {
	result := make([]core.Row, 0, len(months))
	for _, mo := range months {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(mo.Month, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(money.Format(mo.SalesTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(fmt.Sprint(mo.SalesCount), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(money.Format(mo.PurchasesTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(fmt.Sprint(mo.PurchasesCount), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.Format(mo.NetFlow), netStyle(mo.NetFlow))),
		))
	}
	return result
}

func totalsRow(months []dto.MonthlyFlowRow) core.Row {
	var sales, purchases decimal.Decimal
	for _, mo := range months {
		sales = sales.Add(mo.SalesTotal)
		purchases = purchases.Add(mo.PurchasesTotal)
	}
	net := sales.Sub(purchases)

	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	netProps := netStyle(net)
	netProps.Size = 9
	netProps.Top = 13
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total ventas:", 1),
			label("Total compras:", 7),
			label("FLUJO NETO:", 13),
		),
		col.New(3).Add(
			value(money.Format(sales), 1),
			value(money.Format(purchases), 7),
			text.New(money.Format(net), netProps),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// netStyle flujo negativo en rojo.
func netStyle(v decimal.Decimal) props.Text {
	p := props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1}
	if v.IsNegative() {
		p.Color = colorRed
	}
	return p
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
