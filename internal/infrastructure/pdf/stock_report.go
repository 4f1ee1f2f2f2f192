// Package pdf genera el reporte imprimible de inventario valorizado del dashboard.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del reporte    │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Valor del stock  |  Unidades vendidas                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Stock | Valor                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP CATEGORÍAS: Categoría | Productos                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.StockReportGenerator = (*StockReportGenerator)(nil)

// StockReportGenerator implementa ports.StockReportGenerator usando Maroto v2.
type StockReportGenerator struct {
	title string
}

// NewStockReportGenerator construye el generador. title aparece en el encabezado y los metadatos.
func NewStockReportGenerator(title string) *StockReportGenerator {
	if title == "" {
		title = "Inventario"
	}
	return &StockReportGenerator{title: title}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(ctx context.Context, s *dto.DashboardSummaryDTO) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock - "+g.title, true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("STOCK POR CATEGORÍA"))
	m.AddRows(stockHeaderRow())
	m.AddRows(stockRows(s.StockByCategory)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("CATEGORÍAS CON MÁS PRODUCTOS"))
	m.AddRows(topRows(s.TopCategories)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, s *dto.DashboardSummaryDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+s.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func kpiRow(s *dto.DashboardSummaryDTO) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(6).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 6}),
		)
	}
	return row.New(16).Add(
		kpi("VALOR DEL STOCK", "$"+formatMoney(s.StockValue)),
		kpi("UNIDADES VENDIDAS", formatInt(s.TotalSales)),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func stockHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Categoría", 6, align.Left),
		h("Stock", 2, align.Right),
		h("Valor", 4, align.Right),
	)
}

func stockRows(items []dto.CategoryStockDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Sin stock registrado")}
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(it.CategoryName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatInt(it.TotalStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(4).Add(text.New("$"+formatMoney(it.TotalValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func topRows(items []dto.TopCategoryDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Sin categorías")}
	}
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1)+".", props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(7).Add(text.New(it.CategoryName, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(formatInt(it.ProductCount)+" productos", props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney redondea a pesos enteros e inserta puntos de miles.
// Ej: 25000.4 → "25.000", -1234 → "-1.234"
func formatMoney(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(0))
}

func formatInt(n int64) string {
	return groupThousands(strconv.FormatInt(n, 10))
}

// groupThousands inserta puntos de miles en un string numérico sin decimales (con signo opcional).
func groupThousands(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
