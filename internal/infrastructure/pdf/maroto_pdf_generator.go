// Package pdf implementa la exportación de reportes del taller usando
// Maroto v2: eficiencia por funcionario y producción reciente.
package pdf

import (
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

	"github.com/pukassein/teysa/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa usecase.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ usecase.PDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

func titleRows(title string) []core.Row {
	return []core.Row{
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
				}),
				text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
					Size: 8, Top: 8, Color: colorGray,
				}),
			),
		),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

func headerCell(width int, label string) core.Col {
	return col.New(width).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary,
	}))
}

func cell(width int, value string, alignTo align.Type) core.Col {
	return col.New(width).Add(text.New(value, props.Text{Size: 9, Align: alignTo}))
}

// WorkerEfficiencyPDF genera el reporte de eficiencia por funcionario.
func (g *MarotoPDFGenerator) WorkerEfficiencyPDF(title string, rows []usecase.WorkerEfficiencyRow) ([]byte, error) {
	m := newDocument(title)
	for _, r := range titleRows(title) {
		m.AddRows(r)
	}

	m.AddRows(row.New(7).Add(
		headerCell(4, "Funcionario"),
		headerCell(2, "Tareas"),
		headerCell(2, "Estimado (h)"),
		headerCell(2, "Real (h)"),
		headerCell(2, "Eficiencia"),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	for _, r := range rows {
		eff := "-"
		if r.ActualHours > 0 {
			eff = fmt.Sprintf("%.1f%%", r.Efficiency)
		}
		m.AddRows(row.New(6).Add(
			cell(4, r.WorkerName, align.Left),
			cell(2, fmt.Sprintf("%d", r.TasksCompleted), align.Right),
			cell(2, fmt.Sprintf("%.2f", r.EstimatedHours), align.Right),
			cell(2, fmt.Sprintf("%.2f", r.ActualHours), align.Right),
			cell(2, eff, align.Right),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de eficiencia: %w", err)
	}
	return doc.GetBytes(), nil
}

// ProductionPDF genera el reporte de producción reciente.
func (g *MarotoPDFGenerator) ProductionPDF(title string, rows []usecase.ProductionReportRow) ([]byte, error) {
	m := newDocument(title)
	for _, r := range titleRows(title) {
		m.AddRows(r)
	}

	m.AddRows(row.New(7).Add(
		headerCell(3, "Fecha"),
		headerCell(4, "Funcionario"),
		headerCell(3, "Artículo"),
		headerCell(2, "Cantidad"),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	for _, r := range rows {
		m.AddRows(row.New(6).Add(
			cell(3, r.Date.Format("02/01/2006"), align.Left),
			cell(4, r.WorkerName, align.Left),
			cell(3, r.ItemName, align.Left),
			cell(2, r.Quantity.String(), align.Right),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de producción: %w", err)
	}
	return doc.GetBytes(), nil
}
