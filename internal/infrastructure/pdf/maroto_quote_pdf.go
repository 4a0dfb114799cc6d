// Package pdf implementa la página imprimible de una cotización con Maroto v2.
//
// Layout de la página A4 (misma estructura que la planilla histórica DMYC):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: COTIZACIÓN      │  Razón social + RUT + dirección   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  N° / Fecha / Válida hasta        │  Moneda / Estado         │
//	│  CLIENTE: nombre, empresa, RUT, contacto, dirección          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | Costo | % | P. Unit | Total     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: SUBTOTAL / IVA 19% / TOTAL                         │
//	│  OBS + datos de transferencia                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appconfig "github.com/fmesac11-dmyc/dmyc-cotizaciones/pkg/config"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 11, Green: 74, Blue: 162}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoQuotePDF implementa quotes.PDFGenerator usando Maroto v2.
type MarotoQuotePDF struct {
	business appconfig.BusinessConfig
}

// NewMarotoQuotePDF construye el generador con el membrete del negocio.
func NewMarotoQuotePDF(business appconfig.BusinessConfig) *MarotoQuotePDF {
	return &MarotoQuotePDF{business: business}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoQuotePDF) Generate(_ context.Context, q *entity.Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+q.Code, true).
		WithAuthor(g.business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.metaRow(q))
	m.AddRows(g.clientRows(q)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(q) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(q))

	m.AddRows(g.footerRows(q)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y membrete del negocio (der).
func (g *MarotoQuotePDF) headerRow(q *entity.Quote) core.Row {
	return row.New(18).Add(
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 2,
			}),
			text.New(q.Code, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 12,
			}),
		),
		col.New(7).Add(
			text.New(g.business.Name+" "+g.business.TaxID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New(g.business.Address, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New(g.business.Email, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// metaRow: fechas (izq) y moneda/estado (der).
func (g *MarotoQuotePDF) metaRow(q *entity.Quote) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("Fecha: "+q.QuoteDate, props.Text{Size: 9, Top: 1}),
			text.New("Válida hasta: "+q.ValidUntil, props.Text{Size: 9, Top: 6}),
		),
		col.New(5).Add(
			text.New("Moneda: "+q.Currency, props.Text{Size: 9, Align: align.Right, Top: 1}),
			text.New("Estado: "+q.State, props.Text{Size: 9, Align: align.Right, Top: 6}),
		),
	)
}

// clientRows: bloque con la identidad del cliente.
func (g *MarotoQuotePDF) clientRows(q *entity.Quote) []core.Row {
	contact := joinNonEmpty(" | ", q.ClientEmail, q.ClientPhone)
	address := joinNonEmpty(", ", q.ClientAddress, q.ClientCity)
	return []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(q.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(joinNonEmpty("   |   ",
				prefixed("Empresa: ", q.ClientCompany),
				prefixed("RUT: ", q.ClientRut),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(contact, props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New(address, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)),
	}
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Costo", 2, align.Right),
		h("%", 1, align.Center),
		h("P. Unit", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableLineRows: una fila por línea de la cotización.
func tableLineRows(q *entity.Quote) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	rows := make([]core.Row, 0, len(q.Lines))
	for _, l := range q.Lines {
		qty := l.Qty.String()
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		rows = append(rows, row.New(7).Add(
			cell(qty, 1, align.Center),
			cell(l.Name, 5, align.Left),
			cell(FormatMoney(l.Cost, q.Currency), 2, align.Right),
			cell(l.Margin.String(), 1, align.Center),
			cell(FormatMoney(l.UnitPrice, q.Currency), 1, align.Right),
			cell(FormatMoney(l.Total, q.Currency), 2, align.Right),
		))
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(q *entity.Quote) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("SUBTOTAL:"),
			text.New("IVA 19%:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 7,
			}),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 15,
			}),
		),
		col.New(3).Add(
			text.New(FormatMoney(q.Totals.Sub, q.Currency), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			text.New(FormatMoney(q.Totals.IVA, q.Currency), props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 7,
			}),
			text.New(FormatMoney(q.Totals.Tot, q.Currency), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 15,
			}),
		),
	)
}

// footerRows: observaciones + datos de transferencia + cierre.
func (g *MarotoQuotePDF) footerRows(q *entity.Quote) []core.Row {
	notes := q.Notes
	if notes == "" {
		notes = "-"
	}
	return []core.Row{
		line.NewRow(3),
		row.New(14).Add(col.New(12).Add(
			text.New("OBS:", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New(notes, props.Text{Size: 9, Top: 6, Color: colorGray}),
		)),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(12).Add(col.New(12).Add(
			text.New("TRANSFERENCIA:", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New(g.business.BankLine, props.Text{Size: 9, Top: 6}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(g.business.Closing, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 3,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatMoney presenta un monto según la convención es-CL: separador de miles
// con punto y coma decimal. CLP va sin decimales (los montos son enteros por
// política de redondeo); otras monedas llevan dos.
//
//	CLP 1234567   → "$ 1.234.567"
//	USD 1234.5    → "US$ 1.234,50"
func FormatMoney(v decimal.Decimal, currency string) string {
	prefix := "$ "
	places := 0
	if currency != entity.CurrencyCLP {
		prefix = "US$ "
		places = 2
	}
	s := v.StringFixed(int32(places))

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")

	out := groupThousands(intPart)
	if fracPart != "" {
		out += "," + fracPart
	}
	if neg {
		out = "-" + out
	}
	return prefix + out
}

// groupThousands inserta puntos de miles en un string de dígitos.
// "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}
