// Package excel implementa las planillas de exportación con excelize:
// una hoja "Cotizacion" por cotización y el maestro "Cotizaciones" con una
// fila por cotización almacenada. Las celdas monetarias llevan el número
// crudo (sin formato de moneda), igual que la exportación histórica.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

const (
	quoteSheet  = "Cotizacion"
	masterSheet = "Cotizaciones"
)

// ExcelizeWorkbooks implementa quotes.XLSXGenerator.
type ExcelizeWorkbooks struct{}

// NewExcelizeWorkbooks construye el generador.
func NewExcelizeWorkbooks() *ExcelizeWorkbooks { return &ExcelizeWorkbooks{} }

// QuoteWorkbook genera la planilla de una cotización: bloque de cabecera,
// tabla de líneas y bloque de totales.
func (g *ExcelizeWorkbooks) QuoteWorkbook(q *entity.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(quoteSheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: eliminar hoja por defecto: %w", err)
	}

	header := [][]any{
		{"COTIZACIÓN", q.Code},
		{"Fecha", q.QuoteDate},
		{"Válida hasta", q.ValidUntil},
		{"Cliente", q.ClientName},
		{"Empresa", q.ClientCompany},
		{"RUT", q.ClientRut},
		{"Email", q.ClientEmail},
		{"Teléfono", q.ClientPhone},
		{"Dirección", q.ClientAddress},
		{"Ciudad", q.ClientCity},
		{"Moneda", q.Currency},
		{"Estado", q.State},
		{"Observaciones", q.Notes},
		{},
		{"Cantidad", "Descripción", "Costo", "Margen", "Precio Unit", "Total"},
	}

	r := 1
	for _, rowVals := range header {
		if err := writeRow(f, quoteSheet, r, rowVals); err != nil {
			return nil, err
		}
		r++
	}
	for _, l := range q.Lines {
		vals := []any{num(l.Qty), l.Name, num(l.Cost), num(l.Margin), num(l.UnitPrice), num(l.Total)}
		if err := writeRow(f, quoteSheet, r, vals); err != nil {
			return nil, err
		}
		r++
	}
	r++ // fila en blanco antes de totales
	totals := [][]any{
		{"SUBTOTAL", num(q.Totals.Sub)},
		{"IVA 19%", num(q.Totals.IVA)},
		{"TOTAL", num(q.Totals.Tot)},
	}
	for _, rowVals := range totals {
		if err := writeRow(f, quoteSheet, r, rowVals); err != nil {
			return nil, err
		}
		r++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// MasterWorkbook genera el maestro: una fila por cotización.
func (g *ExcelizeWorkbooks) MasterWorkbook(all []*entity.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(masterSheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: eliminar hoja por defecto: %w", err)
	}

	head := []any{
		"codigo", "fecha", "valida_hasta", "cliente", "empresa", "rut",
		"email", "telefono", "direccion", "ciudad", "moneda",
		"subtotal", "iva", "total", "estado", "proximo_contacto", "observaciones",
	}
	if err := writeRow(f, masterSheet, 1, head); err != nil {
		return nil, err
	}
	for i, q := range all {
		vals := []any{
			q.Code, q.QuoteDate, q.ValidUntil, q.ClientName, q.ClientCompany,
			q.ClientRut, q.ClientEmail, q.ClientPhone, q.ClientAddress,
			q.ClientCity, q.Currency,
			num(q.Totals.Sub), num(q.Totals.IVA), num(q.Totals.Tot),
			q.State, q.NextContact, q.Notes,
		}
		if err := writeRow(f, masterSheet, i+2, vals); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRow escribe los valores de una fila a partir de la columna A.
func writeRow(f *excelize.File, sheet string, row int, vals []any) error {
	for i, v := range vals {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("xlsx: celda (%d,%d): %w", i+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("xlsx: escribir %s: %w", cell, err)
		}
	}
	return nil
}

// num convierte un decimal a float64 para la celda. La pérdida de precisión
// no importa aquí: los montos ya vienen redondeados por la política de la
// moneda.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
