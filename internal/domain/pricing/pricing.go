// Package pricing implementa el motor de precios de las cotizaciones
// (servicio de dominio, funciones puras y síncronas).
//
// El margen se define sobre el precio de venta, no sobre el costo:
//
//	precio = costo / (1 − margen/100)        ⇒  (precio − costo) / precio = margen/100
//
// Política de redondeo por moneda: en CLP todo monto (precio unitario, total
// de línea, subtotal, IVA, total) se redondea a entero en el momento del
// cálculo; en otras monedas se conservan dos decimales. Los totales
// persistidos deben coincidir con lo que se muestra y exporta.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// IVARate es la tasa de IVA fija (Chile, 19%).
var IVARate = decimal.NewFromFloat(0.19)

var hundred = decimal.NewFromInt(100)

// RoundMoney aplica la política de redondeo de la moneda.
func RoundMoney(v decimal.Decimal, currency string) decimal.Decimal {
	if currency == entity.CurrencyCLP {
		return v.Round(0)
	}
	return v.Round(2)
}

// UnitPrice deriva el precio unitario desde costo y margen. Devuelve cero si
// el costo no es positivo o el margen queda fuera de [0, 100): la división
// por cero y los precios negativos se cortan aquí, en silencio.
func UnitPrice(cost, marginPct decimal.Decimal, currency string) decimal.Decimal {
	if cost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if marginPct.IsNegative() || marginPct.GreaterThanOrEqual(hundred) {
		return decimal.Zero
	}
	price := cost.Div(decimal.NewFromInt(1).Sub(marginPct.Div(hundred)))
	return RoundMoney(price, currency)
}

// LineTotal calcula cantidad × precio unitario, redondeado según la moneda.
func LineTotal(qty, cost, marginPct decimal.Decimal, currency string) decimal.Decimal {
	return RoundMoney(qty.Mul(UnitPrice(cost, marginPct, currency)), currency)
}

// ValidLine indica si una línea participa de los totales: descripción no
// vacía y cantidad positiva.
func ValidLine(l entity.QuoteLine) bool {
	return strings.TrimSpace(l.Name) != "" && l.Qty.GreaterThan(decimal.Zero)
}

// FilterLines devuelve solo las líneas válidas, con UnitPrice y Total
// derivados ya resueltos bajo la moneda dada.
func FilterLines(lines []entity.QuoteLine, currency string) []entity.QuoteLine {
	out := make([]entity.QuoteLine, 0, len(lines))
	for _, l := range lines {
		if !ValidLine(l) {
			continue
		}
		l.Name = strings.TrimSpace(l.Name)
		l.UnitPrice = UnitPrice(l.Cost, l.Margin, currency)
		l.Total = RoundMoney(l.Qty.Mul(l.UnitPrice), currency)
		out = append(out, l)
	}
	return out
}

// Totals recalcula subtotal, IVA y total para un conjunto de líneas. Las
// líneas no válidas se excluyen. En CLP los tres valores son enteros y
// sub + iva == tot exacto.
func Totals(lines []entity.QuoteLine, currency string) entity.Totals {
	sub := decimal.Zero
	for _, l := range FilterLines(lines, currency) {
		sub = sub.Add(l.Total)
	}
	sub = RoundMoney(sub, currency)
	iva := RoundMoney(sub.Mul(IVARate), currency)
	return entity.Totals{
		Sub: sub,
		IVA: iva,
		Tot: sub.Add(iva),
	}
}

// ParseDecimal interpreta entrada numérica del formulario con tolerancia de
// locale: acepta coma o punto decimal, ignora espacios, y lo no parseable
// vale cero.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
