package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas soportadas. CLP es la moneda local: todos los montos se redondean
// a entero en el momento del cálculo (regla de negocio, no de presentación).
const (
	CurrencyCLP = "CLP"
	CurrencyUSD = "USD"
)

// Estados habituales de una cotización. El campo State es texto libre;
// estas constantes son solo los valores que ofrece el formulario.
const (
	StatePendiente = "Pendiente"
	StateEnviada   = "Enviada"
	StateAceptada  = "Aceptada"
	StateRechazada = "Rechazada"
)

// Quote representa una cotización completa. Los tags JSON reproducen el
// formato de exportación plano: los archivos <code>.json y el maestro
// BaseDatos-DMYC.json usan exactamente esta forma.
type Quote struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	Code      string `json:"code"` // COT-0001-XXXX, inmutable tras la primera grabación
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`

	Currency string          `json:"currency"`
	USDRate  decimal.Decimal `json:"usdRate"`
	State    string          `json:"state"`

	QuoteDate   string `json:"quoteDate"`   // YYYY-MM-DD
	ValidUntil  string `json:"validUntil"`  // YYYY-MM-DD
	NextContact string `json:"nextContact"` // YYYY-MM-DD, opcional

	ClientName    string `json:"clientName"`
	ClientCompany string `json:"clientCompany"`
	ClientRut     string `json:"clientRut"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone"`
	ClientAddress string `json:"clientAddress"`
	ClientCity    string `json:"clientCity"`
	Notes         string `json:"notes"`

	Lines  []QuoteLine `json:"lines"`
	Totals Totals      `json:"totals"`
}

// QuoteLine es una línea de la cotización. UnitPrice y Total son derivados
// (costo → margen → precio) y se recalculan en cada grabación.
type QuoteLine struct {
	Qty       decimal.Decimal `json:"qty"`
	Unit      string          `json:"unit,omitempty"` // unidad de medida (un, m2, hr, ...)
	Name      string          `json:"name"`           // descripción
	Cost      decimal.Decimal `json:"cost"`
	Margin    decimal.Decimal `json:"margin"` // porcentaje sobre el precio de venta (0 ≤ m < 100)
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// Totals es la foto de totales persistida con la cotización. Debe coincidir
// exactamente con el recálculo puro de las líneas al momento de grabar.
type Totals struct {
	Sub decimal.Decimal `json:"sub"`
	IVA decimal.Decimal `json:"iva"`
	Tot decimal.Decimal `json:"tot"`
}

// NowISO devuelve el instante actual en RFC3339 UTC, el formato con que se
// persisten createdAt/updatedAt.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
