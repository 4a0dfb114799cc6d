package entity

import "github.com/shopspring/decimal"

// CatalogItem guarda el último costo y margen usados para una descripción de
// línea, clave por nombre. El formulario lo usa para autocompletar.
type CatalogItem struct {
	Name       string          `json:"name"`
	LastCost   decimal.Decimal `json:"lastCost"`
	LastMargin decimal.Decimal `json:"lastMargin"`
	UpdatedAt  string          `json:"updatedAt"`
}
