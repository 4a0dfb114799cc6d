package dto

// LineRequest es una línea tal como llega del formulario. Los campos
// numéricos viajan como texto: la UI acepta coma o punto decimal y el parser
// de dominio los tolera (lo no parseable vale cero).
type LineRequest struct {
	Qty    string `json:"qty"`
	Unit   string `json:"unit"`
	Name   string `json:"name"`
	Cost   string `json:"cost"`
	Margin string `json:"margin"`
}

// SaveQuoteRequest es el estado del formulario para crear o actualizar una
// cotización.
type SaveQuoteRequest struct {
	Currency    string `json:"currency"`
	USDRate     string `json:"usdRate"`
	State       string `json:"state"`
	QuoteDate   string `json:"quoteDate"`
	ValidUntil  string `json:"validUntil"`
	NextContact string `json:"nextContact"`

	ClientName    string `json:"clientName"`
	ClientCompany string `json:"clientCompany"`
	ClientRut     string `json:"clientRut"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone"`
	ClientAddress string `json:"clientAddress"`
	ClientCity    string `json:"clientCity"`
	Notes         string `json:"notes"`

	MakePDF  bool `json:"optMakePdf"`
	MakeXLSX bool `json:"optMakeExcel"`

	Lines []LineRequest `json:"lines"`
}

// ImportResult resume una importación destructiva.
type ImportResult struct {
	Imported int   `json:"imported"`
	NextSeq  int64 `json:"nextSeq"`
}

// SyncReport resume una corrida de sincronización con Drive.
type SyncReport struct {
	Processed int `json:"processed"` // entradas subidas y eliminadas del outbox
	Discarded int `json:"discarded"` // entradas cuya cotización ya no existía
	Uploaded  int `json:"uploaded"`  // archivos subidos, maestros incluidos
}
