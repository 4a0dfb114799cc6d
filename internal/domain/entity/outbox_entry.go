package entity

// OutboxFiles indica qué artefactos pidió el operador al grabar. El JSON de
// la cotización se sube siempre, pida lo que pida.
type OutboxFiles struct {
	PDF  bool `json:"pdf"`
	XLSX bool `json:"xlsx"`
}

// OutboxEntry es un trabajo de subida pendiente a Drive. Se elimina solo
// cuando todas las subidas de la entrada terminaron con éxito (at-least-once).
type OutboxEntry struct {
	ID        string      `json:"id"`
	CreatedAt string      `json:"createdAt"`
	QuoteID   string      `json:"quoteId"`
	Code      string      `json:"code"`
	Files     OutboxFiles `json:"files"`
}
