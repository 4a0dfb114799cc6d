package quotes

import (
	"context"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// Tipos MIME de los artefactos exportados.
const (
	MimeJSON = "application/json"
	MimePDF  = "application/pdf"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// PDFGenerator renderiza la página imprimible de una cotización.
type PDFGenerator interface {
	Generate(ctx context.Context, q *entity.Quote) ([]byte, error)
}

// XLSXGenerator renderiza la planilla de una cotización y el maestro con una
// fila por cotización.
type XLSXGenerator interface {
	QuoteWorkbook(q *entity.Quote) ([]byte, error)
	MasterWorkbook(quotes []*entity.Quote) ([]byte, error)
}

// Uploader sube archivos a la carpeta remota. Requiere una sesión
// pre-autenticada (token obtenido vía el flujo de login externo).
type Uploader interface {
	Connected() bool
	EnsureFolder(ctx context.Context, name string) (string, error)
	Upload(ctx context.Context, folderID, filename, mimeType string, data []byte) error
}
