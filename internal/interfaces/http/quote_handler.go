package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/dto"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/quotes"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain"
)

// QuoteHandler maneja las peticiones HTTP del ciclo de vida de cotizaciones
// y las descargas de artefactos.
type QuoteHandler struct {
	uc   *quotes.UseCase
	pdf  quotes.PDFGenerator
	xlsx quotes.XLSXGenerator
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *quotes.UseCase, pdf quotes.PDFGenerator, xlsx quotes.XLSXGenerator) *QuoteHandler {
	return &QuoteHandler{uc: uc, pdf: pdf, xlsx: xlsx}
}

// Create crea una cotización nueva: asigna id, secuencia y código.
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	q, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

// Update graba cambios preservando id, seq, code y createdAt.
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.SaveQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	q, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(q)
}

// Delete elimina por id; idempotente (204 exista o no).
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID carga una cotización.
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	q, err := h.uc.Load(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(q)
}

// List busca por código, cliente, RUT o empresa (query q), más recientes
// primero.
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("q"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

// DownloadPDF descarga la página imprimible.
func (h *QuoteHandler) DownloadPDF(c *fiber.Ctx) error {
	q, err := h.uc.Load(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	data, err := h.pdf.Generate(c.Context(), q)
	if err != nil {
		return mapError(c, err)
	}
	return sendAttachment(c, q.Code+".pdf", quotes.MimePDF, data)
}

// DownloadXLSX descarga la planilla de la cotización.
func (h *QuoteHandler) DownloadXLSX(c *fiber.Ctx) error {
	q, err := h.uc.Load(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	data, err := h.xlsx.QuoteWorkbook(q)
	if err != nil {
		return mapError(c, err)
	}
	return sendAttachment(c, q.Code+".xlsx", quotes.MimeXLSX, data)
}

// DownloadJSON descarga la cotización en el formato plano exportado.
func (h *QuoteHandler) DownloadJSON(c *fiber.Ctx) error {
	q, err := h.uc.Load(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	data, err := quotes.QuoteJSON(q)
	if err != nil {
		return mapError(c, err)
	}
	return sendAttachment(c, q.Code+".json", quotes.MimeJSON, data)
}

// ExportAll descarga todas las cotizaciones como arreglo JSON.
func (h *QuoteHandler) ExportAll(c *fiber.Ctx) error {
	all, err := h.uc.ExportAll(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	data, err := quotes.MasterJSON(all)
	if err != nil {
		return mapError(c, err)
	}
	return sendAttachment(c, "BaseDatos-DMYC.json", quotes.MimeJSON, data)
}

// Import reemplaza la colección completa con un arreglo JSON exportado.
// Un archivo malformado se rechaza sin ningún efecto.
func (h *QuoteHandler) Import(c *fiber.Ctx) error {
	res, err := h.uc.Import(c.Context(), c.Body())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(res)
}

// Catalog lista el catálogo de ítems (autocompletado del formulario).
func (h *QuoteHandler) Catalog(c *fiber.Ctx) error {
	items, err := h.uc.ListCatalog(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(items)
}

// Outbox lista los trabajos de subida pendientes, más antiguos primero.
func (h *QuoteHandler) Outbox(c *fiber.Ctx) error {
	entries, err := h.uc.PendingOutbox(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"pending": len(entries), "entries": entries})
}

// NextCode informa el número que recibiría la próxima cotización, sin
// avanzar el contador.
func (h *QuoteHandler) NextCode(c *fiber.Ctx) error {
	seq, code := h.uc.NextCode(c.Context(), c.Query("clientName"))
	return c.JSON(fiber.Map{"seq": seq, "code": code})
}

func sendAttachment(c *fiber.Ctx, filename, mimeType string, data []byte) error {
	c.Set(fiber.HeaderContentType, mimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

// mapError traduce la taxonomía de errores de dominio a códigos HTTP.
func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cotización no encontrada"})
	case errors.Is(err, domain.ErrImportFile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "IMPORT_INVALID", Message: err.Error()})
	case errors.Is(err, domain.ErrNoDriveToken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_DRIVE_TOKEN", Message: "conecta Google Drive antes de sincronizar"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
