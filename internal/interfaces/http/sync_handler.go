package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/dto"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/syncdrive"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/infrastructure/drive"
)

// SyncHandler maneja la sincronización con Drive y su flujo de login.
type SyncHandler struct {
	syncUC   *syncdrive.UseCase
	uploader *drive.Uploader
}

// NewSyncHandler construye el handler.
func NewSyncHandler(syncUC *syncdrive.UseCase, uploader *drive.Uploader) *SyncHandler {
	return &SyncHandler{syncUC: syncUC, uploader: uploader}
}

// Sync corre la sincronización bajo demanda. Si falla a mitad de corrida
// devuelve 502 con el reporte parcial; lo no procesado queda en el outbox.
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	report, err := h.syncUC.Sync(c.Context())
	if err != nil {
		if report == nil {
			return mapError(c, err)
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()},
			"report": report,
		})
	}
	return c.JSON(report)
}

// Status informa si hay sesión de Drive utilizable.
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"connected": h.uploader.Connected()})
}

// AuthURL entrega la URL de consentimiento para conectar Drive.
func (h *SyncHandler) AuthURL(c *fiber.Ctx) error {
	state := uuid.New().String()
	return c.JSON(fiber.Map{"url": h.uploader.AuthURL(state), "state": state})
}

// Callback canjea el código de autorización devuelto por Google y persiste
// el token de la sesión.
func (h *SyncHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "falta el parámetro code"})
	}
	if err := h.uploader.Exchange(c.Context(), code); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "OAUTH_EXCHANGE", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"connected": true})
}
