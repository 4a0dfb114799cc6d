package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/quotes"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/syncdrive"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/infrastructure/drive"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	QuotesUC *quotes.UseCase
	PDF      quotes.PDFGenerator
	XLSX     quotes.XLSXGenerator
	SyncUC   *syncdrive.UseCase
	Uploader *drive.Uploader
}

// Router registra las rutas de la API local. No hay autenticación: el
// servidor escucha en loopback para un único operador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	quoteHandler := NewQuoteHandler(deps.QuotesUC, deps.PDF, deps.XLSX)

	q := api.Group("/quotes")
	q.Get("/export", quoteHandler.ExportAll)
	q.Post("/import", quoteHandler.Import)
	q.Get("/next-code", quoteHandler.NextCode)
	q.Post("/", quoteHandler.Create)
	q.Get("/", quoteHandler.List)
	q.Get("/:id", quoteHandler.GetByID)
	q.Put("/:id", quoteHandler.Update)
	q.Delete("/:id", quoteHandler.Delete)
	q.Get("/:id/pdf", quoteHandler.DownloadPDF)
	q.Get("/:id/xlsx", quoteHandler.DownloadXLSX)
	q.Get("/:id/json", quoteHandler.DownloadJSON)

	api.Get("/catalog", quoteHandler.Catalog)
	api.Get("/outbox", quoteHandler.Outbox)

	if deps.SyncUC != nil && deps.Uploader != nil {
		syncHandler := NewSyncHandler(deps.SyncUC, deps.Uploader)
		api.Post("/sync", syncHandler.Sync)
		driveGroup := api.Group("/drive")
		driveGroup.Get("/status", syncHandler.Status)
		driveGroup.Get("/auth-url", syncHandler.AuthURL)
		driveGroup.Get("/callback", syncHandler.Callback)
	}
}
