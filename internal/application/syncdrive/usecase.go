// Package syncdrive procesa el outbox de subidas: por cada trabajo pendiente
// vuelve a renderizar los artefactos pedidos y los sube a la carpeta remota,
// más antiguo primero. Semántica at-least-once, todo-o-nada por entrada: una
// caída a mitad de corrida deja las entradas no procesadas en el outbox y una
// entrada a medio subir se reintenta completa (las subidas se repiten, no se
// reanudan).
package syncdrive

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/dto"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/quotes"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/repository"
)

// Nombres de los archivos maestros que se regeneran y suben al final de cada
// corrida, incondicionalmente.
const (
	MasterJSONName = "BaseDatos-DMYC.json"
	MasterXLSXName = "BaseDatos-DMYC.xlsx"
)

// UseCase ejecuta la sincronización bajo demanda (no hay corrida automática).
type UseCase struct {
	quotesUC *quotes.UseCase
	quotes   repository.QuoteRepository
	settings repository.SettingRepository
	outbox   repository.OutboxRepository
	pdf      quotes.PDFGenerator
	xlsx     quotes.XLSXGenerator
	uploader quotes.Uploader

	defaultFolder string
	log           zerolog.Logger
}

// NewUseCase construye el caso de uso de sincronización.
func NewUseCase(
	quotesUC *quotes.UseCase,
	quotesRepo repository.QuoteRepository,
	settings repository.SettingRepository,
	outbox repository.OutboxRepository,
	pdf quotes.PDFGenerator,
	xlsx quotes.XLSXGenerator,
	uploader quotes.Uploader,
	defaultFolder string,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		quotesUC:      quotesUC,
		quotes:        quotesRepo,
		settings:      settings,
		outbox:        outbox,
		pdf:           pdf,
		xlsx:          xlsx,
		uploader:      uploader,
		defaultFolder: defaultFolder,
		log:           log,
	}
}

// Sync procesa todas las entradas pendientes y regenera los maestros.
// Ante el primer fallo de subida aborta la entrada en curso y corta la
// corrida: lo que quedó en el outbox se reintenta en la próxima.
func (uc *UseCase) Sync(ctx context.Context) (*dto.SyncReport, error) {
	if !uc.uploader.Connected() {
		return nil, domain.ErrNoDriveToken
	}

	folderName := uc.settings.GetString(ctx, quotes.SettingDriveFolderName, uc.defaultFolder)
	folderID, err := uc.uploader.EnsureFolder(ctx, folderName)
	if err != nil {
		return nil, fmt.Errorf("asegurar carpeta %q: %w", folderName, err)
	}

	entries, err := uc.quotesUC.PendingOutbox(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar outbox: %w", err)
	}

	report := &dto.SyncReport{}
	for _, e := range entries {
		q, err := uc.quotes.Get(ctx, e.QuoteID)
		if err != nil {
			return report, fmt.Errorf("cargar cotización %s: %w", e.QuoteID, err)
		}
		if q == nil {
			// La cotización fue eliminada: el trabajo se descarta sin subir.
			if err := uc.outbox.Delete(ctx, e.ID); err != nil {
				return report, fmt.Errorf("descartar entrada %s: %w", e.ID, err)
			}
			report.Discarded++
			continue
		}

		n, err := uc.uploadEntry(ctx, folderID, e, q)
		report.Uploaded += n
		if err != nil {
			return report, fmt.Errorf("entrada %s (%s): %w", e.ID, e.Code, err)
		}
		// Solo cuando todas las subidas de la entrada terminaron.
		if err := uc.outbox.Delete(ctx, e.ID); err != nil {
			return report, fmt.Errorf("eliminar entrada %s: %w", e.ID, err)
		}
		report.Processed++
		uc.log.Info().Str("code", e.Code).Msg("entrada sincronizada")
	}

	n, err := uc.uploadMasters(ctx, folderID)
	report.Uploaded += n
	if err != nil {
		return report, err
	}
	uc.log.Info().
		Int("processed", report.Processed).
		Int("discarded", report.Discarded).
		Int("uploaded", report.Uploaded).
		Msg("sincronización completada")
	return report, nil
}

// uploadEntry sube los artefactos de una entrada: el JSON siempre, PDF y
// XLSX según lo pedido al grabar. Devuelve cuántos archivos alcanzó a subir.
func (uc *UseCase) uploadEntry(ctx context.Context, folderID string, e *entity.OutboxEntry, q *entity.Quote) (int, error) {
	uploaded := 0

	data, err := quotes.QuoteJSON(q)
	if err != nil {
		return uploaded, fmt.Errorf("serializar JSON: %w", err)
	}
	if err := uc.uploader.Upload(ctx, folderID, e.Code+".json", quotes.MimeJSON, data); err != nil {
		return uploaded, fmt.Errorf("subir JSON: %w", err)
	}
	uploaded++

	if e.Files.PDF {
		pdf, err := uc.pdf.Generate(ctx, q)
		if err != nil {
			return uploaded, fmt.Errorf("generar PDF: %w", err)
		}
		if err := uc.uploader.Upload(ctx, folderID, e.Code+".pdf", quotes.MimePDF, pdf); err != nil {
			return uploaded, fmt.Errorf("subir PDF: %w", err)
		}
		uploaded++
	}

	if e.Files.XLSX {
		wb, err := uc.xlsx.QuoteWorkbook(q)
		if err != nil {
			return uploaded, fmt.Errorf("generar XLSX: %w", err)
		}
		if err := uc.uploader.Upload(ctx, folderID, e.Code+".xlsx", quotes.MimeXLSX, wb); err != nil {
			return uploaded, fmt.Errorf("subir XLSX: %w", err)
		}
		uploaded++
	}

	return uploaded, nil
}

// uploadMasters regenera y sube los dos archivos maestros, haya o no habido
// entradas pendientes.
func (uc *UseCase) uploadMasters(ctx context.Context, folderID string) (int, error) {
	all, err := uc.quotesUC.ExportAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("listar cotizaciones: %w", err)
	}

	uploaded := 0
	data, err := quotes.MasterJSON(all)
	if err != nil {
		return uploaded, fmt.Errorf("serializar maestro JSON: %w", err)
	}
	if err := uc.uploader.Upload(ctx, folderID, MasterJSONName, quotes.MimeJSON, data); err != nil {
		return uploaded, fmt.Errorf("subir maestro JSON: %w", err)
	}
	uploaded++

	wb, err := uc.xlsx.MasterWorkbook(all)
	if err != nil {
		return uploaded, fmt.Errorf("generar maestro XLSX: %w", err)
	}
	if err := uc.uploader.Upload(ctx, folderID, MasterXLSXName, quotes.MimeXLSX, wb); err != nil {
		return uploaded, fmt.Errorf("subir maestro XLSX: %w", err)
	}
	uploaded++

	return uploaded, nil
}
