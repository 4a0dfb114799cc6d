// Package quotes implementa el ciclo de vida de las cotizaciones:
// crear, editar, eliminar, buscar, importar y exportar.
package quotes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/dto"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/pricing"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/quote"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/repository"
)

// Claves de settings usadas por el núcleo.
const (
	SettingSeq             = "seq"
	SettingDriveFolderName = "driveFolderName"
)

// UseCase orquesta asignación de número, recálculo de totales y persistencia.
//
// El mutex serializa lectura de contador → grabación → avance: dos grabaciones
// concurrentes (doble click en Guardar) no pueden asignar la misma secuencia.
type UseCase struct {
	mu       sync.Mutex
	quotes   repository.QuoteRepository
	settings repository.SettingRepository
	catalog  repository.CatalogRepository
	outbox   repository.OutboxRepository
	seqFloor int64
}

// NewUseCase construye el caso de uso. seqFloor es el piso del contador de
// secuencia (1 por defecto; 401 en el despliegue DMYC).
func NewUseCase(
	quotesRepo repository.QuoteRepository,
	settings repository.SettingRepository,
	catalog repository.CatalogRepository,
	outbox repository.OutboxRepository,
	seqFloor int64,
) *UseCase {
	if seqFloor < 1 {
		seqFloor = 1
	}
	return &UseCase{
		quotes:   quotesRepo,
		settings: settings,
		catalog:  catalog,
		outbox:   outbox,
		seqFloor: seqFloor,
	}
}

// NextCode devuelve el número que recibiría la próxima cotización nueva, sin
// avanzar el contador (la UI lo muestra en el encabezado del formulario).
func (uc *UseCase) NextCode(ctx context.Context, clientName string) (int64, string) {
	seq := uc.settings.GetInt64(ctx, SettingSeq, uc.seqFloor)
	if seq < uc.seqFloor {
		// Contador corrupto o rebajado: se sube al piso, nunca hacia abajo.
		seq = uc.seqFloor
	}
	return seq, quote.BuildCode(seq, clientName)
}

// Create valida el formulario, asigna identidad y secuencia, graba y avanza
// el contador. Ante error de validación no hay ningún efecto en el store.
func (uc *UseCase) Create(ctx context.Context, in dto.SaveQuoteRequest) (*entity.Quote, error) {
	q, err := buildQuote(in)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	seq, code := uc.NextCode(ctx, q.ClientName)
	now := entity.NowISO()
	q.ID = uuid.New().String()
	q.Seq = seq
	q.Code = code
	q.CreatedAt = now
	q.UpdatedAt = now

	if err := uc.quotes.Put(ctx, q); err != nil {
		return nil, fmt.Errorf("grabar cotización: %w", err)
	}
	// El contador avanza solo después de una grabación exitosa, y solo para
	// cotizaciones nuevas.
	if err := uc.settings.Set(ctx, SettingSeq, seq+1); err != nil {
		return nil, fmt.Errorf("avanzar secuencia: %w", err)
	}

	if err := uc.afterSave(ctx, q, in); err != nil {
		return nil, err
	}
	return q, nil
}

// Update recalcula y graba una cotización existente preservando id, seq,
// code y createdAt. No avanza el contador.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.SaveQuoteRequest) (*entity.Quote, error) {
	q, err := buildQuote(in)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	prev, err := uc.quotes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar cotización %s: %w", id, err)
	}
	if prev == nil {
		return nil, domain.ErrNotFound
	}

	q.ID = prev.ID
	q.Seq = prev.Seq
	q.Code = prev.Code
	q.CreatedAt = prev.CreatedAt
	q.UpdatedAt = entity.NowISO()

	if err := uc.quotes.Put(ctx, q); err != nil {
		return nil, fmt.Errorf("grabar cotización: %w", err)
	}
	if err := uc.afterSave(ctx, q, in); err != nil {
		return nil, err
	}
	return q, nil
}

// Load obtiene una cotización por id.
func (uc *UseCase) Load(ctx context.Context, id string) (*entity.Quote, error) {
	q, err := uc.quotes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

// Remove elimina por id. Idempotente: eliminar lo que no existe no es error.
func (uc *UseCase) Remove(ctx context.Context, id string) error {
	return uc.quotes.Delete(ctx, id)
}

// List devuelve las cotizaciones cuyo código, cliente, RUT o empresa
// contienen el término (sin distinguir mayúsculas), de más a menos reciente
// por fecha de actualización.
func (uc *UseCase) List(ctx context.Context, term string) ([]*entity.Quote, error) {
	all, err := uc.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]*entity.Quote, 0, len(all))
	for _, q := range all {
		if term == "" || strings.Contains(searchKey(q), term) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out, nil
}

// PendingOutbox lista los trabajos de subida pendientes, más antiguos primero.
func (uc *UseCase) PendingOutbox(ctx context.Context) ([]*entity.OutboxEntry, error) {
	entries, err := uc.outbox.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt < entries[j].CreatedAt
	})
	return entries, nil
}

// ListCatalog devuelve el catálogo de ítems ordenado por nombre.
func (uc *UseCase) ListCatalog(ctx context.Context) ([]*entity.CatalogItem, error) {
	items, err := uc.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// afterSave actualiza el catálogo con el último costo/margen de cada línea y
// encola el trabajo de subida si el operador pidió artefactos.
func (uc *UseCase) afterSave(ctx context.Context, q *entity.Quote, in dto.SaveQuoteRequest) error {
	now := q.UpdatedAt
	for _, l := range q.Lines {
		item := &entity.CatalogItem{
			Name:       l.Name,
			LastCost:   l.Cost,
			LastMargin: l.Margin,
			UpdatedAt:  now,
		}
		if err := uc.catalog.Upsert(ctx, item); err != nil {
			return fmt.Errorf("actualizar catálogo: %w", err)
		}
	}

	if !in.MakePDF && !in.MakeXLSX {
		return nil
	}
	entry := &entity.OutboxEntry{
		ID:        uuid.New().String(),
		CreatedAt: now,
		QuoteID:   q.ID,
		Code:      q.Code,
		Files:     entity.OutboxFiles{PDF: in.MakePDF, XLSX: in.MakeXLSX},
	}
	if err := uc.outbox.Put(ctx, entry); err != nil {
		return fmt.Errorf("encolar subida: %w", err)
	}
	return nil
}

// buildQuote convierte el formulario en una cotización con totales
// recalculados. Falla con ErrInvalidInput si falta el nombre del cliente o
// no queda ninguna línea válida.
func buildQuote(in dto.SaveQuoteRequest) (*entity.Quote, error) {
	clientName := strings.TrimSpace(in.ClientName)
	if clientName == "" {
		return nil, fmt.Errorf("%w: falta nombre del cliente", domain.ErrInvalidInput)
	}

	currency := in.Currency
	if currency == "" {
		currency = entity.CurrencyCLP
	}

	raw := make([]entity.QuoteLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		raw = append(raw, entity.QuoteLine{
			Qty:    pricing.ParseDecimal(l.Qty),
			Unit:   strings.TrimSpace(l.Unit),
			Name:   l.Name,
			Cost:   pricing.ParseDecimal(l.Cost),
			Margin: pricing.ParseDecimal(l.Margin),
		})
	}
	lines := pricing.FilterLines(raw, currency)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos una línea válida", domain.ErrInvalidInput)
	}

	state := in.State
	if state == "" {
		state = entity.StatePendiente
	}

	return &entity.Quote{
		Currency:      currency,
		USDRate:       pricing.ParseDecimal(in.USDRate),
		State:         state,
		QuoteDate:     in.QuoteDate,
		ValidUntil:    in.ValidUntil,
		NextContact:   in.NextContact,
		ClientName:    clientName,
		ClientCompany: strings.TrimSpace(in.ClientCompany),
		ClientRut:     strings.TrimSpace(in.ClientRut),
		ClientEmail:   strings.TrimSpace(in.ClientEmail),
		ClientPhone:   strings.TrimSpace(in.ClientPhone),
		ClientAddress: strings.TrimSpace(in.ClientAddress),
		ClientCity:    strings.TrimSpace(in.ClientCity),
		Notes:         strings.TrimSpace(in.Notes),
		Lines:         lines,
		Totals:        pricing.Totals(lines, currency),
	}, nil
}

func searchKey(q *entity.Quote) string {
	return strings.ToLower(strings.Join([]string{
		q.Code, q.ClientName, q.ClientRut, q.ClientCompany,
	}, " "))
}
