// Package memstore implementa los puertos de persistencia en memoria
// (mapas + RWMutex). Se usa en tests y con STORE_DRIVER=memory; el contrato
// es el mismo del store durable: lecturas que degradan a ausencia, deletes
// idempotentes, ReplaceAll atómico por colección.
package memstore

import (
	"context"
	"sync"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// Store guarda las cuatro colecciones en memoria bajo un mismo candado.
// Cada colección se expone como un repositorio propio (Quotes, Settings,
// Catalog, Outbox) que implementa su puerto de repository.
type Store struct {
	mu       sync.RWMutex
	quotes   map[string]entity.Quote
	settings map[string]any
	catalog  map[string]entity.CatalogItem
	outbox   map[string]entity.OutboxEntry
}

// New construye un store vacío.
func New() *Store {
	return &Store{
		quotes:   make(map[string]entity.Quote),
		settings: make(map[string]any),
		catalog:  make(map[string]entity.CatalogItem),
		outbox:   make(map[string]entity.OutboxEntry),
	}
}

// Quotes devuelve la vista repository.QuoteRepository.
func (s *Store) Quotes() *QuoteRepo { return &QuoteRepo{s: s} }

// Settings devuelve la vista repository.SettingRepository.
func (s *Store) Settings() *SettingRepo { return &SettingRepo{s: s} }

// Catalog devuelve la vista repository.CatalogRepository.
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{s: s} }

// Outbox devuelve la vista repository.OutboxRepository.
func (s *Store) Outbox() *OutboxRepo { return &OutboxRepo{s: s} }

// ── QuoteRepo ─────────────────────────────────────────────────────────────────

type QuoteRepo struct{ s *Store }

func (r *QuoteRepo) Get(_ context.Context, id string) (*entity.Quote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.quotes[id]
	if !ok {
		return nil, nil
	}
	return cloneQuote(q), nil
}

func (r *QuoteRepo) Put(_ context.Context, q *entity.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.quotes[q.ID] = *cloneQuote(*q)
	return nil
}

func (r *QuoteRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.quotes, id)
	return nil
}

func (r *QuoteRepo) List(_ context.Context) ([]*entity.Quote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Quote, 0, len(r.s.quotes))
	for _, q := range r.s.quotes {
		out = append(out, cloneQuote(q))
	}
	return out, nil
}

func (r *QuoteRepo) ReplaceAll(_ context.Context, quotes []*entity.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.quotes = make(map[string]entity.Quote, len(quotes))
	for _, q := range quotes {
		r.s.quotes[q.ID] = *cloneQuote(*q)
	}
	return nil
}

// cloneQuote copia la cotización incluida su slice de líneas, para que el
// caller no pueda mutar lo almacenado por alias.
func cloneQuote(q entity.Quote) *entity.Quote {
	q.Lines = append([]entity.QuoteLine(nil), q.Lines...)
	return &q
}

// ── SettingRepo ───────────────────────────────────────────────────────────────

type SettingRepo struct{ s *Store }

func (r *SettingRepo) GetInt64(_ context.Context, key string, fallback int64) int64 {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	switch v := r.s.settings[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return fallback
	}
}

func (r *SettingRepo) GetString(_ context.Context, key string, fallback string) string {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if v, ok := r.s.settings[key].(string); ok {
		return v
	}
	return fallback
}

func (r *SettingRepo) Set(_ context.Context, key string, value any) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[key] = value
	return nil
}

// ── CatalogRepo ───────────────────────────────────────────────────────────────

type CatalogRepo struct{ s *Store }

func (r *CatalogRepo) Upsert(_ context.Context, item *entity.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.catalog[item.Name] = *item
	return nil
}

func (r *CatalogRepo) List(_ context.Context) ([]*entity.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.CatalogItem, 0, len(r.s.catalog))
	for _, item := range r.s.catalog {
		cp := item
		out = append(out, &cp)
	}
	return out, nil
}

// ── OutboxRepo ────────────────────────────────────────────────────────────────

type OutboxRepo struct{ s *Store }

func (r *OutboxRepo) Put(_ context.Context, e *entity.OutboxEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.outbox[e.ID] = *e
	return nil
}

func (r *OutboxRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.outbox, id)
	return nil
}

func (r *OutboxRepo) List(_ context.Context) ([]*entity.OutboxEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.OutboxEntry, 0, len(r.s.outbox))
	for _, e := range r.s.outbox {
		cp := e
		out = append(out, &cp)
	}
	return out, nil
}
