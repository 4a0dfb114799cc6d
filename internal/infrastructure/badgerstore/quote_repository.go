package badgerstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// QuoteRepository implementa repository.QuoteRepository sobre Badger.
type QuoteRepository struct {
	store *Store
}

// NewQuoteRepository construye el repositorio.
func NewQuoteRepository(store *Store) *QuoteRepository {
	return &QuoteRepository{store: store}
}

func quoteKey(id string) []byte { return []byte(prefixQuotes + id) }

// Get devuelve (nil, nil) si la cotización no existe o el valor no se pudo
// leer (las lecturas degradan a ausencia).
func (r *QuoteRepository) Get(_ context.Context, id string) (*entity.Quote, error) {
	raw, ok := r.store.get(quoteKey(id))
	if !ok {
		return nil, nil
	}
	var q entity.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, nil
	}
	return &q, nil
}

// Put graba (upsert) por id.
func (r *QuoteRepository) Put(_ context.Context, q *entity.Quote) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("serializar cotización %s: %w", q.ID, err)
	}
	return r.store.set(quoteKey(q.ID), raw)
}

// Delete elimina por id; idempotente.
func (r *QuoteRepository) Delete(_ context.Context, id string) error {
	return r.store.del(quoteKey(id))
}

// List devuelve todas las cotizaciones, en orden no especificado.
func (r *QuoteRepository) List(_ context.Context) ([]*entity.Quote, error) {
	out := make([]*entity.Quote, 0)
	r.store.scan([]byte(prefixQuotes), func(v []byte) {
		var q entity.Quote
		if err := json.Unmarshal(v, &q); err == nil {
			out = append(out, &q)
		}
	})
	return out, nil
}

// ReplaceAll reemplaza la colección completa en una sola transacción.
func (r *QuoteRepository) ReplaceAll(_ context.Context, quotes []*entity.Quote) error {
	pairs := make(map[string][]byte, len(quotes))
	for _, q := range quotes {
		raw, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("serializar cotización %s: %w", q.ID, err)
		}
		pairs[string(quoteKey(q.ID))] = raw
	}
	return r.store.replaceAll([]byte(prefixQuotes), pairs)
}
