package badgerstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// OutboxRepository implementa repository.OutboxRepository sobre Badger.
type OutboxRepository struct {
	store *Store
}

// NewOutboxRepository construye el repositorio.
func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

func outboxKey(id string) []byte { return []byte(prefixOutbox + id) }

// Put graba (upsert) la entrada por id.
func (r *OutboxRepository) Put(_ context.Context, e *entity.OutboxEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("serializar entrada %s: %w", e.ID, err)
	}
	return r.store.set(outboxKey(e.ID), raw)
}

// Delete elimina por id; idempotente.
func (r *OutboxRepository) Delete(_ context.Context, id string) error {
	return r.store.del(outboxKey(id))
}

// List devuelve todas las entradas pendientes, en orden no especificado.
func (r *OutboxRepository) List(_ context.Context) ([]*entity.OutboxEntry, error) {
	out := make([]*entity.OutboxEntry, 0)
	r.store.scan([]byte(prefixOutbox), func(v []byte) {
		var e entity.OutboxEntry
		if err := json.Unmarshal(v, &e); err == nil {
			out = append(out, &e)
		}
	})
	return out, nil
}
