package badgerstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// CatalogRepository implementa repository.CatalogRepository sobre Badger.
type CatalogRepository struct {
	store *Store
}

// NewCatalogRepository construye el repositorio.
func NewCatalogRepository(store *Store) *CatalogRepository {
	return &CatalogRepository{store: store}
}

func catalogKey(name string) []byte { return []byte(prefixCatalog + name) }

// Upsert graba el ítem por nombre.
func (r *CatalogRepository) Upsert(_ context.Context, item *entity.CatalogItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("serializar ítem %s: %w", item.Name, err)
	}
	return r.store.set(catalogKey(item.Name), raw)
}

// List devuelve el catálogo completo, en orden no especificado.
func (r *CatalogRepository) List(_ context.Context) ([]*entity.CatalogItem, error) {
	out := make([]*entity.CatalogItem, 0)
	r.store.scan([]byte(prefixCatalog), func(v []byte) {
		var item entity.CatalogItem
		if err := json.Unmarshal(v, &item); err == nil {
			out = append(out, &item)
		}
	})
	return out, nil
}
