package repository

import (
	"context"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// CatalogRepository persiste el catálogo de ítems (clave: nombre).
type CatalogRepository interface {
	Upsert(ctx context.Context, item *entity.CatalogItem) error
	List(ctx context.Context) ([]*entity.CatalogItem, error)
}
