package repository

import (
	"context"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// QuoteRepository define el puerto de persistencia para Quote (DIP).
// Las lecturas degradan a ausencia: Get devuelve (nil, nil) si no existe y
// List devuelve vacío ante fallo de lectura. Delete es idempotente.
type QuoteRepository interface {
	Get(ctx context.Context, id string) (*entity.Quote, error)
	Put(ctx context.Context, q *entity.Quote) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Quote, error)
	// ReplaceAll vacía la colección e inserta los valores dados como una sola
	// unidad de trabajo (importación).
	ReplaceAll(ctx context.Context, quotes []*entity.Quote) error
}
