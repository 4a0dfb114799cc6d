package repository

import (
	"context"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// OutboxRepository persiste los trabajos de subida pendientes. Delete es
// idempotente; List devuelve vacío ante fallo de lectura.
type OutboxRepository interface {
	Put(ctx context.Context, e *entity.OutboxEntry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.OutboxEntry, error)
}
