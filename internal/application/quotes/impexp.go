package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/application/dto"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
)

// ExportAll devuelve todas las cotizaciones ordenadas por secuencia, listas
// para serializar como arreglo JSON (el maestro BaseDatos-DMYC.json).
func (uc *UseCase) ExportAll(ctx context.Context) ([]*entity.Quote, error) {
	all, err := uc.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seq < all[j].Seq })
	return all, nil
}

// Import reemplaza la colección completa de cotizaciones con el contenido de
// un arreglo JSON exportado y avanza el contador a max(seq)+1, acotado por el
// piso. El archivo se valida por completo ANTES de tocar el store: un archivo
// malformado no tiene ningún efecto.
func (uc *UseCase) Import(ctx context.Context, data []byte) (*dto.ImportResult, error) {
	var incoming []*entity.Quote
	if err := json.Unmarshal(data, &incoming); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportFile, err)
	}
	// Un `null` decodifica a slice nil sin error: solo un arreglo JSON es
	// aceptable como maestro.
	if incoming == nil {
		return nil, fmt.Errorf("%w: se esperaba un arreglo JSON", domain.ErrImportFile)
	}
	for i, q := range incoming {
		if q == nil || q.ID == "" {
			return nil, fmt.Errorf("%w: elemento %d sin id", domain.ErrImportFile, i)
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.quotes.ReplaceAll(ctx, incoming); err != nil {
		return nil, fmt.Errorf("reemplazar cotizaciones: %w", err)
	}

	next := uc.seqFloor
	for _, q := range incoming {
		if q.Seq+1 > next {
			next = q.Seq + 1
		}
	}
	if err := uc.settings.Set(ctx, SettingSeq, next); err != nil {
		return nil, fmt.Errorf("avanzar secuencia: %w", err)
	}

	return &dto.ImportResult{Imported: len(incoming), NextSeq: next}, nil
}

// QuoteJSON serializa una cotización al formato plano exportado (indentado,
// igual que el archivo <code>.json que descarga la UI).
func QuoteJSON(q *entity.Quote) ([]byte, error) {
	return json.MarshalIndent(q, "", "  ")
}

// MasterJSON serializa el arreglo completo para el maestro.
func MasterJSON(all []*entity.Quote) ([]byte, error) {
	return json.MarshalIndent(all, "", "  ")
}
