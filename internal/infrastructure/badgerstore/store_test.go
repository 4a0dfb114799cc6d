package badgerstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/entity"
	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/infrastructure/badgerstore"
)

func openTestStore(t *testing.T) *badgerstore.Store {
	t.Helper()
	s, err := badgerstore.Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleQuote(id string, seq int64) *entity.Quote {
	return &entity.Quote{
		ID:         id,
		Seq:        seq,
		Code:       "COT-0001-JOSE",
		CreatedAt:  "2026-08-01T10:00:00Z",
		UpdatedAt:  "2026-08-01T10:00:00Z",
		Currency:   entity.CurrencyCLP,
		State:      entity.StatePendiente,
		ClientName: "José Pérez",
		Lines: []entity.QuoteLine{
			{
				Qty:       decimal.NewFromInt(2),
				Unit:      "un",
				Name:      "Mantención equipo",
				Cost:      decimal.NewFromInt(25_000),
				Margin:    decimal.NewFromInt(15),
				UnitPrice: decimal.NewFromInt(29_412),
				Total:     decimal.NewFromInt(58_824),
			},
		},
		Totals: entity.Totals{
			Sub: decimal.NewFromInt(58_824),
			IVA: decimal.NewFromInt(11_177),
			Tot: decimal.NewFromInt(70_001),
		},
	}
}

// TestQuoteRepository_PutGetDelete cubre el ciclo básico y la fidelidad de la
// serialización (decimales incluidos).
func TestQuoteRepository_PutGetDelete(t *testing.T) {
	s := openTestStore(t)
	repo := badgerstore.NewQuoteRepository(s)
	ctx := context.Background()

	q := sampleQuote("q1", 1)
	require.NoError(t, repo.Put(ctx, q))

	got, err := repo.Get(ctx, "q1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, q.Code, got.Code)
	assert.Equal(t, q.ClientName, got.ClientName)
	require.Len(t, got.Lines, 1)
	assert.True(t, q.Lines[0].UnitPrice.Equal(got.Lines[0].UnitPrice))
	assert.True(t, q.Totals.Tot.Equal(got.Totals.Tot))

	require.NoError(t, repo.Delete(ctx, "q1"))
	got, err = repo.Get(ctx, "q1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestQuoteRepository_AusenciaYDeleteIdempotente verifica el contrato de
// degradación: leer lo que no existe da (nil, nil) y borrar dos veces no es
// error.
func TestQuoteRepository_AusenciaYDeleteIdempotente(t *testing.T) {
	s := openTestStore(t)
	repo := badgerstore.NewQuoteRepository(s)
	ctx := context.Background()

	got, err := repo.Get(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Delete(ctx, "no-existe"))
	require.NoError(t, repo.Delete(ctx, "no-existe"))
}

func TestQuoteRepository_List(t *testing.T) {
	s := openTestStore(t)
	repo := badgerstore.NewQuoteRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, sampleQuote("q1", 1)))
	require.NoError(t, repo.Put(ctx, sampleQuote("q2", 2)))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// TestQuoteRepository_ReplaceAll verifica que la importación limpia lo viejo
// e inserta lo nuevo como una sola operación.
func TestQuoteRepository_ReplaceAll(t *testing.T) {
	s := openTestStore(t)
	repo := badgerstore.NewQuoteRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, sampleQuote("viejo", 1)))

	require.NoError(t, repo.ReplaceAll(ctx, []*entity.Quote{
		sampleQuote("nuevo-a", 10),
		sampleQuote("nuevo-b", 11),
	}))

	old, err := repo.Get(ctx, "viejo")
	require.NoError(t, err)
	assert.Nil(t, old, "lo anterior no debe sobrevivir al reemplazo")

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestQuoteRepository_ReplaceAllVacio(t *testing.T) {
	s := openTestStore(t)
	repo := badgerstore.NewQuoteRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, sampleQuote("q1", 1)))
	require.NoError(t, repo.ReplaceAll(ctx, nil))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// TestSettingRepository_FallbacksYRoundTrip verifica los getters con fallback
// y el ciclo set/get para los dos tipos usados (contador y nombre de carpeta).
func TestSettingRepository_FallbacksYRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := badgerstore.NewSettingRepository(s)
	ctx := context.Background()

	assert.Equal(t, int64(401), repo.GetInt64(ctx, "seq", 401), "ausente devuelve el fallback")
	assert.Equal(t, "DMYC_Cotizaciones", repo.GetString(ctx, "driveFolderName", "DMYC_Cotizaciones"))

	require.NoError(t, repo.Set(ctx, "seq", int64(402)))
	assert.Equal(t, int64(402), repo.GetInt64(ctx, "seq", 1))

	require.NoError(t, repo.Set(ctx, "driveFolderName", "Otra_Carpeta"))
	assert.Equal(t, "Otra_Carpeta", repo.GetString(ctx, "driveFolderName", "x"))

	// Tipo cruzado: un string donde se espera int64 degrada al fallback.
	require.NoError(t, repo.Set(ctx, "raro", "no-numérico"))
	assert.Equal(t, int64(7), repo.GetInt64(ctx, "raro", 7))
}

func TestCatalogRepository_UpsertYList(t *testing.T) {
	s := openTestStore(t)
	repo := badgerstore.NewCatalogRepository(s)
	ctx := context.Background()

	item := &entity.CatalogItem{
		Name:       "Mantención equipo",
		LastCost:   decimal.NewFromInt(25_000),
		LastMargin: decimal.NewFromInt(15),
		UpdatedAt:  "2026-08-01T10:00:00Z",
	}
	require.NoError(t, repo.Upsert(ctx, item))

	// Mismo nombre: actualiza en vez de duplicar.
	item.LastCost = decimal.NewFromInt(30_000)
	require.NoError(t, repo.Upsert(ctx, item))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(30_000).Equal(items[0].LastCost))
}

func TestOutboxRepository_CicloCompleto(t *testing.T) {
	s := openTestStore(t)
	repo := badgerstore.NewOutboxRepository(s)
	ctx := context.Background()

	e := &entity.OutboxEntry{
		ID:        "e1",
		CreatedAt: "2026-08-01T10:00:00Z",
		QuoteID:   "q1",
		Code:      "COT-0001-JOSE",
		Files:     entity.OutboxFiles{PDF: true},
	}
	require.NoError(t, repo.Put(ctx, e))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Files.PDF)
	assert.False(t, entries[0].Files.XLSX)

	require.NoError(t, repo.Delete(ctx, "e1"))
	require.NoError(t, repo.Delete(ctx, "e1"))
	entries, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestStore_PersistenciaEntreAperturas verifica que los datos sobreviven
// cerrar y reabrir la base.
func TestStore_PersistenciaEntreAperturas(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	ctx := context.Background()

	s, err := badgerstore.Open(dir)
	require.NoError(t, err)
	require.NoError(t, badgerstore.NewQuoteRepository(s).Put(ctx, sampleQuote("q1", 1)))
	require.NoError(t, s.Close())

	s2, err := badgerstore.Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := badgerstore.NewQuoteRepository(s2).Get(ctx, "q1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "COT-0001-JOSE", got.Code)
}

// TestStore_ColeccionesAisladas verifica que los prefijos no se pisan: un id
// igual en quotes y outbox son registros distintos.
func TestStore_ColeccionesAisladas(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, badgerstore.NewQuoteRepository(s).Put(ctx, sampleQuote("x", 1)))
	require.NoError(t, badgerstore.NewOutboxRepository(s).Put(ctx, &entity.OutboxEntry{ID: "x", QuoteID: "x"}))

	require.NoError(t, badgerstore.NewOutboxRepository(s).Delete(ctx, "x"))

	q, err := badgerstore.NewQuoteRepository(s).Get(ctx, "x")
	require.NoError(t, err)
	assert.NotNil(t, q, "borrar en outbox no debe tocar quotes")
}
