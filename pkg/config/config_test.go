package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	assert.Equal(t, "badger", cfg.Store.Driver)
	assert.Equal(t, int64(1), cfg.Quotes.SeqFloor)
	assert.Equal(t, "DMYC_Cotizaciones", cfg.Drive.FolderName)
}

func TestLoad_EnvSobreescribe(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("QUOTES_SEQ_FLOOR", "401")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, int64(401), cfg.Quotes.SeqFloor)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

// TestLoad_EnteroMalformadoUsaElDefecto verifica que un valor no numérico no
// degrada a cero: se conserva el valor por defecto.
func TestLoad_EnteroMalformadoUsaElDefecto(t *testing.T) {
	t.Setenv("HTTP_PORT", "abc")
	t.Setenv("QUOTES_SEQ_FLOOR", "cuatrocientos")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, int64(1), cfg.Quotes.SeqFloor)
}
