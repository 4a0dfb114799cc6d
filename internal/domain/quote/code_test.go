package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmesac11-dmyc/dmyc-cotizaciones/internal/domain/quote"
)

func TestNormalize4(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"nombre con tildes", "José Pérez", "JOSE"},
		{"minúsculas", "maria", "MARI"},
		{"menos de cuatro letras", "Ana", "ANA"},
		{"espacios y signos", "  J. & P.  ", "JP"},
		{"dígitos cuentan", "3M Chile", "3MCH"},
		{"eñe pierde la tilde", "Ñandú", "NAND"},
		{"vacío", "", "XXXX"},
		{"solo signos", "!!! ???", "XXXX"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, quote.Normalize4(tc.in),
				"Normalize4(%q)", tc.in)
		})
	}
}

func TestBuildCode_FormatoYPadding(t *testing.T) {
	assert.Equal(t, "COT-0401-JOSE", quote.BuildCode(401, "José Pérez"))
	assert.Equal(t, "COT-0001-XXXX", quote.BuildCode(1, ""))
	// Más de cuatro dígitos: el número no se trunca.
	assert.Equal(t, "COT-12345-MARI", quote.BuildCode(12345, "María"))
}
