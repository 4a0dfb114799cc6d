package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeQuery(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"sin especiales", "DMYC_Cotizaciones", "DMYC_Cotizaciones"},
		{"comilla simple", "O'Higgins", `O\'Higgins`},
		{"barra invertida", `Carpeta\2026`, `Carpeta\\2026`},
		{"barra y comilla", `a\'b`, `a\\\'b`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, escapeQuery(tc.in))
		})
	}
}
