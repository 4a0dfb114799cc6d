// Package quote deriva el número legible de una cotización a partir del
// contador de secuencia y el nombre del cliente.
package quote

import (
	"fmt"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PlaceholderTag se usa cuando el nombre del cliente no aporta ningún
// carácter alfanumérico tras la normalización.
const PlaceholderTag = "XXXX"

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize4 reduce un nombre de cliente a su etiqueta de 4 caracteres:
// sin tildes, solo alfanumérico ASCII, mayúsculas, truncado a 4.
// "José Pérez" → "JOSE"; vacío o sin alfanuméricos → "XXXX".
func Normalize4(name string) string {
	stripped, _, err := transform.String(stripAccents, name)
	if err != nil {
		stripped = name
	}
	tag := make([]rune, 0, 4)
	for _, r := range stripped {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			tag = append(tag, unicode.ToUpper(r))
			if len(tag) == 4 {
				break
			}
		}
	}
	if len(tag) == 0 {
		return PlaceholderTag
	}
	return string(tag)
}

// BuildCode arma el código legible: COT-<seq en 4 dígitos>-<etiqueta>.
// El código se deriva una sola vez, al crear la cotización, y no se
// recalcula nunca al editar.
func BuildCode(seq int64, clientName string) string {
	return fmt.Sprintf("COT-%04d-%s", seq, Normalize4(clientName))
}
