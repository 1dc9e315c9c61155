package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/recursosayuda/internal/app/system/normalize"
)

// ErrMissingColumn is returned when a column the filter reads is absent.
var ErrMissingColumn = errors.New("missing required column")

type field int

const (
	fieldName field = iota
	fieldType
	fieldDescription
	fieldProvince
	fieldLocality
	fieldAudience
	fieldPhone
	fieldWebsite
	fieldEmail
	fieldModality
	numFields
)

// column describes one logical field and the header spellings used for it
// across the different versions of the table. The first spelling is the
// canonical one and is used in error messages.
type column struct {
	field    field
	required bool
	headers  []string
}

var columns = []column{
	{fieldName, true, []string{"Nombre del recurso", "Nombre", "Recurso"}},
	{fieldType, false, []string{"Tipo de recurso", "Tipo"}},
	{fieldDescription, false, []string{"Descripción clara del recurso", "Descripción del recurso", "Descripción"}},
	{fieldProvince, true, []string{"Provincia"}},
	{fieldLocality, true, []string{"Localidad / Ámbito", "Localidad", "Ámbito"}},
	{fieldAudience, true, []string{"Dirigido a", "Destinatarios", "Público"}},
	{fieldPhone, false, []string{"Teléfono(s) de contacto", "Teléfonos de contacto", "Teléfono de contacto", "Teléfono", "Teléfonos"}},
	{fieldWebsite, false, []string{"Web", "Página web", "Sitio web"}},
	{fieldEmail, false, []string{"Email", "E-mail", "Correo electrónico", "Correo"}},
	{fieldModality, false, []string{"Modalidad / Coste", "Coste / Modalidad", "Modalidad", "Coste"}},
}

// columnMap holds the header index of each field, or -1 when absent.
type columnMap [numFields]int

// headerKey folds a header and drops spaces so "Localidad / Ámbito" and
// "localidad/ambito" compare equal.
func headerKey(s string) string {
	return strings.ReplaceAll(normalize.Key(normalize.Header(s)), " ", "")
}

// mapColumns resolves every field against the header row. The leftmost
// matching header wins; synonyms are tried in order.
func mapColumns(header []string) (columnMap, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if _, seen := idx[k]; !seen {
			idx[k] = i
		}
	}

	var m columnMap
	var missing []string
	for _, c := range columns {
		m[c.field] = -1
		for _, h := range c.headers {
			if i, ok := idx[headerKey(h)]; ok {
				m[c.field] = i
				break
			}
		}
		if m[c.field] < 0 && c.required {
			missing = append(missing, fmt.Sprintf("%q", c.headers[0]))
		}
	}

	if len(missing) > 0 {
		return m, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return m, nil
}
