// Package testutil provides resource-table fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/recursosayuda/internal/app/system/catalog"
	"github.com/dalemusser/recursosayuda/internal/app/system/csvutil"
	"github.com/dalemusser/recursosayuda/internal/domain/models"
)

// Header is the header row of the current table layout.
const Header = "Nombre del recurso;Tipo de recurso;Descripción clara del recurso;Provincia;" +
	"Localidad / Ámbito;Dirigido a;Teléfono(s) de contacto;Web;Email"

// SampleLines is a small table covering every priority bucket and a
// duplicated resource name. Order matters to the ranking tests.
var SampleLines = []string{
	"Teléfono de la Esperanza;Línea de ayuda;Escucha 24h;Granada / Andalucía;Granada;Conducta suicida, población general;958261516;telefonodelaesperanza.org;granada@telefonodelaesperanza.org",
	"Salud Responde;Teléfono;Información sanitaria;Todas;Andalucía;Personas con conducta suicida;955545060;www.juntadeandalucia.es/salud;",
	"Emergencias 112;Emergencias;Atención urgente;Todas;Andalucía;Población general;112;;",
	"Teléfono de la Esperanza;Línea de ayuda;Escucha 24h;Nacional;España;Población general;717003717;telefonodelaesperanza.org;",
	"Asociación Motril Vive;Asociación;Grupo de apoyo;Granada;Motril;Supervivientes y familias en duelo;;;motrilvive@example.org",
	"Unidad de Salud Mental Jaén;Sanitario;USMC;Jaén;Andalucía;Población general;953000000;nan;",
	"Línea 024;Teléfono;Atención a la conducta suicida;Nacional;España;Personas con conducta suicida;024;www.sanidad.gob.es;",
	"Foro Online Duelo;Comunidad;Foro moderado;Online;Internet;Duelo y allegados;;https://foro.example.org;",
	"Programa Forma Joven;Educativo;Adolescentes;Sevilla;Sevilla capital;Jóvenes y adolescentes;;formajoven.example.org;",
}

// WriteTable writes Header plus lines as a UTF-8 file and returns its path.
func WriteTable(t *testing.T, lines ...string) string {
	t.Helper()
	return WriteRaw(t, []byte(Header+"\n"+strings.Join(lines, "\n")+"\n"))
}

// WriteRaw writes data verbatim and returns its path.
func WriteRaw(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recursos.csv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture table: %v", err)
	}
	return path
}

// SampleRows parses SampleLines in memory.
func SampleRows(t *testing.T) []models.Resource {
	t.Helper()
	return Rows(t, SampleLines...)
}

// Rows parses Header plus lines in memory.
func Rows(t *testing.T, lines ...string) []models.Resource {
	t.Helper()
	table, err := csvutil.ReadTable(strings.NewReader(Header+"\n"+strings.Join(lines, "\n")+"\n"), csvutil.DefaultReadOptions())
	if err != nil {
		t.Fatalf("failed to read fixture table: %v", err)
	}
	rows, err := catalog.Parse(table)
	if err != nil {
		t.Fatalf("failed to parse fixture table: %v", err)
	}
	return rows
}

// SampleStore returns a catalog Store backed by a file holding SampleLines.
func SampleStore(t *testing.T) *catalog.Store {
	t.Helper()
	path := WriteTable(t, SampleLines...)
	s := catalog.NewStore(path, catalog.DefaultOptions(), nil)
	if _, err := s.Get(); err != nil {
		t.Fatalf("failed to load fixture store: %v", err)
	}
	return s
}
