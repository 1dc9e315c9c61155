package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/dalemusser/recursosayuda/internal/app/system/catalog"
	"github.com/dalemusser/recursosayuda/internal/testutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setup resets the command globals and returns a command writing into
// the returned buffers.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	csvPath = testutil.WriteTable(t, testutil.SampleLines...)
	rulesPath = ""
	fallback = "latin-1"
	lazyQuote = true
	profileID = ""
	province = ""
	locality = ""
	dedupe = "name"

	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestRunSearch_CrisisOrdering(t *testing.T) {
	cmd, out, errOut := setup(t)
	profileID = "crisis"
	province = "Granada"

	if err := runSearch(cmd, nil); err != nil {
		t.Fatalf("runSearch error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Mostrando 4 recursos para: Granada") {
		t.Errorf("missing result count header:\n%s", got)
	}
	order := []string{"Emergencias 112", "Línea 024", "Salud Responde", "Teléfono de la Esperanza"}
	last := -1
	for _, name := range order {
		i := strings.Index(got, name)
		if i < 0 {
			t.Fatalf("output missing %q:\n%s", name, got)
		}
		if i < last {
			t.Errorf("%q printed out of order", name)
		}
		last = i
	}
	if strings.Contains(got, "Unidad de Salud Mental Jaén") {
		t.Error("a Jaén resource leaked into a Granada search")
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected warning for a known province: %q", errOut.String())
	}
}

func TestRunSearch_DedupeKey(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"name", 1},
		{"id", 2},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cmd, out, _ := setup(t)
			profileID = "crisis"
			province = "Granada"
			dedupe = tt.key

			if err := runSearch(cmd, nil); err != nil {
				t.Fatalf("runSearch error: %v", err)
			}
			if n := strings.Count(out.String(), "Teléfono de la Esperanza"); n != tt.want {
				t.Errorf("dedupe=%s printed %d copies, want %d", tt.key, n, tt.want)
			}
		})
	}
}

func TestRunSearch_UnknownProvinceSuggests(t *testing.T) {
	cmd, out, errOut := setup(t)
	profileID = "crisis"
	province = "Granda"

	if err := runSearch(cmd, nil); err != nil {
		t.Fatalf("runSearch error: %v", err)
	}
	if !strings.Contains(errOut.String(), `¿Quisiste decir "Granada"?`) {
		t.Errorf("expected a suggestion, got %q", errOut.String())
	}
	if strings.Contains(out.String(), "Asociación Motril Vive") {
		t.Error("local Granada rows should not match a misspelled province")
	}
}

func TestRunSearch_NoResults(t *testing.T) {
	cmd, out, _ := setup(t)
	csvPath = testutil.WriteTable(t,
		"Asociación Motril Vive;Asociación;Grupo de apoyo;Granada;Motril;Supervivientes y familias en duelo;;;",
	)
	profileID = "menores"
	province = "Granada"

	if err := runSearch(cmd, nil); err != nil {
		t.Fatalf("runSearch error: %v", err)
	}
	if !strings.Contains(out.String(), "No se encontraron recursos con estos filtros.") {
		t.Errorf("expected empty-state message, got:\n%s", out.String())
	}
}

func TestRunSearch_SharedCardRules(t *testing.T) {
	cmd, out, _ := setup(t)
	csvPath = testutil.WriteTable(t,
		`Asociación "Alba";Asociación;Apoyo;Granada;Motril;población general;958000000;HTTP://ALBA.EXAMPLE.ORG;`,
		"Sin Contacto;Asociación;Apoyo;Granada;Granada;población general;;;",
	)
	profileID = "general"
	province = "Granada"

	if err := runSearch(cmd, nil); err != nil {
		t.Fatalf("runSearch error: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		`Asociación "Alba"`,
		"Granada - Motril",
		"Web: HTTP://ALBA.EXAMPLE.ORG",
		"Tel: 958000000",
		"Consultar web para más detalles",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "https://HTTP") {
		t.Errorf("upper-case http prefix should be kept:\n%s", got)
	}
}

func TestRunSearch_StrictQuotesFails(t *testing.T) {
	cmd, out, _ := setup(t)
	csvPath = testutil.WriteTable(t,
		`Asociación "Alba";Asociación;Apoyo;Granada;Motril;población general;;;`,
	)
	lazyQuote = false
	province = "Granada"

	err := runSearch(cmd, nil)
	if !errors.Is(err, catalog.ErrMalformedTable) {
		t.Fatalf("want ErrMalformedTable, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output on load failure, got %q", out.String())
	}
}

func TestRunSearch_Errors(t *testing.T) {
	t.Run("missing table", func(t *testing.T) {
		cmd, out, _ := setup(t)
		csvPath = "/nonexistent/recursos.csv"
		province = "Granada"

		err := runSearch(cmd, nil)
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected os.ErrNotExist, got %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("expected no output on load failure, got %q", out.String())
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		cmd, _, _ := setup(t)
		profileID = "nope"
		province = "Granada"
		if err := runSearch(cmd, nil); err == nil {
			t.Fatal("expected an error for an unknown profile")
		}
	})

	t.Run("bad dedupe key", func(t *testing.T) {
		cmd, _, _ := setup(t)
		province = "Granada"
		dedupe = "email"
		if err := runSearch(cmd, nil); err == nil {
			t.Fatal("expected an error for an unknown dedupe key")
		}
	})
}

func TestRunProvinces(t *testing.T) {
	cmd, out, _ := setup(t)

	if err := runProvinces(cmd, nil); err != nil {
		t.Fatalf("runProvinces error: %v", err)
	}
	got := strings.Fields(out.String())
	want := []string{"Granada", "Jaén", "Sevilla"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("provinces = %v, want %v", got, want)
	}
}

func TestRunProfiles(t *testing.T) {
	cmd, out, _ := setup(t)

	if err := runProfiles(cmd, nil); err != nil {
		t.Fatalf("runProfiles error: %v", err)
	}
	for _, id := range []string{"crisis", "menores", "general", "profesionales", "duelo"} {
		if !strings.Contains(out.String(), id) {
			t.Errorf("profiles output missing %q", id)
		}
	}
	if !strings.Contains(out.String(), "(prioriza emergencias)") {
		t.Error("crisis profile should be marked")
	}
}

func TestSuggest(t *testing.T) {
	list := []string{"Granada", "Jaén", "Sevilla"}
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"granda", "Granada", true},
		{"JAEN", "Jaén", true},
		{"Sevila", "Sevilla", true},
		{"Madrid", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := suggest(tt.in, list)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("suggest(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRootFlags_Defaults(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"csv", "recursos.csv"},
		{"lazy-quotes", "true"},
		{"fallback-encoding", "latin-1"},
	}
	for _, tt := range tests {
		f := rootCmd.PersistentFlags().Lookup(tt.flag)
		if f == nil {
			t.Fatalf("flag --%s not registered", tt.flag)
		}
		if f.DefValue != tt.want {
			t.Errorf("--%s default = %q, want %q", tt.flag, f.DefValue, tt.want)
		}
	}
}
