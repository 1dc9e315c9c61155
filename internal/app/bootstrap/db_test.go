package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dalemusser/recursosayuda/internal/app/system/catalog"
	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/metrics"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/dalemusser/recursosayuda/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestConnect_LoadsCatalog(t *testing.T) {
	cfg := validConfig()
	cfg.CSVPath = testutil.WriteTable(t, testutil.SampleLines...)
	cfg.DedupeKey = "id"
	m := metrics.New(prometheus.NewRegistry())

	deps, err := connect(cfg, m, testLogger())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if got := len(deps.Catalog.Rows()); got != len(testutil.SampleLines) {
		t.Errorf("rows: got %d", got)
	}
	if deps.Dedupe != finder.DedupeByID {
		t.Errorf("dedupe: got %q", deps.Dedupe)
	}
	if len(deps.Rules.Profiles) == 0 {
		t.Error("expected the default rules")
	}
	if got := promtest.ToFloat64(m.CatalogRows); got != float64(len(testutil.SampleLines)) {
		t.Errorf("catalog_rows metric: got %v", got)
	}
}

func TestConnect_MissingTableIsFatal(t *testing.T) {
	cfg := validConfig()
	cfg.CSVPath = filepath.Join(t.TempDir(), "missing.csv")
	m := metrics.New(prometheus.NewRegistry())

	_, err := connect(cfg, m, testLogger())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if got := promtest.ToFloat64(m.CatalogLoadFailures); got != 1 {
		t.Errorf("failures metric: got %v, want 1", got)
	}
}

func TestConnect_UndecodableTableIsFatal(t *testing.T) {
	cfg := validConfig()
	cfg.CSVPath = testutil.WriteRaw(t, []byte(testutil.Header+"\nA \"b;;;Ja\xe9n;;x;;;\n"))
	cfg.CSVLazyQuotes = false

	_, err := connect(cfg, nil, testLogger())
	if !errors.Is(err, catalog.ErrUndecodable) {
		t.Fatalf("expected ErrUndecodable, got %v", err)
	}
}

func TestConnect_BareQuoteInsideCellLoads(t *testing.T) {
	cfg := validConfig()
	cfg.CSVPath = testutil.WriteTable(t, `Asociación "Alba";Asociación;Apoyo;Granada;Motril;población general;958000000;;`)

	deps, err := connect(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if rows := deps.Catalog.Rows(); len(rows) != 1 || rows[0].Name != `Asociación "Alba"` {
		t.Errorf("got rows %+v", rows)
	}
}

func TestConnect_RulesFile(t *testing.T) {
	cfg := validConfig()
	cfg.CSVPath = testutil.WriteTable(t, testutil.SampleLines...)
	cfg.RulesFile = filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(cfg.RulesFile, []byte("profiles:\n  - id: todos\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deps, err := connect(cfg, nil, testLogger())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if deps.Rules.DefaultProfile().ID != "todos" {
		t.Errorf("profile: got %q", deps.Rules.DefaultProfile().ID)
	}

	cfg.RulesFile = filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(cfg.RulesFile, []byte("scopes: [Nacional]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := connect(cfg, nil, testLogger()); !errors.Is(err, profiles.ErrNoProfiles) {
		t.Fatalf("expected ErrNoProfiles, got %v", err)
	}
}
