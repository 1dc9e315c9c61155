// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/recursosayuda/internal/app/system/catalog"
	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/metrics"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/dalemusser/waffle/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ConnectDB loads the rules document and the resource table.
//
// The table is read once here and memoized for the process lifetime. A
// table that cannot be read or decoded aborts startup; the directory never
// serves a partial table.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var m *metrics.Metrics
	if appCfg.MetricsEnabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}
	return connect(appCfg, m, logger)
}

func connect(appCfg AppConfig, m *metrics.Metrics, logger *zap.Logger) (DBDeps, error) {
	rules, err := profiles.Load(appCfg.RulesFile)
	if err != nil {
		logger.Error("rules load failed", zap.String("rules_file", appCfg.RulesFile), zap.Error(err))
		return DBDeps{}, err
	}
	logger.Info("directory rules loaded",
		zap.String("rules_file", appCfg.RulesFile),
		zap.Int("profiles", len(rules.Profiles)),
		zap.Strings("scopes", rules.Scopes))

	dedupe, ok := finder.ParseDedupeKey(appCfg.DedupeKey)
	if !ok {
		return DBDeps{}, fmt.Errorf("invalid dedupe_key %q", appCfg.DedupeKey)
	}

	store := catalog.NewStore(appCfg.CSVPath, catalogOptions(appCfg), logger)
	cat, err := store.Get()
	if err != nil {
		m.RecordCatalogFailure()
		return DBDeps{}, fmt.Errorf("load resource table %s: %w", appCfg.CSVPath, err)
	}
	m.RecordCatalogLoad(len(cat.Rows), cat.LoadedAt)

	if len(store.Provinces(rules.IsScopeSentinel)) == 0 {
		logger.Warn("resource table has no selectable provinces",
			zap.String("path", appCfg.CSVPath))
	}

	return DBDeps{
		Catalog: store,
		Rules:   rules,
		Dedupe:  dedupe,
		Metrics: m,
	}, nil
}

// catalogOptions maps the csv_* settings to loader options. The encoding
// name was checked by ValidateConfig.
func catalogOptions(appCfg AppConfig) catalog.Options {
	opts := catalog.DefaultOptions()
	enc, name, err := catalog.LookupEncoding(appCfg.CSVFallbackEncoding)
	if err == nil {
		opts.Fallback, opts.FallbackName = enc, name
	}
	opts.Read.MaxRows = appCfg.CSVMaxRows
	opts.Read.LazyQuotes = appCfg.CSVLazyQuotes
	return opts
}

// EnsureSchema has nothing to migrate; the table layout is checked when it
// is loaded.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
