// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/recursosayuda/internal/app/system/catalog"
	"github.com/dalemusser/recursosayuda/internal/app/system/csvutil"
	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/prefs"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// devSessionKey is the shipped default; production must override it.
const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for the directory.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: csv_path, rules_file, etc.
//   - Environment variables: RECURSOS_CSV_PATH, RECURSOS_RULES_FILE, etc.
//   - Command-line flags: --csv_path, --rules_file, etc.
var appConfigKeys = []config.AppKey{
	// Resource table
	{Name: "csv_path", Default: "recursos.csv", Desc: "Path to the semicolon-delimited resource table"},
	{Name: "csv_fallback_encoding", Default: catalog.EncodingLatin1, Desc: "Encoding tried when UTF-8 fails: 'latin-1', 'windows-1252' or 'none'"},
	{Name: "csv_max_rows", Default: csvutil.MaxRows, Desc: "Maximum number of data rows accepted"},
	{Name: "csv_lazy_quotes", Default: true, Desc: "Read a bare quote inside an unquoted cell as a literal character"},

	// Directory rules
	{Name: "rules_file", Default: "", Desc: "YAML rules file (profiles, scope sentinels, crisis tokens); blank uses the built-in rules"},
	{Name: "dedupe_key", Default: string(finder.DedupeByName), Desc: "Duplicate collapsing key: 'name' or 'id'"},

	// Presentation
	{Name: "site_name", Default: "", Desc: "Site name shown in the page header"},

	// Remembered selection
	{Name: "remember_selection", Default: true, Desc: "Remember the last profile/province/locality in a signed cookie"},
	{Name: "session_key", Default: devSessionKey, Desc: "Cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: prefs.DefaultName, Desc: "Selection cookie name"},
	{Name: "session_domain", Default: "", Desc: "Selection cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "How long a selection is remembered (e.g., 720h)"},

	// JSON endpoint
	{Name: "api_rate_limit", Default: 120, Desc: "Requests per minute per client IP on /api/recursos (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Take the client IP from X-Forwarded-For/X-Real-IP (enable only behind a proxy that sets them)"},

	// Metrics
	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics on /metrics"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, RECURSOS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RECURSOS", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		CSVPath:             appValues.String("csv_path"),
		CSVFallbackEncoding: appValues.String("csv_fallback_encoding"),
		CSVMaxRows:          appValues.Int("csv_max_rows"),
		CSVLazyQuotes:       appValues.Bool("csv_lazy_quotes"),

		RulesFile: appValues.String("rules_file"),
		DedupeKey: appValues.String("dedupe_key"),

		SiteName: appValues.String("site_name"),

		RememberSelection: appValues.Bool("remember_selection"),
		SessionKey:        appValues.String("session_key"),
		SessionName:       appValues.String("session_name"),
		SessionDomain:     appValues.String("session_domain"),
		SessionMaxAge:     appValues.Duration("session_max_age", prefs.DefaultMaxAge),

		APIRateLimit:      appValues.Int("api_rate_limit"),
		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),

		MetricsEnabled: appValues.Bool("metrics_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The table itself is read in ConnectDB; here only the settings that can
// be checked without touching the file are validated.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	return validateAppConfig(coreCfg.Env, appCfg, logger)
}

func validateAppConfig(env string, appCfg AppConfig, logger *zap.Logger) error {
	if strings.TrimSpace(appCfg.CSVPath) == "" {
		return fmt.Errorf("csv_path is required")
	}

	if _, _, err := catalog.LookupEncoding(appCfg.CSVFallbackEncoding); err != nil {
		logger.Error("invalid csv_fallback_encoding", zap.Error(err))
		return fmt.Errorf("invalid csv_fallback_encoding: %w", err)
	}

	if appCfg.CSVMaxRows < 0 {
		return fmt.Errorf("csv_max_rows must not be negative (got %d)", appCfg.CSVMaxRows)
	}

	if _, ok := finder.ParseDedupeKey(appCfg.DedupeKey); !ok {
		return fmt.Errorf("invalid dedupe_key %q: use 'name' or 'id'", appCfg.DedupeKey)
	}

	if appCfg.APIRateLimit < 0 {
		return fmt.Errorf("api_rate_limit must not be negative (got %d)", appCfg.APIRateLimit)
	}

	if appCfg.RememberSelection {
		if appCfg.SessionKey == "" {
			return fmt.Errorf("session_key is required when remember_selection is enabled")
		}
		if env == "prod" && appCfg.SessionKey == devSessionKey {
			return fmt.Errorf("session_key must be changed from the development default in production")
		}
		if appCfg.SessionMaxAge < time.Minute {
			return fmt.Errorf("session_max_age must be at least 1m (got %s)", appCfg.SessionMaxAge)
		}
	}

	return nil
}
