// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging level and request limits. AppConfig carries everything specific
// to the resource directory: where the table lives, how it is decoded, the
// rules document and the selection cookie.
type AppConfig struct {
	// Resource table
	CSVPath             string // path to the semicolon-delimited table
	CSVFallbackEncoding string // second decoding attempt: latin-1, windows-1252 or none
	CSVMaxRows          int    // refuse tables with more data rows than this
	CSVLazyQuotes       bool   // tolerate bare quotes in unquoted cells

	// Directory rules
	RulesFile string // YAML rules document; blank uses the embedded default
	DedupeKey string // "name" (default) or "id"

	// Presentation
	SiteName string // header title (default: models.DefaultSiteName)

	// Remembered selection cookie
	RememberSelection bool
	SessionKey        string        // secret key for signing the cookie
	SessionName       string        // cookie name
	SessionDomain     string        // cookie domain (blank means current host)
	SessionMaxAge     time.Duration // how long a selection is remembered

	// JSON endpoint
	APIRateLimit      int  // requests per minute per client IP; 0 disables
	TrustProxyHeaders bool // key the limit by X-Forwarded-For / X-Real-IP

	// Prometheus
	MetricsEnabled bool
}
