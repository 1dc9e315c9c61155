// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/recursosayuda/internal/app/system/catalog"
	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/metrics"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
)

// DBDeps holds the back-end dependencies for the app. There is no database:
// the "connection" is the memoized resource table plus the rules document
// that interprets it.
type DBDeps struct {
	Catalog *catalog.Store
	Rules   profiles.Rules
	Dedupe  finder.DedupeKey
	Metrics *metrics.Metrics // nil when metrics are disabled
}
