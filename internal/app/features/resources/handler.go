// internal/app/features/resources/handler.go
package resources

import (
	uierrors "github.com/dalemusser/recursosayuda/internal/app/features/errors"
	"github.com/dalemusser/recursosayuda/internal/app/system/finder"
	"github.com/dalemusser/recursosayuda/internal/app/system/metrics"
	"github.com/dalemusser/recursosayuda/internal/app/system/prefs"
	"github.com/dalemusser/recursosayuda/internal/app/system/ratelimit"
	"github.com/dalemusser/recursosayuda/internal/app/system/profiles"
	"github.com/dalemusser/recursosayuda/internal/domain/models"
	"go.uber.org/zap"
)

// Catalog is the read side of the loaded resource table.
type Catalog interface {
	Rows() []models.Resource
	ByID(id string) (models.Resource, bool)
	Provinces(isGlobal func(province string) bool) []string
}

// Handler owns the public directory handlers: the search page, its HTMX
// results snippet, the detail view and the JSON endpoint.
//
// It is constructed once at startup in bootstrap from the memoized catalog
// and the rules document.
type Handler struct {
	Catalog  Catalog
	Rules    profiles.Rules
	Dedupe   finder.DedupeKey
	Prefs    *prefs.Manager     // nil disables the remembered selection
	Metrics  *metrics.Metrics   // nil disables instrumentation
	APILimit *ratelimit.Limiter // nil leaves /api/recursos unthrottled
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs a Handler.
func NewHandler(cat Catalog, rules profiles.Rules, dedupe finder.DedupeKey, pm *prefs.Manager, m *metrics.Metrics, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if errLog == nil {
		errLog = uierrors.NewErrorLogger(logger)
	}
	return &Handler{
		Catalog: cat,
		Rules:   rules,
		Dedupe:  dedupe,
		Prefs:   pm,
		Metrics: m,
		ErrLog:  errLog,
		Log:     logger,
	}
}
