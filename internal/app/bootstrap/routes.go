// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	aboutfeature "github.com/dalemusser/recursosayuda/internal/app/features/about"
	errorsfeature "github.com/dalemusser/recursosayuda/internal/app/features/errors"
	healthfeature "github.com/dalemusser/recursosayuda/internal/app/features/health"
	resourcesfeature "github.com/dalemusser/recursosayuda/internal/app/features/resources"
	"github.com/dalemusser/recursosayuda/internal/app/system/prefs"
	"github.com/dalemusser/recursosayuda/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the catalog load and the Startup
// hook have completed. It boots the template engine, builds the selection
// cookie manager and mounts the directory, health, metrics and static
// routes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(coreCfg.Env == "prod", appCfg, deps, logger)
}

func newRouter(secure bool, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	var pm *prefs.Manager
	if appCfg.RememberSelection {
		var err error
		pm, err = prefs.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
		if err != nil {
			logger.Error("selection cookie init failed", zap.Error(err))
			return nil, err
		}
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Catalog, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus exposition
	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// How the directory chooses and orders resources
	r.Mount("/acerca", aboutfeature.Routes(aboutfeature.NewHandler(deps.Rules, logger)))

	// Directory: search page, detail view, JSON
	resHandler := resourcesfeature.NewHandler(deps.Catalog, deps.Rules, deps.Dedupe, pm, deps.Metrics, errLog, logger)
	if appCfg.APIRateLimit > 0 {
		limiter := ratelimit.New(appCfg.APIRateLimit, time.Minute)
		limiter.TrustProxyHeaders = appCfg.TrustProxyHeaders
		resHandler.APILimit = limiter
	}
	r.Mount("/", resourcesfeature.Routes(resHandler))

	return r, nil
}
