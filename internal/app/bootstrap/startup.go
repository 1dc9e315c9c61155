// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/recursosayuda/internal/app/resources"
	"github.com/dalemusser/recursosayuda/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the catalog is
// loaded, but before the HTTP handler is built. It loads the shared layout
// templates and applies the configured site name.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.Init(appCfg.SiteName)
	logger.Info("directory ready",
		zap.String("site_name", viewdata.SiteName()),
		zap.String("csv_path", deps.Catalog.Path()),
		zap.Int("rows", len(deps.Catalog.Rows())),
		zap.String("dedupe_key", string(deps.Dedupe)))
	return nil
}
