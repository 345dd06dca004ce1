// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/ugchub/internal/app/system/paging"
	"github.com/dalemusser/ugchub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup applies the configured deadlines and page limits after the
// database is ready and before the handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
	})
	paging.Configure(appCfg.DefaultPageSize, appCfg.MaxPageSize)

	cur := timeouts.Current()
	def, upper := paging.Limits()
	logger.Info("ugc limits configured",
		zap.Duration("timeout_short", cur.Short),
		zap.Duration("timeout_medium", cur.Medium),
		zap.Int("default_page_size", def),
		zap.Int("max_page_size", upper))
	return nil
}
