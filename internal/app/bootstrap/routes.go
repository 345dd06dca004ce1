// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/ugchub/internal/app/features/health"
	"github.com/dalemusser/ugchub/internal/app/store/gateway"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// The UGC operations are consumed in-process through ugc.Service; the
// router only exposes the health check used by load balancers and
// orchestrators.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	gw := gateway.New(deps.UGCMongoDatabase, logger)
	healthHandler := healthfeature.NewHandler(gw, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	return r, nil
}
