// internal/app/bootstrap/service.go
package bootstrap

import (
	"github.com/dalemusser/ugchub/internal/app/store/gateway"
	"github.com/dalemusser/ugchub/internal/app/ugc"
	"go.uber.org/zap"
)

// NewUGCService builds the UGC service over the connected database. The
// HTTP layer (or any other caller) gets its service from here so that the
// gateway always sits on the client opened by ConnectDB. BuildHandler
// mounts only /health today; a UGC router is built from this service and
// mounted beside it.
func NewUGCService(deps DBDeps, logger *zap.Logger) *ugc.Service {
	return ugc.New(gateway.New(deps.UGCMongoDatabase, logger), logger)
}
