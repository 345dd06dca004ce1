// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/ugchub/internal/app/system/indexes"
	"github.com/dalemusser/ugchub/internal/app/system/schema"
	"github.com/dalemusser/ugchub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the collections with their validators, then the
// review indexes. Both steps are idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Setup())
	defer cancel()

	db := deps.UGCMongoDatabase
	if err := schema.EnsureCollections(ctx, db, logger); err != nil {
		logger.Error("collection setup failed", zap.Error(err))
		return fmt.Errorf("ensure collections: %w", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}
