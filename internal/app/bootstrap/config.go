// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for UGCHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, default_page_size, etc.
//   - Environment variables: UGCHUB_MONGO_URI, UGCHUB_DEFAULT_PAGE_SIZE, etc.
//   - Command-line flags: --mongo_uri, --default_page_size, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "ugc", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "Timeout for the initial MongoDB connect and ping"},

	// Listing pages
	{Name: "default_page_size", Default: 10, Desc: "Page size used when a request gives none"},
	{Name: "max_page_size", Default: 100, Desc: "Largest page size a request may ask for"},

	// Store round trip deadlines
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document store operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for review listing aggregations"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, UGCHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "UGCHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:            appValues.String("mongo_uri"),
		MongoDatabase:       appValues.String("mongo_database"),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:    uint64(appValues.Int("mongo_min_pool_size")),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", 10*time.Second),

		DefaultPageSize: appValues.Int("default_page_size"),
		MaxPageSize:     appValues.Int("max_page_size"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// UGCHub validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and rejects page sizes that would
// make every listing request invalid.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.MaxPageSize < 1 {
		return fmt.Errorf("max_page_size must be >= 1, got %d", appCfg.MaxPageSize)
	}
	if appCfg.DefaultPageSize < 1 || appCfg.DefaultPageSize > appCfg.MaxPageSize {
		return fmt.Errorf("default_page_size must be between 1 and max_page_size (%d), got %d",
			appCfg.MaxPageSize, appCfg.DefaultPageSize)
	}
	return nil
}
