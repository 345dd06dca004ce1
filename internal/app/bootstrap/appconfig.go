// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// the framework-level settings (ports, TLS, logging level); everything
// the UGC service itself needs lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI            string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase       string        // Database name within MongoDB
	MongoMaxPoolSize    uint64        // Max connections in the driver pool
	MongoMinPoolSize    uint64        // Connections kept warm in the pool
	MongoConnectTimeout time.Duration // Bound on connect + first ping

	// Paging for bookmark and review listings
	DefaultPageSize int
	MaxPageSize     int

	// Store round trip deadlines
	TimeoutShort  time.Duration // single-document operations
	TimeoutMedium time.Duration // aggregations
}
