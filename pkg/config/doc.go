// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	PUNCH_HOST="0.0.0.0"
//	PUNCH_PORT="8080"
//	PUNCH_HEALTH_PORT="9090"
//	PUNCH_READ_TIMEOUT="15s"
//	PUNCH_WRITE_TIMEOUT="15s"
//
// Database settings:
//
//	PUNCH_DB_DRIVER="postgres"  # postgres, sqlite3
//	PUNCH_DB_URL="postgres://localhost/punchclock"
//	PUNCH_DB_MAX_CONNS="20"
//
// Redis settings (dashboard cache; leave PUNCH_REDIS_ADDR empty to disable):
//
//	PUNCH_REDIS_ADDR="localhost:6379"
//	PUNCH_REDIS_DB="0"
//	PUNCH_DASHBOARD_CACHE_TTL="1m"
//
// Observability settings:
//
//	PUNCH_LOG_LEVEL="info"  # debug, info, warn, error
//	PUNCH_METRICS_ENABLED="true"
//	PUNCH_OTEL_ENABLED="true"
//	PUNCH_OTEL_ENDPOINT="otel-collector:4317"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Server: %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//	fmt.Printf("Database: %s\n", cfg.Database.Driver)
//	fmt.Printf("Log level: %s\n", cfg.Observability.LogLevel)
//
// # Related Packages
//
//   - pkg/store: Uses database configuration
//   - pkg/observability: Uses observability configuration
package config
