package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/punchclockhq/punchclock/pkg/observability"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database store.Config

	// Redis configuration (dashboard cache)
	Redis RedisConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// RedisConfig holds Redis connection settings. Redis is optional; an empty
// Addr disables the dashboard response cache's remote tier.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Database:      loadDatabaseConfig(),
		Redis:         loadRedisConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("PUNCH_HOST", "0.0.0.0"),
		Port:            getEnv("PUNCH_PORT", "8080"),
		ReadTimeout:     getEnvDuration("PUNCH_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("PUNCH_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("PUNCH_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("PUNCH_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("PUNCH_HEALTH_PORT", "9090"),
	}
}

// loadDatabaseConfig loads database configuration from environment. The
// sqlite3 driver is intended for dev mode; production runs on postgres.
func loadDatabaseConfig() store.Config {
	cfg := store.DefaultConfig()

	if driver := getEnv("PUNCH_DB_DRIVER", ""); driver != "" {
		cfg.Driver = driver
	}
	cfg.URL = getEnv("PUNCH_DB_URL", "")
	if maxConns := getEnvInt("PUNCH_DB_MAX_CONNS", 0); maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	if minConns := getEnvInt("PUNCH_DB_MIN_CONNS", 0); minConns > 0 {
		cfg.MinConns = minConns
	}
	if timeout := getEnvDuration("PUNCH_DB_TIMEOUT", 0); timeout > 0 {
		cfg.Timeout = timeout
	}
	if lifetime := getEnvDuration("PUNCH_DB_MAX_LIFETIME", 0); lifetime > 0 {
		cfg.MaxLifetime = lifetime
	}
	if idleTime := getEnvDuration("PUNCH_DB_MAX_IDLE_TIME", 0); idleTime > 0 {
		cfg.MaxIdleTime = idleTime
	}

	return cfg
}

// loadRedisConfig loads Redis configuration from environment
func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     getEnv("PUNCH_REDIS_ADDR", ""),
		Password: getEnv("PUNCH_REDIS_PASSWORD", ""),
		DB:       getEnvInt("PUNCH_REDIS_DB", 0),
		CacheTTL: getEnvDuration("PUNCH_DASHBOARD_CACHE_TTL", time.Minute),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	cfg := ObservabilityConfig{
		LogLevel:           parseLogLevel(getEnv("PUNCH_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("PUNCH_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("PUNCH_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("PUNCH_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("PUNCH_OTEL_SERVICE_NAME", "punchclock-api"),
		OTelServiceVersion: getEnv("PUNCH_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("PUNCH_OTEL_INSECURE", true),
	}

	return cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	// Validate database config
	switch c.Database.Driver {
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
	case "sqlite3":
		if c.Database.URL == "" {
			return fmt.Errorf("database URL is required for sqlite3 (use :memory: for dev mode)")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be postgres or sqlite3)", c.Database.Driver)
	}

	// Validate OpenTelemetry config
	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
