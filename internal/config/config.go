// Package config loads service settings from the environment and an optional
// config file through viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverSpanner  = "spanner"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every setting the binaries read.
type Config struct {
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	SpannerProjectID  string `mapstructure:"SPANNER_PROJECT_ID"`
	SpannerInstanceID string `mapstructure:"SPANNER_INSTANCE_ID"`
	SpannerDatabaseID string `mapstructure:"SPANNER_DATABASE_ID"`
	MigrationsDir     string `mapstructure:"MIGRATIONS_DIR"`

	PostgresDSN string `mapstructure:"POSTGRES_DSN"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	HTTPPort        string        `mapstructure:"HTTP_PORT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]interface{}{
	"STORE_DRIVER":        DriverSQLite,
	"SPANNER_PROJECT_ID":  "test-project",
	"SPANNER_INSTANCE_ID": "dev-instance",
	"SPANNER_DATABASE_ID": "inventory-db",
	"MIGRATIONS_DIR":      "migrations/spanner",
	"POSTGRES_DSN":        "",
	"SQLITE_PATH":         "inventory.db",
	"HTTP_PORT":           "8080",
	"SHUTDOWN_TIMEOUT":    "10s",
	"REDIS_ADDR":          "",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"CACHE_TTL":           "10m",
	"LOG_LEVEL":           "info",
	"LOG_FORMAT":          "console",
}

// Load reads configFile when it is not empty, then lets environment variables
// override any key.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected driver has what it needs.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSpanner:
		if c.SpannerProjectID == "" || c.SpannerInstanceID == "" || c.SpannerDatabaseID == "" {
			return fmt.Errorf("spanner driver needs SPANNER_PROJECT_ID, SPANNER_INSTANCE_ID and SPANNER_DATABASE_ID")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres driver needs POSTGRES_DSN")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite driver needs SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// SpannerDatabase returns the fully qualified database name.
func (c *Config) SpannerDatabase() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", c.SpannerProjectID, c.SpannerInstanceID, c.SpannerDatabaseID)
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
