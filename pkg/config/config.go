// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is read from the working directory when no path is given
const DefaultConfigFile = "dqscore.toml"

// Config represents the application configuration
type Config struct {
	// Profiling settings
	MaxRows        int // 0 means no limit
	WorkerPoolSize int // 0 means use runtime.NumCPU()

	// Result cache
	CacheDir  string // Empty disables the disk layer
	CacheSize int    // In-memory entries

	// Cleaning audit sink
	AuditDriver string // "sqlite" or "pgx"
	AuditDSN    string // Empty disables auditing

	// Database sources (optional)
	Snowflake *SnowflakeConfig
	Postgres  *PostgresConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// fileConfig mirrors the TOML layout of dqscore.toml
type fileConfig struct {
	MaxRows        int    `toml:"max_rows"`
	WorkerPoolSize int    `toml:"worker_pool_size"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
	Cache          struct {
		Dir  string `toml:"dir"`
		Size int    `toml:"size"`
	} `toml:"cache"`
	Audit struct {
		Driver string `toml:"driver"`
		DSN    string `toml:"dsn"`
	} `toml:"audit"`
}

// defaultFileConfig holds the built-in defaults
func defaultFileConfig() fileConfig {
	var fc fileConfig
	fc.MaxRows = 0
	fc.WorkerPoolSize = 0
	fc.LogLevel = "info"
	fc.LogFormat = "json"
	fc.Cache.Size = 128
	fc.Audit.Driver = "sqlite"
	return fc
}

// LoadConfig loads configuration from defaults, an optional TOML file, an
// optional .env file and environment variables, in increasing precedence.
// An empty path falls back to dqscore.toml when it exists.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	fc := defaultFileConfig()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	}

	cfg := &Config{
		MaxRows:        getEnvAsInt("DQ_MAX_ROWS", fc.MaxRows),
		WorkerPoolSize: getEnvAsInt("DQ_WORKER_POOL_SIZE", fc.WorkerPoolSize),
		CacheDir:       getEnv("DQ_CACHE_DIR", fc.Cache.Dir),
		CacheSize:      getEnvAsInt("DQ_CACHE_SIZE", fc.Cache.Size),
		AuditDriver:    getEnv("DQ_AUDIT_DRIVER", fc.Audit.Driver),
		AuditDSN:       getEnv("DQ_AUDIT_DSN", fc.Audit.DSN),
		LogLevel:       getEnv("LOG_LEVEL", fc.LogLevel),
		LogFormat:      getEnv("LOG_FORMAT", fc.LogFormat),
	}

	// Load database configurations
	snowConfig, err := LoadSnowflakeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load Snowflake configuration: %w", err)
	}
	cfg.Snowflake = snowConfig

	pgConfig, err := LoadPostgresConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load PostgreSQL configuration: %w", err)
	}
	cfg.Postgres = pgConfig

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all configuration values are within range
func (c *Config) Validate() error {
	if c.MaxRows < 0 {
		return errors.New("max rows cannot be negative")
	}

	if c.WorkerPoolSize < 0 {
		return errors.New("worker pool size cannot be negative")
	}

	if c.CacheSize <= 0 {
		return errors.New("cache size must be positive")
	}

	switch c.AuditDriver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("unsupported audit driver: %s", c.AuditDriver)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format: %s", c.LogFormat)
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
