package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers selectable with STORE_DRIVER.
const (
	StoreDriverPgx  = "pgx"
	StoreDriverGorm = "gorm"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Store     StoreConfig
	Seed      SeedConfig
	Benchmark BenchmarkConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD"`
	Database        string        `env:"DB_NAME" envDefault:"catalog"`
	MaxConnections  int           `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	MinConnections  int           `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"5m"`
	// URL overrides the individual connection fields when set.
	URL string `env:"DATABASE_URL"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string `env:"API_KEY"`
}

// StoreConfig selects the data access implementation behind the fetch strategies.
type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" envDefault:"pgx"`
}

// SeedConfig controls loading of demo catalog data into an empty database.
type SeedConfig struct {
	Enabled bool   `env:"SEED_ENABLED" envDefault:"false"`
	File    string `env:"SEED_FILE" envDefault:"data/sample_catalog.ndjson.gz"`

	// Generated fallback used when no seed file can be read.
	GenerateProducts   int   `env:"SEED_GENERATE_PRODUCTS" envDefault:"0"`
	GenerateMaxReviews int   `env:"SEED_GENERATE_MAX_REVIEWS" envDefault:"5"`
	RandomSeed         int64 `env:"SEED_RANDOM_SEED" envDefault:"1"`

	S3 S3Config
}

// S3Config holds AWS S3 configuration for seed files.
type S3Config struct {
	Enabled bool   `env:"SEED_S3_ENABLED" envDefault:"false"`
	Bucket  string `env:"SEED_S3_BUCKET"`
	Region  string `env:"SEED_S3_REGION" envDefault:"us-east-1"`
	Key     string `env:"SEED_S3_KEY" envDefault:"catalog/sample_catalog.ndjson.gz"`
}

// BenchmarkConfig tunes the performance comparison.
type BenchmarkConfig struct {
	// Warmup runs both retrieval plans once, untimed, before measuring.
	Warmup bool `env:"BENCHMARK_WARMUP" envDefault:"true"`
}

// Load loads configuration from an optional .env file and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}

		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}

		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}

		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Store.Driver != StoreDriverPgx && c.Store.Driver != StoreDriverGorm {
		return fmt.Errorf("invalid store driver: %s (must be pgx or gorm)", c.Store.Driver)
	}

	if c.Seed.GenerateProducts < 0 || c.Seed.GenerateMaxReviews < 0 {
		return fmt.Errorf("seed generation counts must not be negative")
	}

	if c.Seed.S3.Enabled {
		if c.Seed.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.Seed.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
		if c.Seed.S3.Key == "" {
			return fmt.Errorf("S3 key is required when S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
