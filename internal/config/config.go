package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration read from the environment.
type Config struct {
	// Server
	Host            string
	Port            string
	Env             string // development, staging, production
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	// Logging
	LogEnv   string
	LogLevel string

	Rebalance RebalanceConfig
}

// RebalanceConfig tunes the rebalance engine.
type RebalanceConfig struct {
	// DivisionPrecision is the number of decimal places kept when a current
	// percentage is not a terminating decimal.
	DivisionPrecision int32
	Distribution      string // rounded, largest_remainder
	DistributionScale int32
}

// Load reads configuration from environment variables, after loading an
// optional .env file.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Host:            getEnv("SERVER_HOST", "0.0.0.0"),
		Port:            getEnv("SERVER_PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
		WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
		ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", "10s"),
		MaxBodyBytes:    int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),

		LogEnv:   getEnv("LOG_ENV", ""),
		LogLevel: getEnv("LOG_LEVEL", ""),

		Rebalance: RebalanceConfig{
			DivisionPrecision: int32(getEnvAsInt("REBALANCE_DIVISION_PRECISION", 32)),
			Distribution:      getEnv("REBALANCE_DISTRIBUTION", "rounded"),
			DistributionScale: int32(getEnvAsInt("REBALANCE_DISTRIBUTION_SCALE", 8)),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsProduction reports whether production logging should be used.
func (c *Config) IsProduction() bool {
	env := c.LogEnv
	if env == "" {
		env = c.Env
	}
	return env == "production"
}

func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production")
	}
	if c.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.Rebalance.DivisionPrecision <= 0 {
		return fmt.Errorf("REBALANCE_DIVISION_PRECISION must be positive")
	}
	switch c.Rebalance.Distribution {
	case "rounded", "largest_remainder":
	default:
		return fmt.Errorf("REBALANCE_DISTRIBUTION must be one of: rounded, largest_remainder")
	}
	if c.Rebalance.DistributionScale < 0 {
		return fmt.Errorf("REBALANCE_DISTRIBUTION_SCALE cannot be negative")
	}
	if c.Rebalance.DistributionScale > c.Rebalance.DivisionPrecision {
		return fmt.Errorf("REBALANCE_DISTRIBUTION_SCALE cannot exceed REBALANCE_DIVISION_PRECISION")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return nil
}

// loadEnvFile loads the first .env found, without overriding variables that
// are already set.
func loadEnvFile() {
	paths := []string{".env"}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}
