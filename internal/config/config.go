// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds the server configuration.
type Config struct {
	Port           int
	StorageBackend string
	DBPath         string
	RedisAddr      string
	StaticPath     string

	JWTSecret     string
	TokenDuration time.Duration

	// ShareBaseURL prefixes share links handed back to owners.
	ShareBaseURL string

	DefaultListLimit int
	MaxListLimit     int

	LogLevel        string
	OTELEndpoint    string
	OTELServiceName string
}

// LoadConfig reads a .env file when one exists, then the environment.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvInt("PORT", 8080),
		StorageBackend:   getEnvString("STORAGE_BACKEND", BackendSQLite),
		DBPath:           getEnvString("DB_PATH", "./data/finance.db"),
		RedisAddr:        getEnvString("REDIS_ADDR", "localhost:6379"),
		StaticPath:       getEnvString("STATIC_PATH", ""),
		JWTSecret:        getEnvString("JWT_SECRET", ""),
		TokenDuration:    getEnvDuration("TOKEN_DURATION", 24*time.Hour),
		ShareBaseURL:     getEnvString("SHARE_BASE_URL", "http://localhost:8080"),
		DefaultListLimit: getEnvInt("DEFAULT_LIST_LIMIT", 20),
		MaxListLimit:     getEnvInt("MAX_LIST_LIMIT", 100),
		LogLevel:         getEnvString("LOG_LEVEL", "info"),
		OTELEndpoint:     getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:  getEnvString("OTEL_SERVICE_NAME", "boatfinance"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration values the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.DefaultListLimit < 1 || c.MaxListLimit < c.DefaultListLimit {
		return fmt.Errorf("config: list limits must satisfy 1 <= DEFAULT_LIST_LIMIT (%d) <= MAX_LIST_LIMIT (%d)",
			c.DefaultListLimit, c.MaxListLimit)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
