// Package config loads the service configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL    string
	Port           string
	DefaultStoreID int64
	TenantID       string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAITimeout  time.Duration
	LogFormat      string
	LogLevel       string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first; variables already set in the
// environment take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Port:         getEnv("PORT", "3000"),
		TenantID:     os.Getenv("TENANT_ID"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	// Manual classification mappings are scoped per tenant. Without an
	// explicit TENANT_ID the database name doubles as the tenant.
	if cfg.TenantID == "" {
		cfg.TenantID = databaseName(cfg.DatabaseURL)
	}

	storeIDStr := getEnv("STORE_ID", "65984")
	storeID, err := strconv.ParseInt(storeIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("STORE_ID must be a valid integer: %w", err)
	}
	cfg.DefaultStoreID = storeID

	timeoutStr := getEnv("OPENAI_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("OPENAI_TIMEOUT must be a valid duration: %w", err)
	}
	cfg.OpenAITimeout = timeout

	return cfg, nil
}

// RerankerEnabled reports whether the semantic reranking stage should run.
func (c *Config) RerankerEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// databaseName extracts the database name from a postgres URL, or "" when it
// cannot be parsed.
func databaseName(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
