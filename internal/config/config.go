// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/govalues/money"
	"github.com/joho/godotenv"
)

// devSecret signs tokens when DEV_SEED is on and no JWT_SECRET is given.
const devSecret = "daftar-dev-secret-do-not-use"

type Config struct {
	// HTTP server
	HTTPAddr string

	// Storage; an empty DatabaseURL selects the in-memory store
	DatabaseURL    string
	MigrateOnStart bool

	// Logging
	LogLevel  string
	LogFormat string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Ledger
	Currency   string
	RecentDays int

	DevSeed bool
}

// Load reads .env (if present) and then the environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "json")),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 2*time.Hour),
		Currency:       strings.ToUpper(getEnv("CURRENCY", "IRR")),
		RecentDays:     getEnvInt("RECENT_DAYS", 7),
		DevSeed:        getEnvBool("DEV_SEED", false),
	}
	if cfg.JWTSecret == "" && cfg.DevSeed {
		cfg.JWTSecret = devSecret
	}
	return cfg
}

// Validate returns every problem found, joined into one error.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.HTTPAddr) == "" {
		problems = append(problems, "HTTP address cannot be empty")
	}
	if len(c.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be at least 16 bytes")
	}
	if c.TokenTTL < time.Minute || c.TokenTTL > 30*24*time.Hour {
		problems = append(problems, fmt.Sprintf("invalid token TTL %v: must be between 1 minute and 30 days", c.TokenTTL))
	}
	if _, err := money.ParseCurr(c.Currency); err != nil {
		problems = append(problems, fmt.Sprintf("invalid currency '%s': %v", c.Currency, err))
	}
	if c.RecentDays < 1 || c.RecentDays > 366 {
		problems = append(problems, fmt.Sprintf("invalid recent days %d: must be between 1 and 366", c.RecentDays))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be json or text", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Curr returns the configured currency; call after Validate.
func (c *Config) Curr() money.Currency {
	curr, _ := money.ParseCurr(c.Currency)
	return curr
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
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
