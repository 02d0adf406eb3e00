// Package config loads the runtime configuration from the environment,
// with an optional .env file for development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs from its environment.
type Config struct {
	Port        int
	DatabaseURL string
	DBSSLMode   string // TLS mode for the store connection, e.g. disable/require/verify-full
	LogLevel    slog.Level
}

// Load reads configuration from the environment. A .env file is loaded first
// when present; real environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional; absence is not an error

	cfg := &Config{
		Port:      8080,
		DBSSLMode: "prefer",
		LogLevel:  slog.LevelInfo,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", raw, err)
		}
		cfg.Port = port
	}

	if mode := os.Getenv("DB_SSLMODE"); mode != "" {
		cfg.DBSSLMode = mode
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

// DSN returns the store connection string with the configured sslmode
// applied. A connection string that already carries one is left untouched.
func (c *Config) DSN() string {
	if strings.Contains(c.DatabaseURL, "sslmode=") {
		return c.DatabaseURL
	}
	sep := "?"
	if strings.Contains(c.DatabaseURL, "?") {
		sep = "&"
	}
	return c.DatabaseURL + sep + "sslmode=" + c.DBSSLMode
}
