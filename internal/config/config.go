// Package config loads application configuration from command-line flags,
// environment variables and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"feedreader" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"feedreader" description:"Database name"`
	DBSSLMode  string `long:"db-sslmode" env:"DB_SSLMODE" default:"disable" description:"Database SSL mode"`

	// HTTP server
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Ingest pipeline
	SourcesDir      string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source seed files"`
	WorkerCount     int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background fetch workers"`
	FetchInterval   int    `long:"fetch-interval" env:"FETCH_INTERVAL" default:"60" description:"Scheduler tick interval in seconds"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"900" description:"Default per-source refresh interval in seconds"`
	UserAgent       string `long:"user-agent" env:"USER_AGENT" default:"feedreader/1.0" description:"User agent string for feed requests"`

	// Logging
	LogLevel string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level (debug, info, warn, error)"`
}

// Load parses configuration from a .env file (when present), environment
// variables and command-line flags, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// SlogLevel maps the configured log level onto slog's levels. Unknown values
// fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
