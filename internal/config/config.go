// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pkordes/mtbuller-resort/internal/domain"
)

// Snapshot storage backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"]. Set CORS_ORIGINS to a
	// comma-separated list to override.
	CORSOrigins []string

	// SnapshotBackend selects where saved package lists live:
	// "file" (default) or "postgres".
	SnapshotBackend string

	// DataDir is the directory the file backend writes .dat snapshots to.
	// Defaults to "data".
	DataDir string

	// DatabaseURL is the Postgres connection string.
	// Required only when SnapshotBackend is "postgres".
	DatabaseURL string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// LoadMode is the restore mode used when a load request names none.
	// Defaults to replace.
	LoadMode domain.LoadMode
}

// Load reads an optional .env file from the working directory, then builds a
// Config from the environment. Variables already set in the environment win
// over the file. Returns an error describing every invalid or missing value.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: reading .env: %w", err)
	}

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SnapshotBackend: strings.ToLower(getEnv("SNAPSHOT_BACKEND", BackendFile)),
		DataDir:         getEnv("DATA_DIR", "data"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
	}

	var problems []string

	switch cfg.SnapshotBackend {
	case BackendFile:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when SNAPSHOT_BACKEND=postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("SNAPSHOT_BACKEND must be %q or %q, got %q", BackendFile, BackendPostgres, cfg.SnapshotBackend))
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	mode, err := domain.ParseLoadMode(os.Getenv("LOAD_MODE"))
	if err != nil {
		problems = append(problems, "LOAD_MODE must be replace or merge")
	}
	cfg.LoadMode = mode

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
