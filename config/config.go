/*
Package config loads runtime configuration from the environment.

A .env file in the working directory is loaded first when present; real
environment variables win over .env entries. Every setting has a default
suitable for local development, so the server runs with no configuration
at all.
*/
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// SnapshotDriver selects persistence: "json", "sqlite", or "none".
	SnapshotDriver string

	// DataDir is the directory for the json driver's files.
	DataDir string

	// DBPath is the sqlite driver's database file.
	DBPath string

	// Seed populates demo data on startup when the store is empty.
	Seed bool
}

// Load reads configuration from .env and the environment.
func Load(logger *slog.Logger) Config {
	if err := godotenv.Load(); err != nil {
		// No .env is the normal case outside local dev.
		logger.Debug("no .env file loaded", "error", err)
	}

	return Config{
		Port:           getEnvInt("PORT", 8080),
		SnapshotDriver: getEnv("SNAPSHOT_DRIVER", "json"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		DBPath:         getEnv("DB_PATH", "./data/leave.db"),
		Seed:           getEnvBool("SEED", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
