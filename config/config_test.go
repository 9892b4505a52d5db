package config_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumahr/leave-engine/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "json", cfg.SnapshotDriver)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.False(t, cfg.Seed)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SNAPSHOT_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("SEED", "true")

	cfg := config.Load(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "sqlite", cfg.SnapshotDriver)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.True(t, cfg.Seed)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("SEED", "maybe")

	cfg := config.Load(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.Seed)
}
