package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/probuilds/sc2coach/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:sc2coach.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:8000", cfg.SC2ReaderURL)
	assert.Equal(t, int64(8<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 2, cfg.ParseWorkerCount)
	assert.Equal(t, 32, cfg.ParseQueueSize)
	assert.Equal(t, 3, cfg.MaxIssuesPerGame)
	assert.True(t, cfg.SeedBuildOrders)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("PARSE_WORKER_COUNT", "5")
	t.Setenv("MAX_ISSUES_PER_GAME", "10")
	t.Setenv("SEED_BUILD_ORDERS", "false")

	cfg := config.Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 5, cfg.ParseWorkerCount)
	assert.Equal(t, 10, cfg.MaxIssuesPerGame)
	assert.False(t, cfg.SeedBuildOrders)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("PARSE_WORKER_COUNT", "not-a-number")
	t.Setenv("MAX_UPLOAD_BYTES", "huge")
	t.Setenv("SEED_BUILD_ORDERS", "maybe")

	cfg := config.Load()
	assert.Equal(t, 2, cfg.ParseWorkerCount)
	assert.Equal(t, int64(8<<20), cfg.MaxUploadBytes)
	assert.True(t, cfg.SeedBuildOrders)
}
