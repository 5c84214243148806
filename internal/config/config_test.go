package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e7canasta/camsim/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogDev)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, "runs", cfg.RunsDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CAMSIM_LOG_LEVEL", "debug")
	t.Setenv("CAMSIM_METRICS_ADDR", ":9102")
	t.Setenv("CAMSIM_RUNS_DIR", "/tmp/camsim-runs")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9102", cfg.MetricsAddr)
	assert.Equal(t, "/tmp/camsim-runs", cfg.RunsDir)
}
