package runfiles_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/e7canasta/camsim/internal/runfiles"
)

type testConfig struct {
	FPS     float64 `yaml:"fps"`
	Workers int     `yaml:"workers"`
}

func TestNewRunCreatesLayout(t *testing.T) {
	runsDir := t.TempDir()

	run, err := runfiles.NewRun(runsDir, testConfig{FPS: 25, Workers: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.DirExists(t, run.OutputDir)

	// config.yaml carries the run header and the caller's config.
	data, err := os.ReadFile(filepath.Join(run.Path, "config.yaml"))
	require.NoError(t, err)

	var manifest struct {
		Run struct {
			ID        string `yaml:"id"`
			Timestamp string `yaml:"timestamp"`
		} `yaml:"run"`
		Config testConfig `yaml:"config"`
	}
	require.NoError(t, yaml.Unmarshal(data, &manifest))
	assert.Equal(t, run.ID, manifest.Run.ID)
	assert.Equal(t, 25.0, manifest.Config.FPS)
	assert.Equal(t, 3, manifest.Config.Workers)

	// latest symlink points at the run directory.
	target, err := os.Readlink(filepath.Join(runsDir, "latest"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(run.Path), target)
}

func TestSequenceNumbersIncrement(t *testing.T) {
	runsDir := t.TempDir()

	first, err := runfiles.NewRun(runsDir, testConfig{})
	require.NoError(t, err)
	second, err := runfiles.NewRun(runsDir, testConfig{})
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
}

func TestWriteStats(t *testing.T) {
	run, err := runfiles.NewRun(t.TempDir(), testConfig{})
	require.NoError(t, err)

	stats := map[string]uint64{"frames_produced": 42, "frames_dropped": 3}
	require.NoError(t, run.WriteStats(stats))

	data, err := os.ReadFile(filepath.Join(run.Path, "stats.json"))
	require.NoError(t, err)

	var got map[string]uint64
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, uint64(42), got["frames_produced"])
	assert.Equal(t, uint64(3), got["frames_dropped"])
}
