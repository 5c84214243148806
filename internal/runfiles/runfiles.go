// Package runfiles manages per-run output directories.
//
// Every run gets a timestamped directory under the runs root:
//
//	runs/
//	  20260830_141502_001/
//	    config.yaml     run configuration (written at start)
//	    stats.json      final run statistics (written at exit)
//	    outputs/        persisted frames (when saving is enabled)
//	  latest -> 20260830_141502_001
package runfiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Run is a handle to one run directory.
type Run struct {
	// ID uniquely identifies the run across hosts.
	ID string

	// Path is the run directory.
	Path string

	// OutputDir is the outputs/ subdirectory for persisted frames.
	OutputDir string

	startTime time.Time
}

// NewRun creates the next run directory under runsDir, writes the given
// configuration as config.yaml, and repoints the latest symlink.
func NewRun(runsDir string, cfg any) (*Run, error) {
	startTime := time.Now()
	runPath, err := nextRunPath(runsDir, startTime)
	if err != nil {
		return nil, err
	}

	r := &Run{
		ID:        uuid.NewString(),
		Path:      runPath,
		OutputDir: filepath.Join(runPath, "outputs"),
		startTime: startTime,
	}

	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("runfiles: failed to create run dir: %w", err)
	}

	if err := r.writeConfig(cfg); err != nil {
		return nil, err
	}

	// Best-effort convenience link; a failed symlink never fails the run.
	latest := filepath.Join(runsDir, "latest")
	os.Remove(latest)
	_ = os.Symlink(filepath.Base(runPath), latest)

	return r, nil
}

// WriteStats serializes v as stats.json in the run directory.
func (r *Run) WriteStats(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("runfiles: failed to marshal stats: %w", err)
	}
	path := filepath.Join(r.Path, "stats.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("runfiles: failed to write stats: %w", err)
	}
	return nil
}

func (r *Run) writeConfig(cfg any) error {
	manifest := struct {
		Run struct {
			ID        string `yaml:"id"`
			Timestamp string `yaml:"timestamp"`
			Path      string `yaml:"path"`
		} `yaml:"run"`
		Config any `yaml:"config"`
	}{Config: cfg}
	manifest.Run.ID = r.ID
	manifest.Run.Timestamp = r.startTime.Format(time.RFC3339)
	manifest.Run.Path = r.Path

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("runfiles: failed to marshal config: %w", err)
	}
	path := filepath.Join(r.Path, "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("runfiles: failed to write config: %w", err)
	}
	return nil
}

// nextRunPath picks runs/<YYYYMMDD_HHMMSS>_<NNN> with the lowest unused
// sequence number for that timestamp.
func nextRunPath(runsDir string, startTime time.Time) (string, error) {
	timestamp := startTime.Format("20060102_150405")
	seq := nextSequence(runsDir, timestamp)
	name := fmt.Sprintf("%s_%03d", timestamp, seq)
	return filepath.Join(runsDir, name), nil
}

func nextSequence(runsDir, timestamp string) int {
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		return 1
	}

	maxSeq := 0
	prefix := timestamp + "_"
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(name, prefix)); err == nil && n > maxSeq {
			maxSeq = n
		}
	}
	return maxSeq + 1
}
