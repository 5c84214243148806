// Package config loads ambient configuration from the environment.
//
// Run parameters (rate, duration, workers, capacity) are CLI flags in
// cmd/camsim; the environment carries only the knobs an operator sets
// once per host: logging, the metrics listener, the runs directory.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Ambient holds environment-sourced configuration. Variables are
// prefixed CAMSIM_ (e.g. CAMSIM_LOG_LEVEL).
type Ambient struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev      bool   `envconfig:"LOG_DEV" default:"false"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`
	RunsDir     string `envconfig:"RUNS_DIR" default:"runs"`
}

// Load reads ambient configuration from the environment.
func Load() (*Ambient, error) {
	var cfg Ambient
	if err := envconfig.Process("camsim", &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load environment: %w", err)
	}
	return &cfg, nil
}
