package pipeline

import (
	"errors"
	"time"

	"github.com/e7canasta/camsim/framequeue"
)

// Configuration errors. All are detected by Validate before any
// goroutine starts; an invalid configuration is the only error class
// that stops a run from beginning at all.
var (
	ErrInvalidRate     = errors.New("pipeline: target FPS must be positive")
	ErrInvalidDuration = errors.New("pipeline: duration must be positive")
	ErrInvalidWorkers  = errors.New("pipeline: worker count must be positive")
	ErrInvalidCapacity = errors.New("pipeline: queue capacity must be positive")
)

// Config holds the knobs for one pipeline run.
type Config struct {
	// TargetFPS is the frame production rate in frames per second.
	TargetFPS float64

	// Duration is the wall-clock generation budget. The producer stops
	// generating once this much time has elapsed since Run started.
	Duration time.Duration

	// Workers is the consumer pool size.
	Workers int

	// QueueCapacity bounds the frame queue. Zero selects
	// framequeue.DefaultCapacity.
	QueueCapacity int
}

// Validate rejects configurations that would produce undefined behavior
// (zero-rate pacing, zero-capacity deadlock). Called by New.
func (c *Config) Validate() error {
	if c.TargetFPS <= 0 {
		return ErrInvalidRate
	}
	if c.Duration <= 0 {
		return ErrInvalidDuration
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = framequeue.DefaultCapacity
	}
	if c.QueueCapacity < 0 {
		return ErrInvalidCapacity
	}
	return nil
}
