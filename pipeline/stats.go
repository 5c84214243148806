package pipeline

import (
	"sync/atomic"
	"time"
)

// stats accumulates run telemetry with atomics so the hot paths never
// contend on a lock. Advisory only: correctness never depends on these
// counters.
type stats struct {
	produced           atomic.Uint64
	persisted          atomic.Uint64
	persistFailures    atomic.Uint64
	generationFailures atomic.Uint64

	generationNanos atomic.Uint64
	persistNanos    atomic.Uint64
	enqueueNanos    atomic.Uint64
}

func (s *stats) recordGeneration(d time.Duration) {
	s.generationNanos.Add(uint64(d.Nanoseconds()))
}

func (s *stats) recordEnqueue(d time.Duration) {
	s.enqueueNanos.Add(uint64(d.Nanoseconds()))
}

func (s *stats) recordPersist(d time.Duration) {
	s.persisted.Add(1)
	s.persistNanos.Add(uint64(d.Nanoseconds()))
}

// Summary is the observable result of one run, for an external
// reporting layer to print or export.
type Summary struct {
	// Produced is the number of frames the producer pushed.
	// Evicted frames count here too: they were produced, then dropped.
	Produced uint64

	// Persisted is the number of frames the sink accepted.
	Persisted uint64

	// Dropped is the number of frames evicted by the queue.
	Dropped uint64

	// PersistFailures is the number of frames the sink rejected.
	// Tracked separately from drops (different failure class).
	PersistFailures uint64

	// GenerationFailures is the number of producer cycles skipped
	// because the generator failed.
	GenerationFailures uint64

	// MeanGeneration is the mean generator latency per produced frame.
	MeanGeneration time.Duration

	// MeanPersist is the mean sink latency per persisted frame.
	MeanPersist time.Duration

	// MeanEnqueue is the mean queue push latency per produced frame.
	MeanEnqueue time.Duration

	// Elapsed is the wall-clock length of the run.
	Elapsed time.Duration

	// QueueHighWater is the maximum queue depth observed.
	QueueHighWater int

	// Aborted reports whether the run ended by cancellation rather
	// than by exhausting its duration.
	Aborted bool
}

// RealFPS returns the achieved production rate over the run.
func (s Summary) RealFPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Produced) / s.Elapsed.Seconds()
}

// DropRate returns the percentage of produced frames that were evicted.
func (s Summary) DropRate() float64 {
	if s.Produced == 0 {
		return 0
	}
	return float64(s.Dropped) / float64(s.Produced) * 100.0
}

func meanDuration(totalNanos, count uint64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(totalNanos / count)
}
