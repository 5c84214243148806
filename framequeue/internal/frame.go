package internal

import "time"

// Frame represents one synthetic camera frame flowing producer → queue →
// consumer → sink.
//
// IMMUTABILITY CONTRACT:
//   - Producer: MUST NOT modify frame fields after Push
//   - Consumers: MUST NOT modify frame fields (read-only access)
//   - Enforcement: documentation-based (runtime checks would add overhead
//     on the hot path)
//
// Ownership moves with the frame: the producer owns it during generation,
// the queue while enqueued, and exactly one consumer after Take. An
// evicted frame is owned by whoever received it from Push (telemetry
// only) and becomes garbage afterwards.
type Frame struct {
	// ID is the producer-assigned sequence number, monotonically
	// increasing from 0 within a run. Not globally unique across runs.
	ID int64

	// Width of the frame in pixels
	Width int

	// Height of the frame in pixels
	Height int

	// Data contains the raw RGB frame bytes (3 bytes per pixel).
	// MUST NOT be modified after Push (shared by reference).
	Data []byte

	// Timestamp is when the frame was generated (producer clock).
	Timestamp time.Time

	// TraceID is a unique identifier for correlating a frame across
	// log lines and persisted artifacts.
	TraceID string
}
