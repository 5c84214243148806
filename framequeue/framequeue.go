package framequeue

import (
	"github.com/e7canasta/camsim/framequeue/internal"
)

// Frame is re-exported from the internal package to avoid import cycles.
// See internal/frame.go for full documentation.
type Frame = internal.Frame

// QueueStats is re-exported from the internal package to avoid import cycles.
// See internal/types.go for full documentation.
type QueueStats = internal.QueueStats

// DefaultCapacity is the queue capacity used when callers have no opinion.
// Sized for a producer roughly one second ahead of a briefly stalled
// consumer pool at moderate frame rates.
const DefaultCapacity = 15

// ErrInvalidCapacity is returned by New for a non-positive capacity.
// A zero-capacity queue would deadlock every consumer (nothing can ever
// be taken) so the constructor rejects it up front.
var ErrInvalidCapacity = internal.ErrInvalidCapacity

// Queue is the public interface for the bounded drop-oldest frame queue.
//
// Design:
//   - Interface (not concrete type) so tests and tooling can substitute
//     instrumented implementations
//   - Thread-safe: all methods safe for concurrent use
//   - One producer and N consumers is the intended topology, but nothing
//     breaks with multiple pushers
//
// Implementation is in internal/queue.go (hidden from clients).
type Queue interface {
	// Push appends frame at the back. If the queue is at capacity the
	// current front (oldest) frame is evicted first and returned so the
	// caller can record the drop; otherwise Push returns nil.
	//
	// Push never blocks and never fails. After a successful insert it
	// signals one parked consumer.
	Push(frame *Frame) (evicted *Frame)

	// Take blocks until a frame is available, then removes and returns
	// the front frame with ok=true.
	//
	// Take returns (nil, false) exactly when the queue is empty AND the
	// input is closed or the queue is aborted — the consumer's terminal
	// state. Frames still queued at shutdown are always drained first.
	Take() (frame *Frame, ok bool)

	// Pop removes and returns the front frame without blocking.
	// Returns (nil, false) if the queue is empty.
	Pop() (frame *Frame, ok bool)

	// Front returns the front frame without removing it.
	// Returns (nil, false) if the queue is empty.
	Front() (frame *Frame, ok bool)

	// Size returns the current queue depth. Point-in-time snapshot:
	// only meaningful for logging unless read under external ordering.
	Size() int

	// Empty reports whether the queue is currently empty. Same snapshot
	// caveat as Size.
	Empty() bool

	// Capacity returns the fixed capacity ceiling.
	Capacity() int

	// CloseInput latches the "no more input" flag and wakes every parked
	// consumer so each can re-evaluate its exit condition. Idempotent.
	CloseInput()

	// Abort latches the cancellation flag and wakes every parked
	// consumer. Callable by any actor at any time. Idempotent.
	Abort()

	// InputClosed reports whether CloseInput has been called.
	InputClosed() bool

	// Aborted reports whether Abort has been called.
	Aborted() bool

	// Stats returns an operational snapshot (depth, pushes, drops,
	// high-water mark). Safe for concurrent use.
	Stats() QueueStats
}

// New creates a bounded drop-oldest queue with the given capacity.
// Returns ErrInvalidCapacity if capacity < 1.
func New(capacity int) (Queue, error) {
	return internal.NewQueue(capacity)
}
