// Package internal implements the bounded drop-oldest frame queue.
//
// This package is INTERNAL - clients MUST use the public API in the
// parent package. Reason: allows internal refactoring without breaking
// changes.
package internal

import (
	"errors"
	"sync"
)

// ErrInvalidCapacity is returned by NewQueue for a non-positive capacity.
var ErrInvalidCapacity = errors.New("framequeue: capacity must be positive")

// Queue is the concrete bounded drop-oldest queue.
//
// Concurrency model (classic monitor):
//   - One mutex protects the frame slice AND both shutdown flags, so a
//     consumer's "empty and done?" check is a single atomic observation
//   - notEmpty is signalled once per Push (one frame wakes one consumer)
//     and broadcast on CloseInput/Abort (every parked consumer must
//     re-evaluate its exit condition)
//   - The lock is never held across generation or persistence I/O; the
//     critical sections are pointer moves and counter bumps
//
// Thread-safety: all methods safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond

	frames   []*Frame
	capacity int

	// Shutdown flags. Each latches false→true at most once per run and
	// never reverts. Guarded by mu so flag checks compose with emptiness
	// checks.
	inputClosed bool
	aborted     bool

	// Telemetry. Guarded by mu (updated only inside mutating sections).
	pushed    uint64
	dropped   uint64
	highWater int
}

// NewQueue creates a queue with the given capacity ceiling.
func NewQueue(capacity int) (*Queue, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	q := &Queue{
		frames:   make([]*Frame, 0, capacity),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	return q, nil
}

// Push appends frame at the back, evicting the front frame first when at
// capacity. Returns the evicted frame (nil if none). Never blocks.
func (q *Queue) Push(frame *Frame) *Frame {
	q.mu.Lock()

	var evicted *Frame
	if len(q.frames) == q.capacity {
		evicted = q.removeFront()
		q.dropped++
	}

	q.frames = append(q.frames, frame)
	q.pushed++
	if len(q.frames) > q.highWater {
		q.highWater = len(q.frames)
	}

	// One new frame: one consumer gets to wake.
	q.notEmpty.Signal()

	q.mu.Unlock()
	return evicted
}

// Take blocks until a frame is available or shutdown is flagged.
// Returns (nil, false) only when the queue is empty and no more input
// can arrive — queued frames are always drained before consumers exit.
func (q *Queue) Take() (*Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.frames) == 0 && !q.inputClosed && !q.aborted {
		q.notEmpty.Wait()
	}

	if len(q.frames) == 0 {
		// Terminal state: empty and (inputClosed or aborted).
		return nil, false
	}

	return q.removeFront(), true
}

// Pop removes and returns the front frame without blocking.
func (q *Queue) Pop() (*Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.frames) == 0 {
		return nil, false
	}
	return q.removeFront(), true
}

// Front returns the front frame without removing it.
func (q *Queue) Front() (*Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.frames) == 0 {
		return nil, false
	}
	return q.frames[0], true
}

// Size returns the current depth.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

// Empty reports whether the queue is currently empty.
func (q *Queue) Empty() bool {
	return q.Size() == 0
}

// Capacity returns the fixed capacity ceiling.
func (q *Queue) Capacity() int {
	return q.capacity
}

// CloseInput latches the producer-done flag and wakes all consumers.
// Idempotent.
func (q *Queue) CloseInput() {
	q.mu.Lock()
	if !q.inputClosed {
		q.inputClosed = true
		// Broadcast, not Signal: every parked consumer must re-check
		// its exit condition, or stragglers park forever.
		q.notEmpty.Broadcast()
	}
	q.mu.Unlock()
}

// Abort latches the cancellation flag and wakes all consumers.
// Idempotent, callable by any actor at any time.
func (q *Queue) Abort() {
	q.mu.Lock()
	if !q.aborted {
		q.aborted = true
		q.notEmpty.Broadcast()
	}
	q.mu.Unlock()
}

// InputClosed reports whether CloseInput has been called.
func (q *Queue) InputClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inputClosed
}

// Aborted reports whether Abort has been called.
func (q *Queue) Aborted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.aborted
}

// Stats returns an operational snapshot.
func (q *Queue) Stats() QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QueueStats{
		Depth:       len(q.frames),
		Capacity:    q.capacity,
		HighWater:   q.highWater,
		Pushed:      q.pushed,
		Dropped:     q.dropped,
		InputClosed: q.inputClosed,
		Aborted:     q.aborted,
	}
}

// removeFront pops the oldest frame. Caller must hold mu and have
// verified the queue is non-empty.
func (q *Queue) removeFront() *Frame {
	front := q.frames[0]
	q.frames[0] = nil // release the reference so the frame can be collected
	q.frames = q.frames[1:]
	return front
}
