// Package framequeue implements a capacity-bounded FIFO frame queue
// with a drop-oldest eviction policy and built-in shutdown coordination.
//
// # Philosophy
//
// "Drop the oldest, never stall the camera. Recency > Completeness."
//
// camsim simulates a fixed-rate camera. The producer's cadence is the one
// thing the pipeline must never disturb: when consumers lag, the queue
// evicts its oldest frame to make room rather than blocking the producer
// or refusing the new frame. The most current frames are the valuable
// ones; stale frames are the cheapest to lose.
//
// # Design Principles
//
//  1. Non-blocking Push: Push() never blocks and never fails; at capacity
//     it evicts the front (oldest) frame and reports it to the caller
//  2. Blocking Take: consumers block until a frame is available
//     (sync.Cond monitor, no busy-wait)
//  3. One lock: queue contents and both shutdown flags live under a single
//     mutex, so "is the queue empty" and "is the input closed" are checked
//     atomically with respect to each other
//  4. Drain-then-exit: CloseInput and Abort both broadcast; Take keeps
//     returning frames until the queue is empty, then reports done
//
// # Shutdown Protocol
//
// Two flags, each latched true exactly once per run:
//
//   - input closed: the producer will never push again (set by the
//     producer when its run ends)
//   - aborted: an external actor requested cancellation (signal handler,
//     watchdog, test harness)
//
// Either flag causes Take() to return ok=false once the queue has
// drained. Both setters broadcast under the queue lock, so a consumer
// parked in Take() cannot miss the wakeup.
//
// # Basic Usage
//
// Producer side:
//
//	q, err := framequeue.New(15)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for running() {
//	    if evicted := q.Push(frame); evicted != nil {
//	        droppedTotal++
//	    }
//	}
//	q.CloseInput() // wakes every parked consumer
//
// Consumer side:
//
//	for {
//	    frame, ok := q.Take() // blocks until frame or shutdown
//	    if !ok {
//	        break // drained and no more input coming
//	    }
//	    persist(frame) // outside the queue lock
//	}
package framequeue
