// Package pipeline wires one rate-paced frame producer and a pool of
// N persisting consumers over a bounded drop-oldest queue.
//
// # Topology
//
//	Generator → Producer → framequeue.Queue → Consumer × N → Sink
//	                (paced at TargetFPS)        (drain on shutdown)
//
// The producer generates one frame per cycle, paces itself to the
// configured target rate, and pushes to the queue; pushes never block,
// so queue pressure surfaces as evicted (dropped) frames rather than as
// producer jitter. Consumers block on the queue and hand each frame to
// the sink outside the queue lock.
//
// # Lifecycle
//
// A Pipeline executes exactly one run:
//
//	p, err := pipeline.New(cfg, gen, sink)
//	summary, err := p.Run(ctx)
//
// Run returns after every worker has been joined. The run ends when the
// configured duration elapses, the caller cancels ctx, or Abort() is
// called; in all three cases consumers drain the queue before exiting
// and the returned Summary accounts for every produced frame.
//
// # Shutdown
//
// Producer-done and abort are the queue's two latch flags (see
// framequeue). The producer closes input when its loop ends; ctx
// cancellation and Abort() both latch the abort flag. Abort is
// cooperative: the producer observes it within one frame period,
// consumers after their current persist call.
package pipeline
