package framesink

import (
	"time"

	"github.com/e7canasta/camsim/framequeue"
)

// Discard is a sink that accepts every frame and writes nothing.
//
// With a non-zero Delay it doubles as a slow-consumer simulator for
// queue-pressure experiments: each Persist sleeps for Delay before
// succeeding.
type Discard struct {
	// Delay is the artificial persistence latency per frame.
	Delay time.Duration
}

// Persist sleeps for Delay (if set) and succeeds (implements Sink).
func (d *Discard) Persist(_ *framequeue.Frame) error {
	if d.Delay > 0 {
		time.Sleep(d.Delay)
	}
	return nil
}
