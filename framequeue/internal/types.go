package internal

// QueueStats is a snapshot of queue operational state.
type QueueStats struct {
	// Depth is the queue length at snapshot time.
	Depth int

	// Capacity is the fixed capacity ceiling.
	Capacity int

	// HighWater is the maximum depth observed since creation.
	// Depth pinned at Capacity means consumers cannot keep up.
	HighWater int

	// Pushed is the total number of frames accepted by Push.
	Pushed uint64

	// Dropped is the total number of frames evicted by the drop-oldest
	// policy. Should be 0 when consumers outpace the producer.
	Dropped uint64

	// InputClosed reports whether the producer has finished.
	InputClosed bool

	// Aborted reports whether cancellation was requested.
	Aborted bool
}
