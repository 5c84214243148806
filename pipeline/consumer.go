package pipeline

import (
	"time"

	"go.uber.org/zap"
)

// consume is one worker in the consumer pool. Each worker is identical
// and independent: whichever is awake takes the next frame, which gives
// natural load balancing without affinity or work stealing.
//
// Persistence runs outside the queue lock — Take returns before the
// sink is invoked — so slow I/O never blocks the producer or siblings.
func (p *Pipeline) consume(workerID int) {
	log := p.log.With(zap.Int("worker", workerID))
	log.Debug("worker started")

	for {
		frame, ok := p.queue.Take()
		if !ok {
			// Queue drained and no more input coming.
			log.Debug("worker exiting, queue drained")
			return
		}

		start := time.Now()
		err := p.sink.Persist(frame)
		elapsed := time.Since(start)

		if err != nil {
			// At-most-once: log, count, discard. Never re-enqueue and
			// never take the pool down over one frame.
			p.stats.persistFailures.Add(1)
			if p.metrics != nil {
				p.metrics.PersistFailures.Inc()
			}
			log.Warn("persist failed, frame discarded",
				zap.Int64("frame_id", frame.ID),
				zap.String("trace_id", frame.TraceID),
				zap.Error(err))
			continue
		}

		p.stats.recordPersist(elapsed)
		if p.metrics != nil {
			p.metrics.FramesPersisted.Inc()
			p.metrics.PersistSeconds.Observe(elapsed.Seconds())
		}

		log.Debug("frame persisted",
			zap.Int64("frame_id", frame.ID),
			zap.Duration("persist_time", elapsed),
			zap.Int("queue_depth", p.queue.Size()))
	}
}
