package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/e7canasta/camsim/framequeue"
)

// produce is the single producer goroutine: generate → pace → push,
// until the run deadline or abort. ctx carries the run deadline; the
// abort flag is re-checked at the top of every cycle so cancellation
// latency is bounded by one frame period.
//
// On exit the queue's input is closed unconditionally — skipping the
// broadcast would park every drained consumer forever.
func (p *Pipeline) produce(ctx context.Context) {
	defer p.queue.CloseInput()

	// A limiter with burst 1 releases exactly one token per frame
	// period: Wait returns immediately when generation ran long, and
	// sleeps the remainder when it ran short. Same cadence as a manual
	// frame-period sleep, minus the bookkeeping.
	limiter := rate.NewLimiter(rate.Limit(p.cfg.TargetFPS), 1)

	var id int64
	for {
		if p.queue.Aborted() {
			p.log.Debug("producer observed abort")
			return
		}

		if err := limiter.Wait(ctx); err != nil {
			// Deadline reached or run cancelled; either way the
			// generation loop is over.
			return
		}

		genStart := time.Now()
		img, err := p.gen.Generate()
		genElapsed := time.Since(genStart)

		if err != nil {
			// Skip this cycle: a single failed generation is not fatal
			// to the pipeline, and the limiter keeps the cadence honest.
			p.stats.generationFailures.Add(1)
			if p.metrics != nil {
				p.metrics.GenerationFailures.Inc()
			}
			p.log.Warn("generation failed, skipping cycle",
				zap.Int64("frame_id", id),
				zap.Error(err))
			continue
		}

		frame := &framequeue.Frame{
			ID:        id,
			Width:     img.Width,
			Height:    img.Height,
			Data:      img.Data,
			Timestamp: time.Now(),
			TraceID:   uuid.NewString(),
		}
		id++

		enqStart := time.Now()
		evicted := p.queue.Push(frame)
		enqElapsed := time.Since(enqStart)

		p.stats.produced.Add(1)
		p.stats.recordGeneration(genElapsed)
		p.stats.recordEnqueue(enqElapsed)

		if p.metrics != nil {
			p.metrics.FramesProduced.Inc()
			p.metrics.GenerationSeconds.Observe(genElapsed.Seconds())
			p.metrics.EnqueueSeconds.Observe(enqElapsed.Seconds())
			p.metrics.QueueDepth.Set(float64(p.queue.Size()))
			if evicted != nil {
				p.metrics.FramesDropped.Inc()
			}
		}

		if evicted != nil {
			p.log.Debug("queue full, dropped oldest frame",
				zap.Int64("dropped_id", evicted.ID),
				zap.Int64("pushed_id", frame.ID))
		}
	}
}
