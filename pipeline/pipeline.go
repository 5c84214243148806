package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/e7canasta/camsim/framegen"
	"github.com/e7canasta/camsim/framequeue"
	"github.com/e7canasta/camsim/framesink"
	"github.com/e7canasta/camsim/internal/logging"
	"github.com/e7canasta/camsim/internal/metrics"
)

// Pipeline owns everything one run needs: the queue, the collaborators,
// the telemetry. No ambient globals — tasks reach shared state only
// through this handle.
type Pipeline struct {
	cfg     Config
	gen     framegen.Generator
	sink    framesink.Sink
	queue   framequeue.Queue
	log     *logging.Logger
	metrics *metrics.Metrics
	stats   stats

	startedMu sync.Mutex
	started   bool
	startTime time.Time
	endTime   time.Time
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger attaches a logger. Default is a nop logger.
func WithLogger(log *logging.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithMetrics attaches Prometheus collectors. Default is none.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New validates cfg and assembles a single-run pipeline.
func New(cfg Config, gen framegen.Generator, sink framesink.Sink, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	q, err := framequeue.New(cfg.QueueCapacity)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:   cfg,
		gen:   gen,
		sink:  sink,
		queue: q,
		log:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes the pipeline until the duration elapses or the run is
// cancelled, then drains and joins every worker before returning the
// run Summary.
//
// Cancellation: ctx cancellation and Abort() are equivalent — both
// latch the queue's abort flag. Run returns ctx.Err() when ctx caused
// the stop, nil otherwise. The Summary is valid either way.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	p.startedMu.Lock()
	if p.started {
		p.startedMu.Unlock()
		return Summary{}, fmt.Errorf("pipeline: already run")
	}
	p.started = true
	p.startTime = time.Now()
	p.startedMu.Unlock()

	p.log.Info("pipeline starting",
		zap.Float64("target_fps", p.cfg.TargetFPS),
		zap.Duration("duration", p.cfg.Duration),
		zap.Int("workers", p.cfg.Workers),
		zap.Int("queue_capacity", p.cfg.QueueCapacity))

	// The producer's own deadline is the sole timeout source; consumers
	// stop via the queue flags, never via a deadline of their own.
	prodCtx, cancelProd := context.WithTimeout(ctx, p.cfg.Duration)
	defer cancelProd()

	// Relay external cancellation to the queue's abort flag so parked
	// consumers wake even if the producer is mid-sleep.
	relayDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			p.queue.Abort()
		case <-relayDone:
		}
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		p.produce(prodCtx)
	}()

	for i := 0; i < p.cfg.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.consume(id)
		}(i)
	}

	// Every spawned goroutine is joined before the run is reported
	// complete; Summary accounting depends on it.
	wg.Wait()
	close(relayDone)

	p.startedMu.Lock()
	p.endTime = time.Now()
	p.startedMu.Unlock()

	summary := p.Snapshot()
	p.log.Info("pipeline finished",
		zap.Uint64("produced", summary.Produced),
		zap.Uint64("persisted", summary.Persisted),
		zap.Uint64("dropped", summary.Dropped),
		zap.Bool("aborted", summary.Aborted))

	return summary, ctx.Err()
}

// Abort requests cooperative cancellation: the producer stops within one
// frame period, consumers drain the queue and exit. Safe from any
// goroutine, idempotent.
func (p *Pipeline) Abort() {
	p.queue.Abort()
}

// Snapshot returns current run telemetry. Safe to call concurrently
// with a running pipeline (live reporting) or after Run (final summary).
func (p *Pipeline) Snapshot() Summary {
	qs := p.queue.Stats()

	produced := p.stats.produced.Load()
	persisted := p.stats.persisted.Load()

	p.startedMu.Lock()
	var elapsed time.Duration
	switch {
	case !p.endTime.IsZero():
		elapsed = p.endTime.Sub(p.startTime)
	case p.started:
		elapsed = time.Since(p.startTime)
	}
	p.startedMu.Unlock()

	return Summary{
		Produced:           produced,
		Persisted:          persisted,
		Dropped:            qs.Dropped,
		PersistFailures:    p.stats.persistFailures.Load(),
		GenerationFailures: p.stats.generationFailures.Load(),
		MeanGeneration:     meanDuration(p.stats.generationNanos.Load(), produced),
		MeanPersist:        meanDuration(p.stats.persistNanos.Load(), persisted),
		MeanEnqueue:        meanDuration(p.stats.enqueueNanos.Load(), produced),
		Elapsed:            elapsed,
		QueueHighWater:     qs.HighWater,
		Aborted:            qs.Aborted,
	}
}

// QueueStats exposes the queue's own snapshot for live reporting.
func (p *Pipeline) QueueStats() framequeue.QueueStats {
	return p.queue.Stats()
}
