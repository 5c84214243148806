// Command camsim simulates a fixed-rate camera: one producer generates
// synthetic frames at a target FPS for a configured duration while a
// pool of workers drains them into a sink, with a bounded drop-oldest
// queue in between.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/e7canasta/camsim/framegen"
	"github.com/e7canasta/camsim/framequeue"
	"github.com/e7canasta/camsim/framesink"
	"github.com/e7canasta/camsim/internal/config"
	"github.com/e7canasta/camsim/internal/logging"
	"github.com/e7canasta/camsim/internal/metrics"
	"github.com/e7canasta/camsim/internal/runfiles"
	"github.com/e7canasta/camsim/pipeline"
)

const version = "v0.1.0"

// Flags holds the per-run parameters. Ambient knobs (log level, metrics
// listener, runs directory) come from the environment instead; see
// internal/config.
type Flags struct {
	FPS        float64
	Duration   time.Duration
	Workers    int
	Capacity   int
	Resolution framegen.Resolution

	Save        bool
	Format      string
	JPEGQuality int
	SinkDelay   time.Duration

	Generator string

	StatsInterval time.Duration
	Debug         bool
}

func main() {
	flags := parseFlags()

	ambient, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := buildLogger(flags, ambient)
	defer logger.Sync()

	printBanner(flags)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First signal requests a graceful abort; workers still drain the
	// queue before the process exits.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutdown signal received, draining", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := run(ctx, flags, ambient, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("camsim stopped gracefully")
}

func parseFlags() Flags {
	var flags Flags

	flag.Float64Var(&flags.FPS, "fps", 50, "Target frame rate (frames/second)")
	flag.DurationVar(&flags.Duration, "duration", 10*time.Second, "Generation duration")
	flag.IntVar(&flags.Workers, "workers", 4, "Consumer pool size")
	flag.IntVar(&flags.Capacity, "capacity", framequeue.DefaultCapacity, "Frame queue capacity")
	resolutionStr := flag.String("resolution", "720p", "Frame resolution (512p, 720p, 1080p)")

	flag.BoolVar(&flags.Save, "save", false, "Persist frames to the run's outputs directory")
	flag.StringVar(&flags.Format, "format", "png", "Output format: png or jpeg")
	flag.IntVar(&flags.JPEGQuality, "jpeg-quality", 90, "JPEG quality (1-100)")
	flag.DurationVar(&flags.SinkDelay, "sink-delay", 0, "Artificial sink latency per frame (ignored with -save)")

	flag.StringVar(&flags.Generator, "generator", "static", "Frame generator: static or random")

	flag.DurationVar(&flags.StatsInterval, "stats-interval", 5*time.Second, "Live statistics reporting interval (0 disables)")
	flag.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	flag.Parse()

	resolution, ok := framegen.ParseResolution(*resolutionStr)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid resolution %q (must be 512p, 720p, or 1080p)\n", *resolutionStr)
		os.Exit(1)
	}
	flags.Resolution = resolution

	if flags.Generator != "static" && flags.Generator != "random" {
		fmt.Fprintf(os.Stderr, "Error: invalid generator %q (must be static or random)\n", flags.Generator)
		os.Exit(1)
	}

	return flags
}

func buildLogger(flags Flags, ambient *config.Ambient) *logging.Logger {
	if flags.Debug {
		return logging.NewDevelopment()
	}
	logger, err := logging.New(logging.Config{
		Level:       ambient.LogLevel,
		Development: ambient.LogDev,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q: %v\n", ambient.LogLevel, err)
		os.Exit(1)
	}
	return logger
}

func run(ctx context.Context, flags Flags, ambient *config.Ambient, logger *logging.Logger) error {
	width, height := flags.Resolution.Dimensions()

	cfg := pipeline.Config{
		TargetFPS:     flags.FPS,
		Duration:      flags.Duration,
		Workers:       flags.Workers,
		QueueCapacity: flags.Capacity,
	}

	runDir, err := runfiles.NewRun(ambient.RunsDir, runManifest(flags))
	if err != nil {
		return err
	}
	logger.Info("run initialized", zap.String("run_id", runDir.ID), zap.String("path", runDir.Path))

	var gen framegen.Generator
	if flags.Generator == "random" {
		gen, err = framegen.NewRandomRGB(width, height)
	} else {
		gen, err = framegen.NewStaticRGB(width, height)
	}
	if err != nil {
		return err
	}

	var sink framesink.Sink
	var saver *framesink.Saver
	if flags.Save {
		saver, err = framesink.NewSaver(runDir.OutputDir, flags.Format, flags.JPEGQuality)
		if err != nil {
			return err
		}
		sink = saver
		logger.Info("frame saving enabled",
			zap.String("output_dir", runDir.OutputDir),
			zap.String("format", flags.Format))
	} else {
		sink = &framesink.Discard{Delay: flags.SinkDelay}
	}

	m := metrics.New()
	if ambient.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		go func() {
			if err := http.ListenAndServe(ambient.MetricsAddr, mux); err != nil {
				logger.Warn("metrics listener failed", zap.Error(err))
			}
		}()
		logger.Info("metrics listener started", zap.String("addr", ambient.MetricsAddr))
	}

	p, err := pipeline.New(cfg, gen, sink,
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(m))
	if err != nil {
		return err
	}

	if flags.StatsInterval > 0 {
		reporterDone := make(chan struct{})
		defer close(reporterDone)
		go reportStats(p, flags.StatsInterval, reporterDone)
	}

	summary, runErr := p.Run(ctx)

	printFinalSummary(summary, saver)

	if err := runDir.WriteStats(statsDocument(flags, summary)); err != nil {
		logger.Warn("failed to write run stats", zap.Error(err))
	}

	return runErr
}

func printBanner(flags Flags) {
	fmt.Printf("camsim %s — synthetic camera pipeline\n", version)
	fmt.Printf("  rate=%.1ffps duration=%v workers=%d capacity=%d resolution=%s\n\n",
		flags.FPS, flags.Duration, flags.Workers, flags.Capacity, flags.Resolution)
}

// runManifest is what gets recorded as config.yaml in the run directory.
func runManifest(flags Flags) any {
	return struct {
		FPS        float64 `yaml:"fps"`
		Duration   string  `yaml:"duration"`
		Workers    int     `yaml:"workers"`
		Capacity   int     `yaml:"capacity"`
		Resolution string  `yaml:"resolution"`
		Generator  string  `yaml:"generator"`
		Save       bool    `yaml:"save"`
		Format     string  `yaml:"format"`
	}{
		FPS:        flags.FPS,
		Duration:   flags.Duration.String(),
		Workers:    flags.Workers,
		Capacity:   flags.Capacity,
		Resolution: flags.Resolution.String(),
		Generator:  flags.Generator,
		Save:       flags.Save,
		Format:     flags.Format,
	}
}

// statsDocument is what gets recorded as stats.json in the run directory.
func statsDocument(flags Flags, s pipeline.Summary) any {
	return struct {
		DurationSeconds    float64 `json:"duration_seconds"`
		TargetFPS          float64 `json:"target_fps"`
		RealFPS            float64 `json:"real_fps"`
		Produced           uint64  `json:"frames_produced"`
		Persisted          uint64  `json:"frames_persisted"`
		Dropped            uint64  `json:"frames_dropped"`
		PersistFailures    uint64  `json:"persist_failures"`
		GenerationFailures uint64  `json:"generation_failures"`
		DropRatePercent    float64 `json:"drop_rate_percent"`
		MeanGenerationMS   float64 `json:"mean_generation_ms"`
		MeanPersistMS      float64 `json:"mean_persist_ms"`
		MeanEnqueueMS      float64 `json:"mean_enqueue_ms"`
		QueueHighWater     int     `json:"queue_high_water"`
		Aborted            bool    `json:"aborted"`
	}{
		DurationSeconds:    s.Elapsed.Seconds(),
		TargetFPS:          flags.FPS,
		RealFPS:            s.RealFPS(),
		Produced:           s.Produced,
		Persisted:          s.Persisted,
		Dropped:            s.Dropped,
		PersistFailures:    s.PersistFailures,
		GenerationFailures: s.GenerationFailures,
		DropRatePercent:    s.DropRate(),
		MeanGenerationMS:   float64(s.MeanGeneration.Microseconds()) / 1000.0,
		MeanPersistMS:      float64(s.MeanPersist.Microseconds()) / 1000.0,
		MeanEnqueueMS:      float64(s.MeanEnqueue.Microseconds()) / 1000.0,
		QueueHighWater:     s.QueueHighWater,
		Aborted:            s.Aborted,
	}
}
