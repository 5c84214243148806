package main

import (
	"fmt"
	"time"

	"github.com/e7canasta/camsim/framesink"
	"github.com/e7canasta/camsim/pipeline"
)

// reportStats periodically prints live pipeline statistics until done
// is closed.
func reportStats(p *pipeline.Pipeline, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			printLiveStats(p)
		}
	}
}

// printLiveStats prints a point-in-time view of the run.
func printLiveStats(p *pipeline.Pipeline) {
	s := p.Snapshot()
	qs := p.QueueStats()

	fmt.Println()
	fmt.Println("╭──────────────────────────────────────────────────╮")
	fmt.Printf("│ camsim (elapsed: %v)\n", s.Elapsed.Round(time.Second))
	fmt.Println("├──────────────────────────────────────────────────┤")
	fmt.Println("│ Producer:")
	fmt.Printf("│   Frames Produced:   %7d\n", s.Produced)
	fmt.Printf("│   Real FPS:          %10.2f\n", s.RealFPS())
	fmt.Printf("│   Mean Generation:   %10s\n", s.MeanGeneration.Round(time.Microsecond))
	fmt.Printf("│   Mean Enqueue:      %10s\n", s.MeanEnqueue.Round(time.Microsecond))
	fmt.Println("│")
	fmt.Println("│ Queue:")
	fmt.Printf("│   Depth:             %4d / %d (high water %d)\n", qs.Depth, qs.Capacity, qs.HighWater)
	fmt.Printf("│   Dropped:           %7d (%.1f%%)\n", s.Dropped, s.DropRate())
	fmt.Println("│")
	fmt.Println("│ Consumers:")
	fmt.Printf("│   Frames Persisted:  %7d\n", s.Persisted)
	fmt.Printf("│   Persist Failures:  %7d\n", s.PersistFailures)
	fmt.Printf("│   Mean Persist:      %10s\n", s.MeanPersist.Round(time.Microsecond))
	fmt.Println("╰──────────────────────────────────────────────────╯")
	fmt.Println()
}

// printFinalSummary prints the end-of-run accounting block.
func printFinalSummary(s pipeline.Summary, saver *framesink.Saver) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Println("                  Final Statistics                 ")
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Printf("  Elapsed:               %v\n", s.Elapsed.Round(time.Millisecond))
	fmt.Printf("  Frames Produced:       %d (%.2f fps)\n", s.Produced, s.RealFPS())
	fmt.Printf("  Frames Persisted:      %d\n", s.Persisted)
	fmt.Printf("  Frames Dropped:        %d (%.1f%%)\n", s.Dropped, s.DropRate())
	if s.PersistFailures > 0 {
		fmt.Printf("  Persist Failures:      %d\n", s.PersistFailures)
	}
	if s.GenerationFailures > 0 {
		fmt.Printf("  Generation Failures:   %d\n", s.GenerationFailures)
	}
	fmt.Println()
	fmt.Printf("  Mean Generation Time:  %v\n", s.MeanGeneration.Round(time.Microsecond))
	fmt.Printf("  Mean Persist Time:     %v\n", s.MeanPersist.Round(time.Microsecond))
	fmt.Printf("  Mean Enqueue Time:     %v\n", s.MeanEnqueue.Round(time.Microsecond))
	fmt.Printf("  Queue High Water:      %d\n", s.QueueHighWater)
	if saver != nil {
		saved, failed := saver.Stats()
		fmt.Printf("  Files Written:         %d (%d failed)\n", saved, failed)
	}
	if s.Aborted {
		fmt.Println("  Run aborted by external signal")
	}
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Println()
}
