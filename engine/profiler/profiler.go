package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats holds the frame statistics of the last completed interval.
type Stats struct {
	Frames       int
	FPS          float64
	AvgFrameTime time.Duration
	MaxFrameTime time.Duration
	HeapMB       float64
	GCCount      uint32
}

// Profiler tracks frame rate, frame time and memory statistics for performance monitoring.
// Time is accumulated from the frame deltas handed to Tick, so an interval spans exactly the
// frames the engine simulated.
type Profiler struct {
	frameCount     int
	elapsed        time.Duration
	maxFrame       time.Duration
	updateInterval time.Duration
	readMemory     bool
	memStats       runtime.MemStats
	lastGCCount    uint32
	last           Stats
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second and memory statistics are read on every report.
//
// Parameters:
//   - options: functional options for profiler configuration
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		readMemory:     true,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per drawn frame.
// Logs statistics when the accumulated frame time reaches the update interval.
//
// Parameters:
//   - dt: the frame delta in seconds
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(dt float32) bool {
	frame := time.Duration(float64(dt) * float64(time.Second))
	p.frameCount++
	p.elapsed += frame
	p.maxFrame = max(p.maxFrame, frame)

	if p.elapsed < p.updateInterval {
		return false
	}

	stats := Stats{
		Frames:       p.frameCount,
		FPS:          float64(p.frameCount) / p.elapsed.Seconds(),
		AvgFrameTime: p.elapsed / time.Duration(p.frameCount),
		MaxFrameTime: p.maxFrame,
	}
	if p.readMemory {
		runtime.ReadMemStats(&p.memStats)
		stats.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
		stats.GCCount = p.memStats.NumGC - p.lastGCCount
		p.lastGCCount = p.memStats.NumGC
	}

	log.Printf("[Profiler] FPS: %.2f | Frame: avg %.2f ms, max %.2f ms | Heap: %.2f MB | GC: %d",
		stats.FPS,
		float64(stats.AvgFrameTime.Microseconds())/1000,
		float64(stats.MaxFrameTime.Microseconds())/1000,
		stats.HeapMB, stats.GCCount)

	p.last = stats
	p.frameCount = 0
	p.elapsed = 0
	p.maxFrame = 0
	return true
}

// Last returns the statistics of the most recently reported interval.
//
// Returns:
//   - Stats: the last report, zero before the first one
func (p *Profiler) Last() Stats {
	return p.last
}
