package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame-advance rate, advance cost, and memory statistics
// for performance monitoring. Outputs stats to the log at a configurable
// interval.
type Profiler struct {
	advanceCount   int
	advanceTotal   time.Duration
	advanceMax     time.Duration
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}
}

// Tick should be called once per frame advance with the time that advance
// took. Logs performance statistics when the update interval has elapsed.
// Statistics include: advances per second, mean/max advance cost, heap
// usage, allocation rate, and GC count/pause times.
//
// Parameters:
//   - advanceDuration: the wall time the frame advance took
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(advanceDuration time.Duration) bool {
	p.advanceCount++
	p.advanceTotal += advanceDuration
	if advanceDuration > p.advanceMax {
		p.advanceMax = advanceDuration
	}

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	rate := float64(p.advanceCount) / elapsed.Seconds()
	mean := p.advanceTotal / time.Duration(p.advanceCount)

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024

	// Allocation rate (MB/sec) since the last report.
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	gcDelta := gcCount - p.lastGCCount
	var lastPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
	}

	log.Printf("[Profiler] Advances: %.2f/s | Cost: mean %s, max %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: +%d (last: %d µs)",
		rate, mean, p.advanceMax, allocMB, allocRateMB, gcDelta, lastPauseUs)

	p.advanceCount = 0
	p.advanceTotal = 0
	p.advanceMax = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
