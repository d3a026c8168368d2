package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is the summary of one profiling interval.
type Stats struct {
	// TickRate is engine ticks per second.
	TickRate float64
	// ChangeRate is ticks per second in which at least one camera moved.
	ChangeRate float64
	// HeapMB is live heap memory in MB.
	HeapMB float64
	// AllocRateMB is heap allocation churn in MB per second.
	AllocRateMB float64
	// GCCount is the total number of completed GC cycles.
	GCCount uint32
	// MaxPauseUs is the longest GC pause observed during the interval, in microseconds.
	MaxPauseUs uint64
}

// Profiler tracks tick rate, camera change rate and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	tickCount      int
	changeCount    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a new Profiler that reports every interval.
//
// Parameters:
//   - interval: reporting interval; values <= 0 default to 1 second
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// Tick should be called once per engine tick.
// Logs statistics when the update interval has elapsed.
//
// Parameters:
//   - changed: whether any controller moved its camera this tick
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(changed bool) bool {
	p.tickCount++
	if changed {
		p.changeCount++
	}
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	p.last = Stats{
		TickRate:    float64(p.tickCount) / seconds,
		ChangeRate:  float64(p.changeCount) / seconds,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:     gcCount,
		MaxPauseUs:  maxPauseUs,
	}
	log.Printf("[Profiler] Ticks: %.2f/s | Changes: %.2f/s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max: %d µs)",
		p.last.TickRate, p.last.ChangeRate, p.last.HeapMB, p.last.AllocRateMB, p.last.GCCount, p.last.MaxPauseUs)

	p.tickCount = 0
	p.changeCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the statistics from the most recent report.
//
// Returns:
//   - Stats: the last reported statistics, zero before the first report
func (p *Profiler) Last() Stats {
	return p.last
}
