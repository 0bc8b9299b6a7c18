package telemetry

// Gauges are the instantaneous values sampled when a window closes.
type Gauges struct {
	Tick      int64
	Time      float64
	Metric    int
	Class     string
	Fixers    int
	Defenders int
	Speed     float64
	Intensity float64
	Color     string
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int64
	windowStartTime float64

	// Event counters for current window
	metricChanges    int
	classChanges     int
	pulses           int
	spawned          int
	despawned        int
	bursts           int
	burstsRejected   int
	defenderExpiries int
	clears           int
	resets           int

	frameDTs []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in engine seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record counts an event toward the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventMetricChanged:
		c.metricChanges++
	case EventClassChanged:
		c.classChanges++
	case EventPulseArmed:
		c.pulses++
	case EventReconciled:
		c.spawned += ev.Count
		c.despawned += ev.Removed
	case EventBurst:
		c.bursts++
		c.spawned += ev.Count
	case EventBurstRejected:
		c.burstsRejected++
	case EventDefendersExpired:
		c.defenderExpiries++
		c.despawned += ev.Removed
	case EventCleared:
		c.clears++
	case EventMetricReset:
		c.resets++
	}
}

// RecordFrame records one frame's delta time in seconds.
func (c *Collector) RecordFrame(dt float64) {
	c.frameDTs = append(c.frameDTs, dt)
}

// ShouldFlush returns true once the window has covered its duration.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
// Lifetimes are the mean fixer and defender lifetimes of spirits that
// despawned during the window.
func (c *Collector) Flush(g Gauges, fixerLifetime, defenderLifetime float64) WindowStats {
	frameMean, frameStd, frameP50, frameP95 := ComputeFrameStats(c.frameDTs)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   g.Tick,
		SimTimeSec:      g.Time,

		Metric:    g.Metric,
		Class:     g.Class,
		Fixers:    g.Fixers,
		Defenders: g.Defenders,
		Speed:     g.Speed,
		Intensity: g.Intensity,
		Color:     g.Color,

		MetricChanges:    c.metricChanges,
		ClassChanges:     c.classChanges,
		Pulses:           c.pulses,
		Spawned:          c.spawned,
		Despawned:        c.despawned,
		Bursts:           c.bursts,
		BurstsRejected:   c.burstsRejected,
		DefenderExpiries: c.defenderExpiries,
		Clears:           c.clears,
		Resets:           c.resets,

		Frames:      len(c.frameDTs),
		FrameMeanMS: frameMean * 1000,
		FrameStdMS:  frameStd * 1000,
		FrameP50MS:  frameP50 * 1000,
		FrameP95MS:  frameP95 * 1000,

		FixerLifetimeSec:    fixerLifetime,
		DefenderLifetimeSec: defenderLifetime,
	}

	// Reset for next window
	c.windowStartTick = g.Tick
	c.windowStartTime = g.Time
	c.metricChanges = 0
	c.classChanges = 0
	c.pulses = 0
	c.spawned = 0
	c.despawned = 0
	c.bursts = 0
	c.burstsRejected = 0
	c.defenderExpiries = 0
	c.clears = 0
	c.resets = 0
	c.frameDTs = c.frameDTs[:0]

	return stats
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
