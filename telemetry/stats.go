package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Gauges at window end
	Metric    int     `csv:"metric"`
	Class     string  `csv:"class"`
	Fixers    int     `csv:"fixers"`
	Defenders int     `csv:"defenders"`
	Speed     float64 `csv:"speed"`
	Intensity float64 `csv:"intensity"`
	Color     string  `csv:"color"`

	// Events during window
	MetricChanges    int `csv:"metric_changes"`
	ClassChanges     int `csv:"class_changes"`
	Pulses           int `csv:"pulses"`
	Spawned          int `csv:"spawned"`
	Despawned        int `csv:"despawned"`
	Bursts           int `csv:"bursts"`
	BurstsRejected   int `csv:"bursts_rejected"`
	DefenderExpiries int `csv:"defender_expiries"`
	Clears           int `csv:"clears"`
	Resets           int `csv:"resets"`

	// Frame pacing
	Frames      int     `csv:"frames"`
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms"`
	FrameP95MS  float64 `csv:"frame_p95_ms"`

	// Mean lifetime of spirits that despawned this window
	FixerLifetimeSec    float64 `csv:"fixer_lifetime"`
	DefenderLifetimeSec float64 `csv:"defender_lifetime"`
}

// ComputeFrameStats returns the mean, standard deviation and 50th/95th
// percentiles of frame deltas. Empty input yields zeros.
func ComputeFrameStats(values []float64) (mean, std, p50, p95 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	if n > 1 {
		mean, std = stat.MeanStdDev(values, nil)
	} else {
		mean = values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return mean, std, p50, p95
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("metric", s.Metric),
		slog.String("class", s.Class),
		slog.Int("fixers", s.Fixers),
		slog.Int("defenders", s.Defenders),
		slog.Float64("speed", s.Speed),
		slog.Float64("intensity", s.Intensity),
		slog.String("color", s.Color),
		slog.Int("metric_changes", s.MetricChanges),
		slog.Int("pulses", s.Pulses),
		slog.Int("spawned", s.Spawned),
		slog.Int("despawned", s.Despawned),
		slog.Int("bursts", s.Bursts),
		slog.Int("clears", s.Clears),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_p95_ms", s.FrameP95MS),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
