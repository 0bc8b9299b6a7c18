package game

import (
	"log/slog"

	"github.com/pthm-cable/vitals/components"
	"github.com/pthm-cable/vitals/engine"
	"github.com/pthm-cable/vitals/telemetry"
)

// Record receives engine events. It counts them toward the stats window
// and buffers them for events.csv.
func (g *Game) Record(ev telemetry.Event) {
	g.collector.Record(ev)
	if g.output != nil {
		g.pending = append(g.pending, ev)
	}

	if !g.logStats {
		return
	}
	switch ev.Type {
	case telemetry.EventClassChanged:
		slog.Info("class changed", "tick", ev.Tick, "metric", ev.Metric, "previous", ev.Previous, "class", ev.Class)
	case telemetry.EventConfigReloaded:
		slog.Info("config applied", "tick", ev.Tick, "skin", g.cfg.Status.Skin)
	case telemetry.EventBurstRejected:
		slog.Debug("burst rejected", "tick", ev.Tick, "x", ev.X, "y", ev.Y)
	}
}

// sampleTelemetry runs after every advanced frame.
func (g *Game) sampleTelemetry(dt float64) {
	f := g.frame
	g.collector.RecordFrame(dt)

	ids := make([]string, len(f.Spirits))
	kinds := make([]components.Kind, len(f.Spirits))
	for i, s := range f.Spirits {
		ids[i] = s.ID
		kinds[i] = s.Kind
	}
	g.lifetimes.Sync(ids, kinds, f.Tick, f.Time)

	if every := int64(g.cfg.Telemetry.FrameSampleEvery); g.output != nil && every > 0 && f.Tick%every == 0 {
		if err := g.output.WriteFrame(frameSample(f)); err != nil {
			slog.Error("failed to write frame sample", "error", err)
		}
	}

	if g.collector.ShouldFlush(f.Time) {
		g.flushTelemetry()
	}
}

// flushTelemetry closes the stats window, writes output and checks for
// bookmarks.
func (g *Game) flushTelemetry() {
	f := g.frame
	fixerLife, defenderLife := g.lifetimes.Drain()
	stats := g.collector.Flush(telemetry.Gauges{
		Tick:      f.Tick,
		Time:      f.Time,
		Metric:    f.Metric,
		Class:     f.Class.String(),
		Fixers:    f.Fixers,
		Defenders: f.Defenders,
		Speed:     f.Params.Speed,
		Intensity: f.Params.Intensity,
		Color:     f.Params.Color.Hex(),
	}, fixerLife, defenderLife)
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if len(g.pending) > 0 {
			if err := g.output.WriteEvents(g.pending); err != nil {
				slog.Error("failed to write events", "error", err)
			}
			g.pending = g.pending[:0]
		}
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.output != nil {
			if err := g.output.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
		if g.snapshots {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot writes the current state under the output directory.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	if g.output == nil {
		slog.Warn("snapshot skipped: no output directory")
		return
	}
	path, err := g.output.WriteSnapshot(g.createSnapshot(bookmark))
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.frame.Tick)
}

// createSnapshot builds a snapshot from the last frame.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	f := g.frame
	return &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		Seed:    g.seed,
		Skin:    g.cfg.Status.Skin,
		Tick:    f.Tick,
		Time:    f.Time,
		Metric:  f.Metric,
		Class:   f.Class.String(),
		Orb: telemetry.OrbState{
			Color:         f.Params.Color.Hex(),
			Speed:         f.Params.Speed,
			Intensity:     f.Params.Intensity,
			PulseActive:   f.Pulse.Active,
			PulseProgress: f.Pulse.Progress(),
		},
		Spirits:  telemetry.NewSpiritStates(f.Spirits),
		Bookmark: bookmark,
	}
}

func frameSample(f engine.Frame) telemetry.FrameSample {
	return telemetry.FrameSample{
		Tick:            f.Tick,
		Time:            f.Time,
		Metric:          f.Metric,
		Class:           f.Class.String(),
		Color:           f.Params.Color.Hex(),
		Speed:           f.Params.Speed,
		Intensity:       f.Params.Intensity,
		TargetSpeed:     f.Target.Speed,
		TargetIntensity: f.Target.Intensity,
		PulseActive:     f.Pulse.Active,
		PulseProgress:   f.Pulse.Progress(),
		Fixers:          f.Fixers,
		Defenders:       f.Defenders,
	}
}
