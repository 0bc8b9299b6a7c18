package game

import "log/slog"

// LogSummary logs the final engine state of a run.
func (g *Game) LogSummary() {
	f := g.frame
	attrs := []any{
		"tick", f.Tick,
		"time", f.Time,
		"metric", f.Metric,
		"class", f.Class.String(),
		"fixers", f.Fixers,
		"defenders", f.Defenders,
		"color", f.Params.Color.Hex(),
		"speed", f.Params.Speed,
		"intensity", f.Params.Intensity,
		"tracked_spirits", g.lifetimes.Count(),
	}
	if dir := g.output.Dir(); dir != "" {
		attrs = append(attrs, "output_dir", dir)
	}
	if g.scenario != nil {
		attrs = append(attrs, "scenario_remaining", g.scenario.Remaining())
	}
	slog.Info("run summary", attrs...)
}
