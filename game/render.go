package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vitals/renderer"
	"github.com/pthm-cable/vitals/systems"
	"github.com/pthm-cable/vitals/ui"
)

const controlsLegend = "[Click] burst  [Up/Down] metric (+Shift x10)  [C] clear  [B] burst at orb  [K] skin  [S] snapshot  [Tab] panel  [P] perf  [Space] pause"

// Draw renders the frame and applies any control panel actions.
func (g *Game) Draw() {
	g.perf.StartPhase(systems.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	f := g.frame
	sw, sh := int32(g.screenWidth), int32(g.screenHeight)

	g.background.Draw(f.Params.Color, f.Params.Intensity)
	g.orb.Draw(f.Params, f.Pulse, f.Idle)
	g.spirits.Draw(f.Spirits, f.Time)

	g.hud.Draw(g.hudData(), sw, sh)
	g.hud.DrawControls(sw, sh, controlsLegend)

	act := g.controls.Draw(ui.ControlsData{
		Metric:    f.Metric,
		SliderMax: g.cfg.Frame.SliderMax,
		Label:     f.Label(),
		Skins:     g.cfg.SkinNames(),
		Skin:      g.cfg.Status.Skin,
	})

	if g.showPerf {
		g.drawPerf()
	}

	rl.EndDrawing()

	g.applyControls(act)
	g.perf.EndTick()
	g.perf.RecordFrame()
}

func (g *Game) applyControls(act ui.ControlActions) {
	if act.SetMetric {
		g.engine.SetMetric(act.Metric)
	}
	if act.Clear {
		g.engine.Clear(g.cfg.Population.Clear.ResetAfter)
	}
	if act.NextSkin {
		g.cycleSkin()
	}
}

func (g *Game) hudData() ui.HUDData {
	f := g.frame
	return ui.HUDData{
		Label:           f.Label(),
		LabelColor:      renderer.ToRL(g.cfg.Derived.Colors[f.Class], 1),
		Metric:          f.Metric,
		Skin:            g.cfg.Status.Skin,
		OrbColor:        renderer.ToRL(f.Params.Color, 1),
		Speed:           f.Params.Speed,
		TargetSpeed:     f.Target.Speed,
		Intensity:       f.Params.Intensity,
		TargetIntensity: f.Target.Intensity,
		PulseActive:     f.Pulse.Active,
		PulseProgress:   f.Pulse.Progress(),
		Float:           f.Idle.Float,
		Fixers:          f.Fixers,
		Defenders:       f.Defenders,
		ClearPending:    f.ClearPending,
		Tick:            f.Tick,
		FPS:             rl.GetFPS(),
		Paused:          g.paused,
	}
}

func (g *Game) drawPerf() {
	stats := g.perf.Stats()
	if !g.controls.IsVisible() {
		g.perfPanel.SetPosition(10, 10)
	} else {
		g.perfPanel.SetPosition(10, 10+g.controls.Height()+10)
	}
	g.perfPanel.Draw(ui.PerfPanelData{
		PhaseTimes: stats.PhaseAvg,
		Total:      stats.AvgTickDuration,
		Registry:   g.registry,
	})
}
