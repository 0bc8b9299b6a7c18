// Package game hosts the engine: it owns the frame loop, input, telemetry
// and drawing, in a window or headless.
package game

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/engine"
	"github.com/pthm-cable/vitals/renderer"
	"github.com/pthm-cable/vitals/systems"
	"github.com/pthm-cable/vitals/telemetry"
	"github.com/pthm-cable/vitals/ui"
)

// scenarioTail is how long a headless scenario keeps running after its
// last step, so timers and smoothing can play out.
const scenarioTail = 2.0

// Bookmark detector tuning
const (
	bookmarkHistory = 10
	sustainWindows  = 3
)

// Options configures a game instance.
type Options struct {
	Seed       int64
	LogStats   bool
	OutputDir  string
	Headless   bool
	Snapshots  bool   // Write a snapshot with every bookmark
	Scenario   bool   // Replay the configured scenario
	ConfigPath string // Watched for hot reload when Watch is set
	Watch      bool
}

// Game holds the engine and everything around it.
type Game struct {
	cfg    *config.Config
	engine *engine.Engine
	frame  engine.Frame
	seed   int64

	scenario *engine.Scenario

	watcher     *config.Watcher
	stopWatcher context.CancelFunc

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	lifetimes *telemetry.LifetimeTracker
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	pending   []telemetry.Event
	logStats  bool
	snapshots bool

	// Rendering, nil when headless
	background *renderer.BackgroundRenderer
	orb        *renderer.OrbRenderer
	spirits    *renderer.SpiritRenderer
	hud        *ui.HUD
	controls   *ui.ControlsPanel
	perfPanel  *ui.PerfPanel
	registry   *systems.SystemRegistry

	headless bool
	paused   bool
	showPerf bool

	screenWidth, screenHeight float32
}

// NewGame creates a game. In windowed mode the raylib window must already
// be open.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	e, err := engine.New(cfg, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g := &Game{
		cfg:       cfg,
		engine:    e,
		seed:      opts.Seed,
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetimes: telemetry.NewLifetimeTracker(),
		bookmarks: telemetry.NewBookmarkDetector(bookmarkHistory, cfg.Population.MaxFixers, sustainWindows),
		output:    output,
		logStats:  opts.LogStats,
		snapshots: opts.Snapshots,
		registry:  systems.NewSystemRegistry(),
		headless:  opts.Headless,
	}
	e.SetRecorder(g)
	e.SetPhaseTimer(g.perf)

	if opts.Scenario {
		g.scenario = engine.NewScenario(cfg.Scenario, cfg.Population.Clear.ResetAfter)
	}

	if !opts.Headless {
		g.initRendering()
	}

	if opts.Watch && opts.ConfigPath != "" {
		if err := g.startWatcher(opts.ConfigPath); err != nil {
			slog.Warn("config hot reload disabled", "error", err)
		}
	}

	g.frame = e.Frame()
	return g, nil
}

func (g *Game) initRendering() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	g.screenWidth = float32(w)
	g.screenHeight = float32(h)

	g.background = renderer.NewBackgroundRenderer(w, h, 8, 10, 16)
	g.orb = renderer.NewOrbRenderer(w, h)
	g.spirits = renderer.NewSpiritRenderer()
	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(10, 10, 260)
	g.perfPanel = ui.NewPerfPanel(10, 10+g.controls.Height()+10)

	g.engine.Resize(g.screenWidth, g.screenHeight)
}

// Update handles input and advances one frame using the wall-clock delta.
func (g *Game) Update() {
	g.perf.StartTick()
	g.perf.StartPhase(systems.PhaseInput)
	g.handleInput()
	g.drainConfig()

	if g.paused {
		return
	}
	g.step(float64(rl.GetFrameTime()))
}

// UpdateHeadless advances one fixed-step frame without touching raylib.
func (g *Game) UpdateHeadless() {
	g.perf.StartTick()
	g.perf.StartPhase(systems.PhaseInput)
	g.drainConfig()
	g.step(g.cfg.Frame.DT)
	g.perf.EndTick()
}

func (g *Game) step(dt float64) {
	if g.scenario != nil {
		if _, err := g.scenario.Apply(g.engine, g.engine.Time()); err != nil {
			slog.Warn("scenario step failed", "error", err)
		}
	}

	g.engine.Advance(dt)

	g.perf.StartPhase(systems.PhaseTelemetry)
	g.frame = g.engine.Frame()
	g.sampleTelemetry(dt)
}

// Done reports whether a scenario run has finished.
func (g *Game) Done() bool {
	return g.scenario != nil && g.scenario.Done() && g.engine.Time() >= g.scenario.End()+scenarioTail
}

// Engine returns the hosted engine.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Frame returns the last advanced frame.
func (g *Game) Frame() engine.Frame {
	return g.frame
}

// Tick returns the current engine tick.
func (g *Game) Tick() int64 {
	return g.engine.Tick()
}

// Unload flushes telemetry and releases resources.
func (g *Game) Unload() {
	if g.stopWatcher != nil {
		g.stopWatcher()
		g.watcher.Stop()
	}
	g.flushTelemetry()
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.engine.Close()
}
