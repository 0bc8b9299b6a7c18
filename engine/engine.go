// Package engine wires the metric store, orb animator and spirit population
// into a single frame-driven state machine.
package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/vitals/components"
	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/status"
	"github.com/pthm-cable/vitals/systems"
	"github.com/pthm-cable/vitals/telemetry"
	"github.com/pthm-cable/vitals/viewport"
)

// Recorder receives engine events. Implementations must not call back into
// the engine.
type Recorder interface {
	Record(ev telemetry.Event)
}

// PhaseTimer is told when each frame phase starts.
type PhaseTimer interface {
	StartPhase(phase string)
}

// Frame is a read-only snapshot of everything a renderer needs.
type Frame struct {
	Tick   int64
	Time   float64
	Metric int
	Class  status.Classification

	Params systems.RenderParams
	Target systems.RenderParams
	Pulse  systems.Pulse
	Idle   systems.IdleMotion

	Spirits   []systems.SpiritView
	Fixers    int
	Defenders int

	ViewW, ViewH float32
	ClearPending bool
}

// Label returns the status text shown to users.
func (f Frame) Label() string { return f.Class.Label() }

// Engine owns all mutable visual state. It is not safe for concurrent use;
// hosts call it from their frame loop only.
type Engine struct {
	cfg      *config.Config
	store    *status.Store
	animator *systems.OrbAnimator
	pop      *systems.PopulationSystem
	timers   *systems.Timers
	view     *viewport.Viewport

	recorder Recorder
	phases   PhaseTimer

	unsubscribe func()

	// Population needs reconciling against the store
	stale bool

	resetTimer systems.TimerID

	tick  int64
	clock float64
}

// New creates an engine from configuration. seed drives spawn positions
// and spirit ids.
func New(cfg *config.Config, seed int64) (*Engine, error) {
	store, err := status.NewStore(cfg.Derived.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("creating metric store: %w", err)
	}

	view := viewport.New(
		float32(cfg.Viewport.FallbackWidth),
		float32(cfg.Viewport.FallbackHeight),
		float32(cfg.Viewport.Margin),
	)
	timers := systems.NewTimers()

	e := &Engine{
		cfg:      cfg,
		store:    store,
		animator: systems.NewOrbAnimator(cfg),
		pop:      systems.NewPopulationSystem(cfg, view, timers, rand.New(rand.NewSource(seed))),
		timers:   timers,
		view:     view,
	}
	e.unsubscribe = store.Subscribe(e.onChange)
	return e, nil
}

// SetRecorder installs an event sink. Nil disables recording.
func (e *Engine) SetRecorder(r Recorder) { e.recorder = r }

// SetPhaseTimer installs a phase timer. Nil disables timing.
func (e *Engine) SetPhaseTimer(p PhaseTimer) { e.phases = p }

// Store returns the metric store so hosts can subscribe to changes.
func (e *Engine) Store() *status.Store { return e.store }

// Close detaches the engine from its store.
func (e *Engine) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

func (e *Engine) onChange(c status.Change) {
	e.record(telemetry.NewMetricEvent(e.tick, e.clock, c))
	if c.ClassChanged() {
		e.record(telemetry.NewClassEvent(e.tick, e.clock, c))
	}
	if e.animator.OnMetricChanged(c.Metric, c.Class) {
		e.record(telemetry.Event{Type: telemetry.EventPulseArmed, Tick: e.tick, Time: e.clock, Metric: c.Metric})
	}
	e.stale = true
}

// SetMetric sets the metric; negative values clamp to zero. It reports
// whether the metric changed.
func (e *Engine) SetMetric(n int) bool { return e.store.Set(n) }

// SetMetricFloat sets the metric from a float, flooring it and mapping
// negative or non-finite input to zero.
func (e *Engine) SetMetricFloat(v float64) bool { return e.store.SetFloat(v) }

// SpawnBurst places a defender ring around a point. It is rejected while
// defenders from an earlier burst remain.
func (e *Engine) SpawnBurst(x, y float32) bool {
	ok := e.pop.SpawnBurst(x, y)
	n := 0
	if ok {
		n = e.cfg.Population.Burst.Count
	}
	e.record(telemetry.NewBurstEvent(e.tick, e.clock, x, y, n, ok))
	return ok
}

// Clear makes every fixer cheer now and resets the metric to zero after
// resetAfter seconds. The count drop happens on the frame after the reset,
// so the cheer is always painted at least once. A second Clear replaces a
// pending reset. It returns the number of cheering fixers.
func (e *Engine) Clear(resetAfter float64) int {
	n := e.pop.ClearAll()
	e.record(telemetry.NewCountEvent(telemetry.EventCleared, e.tick, e.clock, n))

	if e.resetTimer != 0 {
		e.timers.Cancel(e.resetTimer)
	}
	e.resetTimer = e.timers.After(resetAfter, func() {
		e.resetTimer = 0
		e.record(telemetry.NewCountEvent(telemetry.EventMetricReset, e.tick, e.clock, e.store.Metric()))
		e.store.Set(0)
	})
	return n
}

// CancelClear drops a pending metric reset. Cheering fixers keep cheering.
func (e *Engine) CancelClear() bool {
	if e.resetTimer == 0 {
		return false
	}
	ok := e.timers.Cancel(e.resetTimer)
	e.resetTimer = 0
	return ok
}

// Resize updates the viewport used for new spawn positions. Invalid sizes
// fall back to the configured extent.
func (e *Engine) Resize(w, h float32) {
	e.view.Resize(w, h)
	vw, vh := e.view.Size()
	e.record(telemetry.NewResizeEvent(e.tick, e.clock, vw, vh))
}

// SetBehavior overrides one spirit's behavior.
func (e *Engine) SetBehavior(id string, b components.Behavior) bool {
	return e.pop.SetBehavior(id, b)
}

// SetMood overrides one spirit's mood.
func (e *Engine) SetMood(id string, m components.Mood) bool {
	return e.pop.SetMood(id, m)
}

// ApplyConfig swaps in reloaded configuration. Thresholds, orb mapping and
// population parameters take effect immediately; the viewport and seed do
// not change.
func (e *Engine) ApplyConfig(cfg *config.Config) error {
	if err := e.store.SetThresholds(cfg.Derived.Thresholds); err != nil {
		return fmt.Errorf("applying thresholds: %w", err)
	}
	e.cfg = cfg
	e.animator.Reconfigure(cfg)
	e.pop.Reconfigure(cfg)
	e.stale = true
	e.record(telemetry.Event{Type: telemetry.EventConfigReloaded, Tick: e.tick, Time: e.clock})
	return nil
}

// Advance runs one frame: reconcile the population if the metric moved,
// fire due timers, then ease the orb. Non-positive or non-finite dt leaves
// time untouched but still reconciles.
func (e *Engine) Advance(dt float64) {
	e.startPhase(systems.PhaseReconcile)
	if e.stale {
		e.stale = false
		res := e.pop.Reconcile(e.store.Metric(), e.store.Class())
		if res.Spawned > 0 || res.Despawned > 0 {
			e.record(telemetry.NewReconcileEvent(e.tick, e.clock, e.store.Metric(), res.Spawned, res.Despawned))
		}
	}

	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	e.tick++
	e.clock += dt

	e.startPhase(systems.PhaseTimers)
	_, before := e.pop.Counts()
	e.timers.Advance(dt)
	if _, after := e.pop.Counts(); after < before {
		e.record(telemetry.NewCountEvent(telemetry.EventDefendersExpired, e.tick, e.clock, before-after))
	}

	e.startPhase(systems.PhaseAnimate)
	e.animator.Advance(dt)
}

// Frame returns the state to draw this frame.
func (e *Engine) Frame() Frame {
	fixers, defenders := e.pop.Counts()
	w, h := e.view.Size()
	return Frame{
		Tick:         e.tick,
		Time:         e.clock,
		Metric:       e.store.Metric(),
		Class:        e.store.Class(),
		Params:       e.animator.Params(),
		Target:       e.animator.Target(),
		Pulse:        e.animator.Pulse(),
		Idle:         e.animator.Idle(),
		Spirits:      e.pop.Spirits(),
		Fixers:       fixers,
		Defenders:    defenders,
		ViewW:        w,
		ViewH:        h,
		ClearPending: e.resetTimer != 0,
	}
}

// Tick returns the number of advanced frames.
func (e *Engine) Tick() int64 { return e.tick }

// Time returns the accumulated engine time in seconds.
func (e *Engine) Time() float64 { return e.clock }

// Config returns the configuration in effect.
func (e *Engine) Config() *config.Config { return e.cfg }

func (e *Engine) record(ev telemetry.Event) {
	if e.recorder != nil {
		e.recorder.Record(ev)
	}
}

func (e *Engine) startPhase(phase string) {
	if e.phases != nil {
		e.phases.StartPhase(phase)
	}
}
