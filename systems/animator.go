package systems

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/status"
)

// RenderParams are the continuous orb parameters handed to the renderer.
type RenderParams struct {
	Color     colorful.Color
	Speed     float64 // Core rotation, radians per second
	Intensity float64 // Emissive strength
}

// Pulse is the one-shot shockwave armed by a metric change.
type Pulse struct {
	Active  bool
	Elapsed float64

	speed    float64
	duration float64
	maxScale float64
}

// Arm restarts the pulse from zero, even if it is already running.
func (p *Pulse) Arm() {
	p.Active = true
	p.Elapsed = 0
}

// Advance moves the pulse forward and deactivates it once it completes.
func (p *Pulse) Advance(dt float64) {
	if !p.Active {
		return
	}
	p.Elapsed += dt * p.speed
	if p.Elapsed >= p.duration {
		p.Active = false
		p.Elapsed = 0
	}
}

// Progress returns the completed fraction in [0, 1). Inactive pulses report 0.
func (p Pulse) Progress() float64 {
	if !p.Active || p.duration <= 0 {
		return 0
	}
	return clampFloat(p.Elapsed/p.duration, 0, 1)
}

// RadiusScale grows from 1 to 1+maxScale over the life of the pulse.
func (p Pulse) RadiusScale() float64 {
	return 1 + p.maxScale*p.Progress()
}

// Opacity fades linearly to zero as the pulse completes.
func (p Pulse) Opacity() float64 {
	if !p.Active {
		return 0
	}
	return max(0, 1-p.Progress())
}

// IdleMotion is the purely cosmetic motion layered over the orb.
type IdleMotion struct {
	Yaw       float64 // Group drift rotation
	CoreAngle float64 // Integrated core spin
	RingAngle float64 // Integrated ring spin
	Tilt      float64
	Breath    float64 // Added to intensity
	Scale     float64 // Multiplies orb radius
	Float     float64 // Vertical offset
}

// OrbAnimator maps metric changes to target render parameters and eases the
// current parameters toward them every frame.
type OrbAnimator struct {
	cfg    config.OrbConfig
	colors [3]colorful.Color
	maxDT  float64

	current RenderParams
	target  RenderParams
	pulse   Pulse
	idle    IdleMotion
	clock   float64
	noise   opensimplex.Noise

	lastMetric int
	lastClass  status.Classification
}

// NewOrbAnimator creates an animator at the configured initial parameters.
func NewOrbAnimator(cfg *config.Config) *OrbAnimator {
	initial := RenderParams{
		Color:     cfg.Derived.Initial,
		Speed:     cfg.Orb.Initial.Speed,
		Intensity: cfg.Orb.Initial.Intensity,
	}
	a := &OrbAnimator{
		current: initial,
		target:  initial,
		noise:   opensimplex.New(cfg.Orb.Idle.NoiseSeed),
	}
	a.configure(cfg)
	a.idle.Scale = 1
	return a
}

func (a *OrbAnimator) configure(cfg *config.Config) {
	a.cfg = cfg.Orb
	a.colors = cfg.Derived.Colors
	a.maxDT = cfg.Frame.MaxSmoothingDT
	a.pulse.speed = cfg.Orb.Pulse.Speed
	a.pulse.duration = cfg.Orb.Pulse.Duration
	a.pulse.maxScale = cfg.Orb.Pulse.MaxScale
}

// Reconfigure swaps in new mapping tables and retargets from the last
// metric seen. The pulse is not re-armed.
func (a *OrbAnimator) Reconfigure(cfg *config.Config) {
	a.configure(cfg)
	a.retarget(a.lastMetric, a.lastClass)
}

// OnMetricChanged recomputes targets and arms the pulse according to the
// trigger policy. It reports whether the pulse was armed.
func (a *OrbAnimator) OnMetricChanged(metric int, class status.Classification) bool {
	a.retarget(metric, class)
	if a.cfg.Pulse.Trigger == "unstable" && class == status.Stable {
		return false
	}
	a.pulse.Arm()
	return true
}

func (a *OrbAnimator) retarget(metric int, class status.Classification) {
	a.lastMetric, a.lastClass = metric, class

	if int(class) < len(a.colors) {
		a.target.Color = a.colors[class]
	}
	if v := a.cfg.Speed.At(metric); finite(v) {
		a.target.Speed = max(v, 0)
	}
	if v := a.cfg.Intensity.At(metric); finite(v) {
		a.target.Intensity = max(v, 0)
	}
}

// Advance eases current parameters toward their targets and steps the pulse
// and idle motion. Non-positive or non-finite dt is ignored.
func (a *OrbAnimator) Advance(dt float64) {
	if !validDelta(dt) {
		return
	}
	sdt := dt
	if a.maxDT > 0 && sdt > a.maxDT {
		sdt = a.maxDT
	}

	a.smoothColor(smoothingFactor(a.cfg.Rates.Color, sdt))
	a.current.Speed = approach(a.current.Speed, a.target.Speed, smoothingFactor(a.cfg.Rates.Speed, sdt))
	a.current.Intensity = approach(a.current.Intensity, a.target.Intensity, smoothingFactor(a.cfg.Rates.Intensity, sdt))

	a.pulse.Advance(dt)
	a.advanceIdle(dt)
}

func (a *OrbAnimator) smoothColor(t float64) {
	next := a.current.Color.BlendRgb(a.target.Color, t)
	if next.DistanceRgb(a.target.Color) < snapEpsilon {
		next = a.target.Color
	}
	if !finite(next.R) || !finite(next.G) || !finite(next.B) {
		return
	}
	a.current.Color = next
}

func (a *OrbAnimator) advanceIdle(dt float64) {
	idle := a.cfg.Idle
	a.clock += dt
	t := a.clock

	a.idle.Yaw = math.Mod(a.idle.Yaw+dt*idle.DriftRate, 2*math.Pi)
	a.idle.CoreAngle = math.Mod(a.idle.CoreAngle+dt*a.current.Speed, 2*math.Pi)
	a.idle.RingAngle = math.Mod(a.idle.RingAngle+dt*a.current.Speed*idle.RingSpeedFactor, 2*math.Pi)
	a.idle.Tilt = math.Sin(t*idle.TiltFrequency) * idle.TiltAmplitude
	a.idle.Breath = math.Sin(t*idle.BreathFrequency) * idle.BreathAmplitude
	a.idle.Scale = 1 + math.Sin(t*idle.ScaleFrequency)*idle.ScaleAmplitude
	a.idle.Float = clampFloat(a.noise.Eval2(t*idle.FloatSpeed*0.25, 0), -1, 1) * idle.FloatAmplitude
}

// Params returns the current (smoothed) parameters.
func (a *OrbAnimator) Params() RenderParams { return a.current }

// Target returns the parameters the animator is easing toward.
func (a *OrbAnimator) Target() RenderParams { return a.target }

// Pulse returns the pulse state.
func (a *OrbAnimator) Pulse() Pulse { return a.pulse }

// Idle returns the idle motion for the current frame.
func (a *OrbAnimator) Idle() IdleMotion { return a.idle }

// Settled reports whether every channel has reached its target.
func (a *OrbAnimator) Settled() bool {
	return a.current == a.target
}
