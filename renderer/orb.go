package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vitals/systems"
)

// OrbRenderer draws the status orb: glow, core, tilted ring and the pulse
// shockwave.
type OrbRenderer struct {
	cx, cy float32
	radius float32
}

// NewOrbRenderer places the orb in the middle of the given area.
func NewOrbRenderer(screenW, screenH int32) *OrbRenderer {
	o := &OrbRenderer{}
	o.Resize(float32(screenW), float32(screenH))
	return o
}

// Resize recenters the orb and rescales it to the window.
func (o *OrbRenderer) Resize(w, h float32) {
	o.cx = w / 2
	o.cy = h / 2
	o.radius = float32(math.Min(float64(w), float64(h))) * 0.12
}

// Center returns the orb's resting center.
func (o *OrbRenderer) Center() (x, y float32) { return o.cx, o.cy }

// Draw renders one frame of the orb.
func (o *OrbRenderer) Draw(p systems.RenderParams, pulse systems.Pulse, idle systems.IdleMotion) {
	r := o.radius * float32(idle.Scale)
	cy := o.cy + float32(idle.Float)*o.radius*0.2
	center := rl.Vector2{X: o.cx, Y: cy}

	// Glow
	glow := clamp01(p.Intensity/20)*0.6 + clamp01(idle.Breath)*0.1
	rl.DrawCircleGradient(int32(o.cx), int32(cy), r*2.4, ToRL(p.Color, glow), ToRL(p.Color, 0))

	// Core with rotating facets
	rl.DrawCircleV(center, r, ToRL(p.Color, 1))
	facet := ToRL(p.Color.BlendRgb(Brighten(p.Color, 1), 0.35), 0.8)
	for i := 0; i < 6; i++ {
		a := idle.CoreAngle + float64(i)*math.Pi/3
		end := rl.Vector2{
			X: o.cx + float32(math.Cos(a))*r*0.85,
			Y: cy + float32(math.Sin(a))*r*0.85,
		}
		rl.DrawLineEx(center, end, 2, facet)
	}

	// Highlight follows yaw
	hx := o.cx + float32(math.Cos(idle.Yaw))*r*0.35
	rl.DrawCircleV(rl.Vector2{X: hx, Y: cy - r*0.35}, r*0.22, ToRL(Brighten(p.Color, 0.7), 0.7))

	// Ring, flattened by tilt, with a marker at the ring angle
	rx := r * 1.6
	ry := rx * float32(0.3+0.2*math.Sin(idle.Tilt*10))
	ringColor := ToRL(Brighten(p.Color, 0.4), 0.9)
	rl.DrawEllipseLines(int32(o.cx), int32(cy), rx, ry, ringColor)
	marker := rl.Vector2{
		X: o.cx + float32(math.Cos(idle.RingAngle))*rx,
		Y: cy + float32(math.Sin(idle.RingAngle))*ry,
	}
	rl.DrawCircleV(marker, 4, ringColor)

	if pulse.Active {
		o.drawPulse(center, r, pulse, p)
	}
}

func (o *OrbRenderer) drawPulse(center rl.Vector2, r float32, pulse systems.Pulse, p systems.RenderParams) {
	pr := r * float32(pulse.RadiusScale())
	c := ToRL(Brighten(p.Color, 0.5), pulse.Opacity())
	rl.DrawRing(center, pr-3, pr, 0, 360, 64, c)
}
