package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vitals/components"
	"github.com/pthm-cable/vitals/systems"
)

// SpiritRenderer draws spirits with their behavior motion, mood color and
// eyes.
type SpiritRenderer struct {
	Radius   float32
	FontSize int32
}

// NewSpiritRenderer creates a spirit renderer with default sizing.
func NewSpiritRenderer() *SpiritRenderer {
	return &SpiritRenderer{Radius: 12, FontSize: 14}
}

// Draw renders every spirit at engine time t.
func (s *SpiritRenderer) Draw(spirits []systems.SpiritView, t float64) {
	for _, sp := range spirits {
		s.drawSpirit(sp, t)
	}
}

func (s *SpiritRenderer) drawSpirit(sp systems.SpiritView, t float64) {
	off := systems.Motion(sp, t)
	x := sp.X + float32(off.DX)
	y := sp.Y + float32(off.DY)
	center := rl.Vector2{X: x, Y: y}

	body := systems.BodyColor(sp.Mood)
	rl.DrawCircleV(center, s.Radius, ToRL(body, 0.95))
	if sp.Kind == components.KindDefender {
		rl.DrawCircleLines(int32(x), int32(y), s.Radius+3, ToRL(Brighten(body, 0.5), 1))
	}

	s.drawEyes(center, off.Rotation, systems.EyesFor(sp.Mood))

	if sp.Tooltip != "" {
		w := rl.MeasureText(sp.Tooltip, s.FontSize)
		tx := int32(x) - w/2
		ty := int32(y-s.Radius) - s.FontSize - 6
		rl.DrawRectangle(tx-4, ty-2, w+8, s.FontSize+4, rl.Color{R: 20, G: 20, B: 20, A: 200})
		rl.DrawText(sp.Tooltip, tx, ty, s.FontSize, rl.White)
	}
}

// drawEyes draws both eyes tilted by the waddle rotation in degrees.
func (s *SpiritRenderer) drawEyes(center rl.Vector2, rotation float64, eyes systems.Eyes) {
	at := func(dx, dy float32) rl.Vector2 {
		return rl.Vector2Add(center, rotate(dx, dy, rotation))
	}

	spread, lift := eyeLayout(s.Radius)
	offsets := eyeOffsets(s.Radius, rotation)
	for i, side := range []float32{-1, 1} {
		eye := rl.Vector2Add(center, offsets[i])
		switch eyes {
		case systems.EyesSquint:
			rl.DrawLineEx(at(side*spread-3, lift), at(side*spread+3, lift), 2, rl.Black)
		case systems.EyesWide:
			rl.DrawCircleV(eye, 4, rl.White)
			rl.DrawCircleV(eye, 2, rl.Black)
		case systems.EyesMad:
			// Brows slant toward the middle
			rl.DrawLineEx(at(side*(spread+3), lift-5), at(side*(spread-3), lift-2), 2, rl.Black)
			rl.DrawCircleV(eye, 2, rl.Black)
		default:
			rl.DrawCircleV(eye, 2.5, rl.Black)
		}
	}
}

func eyeLayout(radius float32) (spread, lift float32) {
	return radius * 0.4, -radius * 0.15
}

// eyeOffsets returns the left and right eye centers relative to the body
// center for a body rotated by deg degrees.
func eyeOffsets(radius float32, deg float64) [2]rl.Vector2 {
	spread, lift := eyeLayout(radius)
	return [2]rl.Vector2{
		rotate(-spread, lift, deg),
		rotate(spread, lift, deg),
	}
}

// rotate turns a body-space offset by deg degrees.
func rotate(dx, dy float32, deg float64) rl.Vector2 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return rl.Vector2{
		X: dx*float32(cos) - dy*float32(sin),
		Y: dx*float32(sin) + dy*float32(cos),
	}
}
