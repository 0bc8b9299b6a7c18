package renderer

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// BackgroundRenderer fills the window with a dark vertical gradient tinted
// toward the orb color.
type BackgroundRenderer struct {
	screenW, screenH float32
	base             colorful.Color

	// Share of the orb color mixed into the gradient
	tint float64
}

// NewBackgroundRenderer creates a background renderer.
func NewBackgroundRenderer(screenW, screenH int32, baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
		base: colorful.Color{
			R: float64(baseR) / 255.0,
			G: float64(baseG) / 255.0,
			B: float64(baseB) / 255.0,
		},
		tint: 0.12,
	}
}

// Resize updates the fill area.
func (b *BackgroundRenderer) Resize(w, h float32) {
	b.screenW = w
	b.screenH = h
}

// Draw renders the gradient. Higher intensity pushes more orb color into
// the bottom of the screen.
func (b *BackgroundRenderer) Draw(orb colorful.Color, intensity float64) {
	top := b.base.BlendRgb(orb, b.tint)
	bottom := b.base.BlendRgb(orb, clamp01(b.tint+intensity/100))
	rl.DrawRectangleGradientV(0, 0, int32(b.screenW), int32(b.screenH), ToRL(top, 1), ToRL(bottom, 1))
}
