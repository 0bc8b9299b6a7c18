package renderer

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ToRL converts a colorful color to a raylib color with the given opacity
// in [0, 1]. Out-of-gamut colors are clamped.
func ToRL(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.Color{R: r, G: g, B: b, A: unit8(alpha)}
}

// Brighten scales a color toward white by k in [0, 1].
func Brighten(c colorful.Color, k float64) colorful.Color {
	return c.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, clamp01(k))
}

func unit8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
