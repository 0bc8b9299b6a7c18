package renderer

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestToRL(t *testing.T) {
	tests := []struct {
		name  string
		c     colorful.Color
		alpha float64
		want  rl.Color
	}{
		{"cyan opaque", colorful.Color{R: 0, G: 1, B: 1}, 1, rl.Color{R: 0, G: 255, B: 255, A: 255}},
		{"half alpha", colorful.Color{R: 1, G: 0, B: 0}, 0.5, rl.Color{R: 255, G: 0, B: 0, A: 128}},
		{"out of gamut", colorful.Color{R: 1.4, G: -0.2, B: 0.5}, 2, rl.Color{R: 255, G: 0, B: 128, A: 255}},
		{"nan alpha", colorful.Color{}, math.NaN(), rl.Color{A: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRL(tt.c, tt.alpha); got != tt.want {
				t.Errorf("ToRL = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBrighten(t *testing.T) {
	red := colorful.Color{R: 1}
	if got := Brighten(red, 0); got != red {
		t.Errorf("Brighten(0) = %+v", got)
	}
	if got := Brighten(red, 1); got != (colorful.Color{R: 1, G: 1, B: 1}) {
		t.Errorf("Brighten(1) = %+v", got)
	}
	if got := Brighten(red, 3); got != Brighten(red, 1) {
		t.Error("Brighten should clamp k")
	}
}
