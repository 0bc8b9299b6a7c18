// Package viewport tracks the window extent spirits are placed into.
package viewport

import (
	"math"
	"math/rand"
)

// Viewport holds the last known window size and a fallback extent used
// when the size is unavailable (headless runs, minimised windows).
type Viewport struct {
	// Last reported size; zero when unknown
	W, H float32

	// Extent used while the real size is unknown
	FallbackW, FallbackH float32

	// Distance kept from the right and bottom edges when spawning
	Margin float32
}

// New creates a viewport with an unknown size.
func New(fallbackW, fallbackH, margin float32) *Viewport {
	return &Viewport{
		FallbackW: fallbackW,
		FallbackH: fallbackH,
		Margin:    margin,
	}
}

// Resize records a new window size. Non-positive or non-finite sizes mark
// the size as unknown rather than failing.
func (v *Viewport) Resize(w, h float32) {
	if !valid(w) || !valid(h) {
		v.W, v.H = 0, 0
		return
	}
	v.W, v.H = w, h
}

// Known reports whether a real window size has been supplied.
func (v *Viewport) Known() bool {
	return v.W > 0 && v.H > 0
}

// Size returns the window size, or the fallback extent when unknown.
func (v *Viewport) Size() (w, h float32) {
	if v.Known() {
		return v.W, v.H
	}
	return v.FallbackW, v.FallbackH
}

// SpawnArea returns the exclusive upper bounds for spawn positions.
// Windows smaller than the margin collapse to a zero area at the origin.
func (v *Viewport) SpawnArea() (maxX, maxY float32) {
	w, h := v.Size()
	return clamp(w-v.Margin, 0, w), clamp(h-v.Margin, 0, h)
}

// RandomPoint returns a uniformly random point inside the spawn area.
func (v *Viewport) RandomPoint(rng *rand.Rand) (x, y float32) {
	maxX, maxY := v.SpawnArea()
	return rng.Float32() * maxX, rng.Float32() * maxY
}

// Contains reports whether a point lies inside the current extent.
func (v *Viewport) Contains(x, y float32) bool {
	w, h := v.Size()
	return x >= 0 && y >= 0 && x <= w && y <= h
}

// Center returns the middle of the current extent.
func (v *Viewport) Center() (x, y float32) {
	w, h := v.Size()
	return w / 2, h / 2
}

func valid(x float32) bool {
	f := float64(x)
	return x > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
