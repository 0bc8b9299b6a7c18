package viewport

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewUsesFallback(t *testing.T) {
	v := New(1000, 800, 50)

	if v.Known() {
		t.Error("new viewport should not have a known size")
	}
	w, h := v.Size()
	if w != 1000 || h != 800 {
		t.Errorf("expected fallback (1000, 800), got (%f, %f)", w, h)
	}
}

func TestResize(t *testing.T) {
	v := New(1000, 800, 50)
	v.Resize(1280, 720)

	w, h := v.Size()
	if w != 1280 || h != 720 {
		t.Errorf("expected (1280, 720), got (%f, %f)", w, h)
	}

	// Invalid sizes fall back instead of failing
	invalid := []struct{ w, h float32 }{
		{0, 720},
		{-5, 720},
		{1280, float32(math.NaN())},
		{float32(math.Inf(1)), 720},
	}
	for _, tc := range invalid {
		v.Resize(1280, 720)
		v.Resize(tc.w, tc.h)
		if v.Known() {
			t.Errorf("Resize(%f, %f) should mark size unknown", tc.w, tc.h)
		}
		if w, h := v.Size(); w != 1000 || h != 800 {
			t.Errorf("after Resize(%f, %f): size = (%f, %f), want fallback", tc.w, tc.h, w, h)
		}
	}
}

func TestSpawnArea(t *testing.T) {
	v := New(1000, 800, 50)

	maxX, maxY := v.SpawnArea()
	if maxX != 950 || maxY != 750 {
		t.Errorf("expected spawn area (950, 750), got (%f, %f)", maxX, maxY)
	}

	// Window smaller than the margin
	v.Resize(30, 30)
	maxX, maxY = v.SpawnArea()
	if maxX != 0 || maxY != 0 {
		t.Errorf("expected empty spawn area, got (%f, %f)", maxX, maxY)
	}
}

func TestRandomPointInBounds(t *testing.T) {
	v := New(1000, 800, 50)
	v.Resize(640, 480)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		x, y := v.RandomPoint(rng)
		if x < 0 || x >= 590 || y < 0 || y >= 430 {
			t.Fatalf("point (%f, %f) outside spawn area", x, y)
		}
		if !v.Contains(x, y) {
			t.Fatalf("point (%f, %f) outside viewport", x, y)
		}
	}
}

func TestCenter(t *testing.T) {
	v := New(1000, 800, 50)
	if x, y := v.Center(); x != 500 || y != 400 {
		t.Errorf("expected center (500, 400), got (%f, %f)", x, y)
	}
}
