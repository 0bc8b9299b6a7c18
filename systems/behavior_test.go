package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/vitals/components"
)

func TestProfileForEveryBehavior(t *testing.T) {
	for b := 0; b < components.BehaviorCount(); b++ {
		p := ProfileFor(components.Behavior(b))
		if p.Period <= 0 {
			t.Errorf("%v: period %v must be positive", components.Behavior(b), p.Period)
		}
	}
	if ProfileFor(components.Behavior(99)) != ProfileFor(components.BehaviorIdle) {
		t.Error("unknown behavior should fall back to idle")
	}
}

func TestSampleStartsAtRest(t *testing.T) {
	for b := 0; b < components.BehaviorCount(); b++ {
		off := ProfileFor(components.Behavior(b)).Sample(0, 0)
		if math.Abs(off.DX) > 1e-9 || math.Abs(off.DY) > 1e-9 || math.Abs(off.Rotation) > 1e-9 {
			t.Errorf("%v: sample at t=0 = %+v, want rest pose", components.Behavior(b), off)
		}
	}
}

func TestSampleCarryKeyframes(t *testing.T) {
	p := ProfileFor(components.BehaviorCarry)

	tests := []struct {
		u        float64
		dy       float64
		rotation float64
	}{
		{0.5, -5, 0},
		{1.0 / 3, -5 * math.Sin(math.Pi/3), -5},
		{2.0 / 3, -5 * math.Sin(2*math.Pi/3), 5},
	}
	for _, tt := range tests {
		off := p.Sample(tt.u*p.Period, 0)
		if math.Abs(off.DY-tt.dy) > 1e-9 || math.Abs(off.Rotation-tt.rotation) > 1e-9 {
			t.Errorf("u=%.3f: got dy=%v rot=%v, want dy=%v rot=%v", tt.u, off.DY, off.Rotation, tt.dy, tt.rotation)
		}
	}
}

func TestSampleLoopingAndPhase(t *testing.T) {
	p := ProfileFor(components.BehaviorFixer)
	a := p.Sample(0.1, 0)
	b := p.Sample(0.1+3*p.Period, 0)
	if math.Abs(a.DY-b.DY) > 1e-9 || math.Abs(a.Rotation-b.Rotation) > 1e-9 {
		t.Errorf("looping profile not periodic: %+v vs %+v", a, b)
	}

	shifted := p.Sample(0, 0.1)
	if math.Abs(shifted.DY-a.DY) > 1e-9 {
		t.Errorf("phase should shift the cycle: %+v vs %+v", shifted, a)
	}
}

func TestSampleNonLoopingHolds(t *testing.T) {
	p := ProfileFor(components.BehaviorBlocker)
	if p.Looping {
		t.Fatal("blocker should not loop")
	}
	if off := p.Sample(p.Period*0.25, 0); off.DX == 0 {
		t.Error("blocker should sway during its first cycle")
	}
	if off := p.Sample(p.Period*5, 0); off != (Offset{}) {
		t.Errorf("blocker after its cycle = %+v, want rest pose", off)
	}
}

func TestEyesAndBodyColor(t *testing.T) {
	tests := []struct {
		mood  components.Mood
		eyes  Eyes
		color string
	}{
		{components.MoodCalm, EyesNormal, "#00ffff"},
		{components.MoodWorking, EyesSquint, "#00ff00"},
		{components.MoodPanic, EyesWide, "#ff0000"},
	}
	for _, tt := range tests {
		if got := EyesFor(tt.mood); got != tt.eyes {
			t.Errorf("EyesFor(%v) = %v, want %v", tt.mood, got, tt.eyes)
		}
		if got := BodyColor(tt.mood).Hex(); got != tt.color {
			t.Errorf("BodyColor(%v) = %s, want %s", tt.mood, got, tt.color)
		}
	}
}
