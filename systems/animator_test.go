package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/status"
)

// testConfig returns a fresh copy of the embedded defaults.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestOrbAnimatorInitialParams(t *testing.T) {
	cfg := testConfig(t)
	a := NewOrbAnimator(cfg)

	p := a.Params()
	if p.Speed != 0.5 || p.Intensity != 3.0 {
		t.Errorf("initial speed/intensity = %v/%v, want 0.5/3.0", p.Speed, p.Intensity)
	}
	if p.Color.Hex() != "#00ffff" {
		t.Errorf("initial color = %s, want #00ffff", p.Color.Hex())
	}
	if a.Pulse().Active {
		t.Error("pulse should start inactive")
	}
}

func TestOrbAnimatorTargets(t *testing.T) {
	tests := []struct {
		metric    int
		class     status.Classification
		color     string
		speed     float64
		intensity float64
	}{
		{0, status.Stable, "#00ffff", 0.5, 2.0},
		{40, status.Warning, "#ffaa00", 2.5, 10.0},
		{84, status.Critical, "#ff0000", 4.7, 18.8},
	}
	for _, tt := range tests {
		a := NewOrbAnimator(testConfig(t))
		a.OnMetricChanged(tt.metric, tt.class)
		got := a.Target()
		if got.Color.Hex() != tt.color {
			t.Errorf("metric %d: target color = %s, want %s", tt.metric, got.Color.Hex(), tt.color)
		}
		if !near(got.Speed, tt.speed, 1e-9) || !near(got.Intensity, tt.intensity, 1e-9) {
			t.Errorf("metric %d: target speed/intensity = %v/%v, want %v/%v",
				tt.metric, got.Speed, got.Intensity, tt.speed, tt.intensity)
		}
	}
}

func TestOrbAnimatorConvergesMonotonically(t *testing.T) {
	a := NewOrbAnimator(testConfig(t))
	a.OnMetricChanged(84, status.Critical)

	prev := a.Params()
	for i := 0; i < 60*60; i++ {
		a.Advance(1.0 / 60)
		cur := a.Params()
		if cur.Speed < prev.Speed || cur.Speed > 4.7+1e-12 {
			t.Fatalf("frame %d: speed %v not monotonic toward 4.7 (prev %v)", i, cur.Speed, prev.Speed)
		}
		if cur.Intensity < prev.Intensity || cur.Intensity > 18.8+1e-12 {
			t.Fatalf("frame %d: intensity %v not monotonic toward 18.8", i, cur.Intensity)
		}
		if cur.Color.G > prev.Color.G || cur.Color.B > prev.Color.B {
			t.Fatalf("frame %d: color moved away from red", i)
		}
		prev = cur
	}
	if !a.Settled() {
		t.Errorf("animator not settled after 60s: %+v vs %+v", a.Params(), a.Target())
	}
}

func TestOrbAnimatorFrameRateIndependent(t *testing.T) {
	fine := NewOrbAnimator(testConfig(t))
	coarse := NewOrbAnimator(testConfig(t))
	fine.OnMetricChanged(40, status.Warning)
	coarse.OnMetricChanged(40, status.Warning)

	for i := 0; i < 100; i++ {
		fine.Advance(0.01)
	}
	for i := 0; i < 10; i++ {
		coarse.Advance(0.1)
	}

	f, c := fine.Params(), coarse.Params()
	if !near(f.Speed, c.Speed, 1e-9) || !near(f.Intensity, c.Intensity, 1e-9) {
		t.Errorf("speed/intensity diverge: fine %v/%v coarse %v/%v", f.Speed, f.Intensity, c.Speed, c.Intensity)
	}
	if f.Color.DistanceRgb(c.Color) > 1e-9 {
		t.Errorf("color diverges: fine %v coarse %v", f.Color, c.Color)
	}
}

func TestOrbAnimatorCapsLargeDelta(t *testing.T) {
	a := NewOrbAnimator(testConfig(t))
	a.OnMetricChanged(84, status.Critical)

	// A stalled frame must not jump straight to the target
	a.Advance(30)
	want := 0.5 + (4.7-0.5)*smoothingFactor(0.5, 0.1)
	if !near(a.Params().Speed, want, 1e-9) {
		t.Errorf("speed after 30s frame = %v, want %v", a.Params().Speed, want)
	}
}

func TestOrbAnimatorIgnoresInvalidDelta(t *testing.T) {
	a := NewOrbAnimator(testConfig(t))
	a.OnMetricChanged(84, status.Critical)
	before := a.Params()

	for _, dt := range []float64{0, -0.5, math.NaN(), math.Inf(1)} {
		a.Advance(dt)
	}
	if a.Params() != before {
		t.Errorf("params changed on invalid dt: %+v", a.Params())
	}
	if a.Pulse().Elapsed != 0 {
		t.Errorf("pulse advanced on invalid dt: %v", a.Pulse().Elapsed)
	}
}

func TestPulseLifecycle(t *testing.T) {
	a := NewOrbAnimator(testConfig(t))
	if !a.OnMetricChanged(10, status.Stable) {
		t.Fatal("pulse should arm on every change by default")
	}

	a.Advance(0.5)
	p := a.Pulse()
	if !p.Active || !near(p.Progress(), 0.5, 1e-9) {
		t.Fatalf("after 0.5s: active=%v progress=%v, want true/0.5", p.Active, p.Progress())
	}
	if !near(p.Opacity(), 0.5, 1e-9) || !near(p.RadiusScale(), 4, 1e-9) {
		t.Errorf("opacity/scale = %v/%v, want 0.5/4", p.Opacity(), p.RadiusScale())
	}

	// Re-arm restarts from zero
	a.OnMetricChanged(11, status.Stable)
	if a.Pulse().Elapsed != 0 || !a.Pulse().Active {
		t.Fatalf("re-arm did not restart the pulse: %+v", a.Pulse())
	}

	a.Advance(1.0)
	p = a.Pulse()
	if p.Active || p.Opacity() != 0 || p.Progress() != 0 {
		t.Errorf("pulse should have completed: %+v", p)
	}
}

func TestPulseTriggerUnstable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Orb.Pulse.Trigger = "unstable"
	a := NewOrbAnimator(cfg)

	if a.OnMetricChanged(3, status.Stable) {
		t.Error("stable change should not arm the pulse")
	}
	if a.Pulse().Active {
		t.Error("pulse active after stable change")
	}
	if !a.OnMetricChanged(30, status.Warning) {
		t.Error("warning change should arm the pulse")
	}
}

func TestOrbAnimatorReconfigure(t *testing.T) {
	a := NewOrbAnimator(testConfig(t))
	a.OnMetricChanged(40, status.Warning)
	a.Advance(0.5)

	cfg := testConfig(t)
	cfg.Orb.Speed.PerMetric = 0.1
	a.Reconfigure(cfg)

	if !near(a.Target().Speed, 4.5, 1e-9) {
		t.Errorf("target speed after reconfigure = %v, want 4.5", a.Target().Speed)
	}
	if !near(a.Pulse().Elapsed, 1.0, 1e-9) {
		t.Errorf("reconfigure should not re-arm the pulse, elapsed = %v", a.Pulse().Elapsed)
	}
}

func TestIdleMotionBounded(t *testing.T) {
	cfg := testConfig(t)
	a := NewOrbAnimator(cfg)
	idle := cfg.Orb.Idle

	for i := 0; i < 600; i++ {
		a.Advance(1.0 / 60)
		m := a.Idle()
		if math.Abs(m.Tilt) > idle.TiltAmplitude+1e-12 {
			t.Fatalf("tilt %v exceeds amplitude", m.Tilt)
		}
		if math.Abs(m.Scale-1) > idle.ScaleAmplitude+1e-12 {
			t.Fatalf("scale %v outside 1±%v", m.Scale, idle.ScaleAmplitude)
		}
		if math.Abs(m.Float) > idle.FloatAmplitude+1e-9 {
			t.Fatalf("float %v exceeds amplitude", m.Float)
		}
		if m.RingAngle < 0 || m.RingAngle >= 2*math.Pi {
			t.Fatalf("ring angle %v not wrapped", m.RingAngle)
		}
	}
}
