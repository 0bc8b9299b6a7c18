package systems

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/vitals/components"
)

// MotionProfile describes the cyclic body animation for one behavior.
type MotionProfile struct {
	Bob     float64 // Peak upward offset in pixels
	Waddle  float64 // Peak rotation in degrees, keyed 0, -w, +w, 0
	Sway    float64 // Peak horizontal offset in pixels
	Period  float64 // Seconds per cycle
	Looping bool    // Non-looping profiles play once and hold the rest pose
}

// Offset is the render-space displacement of a spirit body.
type Offset struct {
	DX, DY   float64
	Rotation float64 // Degrees
}

var profiles = [...]MotionProfile{
	components.BehaviorIdle:    {Bob: 2, Period: 1.5, Looping: true},
	components.BehaviorCarry:   {Bob: 5, Waddle: 5, Period: 0.5, Looping: true},
	components.BehaviorBlocker: {Sway: 3, Period: 0.25, Looping: false},
	components.BehaviorFixer:   {Bob: 3, Waddle: 8, Period: 0.4, Looping: true},
	components.BehaviorCheer:   {Bob: 12, Sway: 2, Period: 0.6, Looping: true},
}

// ProfileFor returns the motion profile for a behavior. Unknown behaviors
// animate like Idle.
func ProfileFor(b components.Behavior) MotionProfile {
	if int(b) < len(profiles) {
		return profiles[b]
	}
	return profiles[components.BehaviorIdle]
}

// Sample evaluates the profile at time t. Phase shifts the cycle so
// neighbouring spirits do not move in lockstep.
func (p MotionProfile) Sample(t, phase float64) Offset {
	if p.Period <= 0 || !finite(t) || !finite(phase) {
		return Offset{}
	}
	local := t + phase
	if local < 0 {
		local = 0
	}
	if !p.Looping && local >= p.Period {
		return Offset{}
	}
	u := math.Mod(local, p.Period) / p.Period

	return Offset{
		DX:       p.Sway * math.Sin(2*math.Pi*u),
		DY:       -p.Bob * math.Sin(math.Pi*u),
		Rotation: waddleAt(u) * p.Waddle,
	}
}

// Motion samples a spirit's body offset at engine time t. Looping profiles
// run on the shared clock shifted by the spirit's phase; one-shot profiles
// start when the behavior was assigned.
func Motion(sp SpiritView, t float64) Offset {
	p := ProfileFor(sp.Behavior)
	if !p.Looping {
		return p.Sample(t-sp.Since, 0)
	}
	return p.Sample(t, float64(sp.Phase))
}

// waddleAt interpolates the keyframes 0, -1, +1, 0 over one cycle.
func waddleAt(u float64) float64 {
	switch {
	case u < 1.0/3:
		return -3 * u
	case u < 2.0/3:
		return -1 + 6*(u-1.0/3)
	default:
		return 1 - 3*(u-2.0/3)
	}
}

// Eyes is the eye shape drawn on a spirit body.
type Eyes uint8

const (
	EyesNormal Eyes = iota
	EyesSquint
	EyesWide
	EyesMad
)

// EyesFor picks the eye shape for a mood.
func EyesFor(m components.Mood) Eyes {
	switch m {
	case components.MoodWorking:
		return EyesSquint
	case components.MoodPanic:
		return EyesWide
	}
	return EyesNormal
}

var moodColors = [...]colorful.Color{
	components.MoodCalm:    {R: 0, G: 1, B: 1},
	components.MoodWorking: {R: 0, G: 1, B: 0},
	components.MoodPanic:   {R: 1, G: 0, B: 0},
}

// BodyColor returns the glow color for a mood.
func BodyColor(m components.Mood) colorful.Color {
	if int(m) < len(moodColors) {
		return moodColors[m]
	}
	return moodColors[components.MoodCalm]
}
