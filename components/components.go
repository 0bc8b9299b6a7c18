// Package components defines ECS components for the spirit population.
package components

import "github.com/pthm-cable/vitals/status"

// Kind distinguishes who owns a spirit's lifecycle.
type Kind uint8

const (
	KindFixer    Kind = iota // Count tracks the metric; owned by reconciliation
	KindDefender             // Spawned by a click burst; self-expiring
)

// Behavior selects a spirit's motion profile. It is a plain tag: any value
// may be assigned from any other by an explicit controller action.
type Behavior uint8

const (
	BehaviorIdle Behavior = iota
	BehaviorCarry
	BehaviorBlocker
	BehaviorFixer
	BehaviorCheer
)

// Mood is the classification as seen by a spirit.
type Mood uint8

const (
	MoodCalm Mood = iota
	MoodWorking
	MoodPanic
)

// MoodFor derives a spirit mood from the metric classification.
func MoodFor(c status.Classification) Mood {
	switch c {
	case status.Warning:
		return MoodWorking
	case status.Critical:
		return MoodPanic
	}
	return MoodCalm
}

// Spirit holds the identity and visual state of one population member.
type Spirit struct {
	ID       string
	Kind     Kind
	Behavior Behavior
	Mood     Mood
	Tooltip  string  // Empty means no tooltip
	Phase    float32 // Animation phase offset in seconds, desyncs neighbours
	Since    float64 // Engine time the current behavior was assigned
}
