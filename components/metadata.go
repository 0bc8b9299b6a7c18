package components

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"fixer", "defender"}
}

// String returns the display name for a Behavior.
func (b Behavior) String() string {
	names := BehaviorNames()
	if int(b) < len(names) {
		return names[b]
	}
	return "unknown"
}

// BehaviorNames returns the display names for all behaviors.
// The order matches the Behavior constants.
func BehaviorNames() []string {
	return []string{"idle", "carry", "blocker", "fixer", "cheer"}
}

// BehaviorCount returns the number of behaviors.
func BehaviorCount() int {
	return len(BehaviorNames())
}

// String returns the display name for a Mood.
func (m Mood) String() string {
	names := MoodNames()
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

// MoodNames returns the display names for all moods.
// The order matches the Mood constants.
func MoodNames() []string {
	return []string{"calm", "working", "panic"}
}
