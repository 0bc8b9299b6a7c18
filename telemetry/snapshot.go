package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/vitals/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is the engine state at one instant, written for post-run
// inspection.
type Snapshot struct {
	Version int    `yaml:"version"`
	Seed    int64  `yaml:"seed"`
	Skin    string `yaml:"skin,omitempty"`

	Tick int64   `yaml:"tick"`
	Time float64 `yaml:"time"`

	Metric int    `yaml:"metric"`
	Class  string `yaml:"class"`

	Orb     OrbState      `yaml:"orb"`
	Spirits []SpiritState `yaml:"spirits"`

	Bookmark *Bookmark `yaml:"bookmark,omitempty"`
}

// OrbState holds the orb's current render parameters.
type OrbState struct {
	Color         string  `yaml:"color"`
	Speed         float64 `yaml:"speed"`
	Intensity     float64 `yaml:"intensity"`
	PulseActive   bool    `yaml:"pulse_active"`
	PulseProgress float64 `yaml:"pulse_progress"`
}

// SpiritState holds one spirit.
type SpiritState struct {
	ID       string  `yaml:"id"`
	Kind     string  `yaml:"kind"`
	Behavior string  `yaml:"behavior"`
	Mood     string  `yaml:"mood"`
	Tooltip  string  `yaml:"tooltip,omitempty"`
	X        float32 `yaml:"x"`
	Y        float32 `yaml:"y"`
}

// NewSpiritStates converts the population read model.
func NewSpiritStates(views []systems.SpiritView) []SpiritState {
	out := make([]SpiritState, len(views))
	for i, v := range views {
		out[i] = SpiritState{
			ID:       v.ID,
			Kind:     v.Kind.String(),
			Behavior: v.Behavior.String(),
			Mood:     v.Mood.String(),
			Tooltip:  v.Tooltip,
			X:        v.X,
			Y:        v.Y,
		}
	}
	return out
}

// WriteSnapshot saves a snapshot as YAML into dir, named by tick.
// Returns the path written.
func WriteSnapshot(dir string, snap *Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}
	snap.Version = SnapshotVersion

	name := fmt.Sprintf("snapshot_%08d.yaml", snap.Tick)
	if snap.Bookmark != nil {
		name = fmt.Sprintf("snapshot_%08d_%s.yaml", snap.Tick, snap.Bookmark.Type)
	}
	path := filepath.Join(dir, name)

	data, err := yaml.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot written by WriteSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}
	return &snap, nil
}
