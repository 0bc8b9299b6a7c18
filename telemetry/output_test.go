package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm-cable/vitals/components"
	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/systems"
)

func TestNilOutputManagerDiscards(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", om, err)
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteEvents([]Event{{}}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int64(60 * (i + 1)), Class: "stable"}); err != nil {
			t.Fatal(err)
		}
	}
	events := []Event{NewBurstEvent(3, 0.05, 100, 100, 4, true), NewCountEvent(EventCleared, 9, 0.15, 6)}
	if err := om.WriteEvents(events); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteFrame(FrameSample{Tick: 1, Color: "#00ffff"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	lines := readLines(t, filepath.Join(dir, "telemetry.csv"))
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,metric,class") {
		t.Errorf("unexpected header %q", lines[0])
	}

	lines = readLines(t, filepath.Join(dir, "events.csv"))
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "burst,") || !strings.HasPrefix(lines[2], "cleared,") {
		t.Errorf("events.csv = %q", lines)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestSnapshotWriteLoad(t *testing.T) {
	views := []systems.SpiritView{
		{ID: "a", Kind: components.KindFixer, Behavior: components.BehaviorCheer, Mood: components.MoodCalm, X: 1, Y: 2},
		{ID: "def-b", Kind: components.KindDefender, Behavior: components.BehaviorBlocker, Mood: components.MoodPanic, Tooltip: "MY EYES! NO!"},
	}
	snap := &Snapshot{
		Seed:    7,
		Tick:    42,
		Metric:  84,
		Class:   "critical",
		Orb:     OrbState{Color: "#ff0000", Speed: 4.7, PulseActive: true, PulseProgress: 0.25},
		Spirits: NewSpiritStates(views),
	}

	path, err := WriteSnapshot(t.TempDir(), snap)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "snapshot_00000042.yaml" {
		t.Errorf("snapshot name = %s", filepath.Base(path))
	}

	got, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(snap, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if got.Spirits[1].Kind != "defender" || got.Spirits[0].Behavior != "cheer" {
		t.Errorf("enum names not written: %+v", got.Spirits)
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	fixer, defender := components.KindFixer, components.KindDefender

	lt.Sync([]string{"f1", "f2"}, []components.Kind{fixer, fixer}, 0, 0)
	lt.Sync([]string{"f1", "f2", "d1"}, []components.Kind{fixer, fixer, defender}, 30, 0.5)
	lt.Sync([]string{"f1"}, []components.Kind{fixer}, 180, 3.0)

	if lt.Count() != 1 || lt.Get("f1") == nil || lt.Get("f2") != nil {
		t.Fatalf("unexpected live set, count=%d", lt.Count())
	}
	fm, dm := lt.Drain()
	if math.Abs(fm-3.0) > 1e-9 || math.Abs(dm-2.5) > 1e-9 {
		t.Errorf("Drain = %v/%v, want 3.0/2.5", fm, dm)
	}
	if fm, dm = lt.Drain(); fm != 0 || dm != 0 {
		t.Error("Drain should reset accumulators")
	}
}
