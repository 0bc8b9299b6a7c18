package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/status"
)

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	opts.Headless = true
	g, err := NewGame(cfg, opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestHeadlessScenarioWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	g := newHeadless(t, Options{Seed: 3, OutputDir: dir, Scenario: true, Snapshots: true})

	for i := 0; !g.Done(); i++ {
		if i > 60*30 {
			t.Fatal("scenario did not finish")
		}
		g.UpdateHeadless()
	}
	f := g.Frame()
	g.Unload()

	if f.Metric != 24 || f.Class != status.Warning || f.Fixers != 6 {
		t.Errorf("final frame metric=%d class=%v fixers=%d", f.Metric, f.Class, f.Fixers)
	}

	for _, name := range []string{"telemetry.csv", "perf.csv", "events.csv", "frames.csv", "bookmarks.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	events := string(data)
	for _, want := range []string{"\nburst,", "\ncleared,", "\nmetric_reset,", "\ndefenders_expired,", "\nresized,"} {
		if !strings.Contains(events, want) {
			t.Errorf("events.csv has no %q row", strings.TrimSpace(want))
		}
	}

	snaps, err := filepath.Glob(filepath.Join(dir, "snapshots", "snapshot_*.yaml"))
	if err != nil || len(snaps) == 0 {
		t.Errorf("expected bookmark snapshots, got %v (%v)", snaps, err)
	}
}

func TestHeadlessWithoutOutput(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1})
	g.Engine().SetMetric(30)
	for i := 0; i < 90; i++ {
		g.UpdateHeadless()
	}
	if len(g.pending) != 0 {
		t.Errorf("events buffered without an output directory: %d", len(g.pending))
	}
	if g.Done() {
		t.Error("a run without a scenario is never done")
	}
	if f := g.Frame(); f.Fixers != 7 || f.Tick != 90 {
		t.Errorf("fixers=%d tick=%d, want 7/90", f.Fixers, f.Tick)
	}
	g.Unload()
}

func TestCycleSkin(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1})
	defer g.Unload()

	g.Engine().SetMetric(8)
	var seen []string
	for i := 0; i < 3; i++ {
		g.cycleSkin()
		g.UpdateHeadless()
		seen = append(seen, g.cfg.Status.Skin+":"+g.Frame().Class.String())
	}
	want := []string{"compact:warning", "orb:stable", ":stable"}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("cycle %d = %s, want %s", i, seen[i], want[i])
		}
	}
}
