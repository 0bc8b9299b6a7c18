package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/goleak"

	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/engine"
	"github.com/pthm-cable/vitals/status"
)

func TestPumpStopsWithUndrainedEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	events := pump(screen, done, 1)
	for i := 0; i < 4; i++ {
		screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	}
	// Take one event so the pump is known to be running, then walk away
	if ev := <-events; ev == nil {
		t.Fatal("expected an event")
	}
	close(done)
	screen.Fini()

	for range events {
	}
}

func TestCycleSkinLogsRejectedSkin(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Status.Skins = map[string]status.Thresholds{"broken": {Warning: 60, Critical: 20}}

	e, err := engine.New(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	v := &viewer{engine: e, cfg: cfg}
	v.cycleSkin()

	if v.cfg != cfg || v.cfg.Status.Skin != "" {
		t.Errorf("rejected skin was kept: %q", v.cfg.Status.Skin)
	}
	if !strings.Contains(logs.String(), "skin switch failed") {
		t.Errorf("no warning logged, got %q", logs.String())
	}
}
