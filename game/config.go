package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/vitals/config"
)

func (g *Game) startWatcher(path string) error {
	w, err := config.NewWatcher(path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	g.watcher = w
	g.stopWatcher = cancel
	return nil
}

// drainConfig applies a reloaded config if one is waiting. The skin chosen
// at runtime survives reloads that do not name one.
func (g *Game) drainConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg := <-g.watcher.Updates():
		if cfg.Status.Skin == "" && g.cfg.Status.Skin != "" {
			if err := cfg.UseSkin(g.cfg.Status.Skin); err != nil {
				slog.Warn("dropping skin after reload", "skin", g.cfg.Status.Skin, "error", err)
			}
		}
		g.applyConfig(cfg)
	default:
	}
}

func (g *Game) applyConfig(cfg *config.Config) {
	if err := g.engine.ApplyConfig(cfg); err != nil {
		slog.Warn("config rejected by engine", "error", err)
		return
	}
	g.cfg = cfg
}

// cycleSkin switches to the next named skin, wrapping back to the base
// thresholds after the last one.
func (g *Game) cycleSkin() {
	names := g.cfg.SkinNames()
	if len(names) == 0 {
		return
	}
	next := ""
	switch cur := g.cfg.Status.Skin; cur {
	case "":
		next = names[0]
	default:
		for i, n := range names {
			if n == cur && i+1 < len(names) {
				next = names[i+1]
			}
		}
	}

	cfg := *g.cfg
	if err := cfg.UseSkin(next); err != nil {
		slog.Warn("skin switch failed", "skin", next, "error", err)
		return
	}
	g.applyConfig(&cfg)
	slog.Info("skin switched", "skin", next, "warning", cfg.Derived.Thresholds.Warning, "critical", cfg.Derived.Thresholds.Critical)
}
