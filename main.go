package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vitals/config"
	"github.com/pthm-cable/vitals/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	skin := flag.String("skin", "", "Threshold skin to start with (overrides config)")
	headless := flag.Bool("headless", false, "Run without graphics")
	scenario := flag.Bool("scenario", false, "Replay the configured scenario (always on when headless)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshots := flag.Bool("snapshots", false, "Write a state snapshot with every bookmark")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited, or scenario end when headless)")
	watch := flag.Bool("watch", false, "Reload -config when it changes on disk")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *skin != "" {
		if err := cfg.UseSkin(*skin); err != nil {
			slog.Error("invalid skin", "error", err)
			os.Exit(1)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:       rngSeed,
		LogStats:   *logStats,
		OutputDir:  *outputDir,
		Headless:   *headless,
		Snapshots:  *snapshots,
		Scenario:   *scenario || *headless,
		ConfigPath: *configPath,
		Watch:      *watch,
	}

	if *headless {
		g, err := game.NewGame(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"skin", cfg.Status.Skin,
			"max_ticks", *maxTicks,
			"scenario_steps", len(cfg.Scenario),
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				break
			}
			if *maxTicks == 0 && g.Done() {
				break
			}
		}
		g.LogSummary()
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
	g.LogSummary()
}
