package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/launch/config"
	"github.com/pthm-cable/launch/guidance"
	"github.com/pthm-cable/launch/mission"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, launching immediately")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, snapshots and config")
	strategy := flag.String("guidance", "", "Guidance strategy: "+strings.Join(guidance.Strategies(), ", ")+" (empty = config)")
	speed := flag.Float64("speed", 0, "Physics speed multiplier (0 = config)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *strategy != "" {
		cfg.Guidance.Strategy = *strategy
	}

	m, err := mission.New(cfg, mission.Options{
		Seed:          *seed,
		OutputDir:     *outputDir,
		Speed:         *speed,
		LogMilestones: true,
	})
	if err != nil {
		slog.Error("failed to create mission", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		slog.Info("starting headless flight",
			"seed", m.Seed(),
			"max_ticks", *maxTicks,
			"output_dir", *outputDir,
		)

		summary, err := m.Fly(ctx, *maxTicks)
		if err != nil {
			slog.Warn("flight interrupted", "error", err)
		}
		slog.Info("flight summary", "summary", summary)
		return
	}

	// Graphical mode: raylib owns the main thread, physics runs on its own goroutine.
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Launch")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Simulation.DisplayFPS))

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- m.Run(runCtx) }()

	view := mission.NewView(m)
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		view.Update()
		view.Draw()

		if *maxTicks > 0 && int(m.Runner().Latest().Tick) >= *maxTicks {
			break
		}
	}

	cancel()
	if err := <-done; err != nil && err != context.Canceled {
		slog.Error("runner stopped", "error", err)
	}
	slog.Info("flight summary", "summary", m.Recorder().Summary())
}
