package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N steps (0 = unlimited)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	realtime := flag.Bool("realtime", false, "Pace steps by the wall clock (default from config)")
	duration := flag.Duration("duration", 0, "Stop after this much wall-clock time (0 = unlimited)")
	report := flag.Duration("report", 5*time.Second, "Progress log interval (0 = disabled)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	runRealtime := cfg.Stepping.Realtime
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "realtime" {
			runRealtime = *realtime
		}
	})

	s, err := sim.New(cfg, sim.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to create sim", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"realtime", runRealtime,
		"max_ticks", *maxTicks,
		"duration", duration.String(),
		"timestep", cfg.Stepping.Timestep,
		"max_steps", cfg.Stepping.MaxSteps,
	)

	runErr := s.Run(ctx, sim.RunOptions{
		Realtime:    runRealtime,
		MaxTicks:    *maxTicks,
		Duration:    *duration,
		ReportEvery: *report,
	})
	if err := s.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if runErr != nil {
		slog.Error("run failed", "error", runErr)
		os.Exit(1)
	}
}
