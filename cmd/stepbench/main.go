// Package main measures integration throughput for a range of body counts
// and worker counts, writing one CSV row per combination.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/physics"
	"github.com/pthm-cable/rigid/telemetry"
)

// Result is one benchmark row.
type Result struct {
	Bodies       int     `csv:"bodies"`
	Workers      int     `csv:"workers"`
	Steps        int     `csv:"steps"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	BodyStepsSec float64 `csv:"body_steps_per_sec"`
	ForcesPct    float64 `csv:"integrate_forces_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	bodiesFlag := flag.String("bodies", "100,1000,10000,100000", "Comma-separated body counts")
	workersFlag := flag.String("workers", "1,0", "Comma-separated worker counts (0 = GOMAXPROCS)")
	steps := flag.Int("steps", 300, "Steps per measurement")
	output := flag.String("output", "", "CSV output path (empty = stdout)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	bodyCounts, err := parseInts(*bodiesFlag)
	if err != nil {
		log.Fatalf("invalid -bodies: %v", err)
	}
	workerCounts, err := parseInts(*workersFlag)
	if err != nil {
		log.Fatalf("invalid -workers: %v", err)
	}

	var results []Result
	for _, n := range bodyCounts {
		for _, workers := range workerCounts {
			r := measure(cfg, n, workers, *steps)
			log.Printf("bodies=%d workers=%d avg=%dus steps/s=%.0f", r.Bodies, r.Workers, r.AvgStepUS, r.StepsPerSec)
			results = append(results, r)
		}
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("failed to create output: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := gocsv.Marshal(results, out); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}
}

// measure steps a world of n scattered bodies and reports timing.
func measure(cfg *config.Config, n, workers, steps int) Result {
	w := physics.NewWorldFromConfig(cfg)
	defer w.Close()
	w.SetParallelism(workers, cfg.Parallel.Threshold)

	rng := rand.New(rand.NewSource(int64(n)))
	w.Bodies = make([]physics.Body, 0, n)
	for i := 0; i < n; i++ {
		b := physics.NewBody(geom.V(rng.Float32()*1000, rng.Float32()*1000))
		b.LinearVelocity = geom.V(rng.Float32()*2-1, rng.Float32()*2-1)
		w.AddBody(b)
	}

	// Warm up the worker pool outside the window
	w.Step(cfg.Derived.Timestep32)

	perf := telemetry.NewPerfCollector(steps)
	w.SetPhaseTimer(perf)

	start := time.Now()
	for i := 0; i < steps; i++ {
		w.Step(cfg.Derived.Timestep32)
	}
	elapsed := time.Since(start)

	stats := perf.Stats()
	r := Result{
		Bodies:       n,
		Workers:      workers,
		Steps:        steps,
		AvgStepUS:    stats.AvgTickDuration.Microseconds(),
		MaxStepUS:    stats.MaxTickDuration.Microseconds(),
		ForcesPct:    stats.PhasePct[physics.PhaseIntegrateForces],
		IntegratePct: stats.PhasePct[physics.PhaseIntegrate],
	}
	if elapsed > 0 {
		r.StepsPerSec = float64(steps) / elapsed.Seconds()
		r.BodyStepsSec = r.StepsPerSec * float64(n)
	}
	return r
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", part, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("negative value %d", v)
		}
		out = append(out, v)
	}
	return out, nil
}
