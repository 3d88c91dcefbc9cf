// Package sim drives a physics world headlessly: it spawns a scenario from
// config, advances it with the fixed-timestep accumulator and feeds telemetry.
package sim

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/physics"
	"github.com/pthm-cable/rigid/telemetry"
	"github.com/pthm-cable/rigid/wind"
)

// Options configures a Sim beyond what the config file holds.
type Options struct {
	Seed          int64                         // RNG seed for the scenario
	RunID         string                        // empty = random UUID
	LogStats      bool                          // log window stats via slog
	OutputDir     string                        // CSV output directory (empty = disabled)
	StatsCallback func(telemetry.WindowStats) // called on every flushed window
}

// Sim owns a world and its telemetry.
type Sim struct {
	cfg   *config.Config
	world *physics.World
	rng   *rand.Rand
	runID string

	wind  *wind.Field
	floor *FloorContact

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// New builds a world from cfg and spawns the configured scenario.
func New(cfg *config.Config, opts Options) (*Sim, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	s := &Sim{
		cfg:           cfg,
		world:         physics.NewWorldFromConfig(cfg),
		rng:           rand.New(rand.NewSource(opts.Seed)),
		runID:         runID,
		wind:          wind.FromConfig(cfg.Wind),
		collector:     telemetry.NewCollector(runID, cfg.Telemetry.StatsWindow, cfg.Derived.Timestep32),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager: om,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	s.spawnScenario()

	if s.floor != nil || s.wind != nil {
		s.world.SetCollider(&stepHooks{wind: s.wind, floor: s.floor})
	}
	s.world.SetPhaseTimer(s.perfCollector)

	slog.Info("sim created",
		"run_id", runID,
		"bodies", len(s.world.Bodies),
		"workers", cfg.Derived.Workers,
		"wind", s.wind != nil,
		"floor", s.floor != nil,
	)

	return s, nil
}

// spawnScenario fills the world with randomly placed dynamic bodies and,
// if configured, a static floor.
func (s *Sim) spawnScenario() {
	sc := s.cfg.Scenario

	for i := 0; i < sc.Bodies; i++ {
		pos := geom.V(
			float32((s.rng.Float64()-0.5)*sc.SpawnWidth),
			float32(sc.SpawnBase+s.rng.Float64()*sc.SpawnHeight),
		)
		b := physics.NewBody(pos)
		b.SetMass(float32(sc.Mass))
		b.SetInertia(float32(sc.Inertia))
		b.Orientation = float32(s.rng.Float64() * 2 * math.Pi)

		heading := s.rng.Float64() * 2 * math.Pi
		speed := s.rng.Float64() * sc.InitialSpeed
		b.LinearVelocity = geom.V(float32(math.Cos(heading)*speed), float32(math.Sin(heading)*speed))
		b.AngularVelocity = float32((s.rng.Float64()*2 - 1) * sc.InitialSpin)

		b.Update()
		s.world.AddBody(b)
	}

	if sc.StaticFloor {
		floorY := float32(sc.FloorY)
		floor := physics.NewBody(geom.V(0, floorY-physics.BodyHalfExtent))
		floor.SetStatic(true)
		floor.AffectedByGravity = false
		s.world.AddBody(floor)
		s.floor = &FloorContact{Y: floorY}
	}
}

// World returns the simulated world.
func (s *Sim) World() *physics.World {
	return s.world
}

// RunID returns the identifier written to every telemetry row.
func (s *Sim) RunID() string {
	return s.runID
}

// Steps returns the number of physics steps taken.
func (s *Sim) Steps() uint64 {
	return s.world.Steps()
}

// Update advances the world by elapsed wall-clock seconds using the
// fixed-timestep accumulator, then flushes telemetry if a window closed.
// Returns the number of steps taken.
func (s *Sim) Update(elapsed float64) int {
	steps := s.world.StepFor(elapsed, s.cfg.Derived.Timestep32, s.cfg.Stepping.MaxSteps)
	if steps > 0 {
		s.flushTelemetry()
	}
	return steps
}

// Tick takes exactly one fixed step, bypassing the accumulator.
func (s *Sim) Tick() {
	s.world.Step(s.cfg.Derived.Timestep32)
	s.flushTelemetry()
}

// flushTelemetry checks if the stats window should be flushed.
func (s *Sim) flushTelemetry() {
	if !s.collector.ShouldFlush(s.world.Steps()) {
		return
	}

	stats := s.collector.Flush(s.world)
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.outputManager != nil {
		if err := s.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := s.outputManager.WritePerf(perfStats, s.runID, stats.WindowEndStep); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// Close stops the integration workers and closes output files.
func (s *Sim) Close() error {
	s.world.Close()
	return s.outputManager.Close()
}
