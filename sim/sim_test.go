package sim

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/physics"
	"github.com/pthm-cable/rigid/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Scenario.Bodies = 32
	cfg.Telemetry.StatsWindow = 0.5
	return cfg
}

func newTestSim(t *testing.T, cfg *config.Config, opts Options) *Sim {
	t.Helper()
	s, err := New(cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewSpawnsScenario(t *testing.T) {
	cfg := testConfig(t)
	s := newTestSim(t, cfg, Options{Seed: 1})

	bodies := s.World().Bodies
	if len(bodies) != 33 {
		t.Fatalf("bodies = %d, want 32 dynamic + floor", len(bodies))
	}

	for i, b := range bodies[:32] {
		if b.Static {
			t.Fatalf("body %d is static", i)
		}
		if b.InvMass != 1 {
			t.Errorf("body %d inv mass = %v", i, b.InvMass)
		}
		if b.Position.Y < float32(cfg.Scenario.SpawnBase) {
			t.Errorf("body %d spawned below base: %v", i, b.Position)
		}
		if b.LinearVelocity.Len() > float32(cfg.Scenario.InitialSpeed)+1e-4 {
			t.Errorf("body %d too fast: %v", i, b.LinearVelocity)
		}
	}

	floor := bodies[32]
	if !floor.Static || floor.InvMass != 0 {
		t.Errorf("floor static=%v inv mass=%v", floor.Static, floor.InvMass)
	}
	if floor.BBox.Max.Y != float32(cfg.Scenario.FloorY) {
		t.Errorf("floor top = %v, want %v", floor.BBox.Max.Y, cfg.Scenario.FloorY)
	}

	if s.RunID() == "" {
		t.Error("expected a generated run id")
	}
}

func TestSameSeedSameScenario(t *testing.T) {
	cfg := testConfig(t)
	a := newTestSim(t, cfg, Options{Seed: 9})
	b := newTestSim(t, cfg, Options{Seed: 9})
	c := newTestSim(t, cfg, Options{Seed: 10})

	for i := 0; i < 30; i++ {
		a.Tick()
		b.Tick()
		c.Tick()
	}

	for i := range a.World().Bodies {
		if a.World().Bodies[i] != b.World().Bodies[i] {
			t.Fatalf("body %d differs between equal seeds", i)
		}
	}
	if a.World().Bodies[0] == c.World().Bodies[0] {
		t.Error("different seeds produced the same first body")
	}
}

func TestUpdateUsesAccumulator(t *testing.T) {
	cfg := testConfig(t)
	cfg.Stepping.Timestep = 0.1
	cfg.Derived.Timestep32 = 0.1
	cfg.Stepping.MaxSteps = 3
	s := newTestSim(t, cfg, Options{})

	if got := s.Update(0.25); got != 2 {
		t.Errorf("steps = %d, want 2", got)
	}
	// Budget of 3 drops the rest
	if got := s.Update(1.0); got != 3 {
		t.Errorf("steps = %d, want 3", got)
	}
	if s.World().DroppedTime() <= 0 {
		t.Error("expected dropped time after exceeding the step budget")
	}
	if s.Steps() != 5 {
		t.Errorf("total steps = %d, want 5", s.Steps())
	}
}

func TestFloorStopsFallingBodies(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scenario.InitialSpeed = 0
	cfg.Scenario.InitialSpin = 0
	s := newTestSim(t, cfg, Options{Seed: 3})

	// Default damping caps the fall speed near 3 units/s; 25s covers a 30 unit drop
	for i := 0; i < 1500; i++ {
		s.Tick()
	}

	for i, b := range s.World().Bodies {
		if b.Static {
			continue
		}
		if b.BBox.Min.Y < float32(cfg.Scenario.FloorY)-1e-3 {
			t.Errorf("body %d fell through the floor: bottom %v", i, b.BBox.Min.Y)
		}
		if math.Abs(float64(b.LinearVelocity.Y)) > 0.5 {
			t.Errorf("body %d still moving vertically: %v", i, b.LinearVelocity)
		}
	}
	if s.floor.Contacts != 32 {
		t.Errorf("contacts = %d, want every body resting", s.floor.Contacts)
	}
}

func TestFloorContactLandsOnPlane(t *testing.T) {
	bodies := []physics.Body{physics.NewBody(geom.V(0, 1))}
	bodies[0].LinearVelocity = geom.V(2, -60)

	f := &FloorContact{Y: 0}
	f.Collide(bodies, 0.1)

	// Bottom at 0.5 may move down by 0.5 in 0.1s
	if got := bodies[0].LinearVelocity; math.Abs(float64(got.Y+5)) > 1e-4 || got.X != 2 {
		t.Errorf("velocity = %v, want (2,-5)", got)
	}
	if f.Contacts != 1 {
		t.Errorf("contacts = %d, want 1", f.Contacts)
	}

	// Moving away from the plane is left alone
	bodies[0].LinearVelocity = geom.V(0, 3)
	f.Collide(bodies, 0.1)
	if bodies[0].LinearVelocity.Y != 3 || f.Contacts != 0 {
		t.Errorf("velocity = %v contacts = %d", bodies[0].LinearVelocity, f.Contacts)
	}
}

func TestStatsCallbackAndOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Wind.Enabled = true
	dir := filepath.Join(t.TempDir(), "out")

	var windows []telemetry.WindowStats
	s := newTestSim(t, cfg, Options{
		RunID:         "test-run",
		OutputDir:     dir,
		StatsCallback: func(ws telemetry.WindowStats) { windows = append(windows, ws) },
	})
	if s.wind == nil {
		t.Fatal("wind enabled in config but not created")
	}

	// 0.5s windows at 60Hz flush every 30 steps
	for i := 0; i < 90; i++ {
		s.Tick()
	}

	if len(windows) != 3 {
		t.Fatalf("windows = %d, want 3", len(windows))
	}
	last := windows[2]
	if last.RunID != "test-run" || last.WindowEndStep != 90 {
		t.Errorf("last window = %q end %d", last.RunID, last.WindowEndStep)
	}
	if last.Dynamic != 32 || last.Static != 1 {
		t.Errorf("dynamic/static = %d/%d", last.Dynamic, last.Static)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"steps.csv", "perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRunFastStopsAtMaxTicks(t *testing.T) {
	s := newTestSim(t, testConfig(t), Options{})

	err := s.Run(context.Background(), RunOptions{MaxTicks: 120, ReportEvery: time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if s.Steps() != 120 {
		t.Errorf("steps = %d, want 120", s.Steps())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newTestSim(t, testConfig(t), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx, RunOptions{}); err != nil {
		t.Fatalf("cancelled run returned %v", err)
	}
	if s.Steps() != 0 {
		t.Errorf("steps = %d after pre-cancelled run", s.Steps())
	}
}

func TestRunRealtimeDuration(t *testing.T) {
	s := newTestSim(t, testConfig(t), Options{})

	start := time.Now()
	if err := s.Run(context.Background(), RunOptions{Realtime: true, Duration: 100 * time.Millisecond}); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("realtime run overran its duration")
	}
	if s.Steps() == 0 {
		t.Error("realtime run took no steps")
	}
}
