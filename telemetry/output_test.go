package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/rigid/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// All methods are nil-safe
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, "", 0); err != nil {
		t.Error(err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager has a dir")
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := uint64(1); i <= 3; i++ {
		if err := om.WriteStats(WindowStats{RunID: "r1", WindowEndStep: i * 60, Bodies: 5}); err != nil {
			t.Fatal(err)
		}
	}
	perf := PerfStats{AvgTickDuration: time.Millisecond, PhasePct: map[string]float64{}}
	if err := om.WritePerf(perf, "r1", 60); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	steps := readLines(t, filepath.Join(dir, "steps.csv"))
	if len(steps) != 4 {
		t.Fatalf("steps.csv has %d lines, want header + 3", len(steps))
	}
	if !strings.HasPrefix(steps[0], "run_id,window_end,sim_time,steps,dropped_s,bodies") {
		t.Errorf("header = %q", steps[0])
	}
	if strings.Contains(steps[0], "WindowStartStep") {
		t.Error("ignored field exported")
	}
	if !strings.HasPrefix(steps[3], "r1,180,") {
		t.Errorf("last row = %q", steps[3])
	}

	perfLines := readLines(t, filepath.Join(dir, "perf.csv"))
	if len(perfLines) != 2 {
		t.Fatalf("perf.csv has %d lines, want 2", len(perfLines))
	}
	if !strings.Contains(perfLines[0], "integrate_forces_pct") {
		t.Errorf("perf header = %q", perfLines[0])
	}
	if !strings.HasPrefix(perfLines[1], "r1,60,1000,") {
		t.Errorf("perf row = %q", perfLines[1])
	}

	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("config snapshot does not load: %v", err)
	}
	if loaded.Stepping.MaxSteps != config.Defaults().Stepping.MaxSteps {
		t.Error("config snapshot lost max_steps")
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
