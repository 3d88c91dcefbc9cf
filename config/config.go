// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/rigid/geom"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Stepping  SteppingConfig  `yaml:"stepping"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Scenario  ScenarioConfig  `yaml:"scenario"`
	Wind      WindConfig      `yaml:"wind"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// VectorConfig is a 2D vector in YAML form.
type VectorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WorldConfig holds global world parameters.
type WorldConfig struct {
	Gravity           VectorConfig `yaml:"gravity"`
	LinearDamping     float64      `yaml:"linear_damping"`  // velocity multiplier per step, [0,1]
	AngularDamping    float64      `yaml:"angular_damping"` // angular velocity multiplier per step, [0,1]
	AllowDeactivation bool         `yaml:"allow_deactivation"`
}

// SteppingConfig holds fixed-timestep parameters.
type SteppingConfig struct {
	Timestep float64 `yaml:"timestep"`
	MaxSteps int     `yaml:"max_steps"`
	Realtime bool    `yaml:"realtime"`
}

// ParallelConfig holds integration worker parameters.
type ParallelConfig struct {
	Workers   int `yaml:"workers"`
	Threshold int `yaml:"threshold"`
}

// ScenarioConfig describes the bodies spawned by the headless runner.
type ScenarioConfig struct {
	Bodies       int     `yaml:"bodies"`
	SpawnWidth   float64 `yaml:"spawn_width"`
	SpawnHeight  float64 `yaml:"spawn_height"`
	SpawnBase    float64 `yaml:"spawn_base"` // lowest spawn height
	Mass         float64 `yaml:"mass"`
	Inertia      float64 `yaml:"inertia"`
	InitialSpeed float64 `yaml:"initial_speed"`
	InitialSpin  float64 `yaml:"initial_spin"`
	StaticFloor  bool    `yaml:"static_floor"`
	FloorY       float64 `yaml:"floor_y"`
}

// WindConfig holds noise force field parameters.
type WindConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Strength  float64 `yaml:"strength"`
	Scale     float64 `yaml:"scale"`
	TimeSpeed float64 `yaml:"time_speed"`
	Seed      int64   `yaml:"seed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Timestep32 float32   // Stepping.Timestep as float32
	Gravity    geom.Vec2 // World.Gravity as float32 vector
	Workers    int       // Parallel.Workers, or GOMAXPROCS when 0
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks values the physics core treats as preconditions.
func (c *Config) Validate() error {
	if c.World.LinearDamping < 0 || c.World.LinearDamping > 1 {
		return fmt.Errorf("%w: world.linear_damping %v outside [0, 1]", ErrInvalid, c.World.LinearDamping)
	}
	if c.World.AngularDamping < 0 || c.World.AngularDamping > 1 {
		return fmt.Errorf("%w: world.angular_damping %v outside [0, 1]", ErrInvalid, c.World.AngularDamping)
	}
	if float32(c.Stepping.Timestep) <= 0 {
		return fmt.Errorf("%w: stepping.timestep must be positive, got %v", ErrInvalid, c.Stepping.Timestep)
	}
	if c.Stepping.MaxSteps < 0 {
		return fmt.Errorf("%w: stepping.max_steps must not be negative, got %d", ErrInvalid, c.Stepping.MaxSteps)
	}
	if c.Parallel.Workers < 0 {
		return fmt.Errorf("%w: parallel.workers must not be negative, got %d", ErrInvalid, c.Parallel.Workers)
	}
	if c.Scenario.Bodies < 0 {
		return fmt.Errorf("%w: scenario.bodies must not be negative, got %d", ErrInvalid, c.Scenario.Bodies)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Timestep32 = float32(c.Stepping.Timestep)
	c.Derived.Gravity = geom.V(float32(c.World.Gravity.X), float32(c.World.Gravity.Y))

	c.Derived.Workers = c.Parallel.Workers
	if c.Derived.Workers == 0 {
		c.Derived.Workers = runtime.GOMAXPROCS(0)
	}

	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 1.0
	}
	if c.Telemetry.PerfCollectorWindow < 1 {
		c.Telemetry.PerfCollectorWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
