package physics

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/geom"
)

// ErrDampingRange is returned by ValidateDamping for factors outside [0, 1].
var ErrDampingRange = errors.New("damping factor outside [0, 1]")

// Defaults used by NewWorld.
const (
	DefaultDamping float32 = 0.95
)

// DefaultGravity is the gravity of a new World.
var DefaultGravity = geom.V(0, -9.81)

// World owns the bodies and advances them in fixed timesteps.
// A World is not safe for concurrent use.
type World struct {
	// Bodies in insertion order. Callers may append and mutate between steps.
	Bodies []Body

	Gravity geom.Vec2

	// Not used yet; reserved for a sleeping policy driving Body.Active.
	AllowDeactivation bool

	// Every step, velocities are multiplied by these. Change them with
	// SetDampingFactors.
	AngularDampingFactor float32
	LinearDampingFactor  float32

	// Simulated time not yet consumed by StepFor.
	AccumulatedTime float64

	collider Collider
	timer    PhaseTimer
	parallel *parallelState

	steps       uint64
	droppedTime float64
}

// NewWorld returns an empty world with default gravity and damping.
func NewWorld() *World {
	return &World{
		Gravity:              DefaultGravity,
		AngularDampingFactor: DefaultDamping,
		LinearDampingFactor:  DefaultDamping,
		parallel:             newParallelState(0, DefaultParallelThreshold),
	}
}

// NewWorldFromConfig returns an empty world configured from cfg.
// cfg must come from config.Load, which validates the damping range.
func NewWorldFromConfig(cfg *config.Config) *World {
	w := NewWorld()
	w.Gravity = cfg.Derived.Gravity
	w.AllowDeactivation = cfg.World.AllowDeactivation
	w.SetDampingFactors(float32(cfg.World.LinearDamping), float32(cfg.World.AngularDamping))
	w.SetParallelism(cfg.Derived.Workers, cfg.Parallel.Threshold)
	return w
}

// AddBody appends b and returns its index in Bodies.
func (w *World) AddBody(b Body) int {
	w.Bodies = append(w.Bodies, b)
	return len(w.Bodies) - 1
}

// SetCollider installs the contact phase run between the two integration
// passes. nil removes it.
func (w *World) SetCollider(c Collider) {
	w.collider = c
}

// SetPhaseTimer installs a receiver for per-step phase timing. nil removes it.
func (w *World) SetPhaseTimer(t PhaseTimer) {
	w.timer = t
}

// SetParallelism sets the number of integration workers and the body count
// at which passes go parallel. workers < 1 means GOMAXPROCS.
func (w *World) SetParallelism(workers, threshold int) {
	w.parallel.stopWorkers()
	w.parallel = newParallelState(workers, threshold)
}

// Close stops the integration workers. The world remains usable; workers are
// restarted by the next parallel pass.
func (w *World) Close() {
	w.parallel.stopWorkers()
}

// Steps returns the number of steps taken since creation.
func (w *World) Steps() uint64 {
	return w.steps
}

// DroppedTime returns the total simulated time discarded by StepFor because
// the per-call step budget ran out.
func (w *World) DroppedTime() float64 {
	return w.droppedTime
}

// StepFor adds elapsed seconds to the accumulator and takes fixed steps of
// timestep while more than one timestep is accumulated. After maxSteps steps
// any remaining accumulated time is dropped, bounding the work of one call.
// Returns the number of steps taken. Panics if timestep is not positive.
func (w *World) StepFor(elapsed float64, timestep float32, maxSteps int) int {
	if !(timestep > 0) {
		panic(fmt.Sprintf("physics: timestep must be positive, got %v", timestep))
	}

	dt := float64(timestep)
	w.AccumulatedTime += elapsed

	steps := 0
	for w.AccumulatedTime > dt {
		if steps >= maxSteps {
			slog.Warn("step budget exhausted, dropping accumulated time",
				"max_steps", maxSteps,
				"dropped_s", w.AccumulatedTime,
			)
			w.droppedTime += w.AccumulatedTime
			w.AccumulatedTime = 0
			break
		}

		w.Step(timestep)
		w.AccumulatedTime -= dt
		steps++
	}

	return steps
}

// Step advances the world by exactly one timestep: forces into velocities,
// then the collider if any, then velocities into positions.
func (w *World) Step(timestep float32) {
	if w.timer != nil {
		w.timer.StartTick()
		w.timer.StartPhase(PhaseIntegrateForces)
	}
	w.integrateForces(timestep)

	if w.collider != nil {
		if w.timer != nil {
			w.timer.StartPhase(PhaseCollide)
		}
		w.collider.Collide(w.Bodies, timestep)
	}

	if w.timer != nil {
		w.timer.StartPhase(PhaseIntegrate)
	}
	w.integrate(timestep)

	if w.timer != nil {
		w.timer.EndTick()
	}
	w.steps++
}

func (w *World) integrateForces(timestep float32) {
	w.parallel.run(w.Bodies, passForces, passParams{
		dt:      timestep,
		gravity: w.Gravity,
	})
}

func (w *World) integrate(timestep float32) {
	w.parallel.run(w.Bodies, passMotion, passParams{
		dt:             timestep,
		linearDamping:  w.LinearDampingFactor,
		angularDamping: w.AngularDampingFactor,
	})
}

// SetDampingFactors sets the per-step velocity multipliers.
// Panics if either factor is outside [0, 1].
func (w *World) SetDampingFactors(linear, angular float32) {
	if err := ValidateDamping(linear, angular); err != nil {
		panic("physics: " + err.Error())
	}
	w.LinearDampingFactor = linear
	w.AngularDampingFactor = angular
}

// ValidateDamping reports whether both factors lie in [0, 1].
func ValidateDamping(linear, angular float32) error {
	if !(linear >= 0 && linear <= 1) {
		return fmt.Errorf("linear %v: %w", linear, ErrDampingRange)
	}
	if !(angular >= 0 && angular <= 1) {
		return fmt.Errorf("angular %v: %w", angular, ErrDampingRange)
	}
	return nil
}
