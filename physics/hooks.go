package physics

//go:generate go tool mockgen -source=hooks.go -destination=mocks/hooks_mock.go -package=mocks

// Phase names reported to a PhaseTimer.
const (
	PhaseIntegrateForces = "integrate_forces"
	PhaseCollide         = "collide"
	PhaseIntegrate       = "integrate"
)

// Collider detects and resolves contacts. World calls it once per step, after
// forces are integrated into velocities and before velocities are integrated
// into positions, on the goroutine that called Step. It may call ApplyImpulse
// and AddForce on any body; forces added here are consumed by the next step.
type Collider interface {
	Collide(bodies []Body, timestep float32)
}

// PhaseTimer receives phase boundaries of each step.
// *telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}
