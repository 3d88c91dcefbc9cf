package physics_test

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/physics"
	"github.com/pthm-cable/rigid/physics/mocks"
)

func TestStepRunsColliderBetweenPasses(t *testing.T) {
	ctrl := gomock.NewController(t)

	w := physics.NewWorld()
	t.Cleanup(w.Close)
	w.SetDampingFactors(1, 1)
	w.AddBody(physics.NewBody(geom.Zero))

	timer := mocks.NewMockPhaseTimer(ctrl)
	collider := mocks.NewMockCollider(ctrl)
	w.SetPhaseTimer(timer)
	w.SetCollider(collider)

	gomock.InOrder(
		timer.EXPECT().StartTick(),
		timer.EXPECT().StartPhase(physics.PhaseIntegrateForces),
		timer.EXPECT().StartPhase(physics.PhaseCollide),
		collider.EXPECT().Collide(gomock.Len(1), float32(1)).Do(func(bodies []physics.Body, dt float32) {
			b := &bodies[0]
			// Forces are integrated, motion is not
			if b.LinearVelocity != geom.V(0, -9.81) {
				t.Errorf("velocity seen by collider = %v", b.LinearVelocity)
			}
			if b.Position != geom.Zero {
				t.Errorf("position seen by collider = %v, want origin", b.Position)
			}
			// Cancel the fall, as contact resolution against a floor would
			b.ApplyImpulse(geom.V(0, 9.81))
		}),
		timer.EXPECT().StartPhase(physics.PhaseIntegrate),
		timer.EXPECT().EndTick(),
	)

	w.Step(1)

	if got := w.Bodies[0].Position; got != geom.Zero {
		t.Errorf("position = %v, want origin after collider impulse", got)
	}
}

func TestStepWithoutColliderSkipsCollidePhase(t *testing.T) {
	ctrl := gomock.NewController(t)

	w := physics.NewWorld()
	t.Cleanup(w.Close)

	timer := mocks.NewMockPhaseTimer(ctrl)
	w.SetPhaseTimer(timer)

	gomock.InOrder(
		timer.EXPECT().StartTick(),
		timer.EXPECT().StartPhase(physics.PhaseIntegrateForces),
		timer.EXPECT().StartPhase(physics.PhaseIntegrate),
		timer.EXPECT().EndTick(),
	)
	timer.EXPECT().StartPhase(physics.PhaseCollide).Times(0)

	w.Step(1.0 / 60)
}

func TestStepForCallsColliderOncePerStep(t *testing.T) {
	ctrl := gomock.NewController(t)

	w := physics.NewWorld()
	t.Cleanup(w.Close)
	w.AddBody(physics.NewBody(geom.Zero))

	collider := mocks.NewMockCollider(ctrl)
	collider.EXPECT().Collide(gomock.Any(), float32(0.1)).Times(3)
	w.SetCollider(collider)

	if steps := w.StepFor(0.35, 0.1, 10); steps != 3 {
		t.Errorf("steps = %d, want 3", steps)
	}
}
