package sim

import (
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/physics"
	"github.com/pthm-cable/rigid/wind"
)

// FloorContact keeps dynamic bodies above the horizontal plane y = Y.
// It runs between the two integration passes and removes just enough
// downward velocity that the body's box lands on the plane this step.
type FloorContact struct {
	Y float32

	// Bodies touching the plane during the last call
	Contacts int
}

var _ physics.Collider = (*FloorContact)(nil)

// Collide implements physics.Collider.
func (f *FloorContact) Collide(bodies []physics.Body, timestep float32) {
	f.Contacts = 0
	for i := range bodies {
		b := &bodies[i]
		if b.Static || !b.Active || b.InvMass == 0 {
			continue
		}

		// Slowest vertical velocity that keeps the box bottom on or above Y
		minVel := (f.Y - b.BBox.Min.Y) / timestep
		if b.LinearVelocity.Y >= minVel {
			continue
		}

		f.Contacts++
		b.ApplyImpulse(geom.V(0, (minVel-b.LinearVelocity.Y)/b.InvMass))
	}
}

// stepHooks runs everything that happens between the force and motion passes.
type stepHooks struct {
	wind  *wind.Field
	floor *FloorContact
}

func (h *stepHooks) Collide(bodies []physics.Body, timestep float32) {
	// Wind forces land in the accumulators and are consumed next step
	if h.wind != nil {
		h.wind.Apply(bodies, timestep)
	}
	if h.floor != nil {
		h.floor.Collide(bodies, timestep)
	}
}
