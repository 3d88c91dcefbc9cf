// Package physics integrates rigid body motion in fixed timesteps.
package physics

import "github.com/pthm-cable/rigid/geom"

// BodyHalfExtent is the half-size of every body's bounding box until bodies
// carry real shapes.
const BodyHalfExtent float32 = 0.5

// Body is the state of a single rigid body.
//
// InvMass and InvInertia are a cache the caller keeps consistent with Mass and
// Inertia; SetMass, SetInertia and SetStatic do that. A static body must have
// both inverses at zero. Nothing checks this during integration.
type Body struct {
	Position    geom.Vec2
	Orientation float32 // radians, not wrapped

	LinearVelocity  geom.Vec2
	AngularVelocity float32

	// Accumulators, cleared every step
	Force  geom.Vec2
	Torque float32

	Mass       float32
	Inertia    float32
	InvMass    float32
	InvInertia float32

	Static            bool // never integrated
	Active            bool // integrated only while true
	AffectedByGravity bool

	BBox           geom.BoundingBox
	InvOrientation float32
}

// NewBody returns an active, gravity-affected body of unit mass at position.
// Inertia starts at zero, so the body does not rotate until SetInertia is called.
func NewBody(position geom.Vec2) Body {
	b := Body{
		Position:          position,
		Mass:              1,
		InvMass:           1,
		Active:            true,
		AffectedByGravity: true,
	}
	b.Update()
	return b
}

// ApplyImpulse changes the linear velocity by impulse * InvMass.
// Panics if the body is static.
func (b *Body) ApplyImpulse(impulse geom.Vec2) {
	if b.Static {
		panic("physics: can't apply an impulse to a static body")
	}
	b.LinearVelocity = b.LinearVelocity.Add(impulse.Scale(b.InvMass))
}

// ApplyImpulseAt applies impulse at rel, the offset from the center of mass,
// changing both linear and angular velocity. Panics if the body is static.
func (b *Body) ApplyImpulseAt(impulse, rel geom.Vec2) {
	b.ApplyImpulse(impulse)
	b.AngularVelocity += b.InvInertia * rel.Cross(impulse)
}

// AddForce accumulates force for the next step.
func (b *Body) AddForce(force geom.Vec2) {
	b.Force = b.Force.Add(force)
}

// AddForceAt accumulates force applied at rel, the offset from the center of
// mass, along with the torque it produces.
func (b *Body) AddForceAt(force, rel geom.Vec2) {
	b.AddForce(force)
	b.Torque += rel.Cross(force)
}

// Update refreshes state derived from position and orientation.
func (b *Body) Update() {
	b.InvOrientation = -b.Orientation
	b.BBox = geom.Centered(b.Position, geom.V(BodyHalfExtent, BodyHalfExtent))
}

// SetMass sets Mass and its inverse. Non-positive mass gives an inverse of zero.
func (b *Body) SetMass(mass float32) {
	b.Mass = mass
	b.InvMass = inverse(mass)
}

// SetInertia sets Inertia and its inverse. Non-positive inertia gives an inverse of zero.
func (b *Body) SetInertia(inertia float32) {
	b.Inertia = inertia
	b.InvInertia = inverse(inertia)
}

// SetStatic marks the body static or dynamic. Static bodies get zero inverse
// mass and inertia; dynamic bodies get them back from Mass and Inertia.
func (b *Body) SetStatic(static bool) {
	b.Static = static
	if static {
		b.InvMass = 0
		b.InvInertia = 0
		return
	}
	b.InvMass = inverse(b.Mass)
	b.InvInertia = inverse(b.Inertia)
}

// Rotation returns the body-to-world rotation.
func (b *Body) Rotation() geom.Mat22 {
	return geom.Rotation(b.Orientation)
}

// InvRotation returns the world-to-body rotation, built from InvOrientation as
// of the last Update.
func (b *Body) InvRotation() geom.Mat22 {
	return geom.Rotation(b.InvOrientation)
}

// WorldPoint transforms a body-local point into world space.
func (b *Body) WorldPoint(local geom.Vec2) geom.Vec2 {
	return b.Position.Add(b.Rotation().MulVec(local))
}

// LocalPoint transforms a world point into body-local space.
func (b *Body) LocalPoint(world geom.Vec2) geom.Vec2 {
	return b.InvRotation().MulVec(world.Sub(b.Position))
}

// KineticEnergy returns the linear plus rotational kinetic energy.
func (b *Body) KineticEnergy() float32 {
	return 0.5*b.Mass*b.LinearVelocity.LenSq() + 0.5*b.Inertia*b.AngularVelocity*b.AngularVelocity
}

func inverse(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}
