// Package wind applies a smooth, time-varying force field to bodies.
package wind

import (
	"github.com/chewxy/math32"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/rigid/config"
	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/physics"
)

// Field samples two decorrelated simplex noise channels over (x, y, t) to get
// a force per body. Force magnitude never exceeds Strength on either axis.
type Field struct {
	Strength  float32
	Scale     float32 // world units to noise units
	TimeSpeed float32 // noise units per simulated second

	noiseX opensimplex.Noise32
	noiseY opensimplex.Noise32
	t      float32
}

// New creates a wind field.
func New(seed int64, strength, scale, timeSpeed float32) *Field {
	return &Field{
		Strength:  strength,
		Scale:     scale,
		TimeSpeed: timeSpeed,
		noiseX:    opensimplex.New32(seed),
		noiseY:    opensimplex.New32(seed + 1),
	}
}

// FromConfig creates a wind field from the wind section, or nil when disabled.
func FromConfig(cfg config.WindConfig) *Field {
	if !cfg.Enabled {
		return nil
	}
	return New(cfg.Seed, float32(cfg.Strength), float32(cfg.Scale), float32(cfg.TimeSpeed))
}

// Sample returns the force at p at the field's current time.
func (f *Field) Sample(p geom.Vec2) geom.Vec2 {
	x, y := p.X*f.Scale, p.Y*f.Scale
	return geom.V(
		clamp(f.noiseX.Eval3(x, y, f.t))*f.Strength,
		clamp(f.noiseY.Eval3(x, y, f.t))*f.Strength,
	)
}

// Apply adds the field force to every dynamic, active body and advances the
// field clock by dt. Call it once per step; the forces are consumed by the
// next force pass.
func (f *Field) Apply(bodies []physics.Body, dt float32) {
	for i := range bodies {
		b := &bodies[i]
		if b.Static || !b.Active {
			continue
		}
		b.AddForce(f.Sample(b.Position))
	}
	f.t += dt * f.TimeSpeed
}

// Time returns the field clock in noise units.
func (f *Field) Time() float32 {
	return f.t
}

// simplex output is nominally [-1, 1] but can overshoot slightly
func clamp(v float32) float32 {
	return math32.Max(-1, math32.Min(1, v))
}
