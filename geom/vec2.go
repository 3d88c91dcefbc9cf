// Package geom provides the 2D value types used by the physics core.
package geom

import "github.com/chewxy/math32"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

var (
	// Zero is the zero vector.
	Zero = Vec2{}
	// MinVec has both components at the most negative finite float32.
	MinVec = Vec2{X: -math32.MaxFloat32, Y: -math32.MaxFloat32}
	// MaxVec has both components at the largest finite float32.
	MaxVec = Vec2{X: math32.MaxFloat32, Y: math32.MaxFloat32}
)

// V returns the vector (x, y).
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the perp-dot product v.X*o.Y - v.Y*o.X, the z component of
// the 3D cross product. Positive when o is counter-clockwise from v.
func (v Vec2) Cross(o Vec2) float32 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the length of v.
func (v Vec2) Len() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Norm scales v in place to unit length.
// The zero vector has no direction; normalizing it yields NaN components.
func (v *Vec2) Norm() {
	inv := 1 / math32.Sqrt(v.Dot(*v))
	v.X *= inv
	v.Y *= inv
}

// Min returns the component-wise minimum of a and b.
func Min(a, b Vec2) Vec2 {
	return Vec2{X: min(a.X, b.X), Y: min(a.Y, b.Y)}
}

// Max returns the component-wise maximum of a and b.
func Max(a, b Vec2) Vec2 {
	return Vec2{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
}
