package geom

import "github.com/chewxy/math32"

// Mat22 is a row-major 2x2 matrix.
type Mat22 struct {
	M11, M12 float32
	M21, M22 float32
}

// Identity is the 2x2 identity matrix.
var Identity = Mat22{M11: 1, M12: 0, M21: 0, M22: 1}

// NewMat22 returns the matrix with the given entries in row-major order.
func NewMat22(m11, m12, m21, m22 float32) Mat22 {
	return Mat22{M11: m11, M12: m12, M21: m21, M22: m22}
}

// Rotation returns the counter-clockwise rotation by angle radians.
func Rotation(angle float32) Mat22 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	return Mat22{M11: c, M12: -s, M21: s, M22: c}
}

// MulVec returns m * v.
func (m Mat22) MulVec(v Vec2) Vec2 {
	return Vec2{
		X: m.M11*v.X + m.M12*v.Y,
		Y: m.M21*v.X + m.M22*v.Y,
	}
}

// Transpose returns the transpose of m. For a rotation this is its inverse.
func (m Mat22) Transpose() Mat22 {
	return Mat22{M11: m.M11, M12: m.M21, M21: m.M12, M22: m.M22}
}
