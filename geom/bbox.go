package geom

import "github.com/chewxy/math32"

// BoundingBox is an axis-aligned box. Min <= Max on both axes unless the box
// is empty.
type BoundingBox struct {
	Min Vec2
	Max Vec2
}

// NewBoundingBox returns the box spanning min to max.
func NewBoundingBox(min, max Vec2) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// Smallest returns the empty box: Min is +MaxFloat32 and Max is -MaxFloat32,
// so the first AddPoint seeds both corners.
func Smallest() BoundingBox {
	return BoundingBox{Min: MaxVec, Max: MinVec}
}

// Largest returns the box covering every finite point.
func Largest() BoundingBox {
	return BoundingBox{Min: MinVec, Max: MaxVec}
}

// FromPoints returns the smallest box containing all points.
// With no points the result is the empty Smallest box; check IsEmpty.
func FromPoints(points ...Vec2) BoundingBox {
	b := Smallest()
	for _, p := range points {
		b.AddPoint(p)
	}
	return b
}

// IsEmpty reports whether Min exceeds Max on either axis.
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// ContainsPoint reports whether p lies inside b, bounds included.
func (b BoundingBox) ContainsPoint(p Vec2) bool {
	return b.Min.X <= p.X && b.Min.Y <= p.Y && b.Max.X >= p.X && b.Max.Y >= p.Y
}

// Overlaps reports whether b and other intersect, touching edges included.
// It is symmetric and does not test full containment.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	return b.Max.X >= other.Min.X && b.Min.X <= other.Max.X &&
		b.Max.Y >= other.Min.Y && b.Min.Y <= other.Max.Y
}

// AddPoint grows b to include p.
func (b *BoundingBox) AddPoint(p Vec2) {
	b.Min = Min(b.Min, p)
	b.Max = Max(b.Max, p)
}

// Union returns the smallest box containing both b and other.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{Min: Min(b.Min, other.Min), Max: Max(b.Max, other.Max)}
}

// Corners returns the corners clockwise from the top-left:
// (min.x, max.y), (max.x, max.y), (max.x, min.y), (min.x, min.y).
func (b BoundingBox) Corners() [4]Vec2 {
	return [4]Vec2{
		{X: b.Min.X, Y: b.Max.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Min.X, Y: b.Min.Y},
	}
}

// Center returns the midpoint of b.
func (b BoundingBox) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) * 0.5, Y: (b.Min.Y + b.Max.Y) * 0.5}
}

// Extents returns the half-size of b on each axis.
func (b BoundingBox) Extents() Vec2 {
	return Vec2{X: (b.Max.X - b.Min.X) * 0.5, Y: (b.Max.Y - b.Min.Y) * 0.5}
}

// Translate returns b moved by offset.
func (b BoundingBox) Translate(offset Vec2) BoundingBox {
	return BoundingBox{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Centered returns the box of half-size extents around center.
func Centered(center, extents Vec2) BoundingBox {
	return BoundingBox{
		Min: Vec2{X: center.X - math32.Abs(extents.X), Y: center.Y - math32.Abs(extents.Y)},
		Max: Vec2{X: center.X + math32.Abs(extents.X), Y: center.Y + math32.Abs(extents.Y)},
	}
}
