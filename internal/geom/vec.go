package geom

import "math"

// Vec2 is a 2D point or displacement. Values are immutable; every
// operation returns a new Vec2.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is a convenience constructor.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(u Vec2) Vec2 {
	return Vec2{X: v.X + u.X, Y: v.Y + u.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(u Vec2) Vec2 {
	return Vec2{X: v.X - u.X, Y: v.Y - u.Y}
}

// Mul returns the vector scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the magnitude of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between two points.
func (v Vec2) Distance(u Vec2) float64 {
	return math.Hypot(v.X-u.X, v.Y-u.Y)
}

// Normalize returns a unit vector in the same direction, or the zero
// vector when the input has zero length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Lerp interpolates between v and u; t=0 returns v, t=1 returns u.
func (v Vec2) Lerp(u Vec2, t float64) Vec2 {
	return Vec2{
		X: v.X + (u.X-v.X)*t,
		Y: v.Y + (u.Y-v.Y)*t,
	}
}

// Mid returns the midpoint of v and u.
func (v Vec2) Mid(u Vec2) Vec2 {
	return v.Lerp(u, 0.5)
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Line2 is the infinite line through two points.
type Line2 struct {
	A, B Vec2
}

// NewLine2 derives a line through a and b.
func NewLine2(a, b Vec2) Line2 {
	return Line2{A: a, B: b}
}

// Normal returns the unit normal of the line, or the zero vector for a
// degenerate line whose points coincide.
func (l Line2) Normal() Vec2 {
	d := l.B.Sub(l.A).Normalize()
	return Vec2{X: -d.Y, Y: d.X}
}

// Segment is a bounded line segment between two points.
type Segment struct {
	Start Vec2 `json:"start"`
	End   Vec2 `json:"end"`
}

// Mid returns the midpoint of the segment.
func (s Segment) Mid() Vec2 {
	return s.Start.Mid(s.End)
}

// Dir returns the unit direction from Start to End.
func (s Segment) Dir() Vec2 {
	return s.End.Sub(s.Start).Normalize()
}
