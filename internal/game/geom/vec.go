// Package geom provides the small amount of 2D vector math the combat layer
// needs. Angles are in degrees; a rotation of 0 faces +Y.
package geom

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X float64
	Y float64
}

// V returns the vector (x, y).
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }

// Magnitude returns the Euclidean length of v.
func (v Vec2) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// Normalise returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalise() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return Vec2{X: v.X / m, Y: v.Y / m}
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 { return deg * math.Pi / 180 }

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// Heading returns the unit direction an entity with the given rotation faces.
//
// Postcondition: Heading(r).Magnitude() == 1 (within float error).
func Heading(rotation float64) Vec2 {
	r := ToRadians(rotation + 90)
	return Vec2{X: math.Cos(r), Y: math.Sin(r)}
}

// RotationTowards returns the rotation whose Heading points from `from` at `to`.
func RotationTowards(from, to Vec2) float64 {
	d := to.Sub(from)
	return ToDegrees(math.Atan2(d.Y, d.X)) - 90
}

// WrapAngle maps deg into (-180, 180].
func WrapAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// Overlaps reports whether two axis-aligned boxes, each given by its centre
// and size, intersect. Touching edges do not count.
func Overlaps(a, aSize, b, bSize Vec2) bool {
	d := a.Sub(b)
	return math.Abs(d.X)*2 < aSize.X+bSize.X && math.Abs(d.Y)*2 < aSize.Y+bSize.Y
}
