// Package core provides fundamental types and utilities for the survivors engine.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an integer axis-aligned box on the character screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec2 is a point or direction in world coordinates.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
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

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector pointing along v.
// A zero-length vector has no direction: the zero vector and false are returned.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, true
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle returns the unit vector for an angle in radians.
func FromAngle(rad float64) Vec2 {
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Box is a float axis-aligned bounding box described by its centre and size.
// Used for collision detection in world space.
type Box struct {
	Center Vec2
	W, H   float64
}

// BoxAt creates a square box of the given size centred on p.
func BoxAt(p Vec2, size float64) Box {
	return Box{Center: p, W: size, H: size}
}

// Min returns the top-left corner.
func (b Box) Min() Vec2 {
	return Vec2{X: b.Center.X - b.W/2, Y: b.Center.Y - b.H/2}
}

// Max returns the bottom-right corner.
func (b Box) Max() Vec2 {
	return Vec2{X: b.Center.X + b.W/2, Y: b.Center.Y + b.H/2}
}

// Intersects returns true if this box overlaps another.
// Touching edges do not count as overlap.
func (b Box) Intersects(o Box) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := o.Min(), o.Max()
	if bMin.X >= oMax.X || oMin.X >= bMax.X {
		return false
	}
	if bMin.Y >= oMax.Y || oMin.Y >= bMax.Y {
		return false
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
