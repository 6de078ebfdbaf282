// Package core provides fundamental types and utilities shared by the
// simulation and the platform layers. It has no terminal dependencies so the
// game logic stays pure and testable.
package core

import "math"

// Vec2 is a point or displacement in world space (pixels).
type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// V returns Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v*k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Toward returns the unit vector from v to o, or the zero vector when the
// points coincide.
func (v Vec2) Toward(o Vec2) Vec2 {
	d := o.Sub(v)
	l := d.Len()
	if l == 0 {
		return Vec2{}
	}
	return d.Scale(1 / l)
}

// Angle returns the direction from v to o in radians.
func (v Vec2) Angle(o Vec2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// FromAngle returns the vector of the given length pointing along rad.
func FromAngle(rad, length float64) Vec2 {
	return Vec2{X: math.Cos(rad) * length, Y: math.Sin(rad) * length}
}

// Overlaps reports whether two circles, given by centre and diameter, overlap.
// Touching circles do not overlap.
func Overlaps(a Vec2, sizeA float64, b Vec2, sizeB float64) bool {
	return a.Dist(b) < sizeA/2+sizeB/2
}

// Rect is an axis-aligned box in screen cells.
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

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CenteredRect returns a w×h rectangle centred in an outer area of the
// given size, shrunk to fit when the area is too small.
func CenteredRect(outerW, outerH, w, h int) Rect {
	w = Min(w, outerW)
	h = Min(h, outerH)
	return Rect{X: (outerW - w) / 2, Y: (outerH - h) / 2, W: w, H: h}
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
// When min > max the result is min.
func ClampF(val, min, max float64) float64 {
	if val > max {
		val = max
	}
	if val < min {
		val = min
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
