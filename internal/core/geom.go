// Package core provides fundamental types and utilities shared by the
// simulation and its hosts. Vector arithmetic is gonum's r2; nothing here
// touches the physics engine or the terminal.
package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D point or vector in play-field units (points).
// Screen coordinates: x grows to the right, y grows downward.
type Vec r2.Vec

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// R2 returns v as a gonum vector.
func (v Vec) R2() r2.Vec {
	return r2.Vec(v)
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec(r2.Add(r2.Vec(v), r2.Vec(o)))
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec(r2.Sub(r2.Vec(v), r2.Vec(o)))
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec(r2.Scale(s, r2.Vec(v)))
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return v.Scale(-1)
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return r2.Dot(r2.Vec(v), r2.Vec(o))
}

// Len returns the magnitude of v.
func (v Vec) Len() float64 {
	return r2.Norm(r2.Vec(v))
}

// Angle returns the direction of v in radians, in (-π, π].
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleDegrees returns the direction of v in degrees, normalized to [0, 360).
func (v Vec) AngleDegrees() float64 {
	deg := v.Angle() * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// FromAngle returns a vector of the given magnitude pointing at angle radians.
func FromAngle(angle, magnitude float64) Vec {
	return Vec{X: math.Cos(angle) * magnitude, Y: math.Sin(angle) * magnitude}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle: origin at the top-left corner.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRect creates a rectangle with the given origin and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAround creates a rectangle of the given size centred on c.
func RectAround(c Vec, s Size) Rect {
	return Rect{X: c.X - s.W/2, Y: c.Y - s.H/2, W: s.W, H: s.H}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// MidX returns the horizontal centre.
func (r Rect) MidX() float64 { return r.X + r.W/2 }

// MidY returns the vertical centre.
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

// Center returns the centre point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.MidX(), Y: r.MidY()}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Box returns r as a gonum box from its top-left to bottom-right corner.
func (r Rect) Box() r2.Box {
	return r2.Box{Min: r2.Vec{X: r.X, Y: r.Y}, Max: r2.Vec{X: r.MaxX(), Y: r.MaxY()}}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// WithCenter returns r moved so that its centre is c.
func (r Rect) WithCenter(c Vec) Rect {
	return RectAround(c, r.Size())
}

// Offset returns r translated by d.
func (r Rect) Offset(d Vec) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Inset shrinks r by dx on the left and right and dy on the top and bottom.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	if r.X >= other.MaxX() || other.X >= r.MaxX() {
		return false
	}
	if r.Y >= other.MaxY() || other.Y >= r.MaxY() {
		return false
	}
	return true
}

// ContainsRect returns true if other lies entirely inside r (edges inclusive).
func (r Rect) ContainsRect(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	b, o := r.Box(), other.Box()
	return b.Contains(o.Min) && b.Contains(o.Max)
}

// Contains returns true if the point p is inside this rectangle.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
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
