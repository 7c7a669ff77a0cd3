// Package math provides vector, matrix and quaternion types for view navigation.
//
// Everything is float64: angular state accumulates over long sessions and the
// rendering boundary converts to float32 only when handing data to the GPU.
package math

import "math"

// Vec2 is a 2D vector, used for pointer positions and velocities.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}
