// Package math provides the small vector and matrix toolkit used for terrain geometry.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Cross returns the z component of the 3D cross product of v and other.
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// ChebyshevDistance returns the L-infinity distance to another point.
func (v Vec2) ChebyshevDistance(other Vec2) float64 {
	return math.Max(math.Abs(v.X-other.X), math.Abs(v.Y-other.Y))
}
