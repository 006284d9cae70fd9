// Package geom holds the plan-view geometry shared by the BSP compiler,
// the tree traversal and the renderers.
//
// Coordinates follow screen convention: y grows downward, so a positive
// cross product a×b means b lies clockwise of (to the right of) a.
package geom

import "math"

// Vec2 is an immutable 2D point or vector
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) MagSq() float64       { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Mag() float64         { return math.Sqrt(v.MagSq()) }
func (v Vec2) Dist(o Vec2) float64  { return o.Sub(v).Mag() }
func (v Vec2) Equal(o Vec2) bool    { return v.X == o.X && v.Y == o.Y }
func (v Vec2) Perpendicular() Vec2  { return Vec2{-v.Y, v.X} }

// Norm returns the unit vector, zero-safe
func (v Vec2) Norm() Vec2 {
	m := v.Mag()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{v.X / m, v.Y / m}
}

// Rotate turns v by rad; positive angles turn clockwise on screen
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}
