// Package geom holds the small amount of 2D math the runtime needs:
// vectors, entity transforms, pixel/simulation conversion and the affine
// view matrix handed to renderers.
package geom

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector. Z is used for draw order, never for physics.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }
func (v Vec3) WithXY(p Vec2) Vec3 { return Vec3{p.X, p.Y, v.Z} }

// ToPixels converts a simulation-space position into scene (pixel) space:
// pixel = sim*scale - offset, per axis.
func ToPixels(sim Vec2, scale float64, offset Vec2) Vec2 {
	return Vec2{
		X: sim.X*scale - offset.X,
		Y: sim.Y*scale - offset.Y,
	}
}

// ToSimulation is the inverse of ToPixels. scale must be non-zero.
func ToSimulation(pixel Vec2, scale float64, offset Vec2) Vec2 {
	return Vec2{
		X: (pixel.X + offset.X) / scale,
		Y: (pixel.Y + offset.Y) / scale,
	}
}
