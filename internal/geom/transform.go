package geom

import "math"

// Transform places one entity in scene space.
type Transform struct {
	Position Vec3
	Rotation float64 // radians
	Scale    Vec2
}

// NewTransform returns a transform at pos with the given rotation and scale.
// A zero scale is replaced by (1, 1).
func NewTransform(pos Vec3, rotation float64, scale Vec2) Transform {
	if scale == (Vec2{}) {
		scale = Vec2{1, 1}
	}
	return Transform{Position: pos, Rotation: rotation, Scale: scale}
}

// At is shorthand for an unrotated, unscaled transform at (x, y, z).
func At(x, y, z float64) Transform {
	return NewTransform(Vec3{x, y, z}, 0, Vec2{1, 1})
}

// QuarterTurns quantizes the rotation to the nearest multiple of 90 degrees,
// returned in [0, 3].
func (t Transform) QuarterTurns() int {
	q := int(math.Round(t.Rotation/(math.Pi/2))) % 4
	if q < 0 {
		q += 4
	}
	return q
}
