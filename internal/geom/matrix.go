package geom

// Mat3 is a row-major 3x3 affine matrix acting on column vectors (x, y, 1).
// Only the top two rows carry information for 2D affine transforms.
type Mat3 [9]float64

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Mat3 {
	return Mat3{
		1, 0, tx,
		0, 1, ty,
		0, 0, 1,
	}
}

// Scaling returns a scale by (sx, sy).
func Scaling(sx, sy float64) Mat3 {
	return Mat3{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

// Mul returns m*o, i.e. o is applied first.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m[row*3+k] * o[k*3+col]
			}
			r[row*3+col] = sum
		}
	}
	return r
}

// Apply transforms point p.
func (m Mat3) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}
