package outline

import "math"

// Transform is a 2D affine transformation in row-major 2x3 form:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Translate creates a translation.
func Translate(x, y float64) Transform {
	return Transform{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling about the origin.
func Scale(x, y float64) Transform {
	return Transform{A: x, E: y}
}

// Skew creates a shear: x' = x + sx*y, y' = y + sy*x.
func Skew(sx, sy float64) Transform {
	return Transform{A: 1, B: sx, D: sy, E: 1}
}

// Multiply returns m * other, the transform that applies other first.
func (m Transform) Multiply(other Transform) Transform {
	return Transform{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Then returns the transform that applies m first and next second.
func (m Transform) Then(next Transform) Transform {
	return next.Multiply(m)
}

// TransformPoint applies the transformation to a point.
func (m Transform) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Invert returns the inverse transform.
// Returns the identity if the matrix is singular.
func (m Transform) Invert() Transform {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return Identity()
	}

	inv := 1.0 / det
	return Transform{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity returns true if m is exactly the identity.
func (m Transform) IsIdentity() bool {
	return m == Identity()
}
