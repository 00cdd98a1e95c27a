package vmath

import "math"

// Mat4 is a 4x4 matrix in column-major order, element (row r, col c) at index c*4+r
type Mat4 [16]float64

// Vec4 is a homogeneous coordinate
type Vec4 struct {
	X, Y, Z, W float64
}

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective builds a right-handed perspective projection mapping view depth [near, far] to NDC z [-1, 1]
func Perspective(fovDeg, aspect, near, far float64) Mat4 {
	if aspect <= 0 || math.IsNaN(aspect) {
		aspect = 1
	}
	f := 1.0 / math.Tan(DegToRad(fovDeg)/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// LookAt builds a right-handed view matrix from eye towards target
// Degenerate directions fall back to stable axes instead of producing NaN
func LookAt(eye, target, up Vec3F) Mat4 {
	z := V3FNormalizeOr(V3FSub(eye, target), AxisZ)
	x := V3FNormalizeOr(V3FCross(up, z), AxisX)
	y := V3FCross(z, x)

	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-V3FDot(x, eye), -V3FDot(y, eye), -V3FDot(z, eye), 1,
	}
}

// Translation builds a translation matrix
func Translation(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scaling builds a scale matrix
func Scaling(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a*b, so that b is applied first when transforming a point
func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[k*4+r] * b[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// MulVec4 transforms a homogeneous vector
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// TransformPoint transforms a point (w = 1)
func (m Mat4) TransformPoint(p Vec3F) Vec4 {
	return m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
}
