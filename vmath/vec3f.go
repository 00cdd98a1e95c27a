package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector
type Vec3F struct {
	X, Y, Z float64
}

// Axis constants used as normalize fallbacks
var (
	AxisX = Vec3F{1, 0, 0}
	AxisY = Vec3F{0, 1, 0}
	AxisZ = Vec3F{0, 0, 1}
)

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FNormalize returns the unit vector of v, or +Z when v is degenerate
func V3FNormalize(v Vec3F) Vec3F {
	return V3FNormalizeOr(v, AxisZ)
}

// V3FNormalizeOr returns the unit vector of v, or fallback when |v| is below NormalizeEpsilon
func V3FNormalizeOr(v Vec3F, fallback Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag <= NormalizeEpsilon || math.IsNaN(mag) {
		return fallback
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLenXZ returns the length of the projection onto the floor plane
func V3FLenXZ(v Vec3F) float64 {
	return math.Hypot(v.X, v.Z)
}
