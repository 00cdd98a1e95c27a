package vmath

import "math"

// NormalizeEpsilon is the minimum vector length treated as non-degenerate
const NormalizeEpsilon = 1e-5

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates linearly between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Sign returns -1, 0 or 1
func Sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// WrapAngleNear returns the angle equivalent to target (mod 2π) closest to ref
// Used to animate rotations along the shortest arc
func WrapAngleNear(target, ref float64) float64 {
	d := math.Mod(target-ref, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return ref + d
}
