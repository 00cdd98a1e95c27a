// Package layout places the siblings of a level on a deterministic spiral
package layout

import (
	"math"

	"github.com/johndoe6345789/3dfsnav/tree"
	"github.com/johndoe6345789/3dfsnav/vmath"
)

// AngleStep is the angular increment between consecutive siblings in radians
const AngleStep = 0.72

// Inner and outer fractions of the radius for the first and last sibling
const (
	innerFraction  = 0.35
	spreadFraction = 0.65
)

// Variant selects the plane the spiral is laid on
type Variant uint8

const (
	// VariantFloor lays the spiral on the y=0 floor plane
	VariantFloor Variant = iota
	// VariantDepth lays the spiral in the xy plane receding along -z
	VariantDepth
)

func (v Variant) String() string {
	switch v {
	case VariantFloor:
		return "floor"
	case VariantDepth:
		return "depth"
	}
	return "unknown"
}

// ParseVariant maps a config string to a Variant
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "floor", "":
		return VariantFloor, true
	case "depth":
		return VariantDepth, true
	}
	return VariantFloor, false
}

// Params configures placement
type Params struct {
	Radius  float64
	Step    float64
	Variant Variant
}

// DefaultParams matches the floor-plane demo scene
func DefaultParams() Params {
	return Params{Radius: 3.5, Step: 0.2, Variant: VariantFloor}
}

// Placed is a node with its position for the current level
type Placed struct {
	Node tree.Node
	Pos  vmath.Vec3F
}

// Angle returns the spiral angle of sibling i
func Angle(i int) float64 {
	return float64(i) * AngleStep
}

// RadialDistance returns the distance from the spiral center of sibling i out of n
func RadialDistance(i, n int, radius float64) float64 {
	return radius * (innerFraction + spreadFraction*(float64(i)/float64(max(1, n-1))))
}

// Spiral returns n positions, a pure function of (i, n)
func Spiral(n int, radius, step float64, v Variant) []vmath.Vec3F {
	if n <= 0 {
		return []vmath.Vec3F{}
	}

	pts := make([]vmath.Vec3F, n)
	for i := 0; i < n; i++ {
		a := Angle(i)
		r := RadialDistance(i, n, radius)
		switch v {
		case VariantDepth:
			pts[i] = vmath.Vec3F{X: math.Cos(a) * r, Y: math.Sin(a) * r, Z: -float64(i) * step}
		default:
			pts[i] = vmath.Vec3F{X: math.Cos(a) * r, Y: 0, Z: math.Sin(a) * r}
		}
	}
	return pts
}

// Place assigns spiral positions to the level's nodes in order
func Place(nodes []tree.Node, p Params) []Placed {
	pos := Spiral(len(nodes), p.Radius, p.Step, p.Variant)
	out := make([]Placed, len(nodes))
	for i, n := range nodes {
		out[i] = Placed{Node: n, Pos: pos[i]}
	}
	return out
}
