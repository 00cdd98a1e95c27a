package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndoe6345789/3dfsnav/tree"
	"github.com/johndoe6345789/3dfsnav/vmath"
)

const eps = 1e-9

func nodes(names ...string) []tree.Node {
	out := make([]tree.Node, len(names))
	for i, n := range names {
		out[i] = tree.Node{Path: tree.Join("/", n), Name: n, ParentPath: "/"}
	}
	return out
}

func TestSpiralEdgeCases(t *testing.T) {
	assert.Empty(t, Spiral(0, 3.5, 0.2, VariantFloor))

	one := Spiral(1, 3.5, 0.2, VariantFloor)
	require.Len(t, one, 1)
	assert.InDelta(t, 3.5*0.35, one[0].X, eps)
	assert.InDelta(t, 0, one[0].Z, eps)
}

func TestRootScenario(t *testing.T) {
	const radius = 3.5
	placed := Place(nodes("home", "usr", "etc", "var", "tmp", "opt", "bin", "lib"), Params{Radius: radius, Step: 0.2})
	require.Len(t, placed, 8)

	first := placed[0].Pos
	assert.InDelta(t, radius*0.35, first.X, eps)
	assert.InDelta(t, 0, first.Y, eps)
	assert.InDelta(t, 0, first.Z, eps)

	last := placed[7].Pos
	assert.InDelta(t, 5.04, Angle(7), eps)
	assert.InDelta(t, radius, vmath.V3FLenXZ(last), eps)
	assert.InDelta(t, math.Cos(5.04)*radius, last.X, eps)
	assert.InDelta(t, math.Sin(5.04)*radius, last.Z, eps)
}

func TestLayoutDeterministicAcrossNames(t *testing.T) {
	for _, v := range []Variant{VariantFloor, VariantDepth} {
		a := Place(nodes("a", "b", "c", "d", "e"), Params{Radius: 3, Step: 0.25, Variant: v})
		b := Place(nodes("zz", "yy", "xx", "ww", "vv"), Params{Radius: 3, Step: 0.25, Variant: v})
		for i := range a {
			assert.Equal(t, a[i].Pos, b[i].Pos, "variant %s index %d", v, i)
		}
	}
}

func TestRadialDistanceMonotonic(t *testing.T) {
	for n := 2; n <= 50; n++ {
		prev := -1.0
		for i := 0; i < n; i++ {
			r := RadialDistance(i, n, 3.5)
			assert.GreaterOrEqual(t, r, prev, "n=%d i=%d", n, i)
			prev = r
		}
		assert.InDelta(t, 3.5, prev, eps)
	}
}

func TestDepthVariant(t *testing.T) {
	pts := Spiral(4, 2, 0.25, VariantDepth)
	for i, p := range pts {
		assert.InDelta(t, -float64(i)*0.25, p.Z, eps)
		r := math.Hypot(p.X, p.Y)
		assert.InDelta(t, RadialDistance(i, 4, 2), r, eps)
	}
}

func TestParseVariant(t *testing.T) {
	v, ok := ParseVariant("depth")
	assert.True(t, ok)
	assert.Equal(t, VariantDepth, v)

	_, ok = ParseVariant("helix")
	assert.False(t, ok)
}
