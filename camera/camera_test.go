package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johndoe6345789/3dfsnav/vmath"
)

const eps = 1e-9

func TestSetOrbitClamps(t *testing.T) {
	c := Default()
	c.SetOrbit(1, 5, 100)
	assert.Equal(t, 1.0, c.Pose.Yaw)
	assert.Equal(t, 1.4, c.Pose.Pitch)
	assert.Equal(t, 20.0, c.Pose.Distance)

	c.SetOrbit(-1, -5, 0)
	assert.Equal(t, -1.4, c.Pose.Pitch)
	assert.Equal(t, 2.5, c.Pose.Distance)
}

func TestClampHoldsUnderRandomDeltas(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		c.Rotate(rng.Float64()*2-1, (rng.Float64()*2-1)*0.8)
		c.Zoom((rng.Float64()*2 - 1) * 3)
		assert.GreaterOrEqual(t, c.Pose.Pitch, -1.4)
		assert.LessOrEqual(t, c.Pose.Pitch, 1.4)
		assert.GreaterOrEqual(t, c.Pose.Distance, 2.5)
		assert.LessOrEqual(t, c.Pose.Distance, 20.0)
	}
}

func TestEyeOrbit(t *testing.T) {
	p := Pose{Yaw: 0, Pitch: 0, Distance: 5}
	eye := p.Eye(1.5)
	assert.InDelta(t, 0, eye.X, eps)
	assert.InDelta(t, 1.5, eye.Y, eps)
	assert.InDelta(t, 5, eye.Z, eps)

	p = Pose{Yaw: math.Pi / 2, Pitch: 0, Distance: 4}
	eye = p.Eye(0)
	assert.InDelta(t, 4, eye.X, eps)
	assert.InDelta(t, 0, eye.Z, eps)
}

func TestViewCentersOrigin(t *testing.T) {
	c := Default()
	v := c.View().TransformPoint(vmath.Vec3F{})
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9)
	assert.InDelta(t, -vmath.V3FMag(c.Eye()), v.Z, 1e-9)
}

func TestViewStraightDownIsFinite(t *testing.T) {
	c := New(Pose{Pitch: math.Pi / 2, Distance: 5, FOV: 45}, Limits{PitchMin: -2, PitchMax: 2, DistMin: 1, DistMax: 10}, 0)
	for _, x := range c.View() {
		assert.False(t, math.IsNaN(x))
	}
}

func TestResetRestoresHome(t *testing.T) {
	c := Default()
	c.Rotate(2, 0.5)
	c.Zoom(5)
	c.Reset()
	assert.Equal(t, DefaultPose(), c.Pose)
}

func TestFlyToPoseFacesTarget(t *testing.T) {
	c := Default()
	target := vmath.Vec3F{X: 2, Z: 0}
	p := c.FlyToPose(target, 3, 0.45)

	// Eye on the far side of the origin, looking through it at the target
	assert.InDelta(t, 3*math.Pi/2, math.Mod(p.Yaw+2*math.Pi, 2*math.Pi), eps)
	assert.InDelta(t, 3, p.Distance, eps)
	assert.InDelta(t, 0.45, p.Pitch, eps)
	assert.LessOrEqual(t, math.Abs(p.Yaw-c.Pose.Yaw), math.Pi)
	assert.Less(t, p.Eye(c.VerticalOffset).X, 0.0)
}

func TestFlyToPoseKeepsTargetFramed(t *testing.T) {
	c := Default()
	limit := flyMargin * vmath.DegToRad(c.Pose.FOV) / 2
	home := DefaultPose()

	for i := 0; i < 16; i++ {
		a := float64(i) * 0.72
		target := vmath.Vec3F{X: math.Cos(a) * 3.5, Z: math.Sin(a) * 3.5}
		p := c.FlyToPose(target, 3, 0.45)

		assert.LessOrEqual(t, c.OffAxis(p, target), limit+eps, "angle %.2f", a)
		assert.Less(t, p.Distance, c.Limits.DistMax, "angle %.2f", a)
		assert.Less(t, p.Distance, home.Distance, "angle %.2f", a)
	}
}

func TestOffAxis(t *testing.T) {
	c := Default()
	assert.InDelta(t, 0, c.OffAxis(c.Pose, vmath.Vec3F{}), eps)

	// A point on the view ray beyond the origin is on axis
	eye := c.Eye()
	beyond := vmath.V3FScale(eye, -0.5)
	assert.InDelta(t, 0, c.OffAxis(c.Pose, beyond), 1e-7)
	assert.Greater(t, c.OffAxis(c.Pose, vmath.Vec3F{Y: 5}), 0.1)
}

func TestFlyToPoseOriginKeepsYaw(t *testing.T) {
	c := Default()
	p := c.FlyToPose(vmath.Vec3F{}, 0.1, 0.45)
	assert.Equal(t, c.Pose.Yaw, p.Yaw)
	assert.Equal(t, 2.5, p.Distance)
}
