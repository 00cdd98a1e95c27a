// Package camera implements the orbiting camera around the scene origin
package camera

import (
	"math"

	"github.com/johndoe6345789/3dfsnav/vmath"
)

// Clip planes of the perspective projection
const (
	Near = 0.1
	Far  = 100.0
)

// Pose is the animatable camera state
type Pose struct {
	Yaw      float64 // radians around +Y
	Pitch    float64 // radians above the floor plane
	Distance float64 // distance from the origin
	FOV      float64 // vertical field of view in degrees
}

// DefaultPose is the pose used at startup and after every level change
func DefaultPose() Pose {
	return Pose{Yaw: 0.3, Pitch: 0.6, Distance: 6.0, FOV: 45.0}
}

// Limits bound the user controllable parameters
type Limits struct {
	PitchMin, PitchMax float64
	DistMin, DistMax   float64
}

// DefaultLimits returns the standard clamp ranges
func DefaultLimits() Limits {
	return Limits{PitchMin: -1.4, PitchMax: 1.4, DistMin: 2.5, DistMax: 20.0}
}

// Eye returns the camera position orbiting the origin, lifted by offset
func (p Pose) Eye(offset float64) vmath.Vec3F {
	cp := math.Cos(p.Pitch)
	return vmath.Vec3F{
		X: math.Sin(p.Yaw) * cp * p.Distance,
		Y: math.Sin(p.Pitch)*p.Distance + offset,
		Z: math.Cos(p.Yaw) * cp * p.Distance,
	}
}

// Camera holds the live pose, its limits and the reset pose
// It always looks at the origin with +Y up
type Camera struct {
	Pose           Pose
	Home           Pose
	Limits         Limits
	VerticalOffset float64
}

// New creates a camera at home, clamped into limits
func New(home Pose, limits Limits, verticalOffset float64) *Camera {
	c := &Camera{
		Home:           home,
		Limits:         limits,
		VerticalOffset: verticalOffset,
	}
	c.Reset()
	return c
}

// Default creates a camera with the standard pose, limits and a 1.5 eye lift
func Default() *Camera {
	return New(DefaultPose(), DefaultLimits(), 1.5)
}

// Reset returns to the home pose
func (c *Camera) Reset() {
	c.Pose.FOV = c.Home.FOV
	c.SetOrbit(c.Home.Yaw, c.Home.Pitch, c.Home.Distance)
}

// SetOrbit sets yaw, pitch and distance, silently clamping pitch and distance
func (c *Camera) SetOrbit(yaw, pitch, distance float64) {
	c.Pose.Yaw = yaw
	c.SetPitch(pitch)
	c.SetDistance(distance)
}

// SetYaw sets the yaw, unbounded
func (c *Camera) SetYaw(yaw float64) {
	c.Pose.Yaw = yaw
}

// SetPitch sets the pitch clamped to limits
func (c *Camera) SetPitch(pitch float64) {
	c.Pose.Pitch = c.ClampPitch(pitch)
}

// SetDistance sets the distance clamped to limits
func (c *Camera) SetDistance(distance float64) {
	c.Pose.Distance = c.ClampDistance(distance)
}

// SetFOV sets the field of view in degrees, kept within (1, 179)
func (c *Camera) SetFOV(fov float64) {
	c.Pose.FOV = vmath.Clamp(fov, 1, 179)
}

// Rotate applies yaw and pitch deltas
func (c *Camera) Rotate(dyaw, dpitch float64) {
	c.SetOrbit(c.Pose.Yaw+dyaw, c.Pose.Pitch+dpitch, c.Pose.Distance)
}

// Zoom adds delta to the distance
func (c *Camera) Zoom(delta float64) {
	c.SetDistance(c.Pose.Distance + delta)
}

// ClampPitch restricts a pitch to limits
func (c *Camera) ClampPitch(p float64) float64 {
	return vmath.Clamp(p, c.Limits.PitchMin, c.Limits.PitchMax)
}

// ClampDistance restricts a distance to limits
func (c *Camera) ClampDistance(d float64) float64 {
	return vmath.Clamp(d, c.Limits.DistMin, c.Limits.DistMax)
}

// Eye returns the world position of the camera
func (c *Camera) Eye() vmath.Vec3F {
	return c.Pose.Eye(c.VerticalOffset)
}

// View returns the look-at matrix towards the origin
func (c *Camera) View() vmath.Mat4 {
	return vmath.LookAt(c.Eye(), vmath.Vec3F{}, vmath.AxisY)
}

// Projection returns the perspective matrix for the given aspect ratio
func (c *Camera) Projection(aspect float64) vmath.Mat4 {
	return vmath.Perspective(c.Pose.FOV, aspect, Near, Far)
}

// Fly-to framing: the target may sit this share of the half vertical field of view off axis
const (
	flyMargin = 0.7
	flyStep   = 0.25
)

// FlyToPose returns the pose that looks through the origin at target from approach away, at the given pitch
// The distance grows from approach until target lies within the framing margin or the distance limit is hit
// Yaw is chosen on the shortest arc from the current yaw
func (c *Camera) FlyToPose(target vmath.Vec3F, approach, pitch float64) Pose {
	yaw := c.Pose.Yaw
	if vmath.V3FLenXZ(target) > vmath.NormalizeEpsilon {
		yaw = vmath.WrapAngleNear(math.Atan2(-target.X, -target.Z), c.Pose.Yaw)
	}
	p := Pose{
		Yaw:      yaw,
		Pitch:    c.ClampPitch(pitch),
		Distance: c.ClampDistance(approach),
		FOV:      c.Pose.FOV,
	}

	limit := flyMargin * vmath.DegToRad(p.FOV) / 2
	for p.Distance < c.Limits.DistMax && c.OffAxis(p, target) > limit {
		p.Distance = math.Min(p.Distance+flyStep, c.Limits.DistMax)
	}
	return p
}

// OffAxis returns the angle in radians between the view direction of p and the ray from its eye to target
func (c *Camera) OffAxis(p Pose, target vmath.Vec3F) float64 {
	eye := p.Eye(c.VerticalOffset)
	fwd := vmath.V3FNormalizeOr(vmath.V3FScale(eye, -1), vmath.Vec3F{Z: -1})
	to := vmath.V3FNormalizeOr(vmath.V3FSub(target, eye), fwd)
	return math.Acos(vmath.Clamp(vmath.V3FDot(fwd, to), -1, 1))
}
