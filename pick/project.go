// Package pick projects placed nodes to screen space and resolves the node under the pointer
package pick

import (
	"math"
	"sort"

	"github.com/johndoe6345789/3dfsnav/camera"
	"github.com/johndoe6345789/3dfsnav/layout"
	"github.com/johndoe6345789/3dfsnav/tree"
	"github.com/johndoe6345789/3dfsnav/vmath"
)

// Mode selects the screen space of projected points
type Mode uint8

const (
	// ModeNDC reports normalized device coordinates in [-1, 1] with a fixed pick tolerance
	ModeNDC Mode = iota
	// ModePixel reports viewport pixels with a depth dependent pick radius
	ModePixel
)

func (m Mode) String() string {
	switch m {
	case ModeNDC:
		return "ndc"
	case ModePixel:
		return "pixel"
	}
	return "unknown"
}

// ParseMode maps a config string to a Mode
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "ndc":
		return ModeNDC, true
	case "pixel", "":
		return ModePixel, true
	}
	return ModePixel, false
}

// Viewport is the drawable area in pixels
type Viewport struct {
	W, H float64
}

// Aspect returns width over height, 1 for an empty viewport
func (v Viewport) Aspect() float64 {
	if v.W <= 0 || v.H <= 0 {
		return 1
	}
	return v.W / v.H
}

// Tolerance configures pick radii
type Tolerance struct {
	NDCEpsilon float64 // fixed radius in NDC mode

	DirBase  float64 // pixel radius of a directory at RefDepth
	FileBase float64 // pixel radius of a file at RefDepth
	RefDepth float64
	MinDepth float64 // depth clamp applied before the falloff
	MaxDepth float64
	MinR     float64 // final radius clamp
	MaxR     float64
}

// DefaultTolerance returns the standard pick radii
func DefaultTolerance() Tolerance {
	return Tolerance{
		NDCEpsilon: 0.15,
		DirBase:    45,
		FileBase:   35,
		RefDepth:   2.8,
		MinDepth:   0.3,
		MaxDepth:   40,
		MinR:       15,
		MaxR:       80,
	}
}

// PixelRadius returns the perspective falloff radius for a node at depth
func (t Tolerance) PixelRadius(depth float64, kind tree.Kind) float64 {
	var base float64
	switch kind {
	case tree.KindDirectory:
		base = t.DirBase
	case tree.KindFile:
		base = t.FileBase
	}
	d := vmath.Clamp(depth, t.MinDepth, t.MaxDepth)
	return vmath.Clamp(base*(t.RefDepth/d), t.MinR, t.MaxR)
}

// ScreenPoint is the per-frame projection of one placed node
type ScreenPoint struct {
	X, Y   float64
	Depth  float64 // positive distance in front of the camera
	Radius float64 // pick tolerance in the same space as X, Y
	Index  int     // position of the node in the level
}

// Projector maps world positions through a fixed view and projection
type Projector struct {
	View      vmath.Mat4
	Proj      vmath.Mat4
	Viewport  Viewport
	Mode      Mode
	Tolerance Tolerance
}

// NewProjector builds a projector for the camera's current pose
func NewProjector(cam *camera.Camera, vp Viewport, mode Mode, tol Tolerance) *Projector {
	return &Projector{
		View:      cam.View(),
		Proj:      cam.Projection(vp.Aspect()),
		Viewport:  vp,
		Mode:      mode,
		Tolerance: tol,
	}
}

// Project returns the screen point of pos, false when it lies behind the near plane
func (p *Projector) Project(pos vmath.Vec3F, kind tree.Kind) (ScreenPoint, bool) {
	v := p.View.TransformPoint(pos)
	depth := -v.Z
	if depth <= camera.Near || math.IsNaN(depth) {
		return ScreenPoint{}, false
	}

	c := p.Proj.MulVec4(v)
	if c.W <= 0 {
		return ScreenPoint{}, false
	}
	nx, ny := c.X/c.W, c.Y/c.W

	switch p.Mode {
	case ModeNDC:
		return ScreenPoint{X: nx, Y: ny, Depth: depth, Radius: p.Tolerance.NDCEpsilon}, true
	default:
		return ScreenPoint{
			X:      (nx + 1) / 2 * p.Viewport.W,
			Y:      (1 - ny) / 2 * p.Viewport.H,
			Depth:  depth,
			Radius: p.Tolerance.PixelRadius(depth, kind),
		}, true
	}
}

// ProjectLevel projects every node accepted by visible, keeping level order
// A nil visible accepts every node
func (p *Projector) ProjectLevel(placed []layout.Placed, visible func(i int) bool) []ScreenPoint {
	pts := make([]ScreenPoint, 0, len(placed))
	for i, pl := range placed {
		if visible != nil && !visible(i) {
			continue
		}
		sp, ok := p.Project(pl.Pos, pl.Node.Kind)
		if !ok {
			continue
		}
		sp.Index = i
		pts = append(pts, sp)
	}
	return pts
}

// PixelPoint returns sp in viewport pixels with its draw radius in pixels
func (p *Projector) PixelPoint(sp ScreenPoint, kind tree.Kind) (x, y, r float64) {
	r = p.Tolerance.PixelRadius(sp.Depth, kind)
	if p.Mode != ModeNDC {
		return sp.X, sp.Y, r
	}
	return (sp.X + 1) / 2 * p.Viewport.W, (1 - sp.Y) / 2 * p.Viewport.H, r
}

// Pointer converts viewport-local pixel coordinates into the projector's screen space
func (p *Projector) Pointer(x, y float64) (float64, float64) {
	if p.Mode != ModeNDC {
		return x, y
	}
	return ToNDC(x, y, p.Viewport)
}

// ToNDC converts viewport-local pixel coordinates to normalized device coordinates
func ToNDC(x, y float64, vp Viewport) (float64, float64) {
	if vp.W <= 0 || vp.H <= 0 {
		return 0, 0
	}
	return x/vp.W*2 - 1, -(y/vp.H)*2 + 1
}

// HitTest returns the point nearest to (x, y) strictly within its radius
// Ties keep the first point in enumeration order
func HitTest(x, y float64, pts []ScreenPoint) (ScreenPoint, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, sp := range pts {
		d := math.Hypot(sp.X-x, sp.Y-y)
		if d < sp.Radius && d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return ScreenPoint{}, false
	}
	return pts[best], true
}

// DepthOrder returns indices into pts sorted far to near for painter's drawing
func DepthOrder(pts []ScreenPoint) []int {
	order := make([]int, len(pts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pts[order[a]].Depth > pts[order[b]].Depth
	})
	return order
}
