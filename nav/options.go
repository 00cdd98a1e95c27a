package nav

import (
	"time"

	"github.com/johndoe6345789/3dfsnav/anim"
	"github.com/johndoe6345789/3dfsnav/camera"
	"github.com/johndoe6345789/3dfsnav/layout"
	"github.com/johndoe6345789/3dfsnav/pick"
	"github.com/johndoe6345789/3dfsnav/tree"
)

// Legend is the control help appended to the status line
const Legend = "Drag=rotate  Click=select  DblClick=enter  Enter=open  Backspace=up  Wheel=zoom  Esc=clear  Q=quit"

// HoverMode selects how hover scale smoothing relates to time
type HoverMode uint8

const (
	// HoverFrame applies the smoothing factor once per tick
	HoverFrame HoverMode = iota
	// HoverTime scales the factor by elapsed time against HoverReference
	HoverTime
)

func (m HoverMode) String() string {
	switch m {
	case HoverFrame:
		return "frame"
	case HoverTime:
		return "time"
	}
	return "unknown"
}

// ParseHoverMode maps a config string to a HoverMode
func ParseHoverMode(s string) (HoverMode, bool) {
	switch s {
	case "frame", "":
		return HoverFrame, true
	case "time":
		return HoverTime, true
	}
	return HoverFrame, false
}

// Options configures a Navigator
type Options struct {
	Start      string
	ChildLimit int
	Layout     layout.Params

	Home           camera.Pose
	Limits         camera.Limits
	VerticalOffset float64

	Viewport  pick.Viewport
	PickMode  pick.Mode
	Tolerance pick.Tolerance

	DragYawGain   float64 // radians per pixel
	DragPitchGain float64
	ClickSlop     float64 // pixels a press may travel and still count as a click

	DoubleClick time.Duration
	FlyTo       time.Duration
	DrillDown   time.Duration
	DrillOut    time.Duration
	Appear      time.Duration
	Stagger     time.Duration
	Zoom        time.Duration
	Orbit       time.Duration
	AppearEase  anim.Easing // scale easing of materializing nodes

	WheelStep   float64
	KeyZoomStep float64
	OrbitStep   float64

	FlyApproach  float64 // closest camera distance when flying to a node
	FlyPitch     float64
	DrillSpin    float64 // extra yaw applied while drilling down
	PullBack     float64 // distance added while drilling out
	Rise         float64 // pitch added while drilling out
	PickOpacity  float64 // nodes fainter than this are not pickable
	HoverLift    float64 // hover scale target of the hovered node
	HoverFactor  float64
	HoverMode    HoverMode
	HoverRefTick time.Duration

	StatusMax int
	HintMax   int
}

// DefaultOptions returns the standard navigator tuning
func DefaultOptions() Options {
	return Options{
		Start:      tree.Root,
		ChildLimit: 140,
		Layout:     layout.DefaultParams(),

		Home:           camera.DefaultPose(),
		Limits:         camera.DefaultLimits(),
		VerticalOffset: 1.5,

		Viewport:  pick.Viewport{W: 800, H: 600},
		PickMode:  pick.ModePixel,
		Tolerance: pick.DefaultTolerance(),

		DragYawGain:   0.008,
		DragPitchGain: 0.006,
		ClickSlop:     4,

		DoubleClick: 300 * time.Millisecond,
		FlyTo:       600 * time.Millisecond,
		DrillDown:   600 * time.Millisecond,
		DrillOut:    500 * time.Millisecond,
		Appear:      450 * time.Millisecond,
		Stagger:     30 * time.Millisecond,
		Zoom:        250 * time.Millisecond,
		Orbit:       200 * time.Millisecond,
		AppearEase:  anim.EaseOutElastic,

		WheelStep:   0.5,
		KeyZoomStep: 0.4,
		OrbitStep:   0.2,

		FlyApproach:  3.0,
		FlyPitch:     0.45,
		DrillSpin:    0.8,
		PullBack:     6.0,
		Rise:         0.5,
		PickOpacity:  0.05,
		HoverLift:    1.25,
		HoverFactor:  0.15,
		HoverMode:    HoverFrame,
		HoverRefTick: time.Second / 60,

		StatusMax: 52,
		HintMax:   120,
	}
}
