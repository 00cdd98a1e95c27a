package nav

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/johndoe6345789/3dfsnav/vmath"
)

// PointerKind is the phase of a pointer event
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

// Rect is the viewport bounding rectangle in the pointer's coordinate space
type Rect struct {
	Left, Top, W, H float64
}

// PointerEvent is a primary button pointer sample
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
	Rect Rect
}

// Key is a keyboard command
type Key uint8

const (
	KeyGoUp Key = iota
	KeyOpen
	KeyZoomIn
	KeyZoomOut
	KeyCancel
	KeyOrbitLeft
	KeyOrbitRight
	KeyOrbitUp
	KeyOrbitDown
)

func (k Key) String() string {
	switch k {
	case KeyGoUp:
		return "go-up"
	case KeyOpen:
		return "open"
	case KeyZoomIn:
		return "zoom-in"
	case KeyZoomOut:
		return "zoom-out"
	case KeyCancel:
		return "cancel"
	case KeyOrbitLeft:
		return "orbit-left"
	case KeyOrbitRight:
		return "orbit-right"
	case KeyOrbitUp:
		return "orbit-up"
	case KeyOrbitDown:
		return "orbit-down"
	}
	return "unknown"
}

// Key applies a keyboard command
func (n *Navigator) Key(k Key) {
	switch k {
	case KeyGoUp:
		n.GoUp()
	case KeyOpen:
		n.Open()
	case KeyZoomIn:
		n.ZoomBy(-n.opts.KeyZoomStep)
	case KeyZoomOut:
		n.ZoomBy(n.opts.KeyZoomStep)
	case KeyCancel:
		n.ClearSelection()
	case KeyOrbitLeft:
		n.OrbitBy(-n.opts.OrbitStep, 0)
	case KeyOrbitRight:
		n.OrbitBy(n.opts.OrbitStep, 0)
	case KeyOrbitUp:
		n.OrbitBy(0, n.opts.OrbitStep)
	case KeyOrbitDown:
		n.OrbitBy(0, -n.opts.OrbitStep)
	}
}

// Wheel zooms by one step per event, positive delta moves closer
func (n *Navigator) Wheel(delta float64) {
	if delta == 0 {
		return
	}
	n.ZoomBy(-n.opts.WheelStep * vmath.Sign(delta))
}

// Pointer applies a pointer event
func (n *Navigator) Pointer(ev PointerEvent) {
	n.Resize(ev.Rect.W, ev.Rect.H)
	x, y := ev.X-ev.Rect.Left, ev.Y-ev.Rect.Top

	switch ev.Kind {
	case PointerDown:
		n.pointerDown(x, y)
	case PointerMove:
		n.pointerMove(x, y)
	case PointerUp:
		n.pointerUp(n.clock.Now(), x, y)
	case PointerLeave:
		n.pointer = pointer{}
		if n.state != StateDragging {
			n.hovered = -1
		}
	}
}

func (n *Navigator) pointerDown(x, y float64) {
	n.pointer = pointer{known: true, x: x, y: y}
	n.press = press{active: true, startX: x, startY: y, lastX: x, lastY: y}
	if n.state == StateIdle {
		n.state = StateDragging
	}
}

func (n *Navigator) pointerMove(x, y float64) {
	n.pointer = pointer{known: true, x: x, y: y}

	if n.state != StateDragging || !n.press.active {
		n.hovered = n.hitAt(x, y)
		return
	}

	dx, dy := x-n.press.lastX, y-n.press.lastY
	n.press.lastX, n.press.lastY = x, y

	// Animated properties own their value until the animation ends
	if dx != 0 && !n.sched.Active(keyYaw) {
		n.cam.SetYaw(n.cam.Pose.Yaw + dx*n.opts.DragYawGain)
	}
	if dy != 0 && !n.sched.Active(keyPitch) {
		n.cam.SetPitch(n.cam.Pose.Pitch + dy*n.opts.DragPitchGain)
	}
}

func (n *Navigator) pointerUp(now time.Time, x, y float64) {
	n.pointer = pointer{known: true, x: x, y: y}
	if !n.press.active {
		return
	}
	p := n.press
	n.press = press{}
	if n.state == StateDragging {
		n.state = StateIdle
	}

	if math.Hypot(x-p.startX, y-p.startY) > n.opts.ClickSlop {
		return
	}
	n.click(now, x, y)
}

// click resolves single and double clicks
// A second click on the same node inside the window wins over the pending single click action,
// including a fly-to that action already started
func (n *Navigator) click(now time.Time, x, y float64) {
	i := n.hitAt(x, y)
	if i < 0 {
		n.lastClick = click{}
		return
	}
	node := n.placed[i].Node

	if lc := n.lastClick; lc.valid && lc.path == node.Path && now.Sub(lc.at) <= n.opts.DoubleClick {
		n.lastClick = click{}
		n.deferred.Cancel(taskClick)
		if n.state == StateLocked {
			if n.lock != TransitionFlyTo || n.lockGesture != lc.gesture {
				return
			}
			n.abortFlyTo()
		}
		n.open(now, node)
		return
	}

	if n.state == StateLocked {
		return
	}

	n.gesture++
	g := n.gesture
	n.lastClick = click{valid: true, at: now, path: node.Path, gesture: g}
	n.deferred.After(taskClick, now, n.opts.DoubleClick, func(at time.Time) {
		n.selectAndFly(at, node.Path, g)
	})
	n.log.WithFields(logrus.Fields{"path": node.Path, "gesture": g}).Debug("click")
}
