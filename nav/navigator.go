// Package nav implements the interaction and navigation state machine
package nav

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/johndoe6345789/3dfsnav/anim"
	"github.com/johndoe6345789/3dfsnav/camera"
	"github.com/johndoe6345789/3dfsnav/engine"
	"github.com/johndoe6345789/3dfsnav/layout"
	"github.com/johndoe6345789/3dfsnav/pick"
	"github.com/johndoe6345789/3dfsnav/tree"
)

// State is the interaction state
type State uint8

const (
	StateIdle State = iota
	StateDragging
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateLocked:
		return "locked"
	}
	return "unknown"
}

// Transition is the reason the navigator is locked
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionFlyTo
	TransitionDrillDown
	TransitionDrillOut
)

func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case TransitionFlyTo:
		return "fly-to"
	case TransitionDrillDown:
		return "drill-down"
	case TransitionDrillOut:
		return "drill-out"
	}
	return "unknown"
}

// NodeState is the animated presentation state of one node
type NodeState struct {
	Scale      float64
	Opacity    float64
	HoverScale float64
	Selected   bool
}

// Animation property keys
const (
	keyYaw   = "camera.yaw"
	keyPitch = "camera.pitch"
	keyDist  = "camera.distance"
	keyFade  = "level.fade"
	keyNode  = "node."
)

// Deferred task keys
const (
	taskClick      = "click"
	taskTransition = "transition"
	taskAppear     = "appear."
)

type press struct {
	active         bool
	startX, startY float64
	lastX, lastY   float64
}

type pointer struct {
	known bool
	x, y  float64
}

type click struct {
	valid   bool
	at      time.Time
	path    string
	gesture uint64
}

// Navigator owns the level, camera, animations and interaction state
// All methods must be called from a single goroutine
type Navigator struct {
	opts     Options
	src      tree.Source
	pending  tree.Source
	clock    engine.Clock
	log      logrus.FieldLogger
	listener Listener

	cam      *camera.Camera
	sched    *anim.Scheduler
	deferred *anim.Deferred

	path   string
	placed []layout.Placed
	states []NodeState
	fade   float64

	viewport pick.Viewport
	proj     *pick.Projector
	points   []pick.ScreenPoint

	state       State
	lock        Transition
	lockGesture uint64

	press     press
	pointer   pointer
	hovered   int
	selected  string
	gesture   uint64
	lastClick click
	lastTick  time.Time
}

// New creates a navigator showing opts.Start
// Nil collaborators are replaced by an empty tree, the wall clock, a silent logger and a NopListener
func New(src tree.Source, opts Options, clock engine.Clock, log logrus.FieldLogger, listener Listener) *Navigator {
	if src == nil {
		src = tree.NewMemFS()
	}
	if clock == nil {
		clock = engine.NewTimeProvider()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if listener == nil {
		listener = NopListener{}
	}

	n := &Navigator{
		opts:     opts,
		src:      src,
		clock:    clock,
		log:      log,
		listener: listener,
		cam:      camera.New(opts.Home, opts.Limits, opts.VerticalOffset),
		sched:    anim.NewScheduler(),
		deferred: anim.NewDeferred(),
		path:     tree.Clean(opts.Start),
		fade:     1,
		viewport: opts.Viewport,
		hovered:  -1,
	}

	now := clock.Now()
	n.lastTick = now
	n.materialize(now)
	n.project()
	n.log.WithFields(logrus.Fields{"path": n.path, "nodes": len(n.placed)}).Info("navigator started")
	return n
}

// Path returns the path of the current level
func (n *Navigator) Path() string { return n.path }

// State returns the interaction state
func (n *Navigator) State() State { return n.state }

// Transition returns the running locked transition, TransitionNone when unlocked
func (n *Navigator) Transition() Transition { return n.lock }

// Pose returns a copy of the live camera pose
func (n *Navigator) Pose() camera.Pose { return n.cam.Pose }

// Level returns the nodes of the current level in layout order
func (n *Navigator) Level() []tree.Node {
	out := make([]tree.Node, len(n.placed))
	for i, p := range n.placed {
		out[i] = p.Node
	}
	return out
}

// NodeState returns the presentation state of the node at level index i
func (n *Navigator) NodeState(i int) (NodeState, bool) {
	if i < 0 || i >= len(n.states) {
		return NodeState{}, false
	}
	return n.states[i], true
}

// Hovered returns the node under the pointer
func (n *Navigator) Hovered() (tree.Node, bool) {
	if n.hovered < 0 || n.hovered >= len(n.placed) {
		return tree.Node{}, false
	}
	return n.placed[n.hovered].Node, true
}

// Selected returns the selected node of the current level
func (n *Navigator) Selected() (tree.Node, bool) {
	i := n.indexOf(n.selected)
	if i < 0 {
		return tree.Node{}, false
	}
	return n.placed[i].Node, true
}

// Resize sets the viewport size in pixels
func (n *Navigator) Resize(w, h float64) {
	if w <= 0 || h <= 0 || (w == n.viewport.W && h == n.viewport.H) {
		return
	}
	n.viewport = pick.Viewport{W: w, H: h}
	n.project()
}

// SetSource swaps the hierarchy collaborator
// The swap is applied now when unlocked, otherwise when the running transition ends
func (n *Navigator) SetSource(src tree.Source) {
	if src == nil {
		return
	}
	if n.state == StateLocked {
		n.pending = src
		n.log.Debug("source swap deferred until transition ends")
		return
	}
	n.src = src
	n.reload(n.clock.Now())
}

// Tick advances deferred tasks, animations and hover smoothing, then re-projects the level
func (n *Navigator) Tick(now time.Time) {
	dt := now.Sub(n.lastTick)
	n.lastTick = now

	n.deferred.Advance(now)
	n.sched.Update(now)
	n.smoothHover(dt)
	n.project()
	n.refreshHover()
}

// GoUp drills out to the parent level
func (n *Navigator) GoUp() {
	if n.state == StateLocked {
		n.reject("go-up while " + n.lock.String())
		return
	}
	if n.path == tree.Root {
		return
	}
	n.drillOut(n.clock.Now())
}

// Open opens the selected node, or the hovered one when nothing is selected
func (n *Navigator) Open() {
	i := n.indexOf(n.selected)
	if i < 0 {
		i = n.hovered
	}
	if i < 0 || i >= len(n.placed) {
		return
	}
	n.open(n.clock.Now(), n.placed[i].Node)
}

// ClearSelection drops the selection and any pending click action
func (n *Navigator) ClearSelection() {
	n.deferred.Cancel(taskClick)
	n.lastClick = click{}
	n.selected = ""
}

// ZoomBy animates the camera distance by delta, accumulating onto a running zoom
func (n *Navigator) ZoomBy(delta float64) {
	if delta == 0 {
		return
	}
	base := n.cam.Pose.Distance
	if to, ok := n.sched.Target(keyDist); ok {
		base = to
	}
	to := n.cam.ClampDistance(base + delta)
	n.sched.Tween(keyDist, n.clock.Now(), n.cam.Pose.Distance, to, n.opts.Zoom, anim.EaseOut, n.cam.SetDistance)
}

// OrbitBy animates yaw and pitch by the given deltas
func (n *Navigator) OrbitBy(dyaw, dpitch float64) {
	now := n.clock.Now()
	if dyaw != 0 {
		base := n.cam.Pose.Yaw
		if to, ok := n.sched.Target(keyYaw); ok {
			base = to
		}
		n.sched.Tween(keyYaw, now, n.cam.Pose.Yaw, base+dyaw, n.opts.Orbit, anim.EaseOut, n.cam.SetYaw)
	}
	if dpitch != 0 {
		base := n.cam.Pose.Pitch
		if to, ok := n.sched.Target(keyPitch); ok {
			base = to
		}
		to := n.cam.ClampPitch(base + dpitch)
		n.sched.Tween(keyPitch, now, n.cam.Pose.Pitch, to, n.opts.Orbit, anim.EaseOut, n.cam.SetPitch)
	}
}

// open drills into a directory or reports a file
func (n *Navigator) open(now time.Time, node tree.Node) {
	if n.state == StateLocked {
		n.reject("open while " + n.lock.String())
		return
	}
	switch node.Kind {
	case tree.KindDirectory:
		n.drillDown(now, node)
	case tree.KindFile:
		n.log.WithFields(logrus.Fields{"path": node.Path, "kind": node.Kind.String()}).Info("file opened")
		n.listener.FileOpened(node)
	}
}

func (n *Navigator) reject(reason string) {
	n.log.WithField("reason", reason).Debug("command rejected")
	n.listener.CommandRejected(reason)
}

// materialize lists the current path and schedules the staggered appearance
func (n *Navigator) materialize(now time.Time) {
	nodes := tree.Materialize(n.src, n.path, n.opts.ChildLimit)
	n.placed = layout.Place(nodes, n.opts.Layout)
	n.states = make([]NodeState, len(n.placed))
	n.points = n.points[:0]
	n.hovered = -1

	states := n.states
	for i := range states {
		states[i].HoverScale = 1
		idx := i
		n.deferred.After(fmt.Sprintf("%s%d", taskAppear, i), now, time.Duration(i)*n.opts.Stagger, func(at time.Time) {
			prefix := fmt.Sprintf("%s%d.", keyNode, idx)
			n.sched.Tween(prefix+"scale", at, 0, 1, n.opts.Appear, n.opts.AppearEase, func(v float64) { states[idx].Scale = v })
			n.sched.Tween(prefix+"opacity", at, 0, 1, n.opts.Appear, anim.EaseOut, func(v float64) { states[idx].Opacity = v })
		})
	}
}

// reload re-materializes the current path from the source, keeping the camera
func (n *Navigator) reload(now time.Time) {
	n.sched.CancelPrefix(keyNode)
	n.deferred.CancelPrefix(taskAppear)
	n.deferred.Cancel(taskClick)
	n.lastClick = click{}

	n.materialize(now)
	if n.indexOf(n.selected) < 0 {
		n.selected = ""
	}
	n.project()
	n.log.WithFields(logrus.Fields{"path": n.path, "nodes": len(n.placed)}).Info("level reloaded")
}

func (n *Navigator) indexOf(path string) int {
	if path == "" {
		return -1
	}
	for i, p := range n.placed {
		if p.Node.Path == path {
			return i
		}
	}
	return -1
}

func (n *Navigator) pickable(i int) bool {
	return n.states[i].Opacity*n.fade >= n.opts.PickOpacity
}

func (n *Navigator) project() {
	n.proj = pick.NewProjector(n.cam, n.viewport, n.opts.PickMode, n.opts.Tolerance)
	n.points = n.proj.ProjectLevel(n.placed, n.pickable)
}

// hitAt returns the level index under viewport-local pixel coordinates, -1 for none
func (n *Navigator) hitAt(x, y float64) int {
	if n.proj == nil {
		return -1
	}
	px, py := n.proj.Pointer(x, y)
	sp, ok := pick.HitTest(px, py, n.points)
	if !ok {
		return -1
	}
	return sp.Index
}

func (n *Navigator) refreshHover() {
	if n.state == StateDragging {
		return
	}
	if !n.pointer.known {
		n.hovered = -1
		return
	}
	n.hovered = n.hitAt(n.pointer.x, n.pointer.y)
}

func (n *Navigator) smoothHover(dt time.Duration) {
	factor := n.opts.HoverFactor
	if n.opts.HoverMode == HoverTime {
		ref := n.opts.HoverRefTick
		if ref <= 0 {
			ref = time.Second / 60
		}
		if dt <= 0 {
			factor = 0
		} else {
			factor = 1 - math.Pow(1-factor, float64(dt)/float64(ref))
		}
	}

	for i := range n.states {
		target := 1.0
		if i == n.hovered {
			target = n.opts.HoverLift
		}
		st := &n.states[i]
		st.HoverScale += (target - st.HoverScale) * factor
		st.Selected = n.placed[i].Node.Path == n.selected
	}
}
