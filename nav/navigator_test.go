package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndoe6345789/3dfsnav/camera"
	"github.com/johndoe6345789/3dfsnav/engine"
	"github.com/johndoe6345789/3dfsnav/pick"
	"github.com/johndoe6345789/3dfsnav/tree"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

var viewport = Rect{W: 800, H: 600}

type recorder struct {
	opened   []tree.Node
	started  []Transition
	rejected []string
}

func (r *recorder) FileOpened(n tree.Node)         { r.opened = append(r.opened, n) }
func (r *recorder) TransitionStarted(t Transition) { r.started = append(r.started, t) }
func (r *recorder) CommandRejected(reason string)  { r.rejected = append(r.rejected, reason) }

func newNav(t *testing.T, start string, tweak ...func(*Options)) (*Navigator, *engine.MockTimeProvider, *recorder) {
	t.Helper()
	opts := DefaultOptions()
	opts.Start = start
	for _, fn := range tweak {
		fn(&opts)
	}
	clock := engine.NewMockTimeProvider(t0)
	rec := &recorder{}
	return New(tree.Demo(), opts, clock, nil, rec), clock, rec
}

// run ticks the navigator in 10ms frames for d
func run(n *Navigator, c *engine.MockTimeProvider, d time.Duration) {
	const frame = 10 * time.Millisecond
	for d > 0 {
		s := frame
		if d < s {
			s = d
		}
		n.Tick(c.Advance(s))
		d -= s
	}
}

func itemOf(t *testing.T, n *Navigator, name string) Item {
	t.Helper()
	for _, it := range n.Frame().Items {
		if it.Node.Name == name && it.Visible {
			return it
		}
	}
	t.Fatalf("node %q not visible in frame", name)
	return Item{}
}

func clickAt(n *Navigator, x, y float64) {
	n.Pointer(PointerEvent{Kind: PointerDown, X: x, Y: y, Rect: viewport})
	n.Pointer(PointerEvent{Kind: PointerUp, X: x, Y: y, Rect: viewport})
}

func names(nodes []tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestNewMaterializesStartLevel(t *testing.T) {
	n, _, _ := newNav(t, "/")
	assert.Equal(t, "/", n.Path())
	assert.Equal(t, StateIdle, n.State())
	assert.Equal(t, []string{"home", "usr", "etc", "var", "tmp", "opt", "bin", "lib"}, names(n.Level()))
	assert.Equal(t, camera.DefaultPose(), n.Pose())
}

func TestStaggeredAppearance(t *testing.T) {
	n, c, _ := newNav(t, "/")

	run(n, c, 10*time.Millisecond)
	last, ok := n.NodeState(7)
	require.True(t, ok)
	assert.Zero(t, last.Scale)
	assert.Zero(t, last.Opacity)
	f := n.Frame()
	assert.Len(t, f.Items, 8)
	assert.Empty(t, f.Order, "nodes are not drawn before they fade in")

	run(n, c, time.Second)
	for i := range n.Level() {
		st, _ := n.NodeState(i)
		assert.Equal(t, 1.0, st.Scale)
		assert.Equal(t, 1.0, st.Opacity)
	}
	assert.Len(t, n.Frame().Order, 8)
}

func TestMissingPathIsEmptyLevel(t *testing.T) {
	n, c, _ := newNav(t, "/nope")
	run(n, c, 100*time.Millisecond)
	assert.Empty(t, n.Level())
	assert.Equal(t, "/nope", n.Path())
	assert.Contains(t, n.Status(), "/nope")
}

func TestDoubleClickDrillsDown(t *testing.T) {
	n, c, rec := newNav(t, "/")
	run(n, c, time.Second)

	home := itemOf(t, n, "home")
	clickAt(n, home.X, home.Y)
	run(n, c, 100*time.Millisecond)
	clickAt(n, home.X, home.Y)

	assert.Equal(t, StateLocked, n.State())
	assert.Equal(t, TransitionDrillDown, n.Transition())
	assert.Equal(t, "/", n.Path())
	assert.False(t, n.deferred.Pending(taskClick))

	run(n, c, 700*time.Millisecond)
	assert.Equal(t, "/home", n.Path())
	assert.Equal(t, StateIdle, n.State())
	assert.Equal(t, []string{"user", "guest", "admin"}, names(n.Level()))
	assert.Equal(t, camera.DefaultPose(), n.Pose())
	assert.Equal(t, []Transition{TransitionDrillDown}, rec.started)

	_, selected := n.Selected()
	assert.False(t, selected, "selection is cleared on level change")
}

func TestSingleClickSelectsAndFlies(t *testing.T) {
	n, c, rec := newNav(t, "/")
	run(n, c, time.Second)

	home := itemOf(t, n, "home")
	clickAt(n, home.X, home.Y)

	run(n, c, 290*time.Millisecond)
	_, ok := n.Selected()
	assert.False(t, ok)
	assert.Equal(t, StateIdle, n.State())

	run(n, c, 10*time.Millisecond)
	sel, ok := n.Selected()
	require.True(t, ok)
	assert.Equal(t, "/home", sel.Path)
	assert.Equal(t, TransitionFlyTo, n.Transition())

	run(n, c, 700*time.Millisecond)
	assert.Equal(t, StateIdle, n.State())
	assert.Equal(t, "/", n.Path())
	assert.InDelta(t, 3.0, n.Pose().Distance, 1e-9)
	assert.InDelta(t, 0.45, n.Pose().Pitch, 1e-9)
	assert.Equal(t, []Transition{TransitionFlyTo}, rec.started)
	assertCentered(t, n, "home")

	n.Pointer(PointerEvent{Kind: PointerLeave, Rect: viewport})
	assert.Equal(t, "SELECTED  dir: /home", n.Hint())
}

// assertCentered checks the node sits on the vertical center line, inside the viewport
func assertCentered(t *testing.T, n *Navigator, name string) {
	t.Helper()
	it := itemOf(t, n, name)
	vp := n.Frame().Viewport
	assert.InDelta(t, vp.W/2, it.X, 1, "%s x", name)
	assert.GreaterOrEqual(t, it.Y, 0.0, "%s y", name)
	assert.LessOrEqual(t, it.Y, vp.H, "%s y", name)
}

func TestFlyToKeepsOuterNodeOnScreen(t *testing.T) {
	tests := []struct {
		name string
		mode pick.Mode
	}{
		{"lib", pick.ModePixel},
		{"bin", pick.ModePixel},
		{"lib", pick.ModeNDC},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.mode.String(), func(t *testing.T) {
			n, c, _ := newNav(t, "/", func(o *Options) { o.PickMode = tt.mode })
			run(n, c, time.Second)

			it := itemOf(t, n, tt.name)
			clickAt(n, it.X, it.Y)
			run(n, c, 2*time.Second)

			sel, ok := n.Selected()
			require.True(t, ok)
			require.Equal(t, "/"+tt.name, sel.Path)
			assert.Equal(t, StateIdle, n.State())
			assert.Less(t, n.Pose().Distance, camera.DefaultPose().Distance)
			assertCentered(t, n, tt.name)
		})
	}
}

func TestDoubleClickAbortsFlyToOfSameGesture(t *testing.T) {
	n, c, rec := newNav(t, "/")
	run(n, c, time.Second)

	home := itemOf(t, n, "home")
	clickAt(n, home.X, home.Y)
	run(n, c, 300*time.Millisecond)
	require.Equal(t, TransitionFlyTo, n.Transition())

	home = itemOf(t, n, "home")
	clickAt(n, home.X, home.Y)
	assert.Equal(t, TransitionDrillDown, n.Transition())

	run(n, c, 700*time.Millisecond)
	assert.Equal(t, "/home", n.Path())
	assert.Equal(t, []Transition{TransitionFlyTo, TransitionDrillDown}, rec.started)
}

func TestCommandsWhileLockedKeepPath(t *testing.T) {
	n, c, rec := newNav(t, "/")
	run(n, c, time.Second)

	home := itemOf(t, n, "home")
	clickAt(n, home.X, home.Y)
	clickAt(n, home.X, home.Y)
	require.Equal(t, StateLocked, n.State())

	n.Key(KeyGoUp)
	n.Key(KeyOpen)
	assert.Equal(t, "/", n.Path())
	assert.Equal(t, TransitionDrillDown, n.Transition())
	assert.Len(t, rec.rejected, 2)

	run(n, c, 50*time.Millisecond)
	usr := itemOf(t, n, "usr")
	clickAt(n, usr.X, usr.Y)
	assert.False(t, n.deferred.Pending(taskClick), "clicks while locked are not queued")

	run(n, c, 700*time.Millisecond)
	assert.Equal(t, "/home", n.Path())
	assert.Equal(t, []Transition{TransitionDrillDown}, rec.started)
}

func TestGoUpAtRootIsNoop(t *testing.T) {
	n, c, rec := newNav(t, "/")
	n.Key(KeyGoUp)
	n.Key(KeyGoUp)
	assert.Equal(t, StateIdle, n.State())
	run(n, c, time.Second)
	assert.Equal(t, "/", n.Path())
	assert.Empty(t, rec.started)
	assert.Empty(t, rec.rejected)
}

func TestGoUpDrillsOut(t *testing.T) {
	n, c, rec := newNav(t, "/home/user")
	run(n, c, time.Second)

	n.Key(KeyGoUp)
	assert.Equal(t, TransitionDrillOut, n.Transition())
	run(n, c, 400*time.Millisecond)
	assert.Equal(t, "/home/user", n.Path())
	assert.Greater(t, n.Pose().Distance, camera.DefaultPose().Distance)

	run(n, c, 200*time.Millisecond)
	assert.Equal(t, "/home", n.Path())
	assert.Equal(t, StateIdle, n.State())
	assert.Equal(t, camera.DefaultPose(), n.Pose())
	assert.Equal(t, []Transition{TransitionDrillOut}, rec.started)
}

func TestOpenFileNotifiesWithoutNavigating(t *testing.T) {
	n, c, rec := newNav(t, "/home/user")
	run(n, c, time.Second)

	cfg := itemOf(t, n, "config.txt")
	clickAt(n, cfg.X, cfg.Y)
	clickAt(n, cfg.X, cfg.Y)

	require.Len(t, rec.opened, 1)
	assert.Equal(t, "/home/user/config.txt", rec.opened[0].Path)
	assert.Equal(t, tree.KindFile, rec.opened[0].Kind)
	assert.Equal(t, "/home/user", n.Path())
	assert.Equal(t, StateIdle, n.State())
	assert.Empty(t, rec.started)
}

func TestKeyOpenUsesHoveredNode(t *testing.T) {
	n, c, _ := newNav(t, "/")
	run(n, c, time.Second)

	etc := itemOf(t, n, "etc")
	n.Pointer(PointerEvent{Kind: PointerMove, X: etc.X, Y: etc.Y, Rect: viewport})
	hovered, ok := n.Hovered()
	require.True(t, ok)
	assert.Equal(t, "/etc", hovered.Path)
	assert.Equal(t, "dir: /etc", n.Hint())

	n.Key(KeyOpen)
	assert.Equal(t, TransitionDrillDown, n.Transition())
	run(n, c, 700*time.Millisecond)
	assert.Equal(t, "/etc", n.Path())
}

func TestCancelClearsSelectionAndPendingClick(t *testing.T) {
	n, c, _ := newNav(t, "/")
	run(n, c, time.Second)

	home := itemOf(t, n, "home")
	clickAt(n, home.X, home.Y)
	require.True(t, n.deferred.Pending(taskClick))

	n.Key(KeyCancel)
	assert.False(t, n.deferred.Pending(taskClick))
	run(n, c, 400*time.Millisecond)
	_, ok := n.Selected()
	assert.False(t, ok)
	assert.Equal(t, StateIdle, n.State())
}

func TestDragRotatesCamera(t *testing.T) {
	n, _, _ := newNav(t, "/")

	n.Pointer(PointerEvent{Kind: PointerDown, X: 100, Y: 100, Rect: viewport})
	assert.Equal(t, StateDragging, n.State())
	n.Pointer(PointerEvent{Kind: PointerMove, X: 150, Y: 120, Rect: viewport})
	assert.InDelta(t, 0.3+50*0.008, n.Pose().Yaw, 1e-12)
	assert.InDelta(t, 0.6+20*0.006, n.Pose().Pitch, 1e-12)

	n.Pointer(PointerEvent{Kind: PointerMove, X: 150, Y: 5000, Rect: viewport})
	assert.Equal(t, 1.4, n.Pose().Pitch)

	n.Pointer(PointerEvent{Kind: PointerUp, X: 150, Y: 5000, Rect: viewport})
	assert.Equal(t, StateIdle, n.State())
	assert.False(t, n.deferred.Pending(taskClick), "a drag is not a click")
}

func TestDragSkipsAnimatedProperty(t *testing.T) {
	n, _, _ := newNav(t, "/")
	n.Key(KeyOrbitRight)

	n.Pointer(PointerEvent{Kind: PointerDown, X: 100, Y: 100, Rect: viewport})
	n.Pointer(PointerEvent{Kind: PointerMove, X: 150, Y: 120, Rect: viewport})
	assert.Equal(t, 0.3, n.Pose().Yaw)
	assert.InDelta(t, 0.6+20*0.006, n.Pose().Pitch, 1e-12)
}

func TestZoomAnimatesAndAccumulates(t *testing.T) {
	n, c, _ := newNav(t, "/")

	n.Wheel(1)
	assert.Equal(t, 6.0, n.Pose().Distance, "zoom is not an instant jump")
	run(n, c, 100*time.Millisecond)
	mid := n.Pose().Distance
	assert.Less(t, mid, 6.0)
	assert.Greater(t, mid, 5.5)

	n.Wheel(1)
	run(n, c, 250*time.Millisecond)
	assert.Equal(t, 5.0, n.Pose().Distance)

	n.Key(KeyZoomOut)
	run(n, c, 250*time.Millisecond)
	assert.InDelta(t, 5.4, n.Pose().Distance, 1e-9)
}

func TestZoomClamps(t *testing.T) {
	n, c, _ := newNav(t, "/")
	for i := 0; i < 40; i++ {
		n.Wheel(3)
	}
	run(n, c, 300*time.Millisecond)
	assert.Equal(t, 2.5, n.Pose().Distance)

	for i := 0; i < 60; i++ {
		n.Wheel(-1)
	}
	run(n, c, 300*time.Millisecond)
	assert.Equal(t, 20.0, n.Pose().Distance)
}

func TestHoverSmoothing(t *testing.T) {
	tests := []struct {
		name  string
		mode  HoverMode
		frame func(o Options) time.Duration
		want  float64
	}{
		{"frame", HoverFrame, func(o Options) time.Duration { return 40 * time.Millisecond }, 1 + 0.25*0.15},
		{"time", HoverTime, func(o Options) time.Duration { return 2 * o.HoverRefTick }, 1 + 0.25*(1-0.85*0.85)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, c, _ := newNav(t, "/", func(o *Options) { o.HoverMode = tt.mode })
			run(n, c, time.Second)

			usr := itemOf(t, n, "usr")
			n.Pointer(PointerEvent{Kind: PointerMove, X: usr.X, Y: usr.Y, Rect: viewport})
			i := usr.Point.Index
			before, _ := n.NodeState(i)
			require.Equal(t, 1.0, before.HoverScale)

			n.Tick(c.Advance(tt.frame(n.opts)))
			after, _ := n.NodeState(i)
			assert.InDelta(t, tt.want, after.HoverScale, 1e-9)
		})
	}
}

func TestPointerLeaveClearsHover(t *testing.T) {
	n, c, _ := newNav(t, "/")
	run(n, c, time.Second)

	usr := itemOf(t, n, "usr")
	n.Pointer(PointerEvent{Kind: PointerMove, X: usr.X, Y: usr.Y, Rect: viewport})
	_, ok := n.Hovered()
	require.True(t, ok)

	n.Pointer(PointerEvent{Kind: PointerLeave, Rect: viewport})
	run(n, c, 20*time.Millisecond)
	_, ok = n.Hovered()
	assert.False(t, ok)
	assert.Empty(t, n.Hint())
}

func TestStatusLine(t *testing.T) {
	n, _, _ := newNav(t, "/home/user")
	status := n.Status()
	assert.Contains(t, status, "/home/user   |   ")
	assert.Contains(t, status, "Drag=rotate")
	assert.Contains(t, status, "Click=select")
	assert.Contains(t, status, "DblClick=enter")
}

func TestSetSourceDeferredWhileLocked(t *testing.T) {
	n, c, _ := newNav(t, "/home")
	run(n, c, time.Second)

	n.Key(KeyGoUp)
	require.Equal(t, StateLocked, n.State())

	next := tree.NewMemFS()
	next.AddDir("/", "alpha", "beta")
	n.SetSource(next)
	assert.Len(t, n.Level(), 3, "level is kept until the transition ends")

	run(n, c, 600*time.Millisecond)
	assert.Equal(t, "/", n.Path())
	assert.Equal(t, []string{"alpha", "beta"}, names(n.Level()))
}

func TestSetSourceReloadsWhenIdle(t *testing.T) {
	n, c, _ := newNav(t, "/")
	run(n, c, time.Second)

	next := tree.NewMemFS()
	next.AddDir("/", "only")
	n.SetSource(next)
	assert.Equal(t, []string{"only"}, names(n.Level()))
	assert.Equal(t, StateIdle, n.State())
}

func TestNDCModeClickDrillsDown(t *testing.T) {
	n, c, _ := newNav(t, "/", func(o *Options) { o.PickMode = pick.ModeNDC })
	run(n, c, time.Second)

	usr := itemOf(t, n, "usr")
	clickAt(n, usr.X, usr.Y)
	clickAt(n, usr.X, usr.Y)
	run(n, c, 700*time.Millisecond)
	assert.Equal(t, "/usr", n.Path())
}

func TestFrameIsFarToNear(t *testing.T) {
	n, c, _ := newNav(t, "/")
	run(n, c, time.Second)

	f := n.Frame()
	require.Len(t, f.Order, len(f.Items))
	for i := 1; i < len(f.Order); i++ {
		assert.GreaterOrEqual(t, f.Items[f.Order[i-1]].Point.Depth, f.Items[f.Order[i]].Point.Depth)
	}
}

func TestFrameItemsFollowLevelOrder(t *testing.T) {
	n, c, _ := newNav(t, "/")
	run(n, c, 40*time.Millisecond)

	f := n.Frame()
	level := n.Level()
	require.Len(t, f.Items, len(level))
	for i, it := range f.Items {
		assert.Equal(t, level[i], it.Node)
		st, _ := n.NodeState(i)
		assert.Equal(t, st, it.State)
	}

	// Later nodes are still invisible while the stagger runs
	assert.Less(t, len(f.Order), len(f.Items))
	for _, i := range f.Order {
		assert.True(t, f.Items[i].Visible)
	}
	assert.False(t, f.Items[7].Visible)
}
