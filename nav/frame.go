package nav

import (
	"github.com/johndoe6345789/3dfsnav/camera"
	"github.com/johndoe6345789/3dfsnav/pick"
	"github.com/johndoe6345789/3dfsnav/tree"
	"github.com/johndoe6345789/3dfsnav/vmath"
)

const statusSeparator = "   |   "

// Item is one node of the level with its animated state and, when visible, its projection
type Item struct {
	Node  tree.Node
	Pos   vmath.Vec3F
	State NodeState

	// Visible nodes are in front of the camera and opaque enough to pick
	Visible bool
	Point   pick.ScreenPoint

	// Viewport pixel placement regardless of the pick mode
	X, Y, Radius float64

	Opacity  float64 // node opacity times the level fade
	Hovered  bool
	Selected bool
}

// Frame is a read-only snapshot handed to the presentation adapter
type Frame struct {
	View     vmath.Mat4
	Proj     vmath.Mat4
	Viewport pick.Viewport
	Mode     pick.Mode
	Pose     camera.Pose

	Path  string
	Items []Item // level order
	Order []int  // indices of visible Items, far to near

	Hovered  string
	Selected string
	Status   string
	Hint     string

	State      State
	Transition Transition
}

// Frame builds the snapshot of the last tick
func (n *Navigator) Frame() Frame {
	f := Frame{
		Viewport:   n.viewport,
		Mode:       n.opts.PickMode,
		Pose:       n.cam.Pose,
		Path:       n.path,
		Selected:   n.selected,
		Status:     n.Status(),
		Hint:       n.Hint(),
		State:      n.state,
		Transition: n.lock,
	}
	if h, ok := n.Hovered(); ok {
		f.Hovered = h.Path
	}
	f.Items = make([]Item, len(n.placed))
	for i, pl := range n.placed {
		st := n.states[i]
		f.Items[i] = Item{
			Node:     pl.Node,
			Pos:      pl.Pos,
			State:    st,
			Opacity:  st.Opacity * n.fade,
			Hovered:  i == n.hovered,
			Selected: pl.Node.Path == n.selected,
		}
	}
	if n.proj == nil {
		return f
	}
	f.View = n.proj.View
	f.Proj = n.proj.Proj

	for _, o := range pick.DepthOrder(n.points) {
		sp := n.points[o]
		it := &f.Items[sp.Index]
		it.Visible = true
		it.Point = sp
		it.X, it.Y, it.Radius = n.proj.PixelPoint(sp, it.Node.Kind)
		f.Order = append(f.Order, sp.Index)
	}
	return f
}

// Status returns the current path followed by the control legend
func (n *Navigator) Status() string {
	return tree.ShortPath(n.path, n.opts.StatusMax) + statusSeparator + Legend
}

// Hint describes the hovered node, falling back to the selected one
func (n *Navigator) Hint() string {
	node, ok := n.Hovered()
	if !ok {
		node, ok = n.Selected()
	}
	if !ok {
		return ""
	}

	desc := node.Kind.String() + ": " + tree.ShortPath(node.Path, n.opts.HintMax)
	if node.Path == n.selected {
		return "SELECTED  " + desc
	}
	return desc
}
