// Package render draws navigator frames onto a tcell screen
package render

import (
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/johndoe6345789/3dfsnav/nav"
	"github.com/johndoe6345789/3dfsnav/pick"
	"github.com/johndoe6345789/3dfsnav/tree"
	"github.com/johndoe6345789/3dfsnav/vmath"
)

// Header texts
const (
	HeaderLeft  = "FSN / Jurassic Mode"
	HeaderRight = "IT'S A UNIX SYSTEM"
)

// tileCenter offsets a tile corner to its center, just under the node plane
var tileCenter = vmath.Vec3F{X: 0.5, Y: -0.01, Z: 0.5}

const (
	floorHalf    = 10 // tiles from the origin to the floor edge
	gridSamples  = 4  // samples per tile along each grid line
	discScale    = 0.5
	hoverBright  = 1.5
	labelMaxCols = 18
)

// Options configures drawing
type Options struct {
	CellW, CellH float64 // virtual pixels per cell
	Grid         bool
	Labels       bool
	Toast        time.Duration
}

// Renderer draws frames, it only reads navigator state
type Renderer struct {
	pal  *Palette
	opts Options

	toast      string
	toastUntil time.Time
	toastLast  time.Time
}

// New creates a renderer with an injected palette
func New(pal *Palette, opts Options) *Renderer {
	if pal == nil {
		pal = DefaultPalette()
	}
	if opts.CellW <= 0 {
		opts.CellW = 8
	}
	if opts.CellH <= 0 {
		opts.CellH = 16
	}
	if opts.Toast <= 0 {
		opts.Toast = 2 * time.Second
	}
	return &Renderer{pal: pal, opts: opts}
}

// ShowToast displays msg for the configured duration starting at now
func (r *Renderer) ShowToast(msg string, now time.Time) {
	r.toast = msg
	r.toastUntil = now.Add(r.opts.Toast)
}

// Toast returns the toast visible at now
func (r *Renderer) Toast(now time.Time) (string, bool) {
	if r.toast == "" || !now.Before(r.toastUntil) {
		return "", false
	}
	return r.toast, true
}

func (r *Renderer) style(fg colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(ToTcell(fg)).Background(ToTcell(r.pal.Background))
}

// Draw renders f at time now
func (r *Renderer) Draw(s tcell.Screen, f nav.Frame, now time.Time) {
	cols, rows := s.Size()
	bg := r.style(r.pal.FG)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			s.SetContent(x, y, ' ', nil, bg)
		}
	}

	proj := &pick.Projector{
		View:      f.View,
		Proj:      f.Proj,
		Viewport:  f.Viewport,
		Mode:      pick.ModePixel,
		Tolerance: pick.DefaultTolerance(),
	}
	if r.opts.Grid && f.Viewport.W > 0 {
		r.drawFloor(s, proj)
	}

	for _, i := range f.Order {
		r.drawNode(s, f.Items[i])
	}
	if r.opts.Labels {
		for _, i := range f.Order {
			r.drawLabel(s, f.Items[i])
		}
	}

	r.drawHUD(s, f, cols, rows)

	if msg, ok := r.Toast(now); ok {
		msg = runewidth.Truncate(msg, cols, "…")
		x := (cols - runewidth.StringWidth(msg)) / 2
		drawString(s, x, 2, msg, r.style(r.pal.Warn))
	}
}

func (r *Renderer) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / r.opts.CellW)), int(math.Floor(y / r.opts.CellH))
}

// drawFloor samples the checkered floor at tile centers and along the grid lines
func (r *Renderer) drawFloor(s tcell.Screen, proj *pick.Projector) {
	for x := -floorHalf; x < floorHalf; x++ {
		for z := -floorHalf; z < floorHalf; z++ {
			c := r.pal.FloorBlue
			if (x+z)%2 == 0 {
				c = r.pal.FloorRed
			}
			p := vmath.V3FAdd(vmath.Vec3F{X: float64(x), Z: float64(z)}, tileCenter)
			if sp, ok := proj.Project(p, tree.KindFile); ok {
				cx, cy := r.cellOf(sp.X, sp.Y)
				s.SetContent(cx, cy, '▪', nil, r.style(Shade(c, depthShade(sp.Depth))))
			}
		}
	}

	grid := r.style(r.pal.GridLine)
	step := 1.0 / gridSamples
	for i := -floorHalf; i <= floorHalf; i++ {
		for t := float64(-floorHalf); t <= floorHalf; t += step {
			for _, p := range [2]vmath.Vec3F{{X: t, Z: float64(i)}, {X: float64(i), Z: t}} {
				if sp, ok := proj.Project(p, tree.KindFile); ok {
					cx, cy := r.cellOf(sp.X, sp.Y)
					s.SetContent(cx, cy, '·', nil, grid)
				}
			}
		}
	}
}

// depthShade darkens distant floor samples
func depthShade(depth float64) float64 {
	return vmath.Clamp((depth-4)/30, 0, 0.8)
}

func (r *Renderer) nodeColor(it nav.Item) colorful.Color {
	c := r.pal.NodeColor(it.Node)
	if it.Hovered {
		c = Brighten(c, hoverBright)
	}
	return r.pal.Fade(c, it.Opacity)
}

// drawNode fills a disc sized by the pick radius, scale and hover scale
func (r *Renderer) drawNode(s tcell.Screen, it nav.Item) {
	rad := it.Radius * discScale * math.Max(it.State.Scale, 0) * it.State.HoverScale
	if rad <= 0 {
		return
	}
	fill := r.style(r.nodeColor(it))
	ring := r.style(r.pal.Fade(r.pal.Warn, it.Opacity))

	c0, r0 := r.cellOf(it.X-rad, it.Y-rad)
	c1, r1 := r.cellOf(it.X+rad, it.Y+rad)
	for cy := r0; cy <= r1; cy++ {
		for cx := c0; cx <= c1; cx++ {
			px := (float64(cx) + 0.5) * r.opts.CellW
			py := (float64(cy) + 0.5) * r.opts.CellH
			d := math.Hypot(px-it.X, py-it.Y)
			switch {
			case d > rad:
			case it.Selected && d > rad-r.opts.CellW:
				s.SetContent(cx, cy, '█', nil, ring)
			default:
				s.SetContent(cx, cy, '█', nil, fill)
			}
		}
	}

	// Always mark the center so tiny discs stay visible
	cx, cy := r.cellOf(it.X, it.Y)
	if it.Selected {
		s.SetContent(cx, cy, '█', nil, ring)
	} else {
		s.SetContent(cx, cy, '█', nil, fill)
	}
}

func (r *Renderer) drawLabel(s tcell.Screen, it nav.Item) {
	if it.Opacity <= 0 {
		return
	}
	label := runewidth.Truncate(it.Node.Name, labelMaxCols, "…")
	rad := it.Radius * discScale * math.Max(it.State.Scale, 0) * it.State.HoverScale
	cx, cy := r.cellOf(it.X, it.Y+rad)
	x := cx - runewidth.StringWidth(label)/2

	fg := r.pal.FGDim
	if it.Hovered || it.Selected {
		fg = r.pal.FG
	}
	drawString(s, x, cy+1, label, r.style(r.pal.Fade(fg, it.Opacity)))
}

func (r *Renderer) drawHUD(s tcell.Screen, f nav.Frame, cols, rows int) {
	if rows < 3 || cols <= 0 {
		return
	}
	accent := r.style(r.pal.FG)
	drawString(s, 1, 0, HeaderLeft, accent)
	drawString(s, cols-1-runewidth.StringWidth(HeaderRight), 0, HeaderRight, r.style(r.pal.Warn))

	drawString(s, 1, rows-2, runewidth.Truncate(f.Status, cols-2, "…"), accent)

	hint := r.style(r.pal.FGDim)
	if strings.HasPrefix(f.Hint, "SELECTED") {
		hint = r.style(r.pal.Warn)
	}
	drawString(s, 1, rows-1, runewidth.Truncate(f.Hint, cols-2, "…"), hint)
}

// drawString writes str from (x, y), clipping at the screen edges
func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	cols, rows := s.Size()
	if y < 0 || y >= rows {
		return
	}
	for _, ch := range str {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= cols {
			s.SetContent(x, y, ch, nil, style)
		}
		x += w
	}
}

// FileOpened shows the open notification as a toast
func (r *Renderer) FileOpened(n tree.Node) {
	r.ShowToast("OPEN "+n.Kind.String()+": "+tree.ShortPath(n.Path, 60), r.toastLast)
}

// TransitionStarted implements nav.Listener
func (r *Renderer) TransitionStarted(nav.Transition) {}

// CommandRejected implements nav.Listener
func (r *Renderer) CommandRejected(string) {}

// SetTime records the frame time used to start toasts raised by listener callbacks
func (r *Renderer) SetTime(now time.Time) {
	r.toastLast = now
}
