package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/johndoe6345789/3dfsnav/nav"
)

// Virtual pixel size of one terminal cell
const (
	DefaultCellW = 8.0
	DefaultCellH = 16.0
)

// Mapper turns tcell events into intents
// It tracks the primary button so tcell's level-triggered mouse reports become press, drag and release edges
type Mapper struct {
	keys         *KeyTable
	cellW, cellH float64
	cols, rows   int
	down         bool
}

// NewMapper creates a mapper with the given key table and cell size in virtual pixels
func NewMapper(keys *KeyTable, cellW, cellH float64) *Mapper {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	return &Mapper{keys: keys, cellW: cellW, cellH: cellH}
}

// SetSize records the terminal size in cells
func (m *Mapper) SetSize(cols, rows int) {
	m.cols, m.rows = cols, rows
}

// Viewport returns the scene rectangle in virtual pixels
func (m *Mapper) Viewport() nav.Rect {
	return nav.Rect{W: float64(m.cols) * m.cellW, H: float64(m.rows) * m.cellH}
}

// CellToPixel returns the virtual pixel at the center of a cell
func (m *Mapper) CellToPixel(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * m.cellW, (float64(row) + 0.5) * m.cellH
}

// PixelToCell returns the cell containing a virtual pixel
func (m *Mapper) PixelToCell(x, y float64) (int, int) {
	return int(x / m.cellW), int(y / m.cellH)
}

// Map translates one event, returning nil for events with no meaning
func (m *Mapper) Map(ev tcell.Event) []Intent {
	switch e := ev.(type) {
	case *tcell.EventKey:
		b, ok := m.keys.Lookup(e)
		if !ok || b.Intent == IntentNone {
			return nil
		}
		return []Intent{{Type: b.Intent, Key: b.Key}}

	case *tcell.EventResize:
		cols, rows := e.Size()
		m.SetSize(cols, rows)
		return []Intent{{Type: IntentResize, Cols: cols, Rows: rows}}

	case *tcell.EventMouse:
		return m.mapMouse(e)
	}
	return nil
}

func (m *Mapper) mapMouse(e *tcell.EventMouse) []Intent {
	col, row := e.Position()
	x, y := m.CellToPixel(col, row)
	rect := m.Viewport()
	btn := e.Buttons()

	var out []Intent
	switch {
	case btn&tcell.WheelUp != 0:
		out = append(out, Intent{Type: IntentWheel, Wheel: 1})
	case btn&tcell.WheelDown != 0:
		out = append(out, Intent{Type: IntentWheel, Wheel: -1})
	}

	pressed := btn&tcell.Button1 != 0
	kind := nav.PointerMove
	switch {
	case pressed && !m.down:
		kind = nav.PointerDown
	case !pressed && m.down:
		kind = nav.PointerUp
	}
	m.down = pressed

	out = append(out, Intent{
		Type:    IntentPointer,
		Pointer: nav.PointerEvent{Kind: kind, X: x, Y: y, Rect: rect},
	})
	return out
}
