package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndoe6345789/3dfsnav/nav"
)

func TestDefaultKeyBindings(t *testing.T) {
	m := NewMapper(nil, 0, 0)

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Intent
	}{
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), Intent{Type: IntentNav, Key: nav.KeyGoUp}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Intent{Type: IntentNav, Key: nav.KeyGoUp}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Intent{Type: IntentNav, Key: nav.KeyOpen}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Intent{Type: IntentNav, Key: nav.KeyCancel}},
		{"plus", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), Intent{Type: IntentNav, Key: nav.KeyZoomIn}},
		{"equal", tcell.NewEventKey(tcell.KeyRune, '=', tcell.ModNone), Intent{Type: IntentNav, Key: nav.KeyZoomIn}},
		{"minus", tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), Intent{Type: IntentNav, Key: nav.KeyZoomOut}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), Intent{Type: IntentNav, Key: nav.KeyOrbitLeft}},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), Intent{Type: IntentQuit}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Intent{Type: IntentQuit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Map(tt.ev)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}

	assert.Nil(t, m.Map(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)))
}

func TestMouseEdges(t *testing.T) {
	m := NewMapper(nil, 8, 16)
	m.SetSize(100, 40)
	rect := nav.Rect{W: 800, H: 640}

	hover := m.Map(tcell.NewEventMouse(2, 3, tcell.ButtonNone, tcell.ModNone))
	require.Len(t, hover, 1)
	assert.Equal(t, nav.PointerEvent{Kind: nav.PointerMove, X: 20, Y: 56, Rect: rect}, hover[0].Pointer)

	down := m.Map(tcell.NewEventMouse(2, 3, tcell.Button1, tcell.ModNone))
	require.Len(t, down, 1)
	assert.Equal(t, nav.PointerDown, down[0].Pointer.Kind)

	drag := m.Map(tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone))
	require.Len(t, drag, 1)
	assert.Equal(t, nav.PointerMove, drag[0].Pointer.Kind)
	assert.Equal(t, 44.0, drag[0].Pointer.X)

	up := m.Map(tcell.NewEventMouse(5, 3, tcell.ButtonNone, tcell.ModNone))
	require.Len(t, up, 1)
	assert.Equal(t, nav.PointerUp, up[0].Pointer.Kind)
}

func TestMouseWheel(t *testing.T) {
	m := NewMapper(nil, 0, 0)

	got := m.Map(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	require.Len(t, got, 2)
	assert.Equal(t, IntentWheel, got[0].Type)
	assert.Equal(t, 1.0, got[0].Wheel)

	got = m.Map(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	require.Len(t, got, 2)
	assert.Equal(t, -1.0, got[0].Wheel)
}

func TestResizeUpdatesViewport(t *testing.T) {
	m := NewMapper(nil, 0, 0)
	got := m.Map(tcell.NewEventResize(120, 30))
	require.Len(t, got, 1)
	assert.Equal(t, Intent{Type: IntentResize, Cols: 120, Rows: 30}, got[0])
	assert.Equal(t, nav.Rect{W: 960, H: 480}, m.Viewport())
}

func TestPixelCellRoundTrip(t *testing.T) {
	m := NewMapper(nil, 0, 0)
	x, y := m.CellToPixel(7, 4)
	c, r := m.PixelToCell(x, y)
	assert.Equal(t, 7, c)
	assert.Equal(t, 4, r)
}

func TestParseKeyConfigAndMerge(t *testing.T) {
	override, err := ParseKeyConfig(
		map[string]string{"Delete": "go_up", "esc": "none"},
		map[string]string{"space": "open", "q": "none", "x": "quit"},
	)
	require.NoError(t, err)

	kt := MergeKeyTable(DefaultKeyTable(), override)
	assert.Equal(t, Binding{Intent: IntentNav, Key: nav.KeyGoUp}, kt.SpecialKeys[tcell.KeyDelete])
	assert.Equal(t, Binding{Intent: IntentNav, Key: nav.KeyOpen}, kt.Runes[' '])
	assert.Equal(t, Binding{Intent: IntentQuit}, kt.Runes['x'])
	assert.NotContains(t, kt.SpecialKeys, tcell.KeyEscape)
	assert.NotContains(t, kt.Runes, 'q')

	// Base table untouched
	assert.Contains(t, DefaultKeyTable().Runes, 'q')
}

func TestParseKeyConfigErrors(t *testing.T) {
	_, err := ParseKeyConfig(map[string]string{"hyper": "quit"}, nil)
	assert.ErrorContains(t, err, "unknown key name")

	_, err = ParseKeyConfig(nil, map[string]string{"ab": "quit"})
	assert.ErrorContains(t, err, "invalid rune key")

	_, err = ParseKeyConfig(nil, map[string]string{"a": "teleport"})
	assert.ErrorContains(t, err, "unknown action")
}
