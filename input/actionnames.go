package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/johndoe6345789/3dfsnav/nav"
)

// actionRegistry maps canonical action names to bindings
// Used by the keymap loader to resolve config action strings
var actionRegistry = map[string]Binding{
	// Unbind sentinel
	"none": {},

	"quit": {Intent: IntentQuit},

	"go_up":    {Intent: IntentNav, Key: nav.KeyGoUp},
	"open":     {Intent: IntentNav, Key: nav.KeyOpen},
	"zoom_in":  {Intent: IntentNav, Key: nav.KeyZoomIn},
	"zoom_out": {Intent: IntentNav, Key: nav.KeyZoomOut},
	"cancel":   {Intent: IntentNav, Key: nav.KeyCancel},

	"orbit_left":  {Intent: IntentNav, Key: nav.KeyOrbitLeft},
	"orbit_right": {Intent: IntentNav, Key: nav.KeyOrbitRight},
	"orbit_up":    {Intent: IntentNav, Key: nav.KeyOrbitUp},
	"orbit_down":  {Intent: IntentNav, Key: nav.KeyOrbitDown},
}

// ActionBinding returns the binding registered under name
func ActionBinding(name string) (Binding, bool) {
	b, ok := actionRegistry[name]
	return b, ok
}

// keyNames maps config key names to special keys
var keyNames = map[string]tcell.Key{
	"backspace":  tcell.KeyBackspace,
	"backspace2": tcell.KeyBackspace2,
	"enter":      tcell.KeyEnter,
	"esc":        tcell.KeyEscape,
	"escape":     tcell.KeyEscape,
	"tab":        tcell.KeyTab,
	"delete":     tcell.KeyDelete,
	"home":       tcell.KeyHome,
	"end":        tcell.KeyEnd,
	"pgup":       tcell.KeyPgUp,
	"pgdn":       tcell.KeyPgDn,
	"up":         tcell.KeyUp,
	"down":       tcell.KeyDown,
	"left":       tcell.KeyLeft,
	"right":      tcell.KeyRight,
	"ctrl-c":     tcell.KeyCtrlC,
	"ctrl-q":     tcell.KeyCtrlQ,
}

// KeyByName resolves a special key name, case-insensitive
func KeyByName(name string) (tcell.Key, bool) {
	k, ok := keyNames[strings.ToLower(name)]
	return k, ok
}
