package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/johndoe6345789/3dfsnav/nav"
)

// Binding is what a key resolves to
type Binding struct {
	Intent IntentType
	Key    nav.Key
}

// KeyTable maps keys to bindings
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Backspace)
	SpecialKeys map[tcell.Key]Binding

	// Printable rune bindings
	Runes map[rune]Binding
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Binding{
			tcell.KeyCtrlC:      {Intent: IntentQuit},
			tcell.KeyCtrlQ:      {Intent: IntentQuit},
			tcell.KeyBackspace:  {Intent: IntentNav, Key: nav.KeyGoUp},
			tcell.KeyBackspace2: {Intent: IntentNav, Key: nav.KeyGoUp},
			tcell.KeyEnter:      {Intent: IntentNav, Key: nav.KeyOpen},
			tcell.KeyEscape:     {Intent: IntentNav, Key: nav.KeyCancel},
			tcell.KeyLeft:       {Intent: IntentNav, Key: nav.KeyOrbitLeft},
			tcell.KeyRight:      {Intent: IntentNav, Key: nav.KeyOrbitRight},
			tcell.KeyUp:         {Intent: IntentNav, Key: nav.KeyOrbitUp},
			tcell.KeyDown:       {Intent: IntentNav, Key: nav.KeyOrbitDown},
		},
		Runes: map[rune]Binding{
			'q': {Intent: IntentQuit},
			'+': {Intent: IntentNav, Key: nav.KeyZoomIn},
			'=': {Intent: IntentNav, Key: nav.KeyZoomIn},
			'-': {Intent: IntentNav, Key: nav.KeyZoomOut},
			'_': {Intent: IntentNav, Key: nav.KeyZoomOut},
			'u': {Intent: IntentNav, Key: nav.KeyGoUp},
			'h': {Intent: IntentNav, Key: nav.KeyOrbitLeft},
			'l': {Intent: IntentNav, Key: nav.KeyOrbitRight},
			'k': {Intent: IntentNav, Key: nav.KeyOrbitUp},
			'j': {Intent: IntentNav, Key: nav.KeyOrbitDown},
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		SpecialKeys: make(map[tcell.Key]Binding, len(kt.SpecialKeys)),
		Runes:       make(map[rune]Binding, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		c.SpecialKeys[k] = v
	}
	for k, v := range kt.Runes {
		c.Runes[k] = v
	}
	return c
}

// Lookup resolves a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (Binding, bool) {
	if ev.Key() == tcell.KeyRune {
		b, ok := kt.Runes[ev.Rune()]
		return b, ok
	}
	b, ok := kt.SpecialKeys[ev.Key()]
	return b, ok
}
