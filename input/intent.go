// Package input translates terminal events into navigator intents
package input

import "github.com/johndoe6345789/3dfsnav/nav"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone    IntentType = iota
	IntentQuit               // q, Ctrl+C
	IntentResize             // terminal resize
	IntentNav                // keyboard navigation command
	IntentPointer            // primary button press, drag, release or hover
	IntentWheel              // wheel step, positive towards the scene
)

func (t IntentType) String() string {
	switch t {
	case IntentNone:
		return "none"
	case IntentQuit:
		return "quit"
	case IntentResize:
		return "resize"
	case IntentNav:
		return "nav"
	case IntentPointer:
		return "pointer"
	case IntentWheel:
		return "wheel"
	}
	return "unknown"
}

// Intent is one translated event
type Intent struct {
	Type    IntentType
	Key     nav.Key          // IntentNav
	Pointer nav.PointerEvent // IntentPointer
	Wheel   float64          // IntentWheel
	Cols    int              // IntentResize
	Rows    int
}
