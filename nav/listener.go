package nav

import "github.com/johndoe6345789/3dfsnav/tree"

// Listener receives side effects of navigation
// Calls happen synchronously on the tick goroutine
type Listener interface {
	FileOpened(n tree.Node)
	TransitionStarted(t Transition)
	CommandRejected(reason string)
}

// NopListener ignores every notification
type NopListener struct{}

func (NopListener) FileOpened(tree.Node)         {}
func (NopListener) TransitionStarted(Transition) {}
func (NopListener) CommandRejected(string)       {}

// Listeners fans notifications out in order, skipping nil entries
type Listeners []Listener

func (ls Listeners) FileOpened(n tree.Node) {
	for _, l := range ls {
		if l != nil {
			l.FileOpened(n)
		}
	}
}

func (ls Listeners) TransitionStarted(t Transition) {
	for _, l := range ls {
		if l != nil {
			l.TransitionStarted(t)
		}
	}
}

func (ls Listeners) CommandRejected(reason string) {
	for _, l := range ls {
		if l != nil {
			l.CommandRejected(reason)
		}
	}
}
