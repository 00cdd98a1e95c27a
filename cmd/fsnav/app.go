package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/johndoe6345789/3dfsnav/engine"
	"github.com/johndoe6345789/3dfsnav/input"
	"github.com/johndoe6345789/3dfsnav/nav"
	"github.com/johndoe6345789/3dfsnav/render"
)

// app wires terminal intents into the navigator and draws its frames
type app struct {
	clock    engine.Clock
	nav      *nav.Navigator
	mapper   *input.Mapper
	renderer *render.Renderer
	now      time.Time
}

func newApp(clock engine.Clock, n *nav.Navigator, m *input.Mapper, r *render.Renderer) *app {
	return &app{clock: clock, nav: n, mapper: m, renderer: r, now: clock.Now()}
}

// resize syncs the navigator viewport with the terminal size in cells
func (a *app) resize(cols, rows int) {
	a.mapper.SetSize(cols, rows)
	vp := a.mapper.Viewport()
	a.nav.Resize(vp.W, vp.H)
}

// HandleEvent implements engine.Handler
func (a *app) HandleEvent(ev tcell.Event) bool {
	a.renderer.SetTime(a.clock.Now())
	for _, it := range a.mapper.Map(ev) {
		switch it.Type {
		case input.IntentQuit:
			return false
		case input.IntentResize:
			a.resize(it.Cols, it.Rows)
		case input.IntentNav:
			a.nav.Key(it.Key)
		case input.IntentPointer:
			a.nav.Pointer(it.Pointer)
		case input.IntentWheel:
			a.nav.Wheel(it.Wheel)
		}
	}
	return true
}

// Tick implements engine.Handler
func (a *app) Tick(now time.Time) {
	a.now = now
	a.renderer.SetTime(now)
	a.nav.Tick(now)
}

// Draw implements engine.Handler
func (a *app) Draw(s tcell.Screen) {
	a.renderer.Draw(s, a.nav.Frame(), a.now)
}
