// Package engine runs the single-goroutine frame loop that drives the navigator
package engine

import (
	"context"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// DefaultFPS is the tick rate used when none is configured
const DefaultFPS = 60

const (
	eventBuffer = 64
	postBuffer  = 8
)

// Handler receives everything the loop produces, always on the loop goroutine
type Handler interface {
	// HandleEvent consumes one terminal event, returning false to stop the loop
	HandleEvent(ev tcell.Event) bool
	// Tick advances time-based state
	Tick(now time.Time)
	// Draw renders the current state into the screen
	Draw(screen tcell.Screen)
}

// Loop drains input, ticks and draws at a fixed rate
type Loop struct {
	screen tcell.Screen
	clock  Clock
	period time.Duration
	log    logrus.FieldLogger
	posts  chan func()
	stats  Stats
}

// NewLoop creates a loop over an initialized screen
func NewLoop(screen tcell.Screen, clock Clock, fps int, log logrus.FieldLogger) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if clock == nil {
		clock = NewTimeProvider()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Loop{
		screen: screen,
		clock:  clock,
		period: time.Second / time.Duration(fps),
		log:    log,
		posts:  make(chan func(), postBuffer),
	}
}

// Period returns the frame interval
func (l *Loop) Period() time.Duration {
	return l.period
}

// Stats returns the live frame counters
func (l *Loop) Stats() *Stats {
	return &l.stats
}

// Post queues fn to run on the loop goroutine before the next frame
// Blocks while the queue is full, returns false if ctx ends first
func (l *Loop) Post(ctx context.Context, fn func()) bool {
	select {
	case l.posts <- fn:
		return true
	case <-ctx.Done():
		return false
	}
}

// Run blocks until ctx is cancelled, the handler stops the loop or the screen closes
func (l *Loop) Run(ctx context.Context, h Handler) error {
	events := l.startInputReader()

	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	l.log.WithField("period", l.period).Debug("frame loop started")
	defer l.log.Debug("frame loop stopped")

	for {
		select {
		case <-ctx.Done():
			return nil

		case fn := <-l.posts:
			l.stats.posts.Add(1)
			fn()

		case <-ticker.C:
			// Drain input non-blocking
		drainInput:
			for {
				select {
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					l.stats.events.Add(1)
					if _, resized := ev.(*tcell.EventResize); resized {
						l.screen.Sync()
					}
					if !h.HandleEvent(ev) {
						return nil
					}
				default:
					break drainInput
				}
			}

			start := time.Now()
			h.Tick(l.clock.Now())
			h.Draw(l.screen)
			l.screen.Show()
			l.stats.recordTick(time.Since(start))
		}
	}
}

// startInputReader forwards screen events into a buffered channel, dropping when full
// The channel closes once the screen is finalized
func (l *Loop) startInputReader() <-chan tcell.Event {
	ch := make(chan tcell.Event, eventBuffer)
	go func() {
		for {
			ev := l.screen.PollEvent()
			if ev == nil {
				close(ch)
				return
			}
			select {
			case ch <- ev:
			default:
				l.stats.dropped.Add(1)
			}
		}
	}()
	return ch
}
