package anim

import (
	"strings"
	"time"
)

type entry struct {
	key string
	a   *Animation
}

// Scheduler owns the active animation set
// Animations are keyed by the property they drive; an empty key is anonymous
type Scheduler struct {
	active   []entry
	pending  []entry
	byKey    map[string]*Animation
	updating bool
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		byKey: make(map[string]*Animation),
	}
}

// Start activates a
// If key already has a running animation, a takes over from that animation's live value
// and the previous one is dropped without completing
func (s *Scheduler) Start(key string, a *Animation) *Animation {
	if key != "" {
		if prev, ok := s.byKey[key]; ok && !prev.done && !prev.cancelled {
			a.From = prev.current
			prev.cancelled = true
		}
		s.byKey[key] = a
	}
	a.current = a.From

	e := entry{key: key, a: a}
	if s.updating {
		s.pending = append(s.pending, e)
	} else {
		s.active = append(s.active, e)
	}
	return a
}

// Tween starts an animation on key from the given value
func (s *Scheduler) Tween(key string, now time.Time, from, to float64, d time.Duration, ease Easing, onUpdate func(float64)) *Animation {
	return s.Start(key, &Animation{
		From:     from,
		To:       to,
		Duration: d,
		Easing:   ease,
		Start:    now,
		OnUpdate: onUpdate,
	})
}

// Update advances every active animation and prunes the completed ones in the same frame
// Returns the number of animations still active
func (s *Scheduler) Update(now time.Time) int {
	s.updating = true
	for _, e := range s.active {
		e.a.Update(now)
	}
	s.updating = false

	kept := s.active[:0]
	for _, e := range s.active {
		if e.a.done || e.a.cancelled {
			if e.key != "" && s.byKey[e.key] == e.a {
				delete(s.byKey, e.key)
			}
			continue
		}
		kept = append(kept, e)
	}
	// Clear the tail so pruned animations and their closures can be collected
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = entry{}
	}
	s.active = append(kept, s.pending...)
	s.pending = s.pending[:0]

	return len(s.active)
}

// Active reports whether key has a running animation
func (s *Scheduler) Active(key string) bool {
	a, ok := s.byKey[key]
	return ok && !a.done && !a.cancelled
}

// Target returns the end value of the running animation on key
func (s *Scheduler) Target(key string) (float64, bool) {
	if !s.Active(key) {
		return 0, false
	}
	return s.byKey[key].To, true
}

// Cancel drops the running animation on key without completing it
func (s *Scheduler) Cancel(key string) bool {
	a, ok := s.byKey[key]
	if !ok {
		return false
	}
	delete(s.byKey, key)
	if a.done || a.cancelled {
		return false
	}
	a.cancelled = true
	return true
}

// CancelPrefix cancels every keyed animation whose key starts with prefix
func (s *Scheduler) CancelPrefix(prefix string) int {
	n := 0
	for k := range s.byKey {
		if strings.HasPrefix(k, prefix) && s.Cancel(k) {
			n++
		}
	}
	return n
}

// Len returns the number of live animations, including ones started during the current update
func (s *Scheduler) Len() int {
	n := 0
	for _, e := range s.active {
		if !e.a.done && !e.a.cancelled {
			n++
		}
	}
	return n + len(s.pending)
}
