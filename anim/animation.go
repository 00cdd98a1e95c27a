package anim

import (
	"time"

	"github.com/johndoe6345789/3dfsnav/vmath"
)

// Animation interpolates one scalar from From to To over Duration starting at Start
// It is polled with Update once per frame and retires itself when elapsed >= Duration
type Animation struct {
	From     float64
	To       float64
	Duration time.Duration
	Easing   Easing
	Start    time.Time

	// OnUpdate receives every interpolated value, including To exactly once at the end
	OnUpdate func(v float64)
	// OnComplete runs exactly once when the animation reaches its end
	OnComplete func()

	current   float64
	done      bool
	cancelled bool
}

// progress returns normalized time, 1 for non-positive durations
func (a *Animation) progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	return float64(now.Sub(a.Start)) / float64(a.Duration)
}

// Value returns the interpolated value at now without side effects
func (a *Animation) Value(now time.Time) float64 {
	t := a.progress(now)
	if t >= 1 {
		return a.To
	}
	return vmath.Lerp(a.From, a.To, a.Easing.Ease(t))
}

// Update advances to now and reports whether the animation is complete
// A complete or cancelled animation is never updated again
func (a *Animation) Update(now time.Time) bool {
	if a.done || a.cancelled {
		return true
	}

	if a.progress(now) >= 1 {
		a.current = a.To
		a.done = true
		if a.OnUpdate != nil {
			a.OnUpdate(a.To)
		}
		if a.OnComplete != nil {
			a.OnComplete()
		}
		return true
	}

	a.current = a.Value(now)
	if a.OnUpdate != nil {
		a.OnUpdate(a.current)
	}
	return false
}

// Current returns the last value produced by Update, From before the first update
func (a *Animation) Current() float64 {
	return a.current
}

// Done reports whether the animation reached its end
func (a *Animation) Done() bool {
	return a.done
}

// Cancelled reports whether the animation was superseded or cancelled
func (a *Animation) Cancelled() bool {
	return a.cancelled
}
