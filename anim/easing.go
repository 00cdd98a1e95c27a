// Package anim drives time-based interpolation of scalar properties, polled once per frame
package anim

import "math"

// Easing selects the curve mapping normalized time to progress
type Easing uint8

const (
	Linear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseInOutCubic
	EaseOutElastic
)

var easingNames = [...]string{
	Linear:         "linear",
	EaseIn:         "ease-in",
	EaseOut:        "ease-out",
	EaseInOut:      "ease-in-out",
	EaseInOutCubic: "ease-in-out-cubic",
	EaseOutElastic: "ease-out-elastic",
}

func (e Easing) String() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return "unknown"
}

// ParseEasing maps a name to an Easing
func ParseEasing(s string) (Easing, bool) {
	for i, n := range easingNames {
		if n == s {
			return Easing(i), true
		}
	}
	return Linear, false
}

// AllEasings lists every supported curve
func AllEasings() []Easing {
	return []Easing{Linear, EaseIn, EaseOut, EaseInOut, EaseInOutCubic, EaseOutElastic}
}

const elasticC4 = (2 * math.Pi) / 3

// Ease evaluates the curve at t, clamped to [0, 1]
// Every curve returns exactly 0 at t=0 and exactly 1 at t=1
func (e Easing) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := 2*t - 2
		return (t-1)*u*u + 1
	case EaseOutElastic:
		return math.Pow(2, -10*t)*math.Sin((10*t-0.75)*elasticC4) + 1
	default:
		return t
	}
}
