package engine

import "time"

// Clock is the time source consumed by the frame tick and the navigator
// Tests inject MockTimeProvider, the binary uses the wall clock
type Clock interface {
	Now() time.Time
}

// TimeProvider is the wall Clock
type TimeProvider struct{}

// NewTimeProvider creates a wall clock
func NewTimeProvider() *TimeProvider { return &TimeProvider{} }

// Now carries the monotonic reading so frame deltas survive wall clock jumps
func (*TimeProvider) Now() time.Time { return time.Now() }
