package engine

import (
	"sync/atomic"
	"time"
)

// Stats collects frame loop counters
// Written by the loop goroutine, safe to read from anywhere
type Stats struct {
	frames     atomic.Int64
	events     atomic.Int64
	dropped    atomic.Int64
	posts      atomic.Int64
	lastTickNs atomic.Int64
	maxTickNs  atomic.Int64
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Frames   int64
	Events   int64
	Dropped  int64
	Posts    int64
	LastTick time.Duration
	MaxTick  time.Duration
}

func (s *Stats) recordTick(d time.Duration) {
	s.frames.Add(1)
	ns := int64(d)
	s.lastTickNs.Store(ns)
	for {
		cur := s.maxTickNs.Load()
		if ns <= cur || s.maxTickNs.CompareAndSwap(cur, ns) {
			return
		}
	}
}

// Snapshot returns the current counters
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Frames:   s.frames.Load(),
		Events:   s.events.Load(),
		Dropped:  s.dropped.Load(),
		Posts:    s.posts.Load(),
		LastTick: time.Duration(s.lastTickNs.Load()),
		MaxTick:  time.Duration(s.maxTickNs.Load()),
	}
}
