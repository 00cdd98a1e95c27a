package anim

import (
	"sort"
	"strings"
	"time"
)

type task struct {
	key       string
	due       time.Time
	seq       uint64
	fn        func(now time.Time)
	cancelled bool
}

// Deferred is a queue of one-shot callbacks run from the frame tick
// Tasks are keyed by gesture; scheduling a key that is pending replaces it
type Deferred struct {
	tasks []*task
	byKey map[string]*task
	seq   uint64
}

// NewDeferred creates an empty queue
func NewDeferred() *Deferred {
	return &Deferred{byKey: make(map[string]*task)}
}

// Schedule runs fn at the first Advance at or after due
// An empty key is anonymous and never replaces another task
func (d *Deferred) Schedule(key string, due time.Time, fn func(now time.Time)) {
	if key != "" {
		if prev, ok := d.byKey[key]; ok {
			prev.cancelled = true
		}
	}

	d.seq++
	t := &task{key: key, due: due, seq: d.seq, fn: fn}
	d.tasks = append(d.tasks, t)
	if key != "" {
		d.byKey[key] = t
	}
}

// After schedules fn delay after now
func (d *Deferred) After(key string, now time.Time, delay time.Duration, fn func(now time.Time)) {
	d.Schedule(key, now.Add(delay), fn)
}

// Cancel removes the pending task for key
func (d *Deferred) Cancel(key string) bool {
	t, ok := d.byKey[key]
	if !ok {
		return false
	}
	t.cancelled = true
	delete(d.byKey, key)
	return true
}

// CancelPrefix removes every pending task whose key starts with prefix
func (d *Deferred) CancelPrefix(prefix string) int {
	n := 0
	for k := range d.byKey {
		if strings.HasPrefix(k, prefix) && d.Cancel(k) {
			n++
		}
	}
	return n
}

// Pending reports whether key has a task waiting
func (d *Deferred) Pending(key string) bool {
	_, ok := d.byKey[key]
	return ok
}

// Advance runs every task due at now, ordered by due time then scheduling order
// Tasks scheduled while advancing run no earlier than the next Advance
func (d *Deferred) Advance(now time.Time) int {
	if len(d.tasks) == 0 {
		return 0
	}

	var ready []*task
	kept := d.tasks[:0]
	for _, t := range d.tasks {
		switch {
		case t.cancelled:
		case !t.due.After(now):
			ready = append(ready, t)
		default:
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(d.tasks); i++ {
		d.tasks[i] = nil
	}
	d.tasks = kept

	sort.SliceStable(ready, func(i, j int) bool {
		if !ready[i].due.Equal(ready[j].due) {
			return ready[i].due.Before(ready[j].due)
		}
		return ready[i].seq < ready[j].seq
	})

	ran := 0
	for _, t := range ready {
		// An earlier task in this batch may have cancelled a later one
		if t.cancelled {
			continue
		}
		if t.key != "" && d.byKey[t.key] == t {
			delete(d.byKey, t.key)
		}
		t.fn(now)
		ran++
	}
	return ran
}

// Len returns the number of pending tasks
func (d *Deferred) Len() int {
	n := 0
	for _, t := range d.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}
