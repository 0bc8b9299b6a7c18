package systems

import "sort"

// TimerID identifies a scheduled one-shot timer. The zero value never
// refers to a live timer.
type TimerID uint64

type timer struct {
	id  TimerID
	due float64
	fn  func()
}

// Timers is a set of one-shot callbacks driven by elapsed frame time rather
// than the wall clock. Cancel is idempotent and a fired timer can never fire
// again, so stale handles are harmless.
type Timers struct {
	now     float64
	nextID  TimerID
	pending map[TimerID]*timer
}

// NewTimers creates an empty timer set at time zero.
func NewTimers() *Timers {
	return &Timers{pending: make(map[TimerID]*timer)}
}

// Now returns the accumulated time in seconds.
func (t *Timers) Now() float64 { return t.now }

// After schedules fn to run once delay seconds from now.
// Negative or non-finite delays are treated as zero.
func (t *Timers) After(delay float64, fn func()) TimerID {
	if !finite(delay) || delay < 0 {
		delay = 0
	}
	t.nextID++
	id := t.nextID
	t.pending[id] = &timer{id: id, due: t.now + delay, fn: fn}
	return id
}

// Cancel removes a pending timer. It reports whether anything was removed.
func (t *Timers) Cancel(id TimerID) bool {
	if _, ok := t.pending[id]; !ok {
		return false
	}
	delete(t.pending, id)
	return true
}

// Pending reports whether id is scheduled and has not fired.
func (t *Timers) Pending(id TimerID) bool {
	_, ok := t.pending[id]
	return ok
}

// Remaining returns the seconds until id fires.
func (t *Timers) Remaining(id TimerID) (float64, bool) {
	tm, ok := t.pending[id]
	if !ok {
		return 0, false
	}
	return max(tm.due-t.now, 0), true
}

// Len returns the number of pending timers.
func (t *Timers) Len() int { return len(t.pending) }

// Advance moves time forward and fires every timer that has come due, in
// due order. Timers scheduled by a callback run on a later Advance at the
// earliest. It returns the number of callbacks run.
func (t *Timers) Advance(dt float64) int {
	if !validDelta(dt) {
		return 0
	}
	t.now += dt

	var due []*timer
	for _, tm := range t.pending {
		if tm.due <= t.now {
			due = append(due, tm)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	fired := 0
	for _, tm := range due {
		// An earlier callback may have cancelled this one
		if _, ok := t.pending[tm.id]; !ok {
			continue
		}
		delete(t.pending, tm.id)
		tm.fn()
		fired++
	}
	return fired
}

// Reset cancels every pending timer. Time keeps its current value.
func (t *Timers) Reset() {
	clear(t.pending)
}
