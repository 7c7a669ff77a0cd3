// Package frame provides the per-frame and delay scheduling primitives that
// the main loop pumps once per display frame.
package frame

import (
	"sort"
	"time"
)

type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

// Loop queues frame callbacks and delay timers until Advance is called.
// It is not safe for concurrent use: everything runs on the main loop.
type Loop struct {
	now    time.Duration
	frames []func(time.Duration)
	timers []timer
	seq    uint64
}

// NewLoop creates an empty loop whose clock starts at zero.
func NewLoop() *Loop {
	return &Loop{
		frames: make([]func(time.Duration), 0, 8),
	}
}

// Now returns the timestamp of the latest Advance call.
func (l *Loop) Now() time.Duration {
	return l.now
}

// RequestFrame runs fn on the next Advance.
func (l *Loop) RequestFrame(fn func(now time.Duration)) {
	l.frames = append(l.frames, fn)
}

// After runs fn on the first Advance at or past d from the current time.
func (l *Loop) After(d time.Duration, fn func()) {
	l.seq++
	l.timers = append(l.timers, timer{due: l.now + d, seq: l.seq, fn: fn})
}

// Pending reports the number of queued frame callbacks and timers.
func (l *Loop) Pending() (frames, timers int) {
	return len(l.frames), len(l.timers)
}

// Advance moves the clock to now, fires due timers in due order, then runs the
// frame callbacks queued so far. Callbacks queued while advancing wait for the
// next call, so a callback that re-requests itself runs once per frame.
func (l *Loop) Advance(now time.Duration) {
	if now > l.now {
		l.now = now
	}

	l.fireTimers()

	queued := l.frames
	l.frames = make([]func(time.Duration), 0, len(queued))
	for _, fn := range queued {
		fn(l.now)
	}
}

func (l *Loop) fireTimers() {
	if len(l.timers) == 0 {
		return
	}

	sort.Slice(l.timers, func(i, j int) bool {
		if l.timers[i].due != l.timers[j].due {
			return l.timers[i].due < l.timers[j].due
		}
		return l.timers[i].seq < l.timers[j].seq
	})

	n := 0
	for n < len(l.timers) && l.timers[n].due <= l.now {
		n++
	}
	if n == 0 {
		return
	}

	due := l.timers[:n]
	l.timers = append([]timer(nil), l.timers[n:]...)
	for _, t := range due {
		t.fn()
	}
}
