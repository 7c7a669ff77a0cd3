package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/panosphere/pkg/animation"
)

// Loop is the scheduler the viewer runs on.
var _ animation.Scheduler = (*Loop)(nil)

func TestRequestFrameRunsOnNextAdvance(t *testing.T) {
	l := NewLoop()
	var got []time.Duration

	l.RequestFrame(func(now time.Duration) { got = append(got, now) })
	assert.Empty(t, got)

	l.Advance(16 * time.Millisecond)
	assert.Equal(t, []time.Duration{16 * time.Millisecond}, got)

	l.Advance(32 * time.Millisecond)
	assert.Len(t, got, 1, "frame callbacks run once")
}

func TestReRequestWaitsForNextFrame(t *testing.T) {
	l := NewLoop()
	count := 0

	var step func(time.Duration)
	step = func(time.Duration) {
		count++
		l.RequestFrame(step)
	}
	l.RequestFrame(step)

	l.Advance(1)
	l.Advance(2)
	l.Advance(3)
	assert.Equal(t, 3, count)

	frames, _ := l.Pending()
	assert.Equal(t, 1, frames)
}

func TestAfterFiresWhenDue(t *testing.T) {
	l := NewLoop()
	var order []string

	l.Advance(100 * time.Millisecond)
	l.After(50*time.Millisecond, func() { order = append(order, "b") })
	l.After(20*time.Millisecond, func() { order = append(order, "a") })
	l.After(50*time.Millisecond, func() { order = append(order, "c") })

	l.Advance(110 * time.Millisecond)
	assert.Empty(t, order)

	l.Advance(120 * time.Millisecond)
	assert.Equal(t, []string{"a"}, order)

	l.Advance(200 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)

	_, timers := l.Pending()
	assert.Zero(t, timers)
}

func TestTimerThenFrameSameAdvance(t *testing.T) {
	l := NewLoop()
	var ran []string

	// A timer that requests a frame is followed by that frame in one Advance,
	// matching a delayed animation start.
	l.After(10*time.Millisecond, func() {
		ran = append(ran, "timer")
		l.RequestFrame(func(time.Duration) { ran = append(ran, "frame") })
	})
	l.Advance(10 * time.Millisecond)

	assert.Equal(t, []string{"timer", "frame"}, ran)
}

func TestClockNeverRunsBackwards(t *testing.T) {
	l := NewLoop()
	l.Advance(time.Second)
	l.Advance(500 * time.Millisecond)
	assert.Equal(t, time.Second, l.Now())
}

func TestDrivesAnimation(t *testing.T) {
	l := NewLoop()
	var last float64

	h := animation.Start(l, animation.Spec{
		Properties: map[string]animation.Range{"x": {Start: 0, End: 4}},
		Duration:   100 * time.Millisecond,
		Delay:      50 * time.Millisecond,
		OnTick:     func(v animation.Values, _ float64) { last = v["x"] },
	})

	for ts := time.Duration(0); ts <= 300*time.Millisecond; ts += 10 * time.Millisecond {
		l.Advance(ts)
	}

	require.Equal(t, animation.Resolved, h.Status())
	assert.Equal(t, 4.0, last)
}
