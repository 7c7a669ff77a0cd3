package animation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/panosphere/pkg/easing"
)

// fakeScheduler queues frames and timers until the test fires them.
type fakeScheduler struct {
	frames []func(time.Duration)
	timers []fakeTimer
}

type fakeTimer struct {
	d  time.Duration
	fn func()
}

func (s *fakeScheduler) RequestFrame(fn func(time.Duration)) {
	s.frames = append(s.frames, fn)
}

func (s *fakeScheduler) After(d time.Duration, fn func()) {
	s.timers = append(s.timers, fakeTimer{d: d, fn: fn})
}

// frame runs every queued frame callback at now.
func (s *fakeScheduler) frame(now time.Duration) {
	queued := s.frames
	s.frames = nil
	for _, fn := range queued {
		fn(now)
	}
}

func (s *fakeScheduler) fireTimers() {
	queued := s.timers
	s.timers = nil
	for _, t := range queued {
		t.fn()
	}
}

type tick struct {
	values   Values
	progress float64
}

func recordTicks(ticks *[]tick) func(Values, float64) {
	return func(v Values, p float64) {
		*ticks = append(*ticks, tick{values: v, progress: p})
	}
}

func TestLinearRun(t *testing.T) {
	s := &fakeScheduler{}
	var ticks []tick

	h := Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 0, End: 10}},
		Duration:   time.Second,
		Easing:     easing.Linear,
		OnTick:     recordTicks(&ticks),
	})
	assert.Equal(t, Pending, h.Status())

	s.frame(0)
	s.frame(500 * time.Millisecond)
	s.frame(1000 * time.Millisecond)

	require.Len(t, ticks, 3)
	assert.InDelta(t, 0, ticks[0].values["x"], 1e-12)
	assert.InDelta(t, 5, ticks[1].values["x"], 1e-12)
	assert.Equal(t, 10.0, ticks[2].values["x"])
	assert.Equal(t, 1.0, ticks[2].progress)

	assert.Equal(t, Resolved, h.Status())
	assert.NoError(t, h.Err())
	assert.Empty(t, s.frames, "no frame may be requested after resolution")

	select {
	case <-h.Done():
	default:
		t.Fatal("Done not closed after resolution")
	}
}

func TestFinalFrameIsExactEnd(t *testing.T) {
	s := &fakeScheduler{}
	var ticks []tick

	Start(s, Spec{
		Properties: map[string]Range{
			"lon": {Start: 0.1, End: 0.3},
			"lat": {Start: -1.0 / 3, End: 2.0 / 3},
		},
		Duration: 300 * time.Millisecond,
		Easing:   easing.InOutSine,
		OnTick:   recordTicks(&ticks),
	})

	// Frames coalesce under load; one lands past the end.
	s.frame(10 * time.Millisecond)
	s.frame(130 * time.Millisecond)
	s.frame(450 * time.Millisecond)

	require.Len(t, ticks, 3)
	last := ticks[2]
	assert.Equal(t, 1.0, last.progress)
	assert.Equal(t, 0.3, last.values["lon"])
	assert.Equal(t, 2.0/3, last.values["lat"])

	// Progress strictly increases.
	for i := 1; i < len(ticks); i++ {
		assert.Greater(t, ticks[i].progress, ticks[i-1].progress)
	}
}

func TestFinalTickOnlyOnce(t *testing.T) {
	s := &fakeScheduler{}
	finals := 0

	Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 0, End: 1}},
		Duration:   100 * time.Millisecond,
		OnTick: func(_ Values, p float64) {
			if p == 1 {
				finals++
			}
		},
	})

	for ts := time.Duration(0); ts <= 500*time.Millisecond; ts += 16 * time.Millisecond {
		s.frame(ts)
	}
	assert.Equal(t, 1, finals)
}

func TestDefaultEasingIsLinear(t *testing.T) {
	s := &fakeScheduler{}
	var ticks []tick

	Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 10, End: 20}},
		Duration:   time.Second,
		OnTick:     recordTicks(&ticks),
	})
	s.frame(time.Second)         // start
	s.frame(time.Second * 5 / 4) // 25%

	require.Len(t, ticks, 2)
	assert.InDelta(t, 12.5, ticks[1].values["x"], 1e-12)
}

func TestZeroDurationResolvesOnFirstFrame(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		s := &fakeScheduler{}
		var ticks []tick

		h := Start(s, Spec{
			Properties: map[string]Range{"x": {Start: 3, End: 7}},
			Duration:   d,
			OnTick:     recordTicks(&ticks),
		})
		assert.Empty(t, ticks, "nothing runs before the first frame")

		s.frame(42 * time.Millisecond)

		require.Len(t, ticks, 1)
		assert.Equal(t, 7.0, ticks[0].values["x"])
		assert.Equal(t, 1.0, ticks[0].progress)
		assert.Equal(t, Resolved, h.Status())
	}
}

func TestDelay(t *testing.T) {
	s := &fakeScheduler{}
	var ticks []tick

	Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 0, End: 1}},
		Duration:   time.Second,
		Delay:      200 * time.Millisecond,
		OnTick:     recordTicks(&ticks),
	})

	require.Len(t, s.timers, 1)
	assert.Equal(t, 200*time.Millisecond, s.timers[0].d)
	assert.Empty(t, s.frames, "no frame before the delay elapses")

	s.fireTimers()
	require.Len(t, s.frames, 1)

	// The clock starts at the first frame after the delay.
	s.frame(700 * time.Millisecond)
	s.frame(1200 * time.Millisecond)
	require.Len(t, ticks, 2)
	assert.InDelta(t, 0.5, ticks[1].values["x"], 1e-12)
}

func TestCancelBeforeFirstTick(t *testing.T) {
	s := &fakeScheduler{}
	ticks := 0
	cancels := 0

	h := Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 0, End: 1}},
		Duration:   time.Second,
		OnTick:     func(Values, float64) { ticks++ },
		OnCancel:   func() { cancels++ },
	})

	h.Cancel()
	h.Cancel()
	s.frame(0)
	s.frame(2 * time.Second)

	assert.Equal(t, 0, ticks)
	assert.Equal(t, 1, cancels)
	assert.Equal(t, Cancelled, h.Status())
	assert.ErrorIs(t, h.Err(), ErrCancelled)
	assert.Empty(t, s.frames)
}

func TestCancelDuringDelay(t *testing.T) {
	s := &fakeScheduler{}
	ticks := 0

	h := Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 0, End: 1}},
		Duration:   time.Second,
		Delay:      time.Second,
		OnTick:     func(Values, float64) { ticks++ },
	})
	h.Cancel()
	s.fireTimers()

	assert.Empty(t, s.frames, "cancelled run must not request frames")
	assert.Equal(t, 0, ticks)
	assert.ErrorIs(t, h.Err(), ErrCancelled)
}

func TestCancelMidRunDoesNotResume(t *testing.T) {
	s := &fakeScheduler{}
	var ticks []tick

	h := Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 0, End: 1}},
		Duration:   time.Second,
		OnTick:     recordTicks(&ticks),
	})
	s.frame(0)
	s.frame(100 * time.Millisecond)
	h.Cancel()
	s.frame(200 * time.Millisecond)
	s.frame(2 * time.Second)

	assert.Len(t, ticks, 2)
}

func TestCancelFromOnTick(t *testing.T) {
	s := &fakeScheduler{}
	var h *Handle
	ticks := 0

	h = Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 0, End: 1}},
		Duration:   time.Second,
		OnTick: func(Values, float64) {
			ticks++
			h.Cancel()
		},
	})
	s.frame(0)

	assert.Equal(t, 1, ticks)
	assert.Empty(t, s.frames)
}

func TestCancelAfterResolveIsNoop(t *testing.T) {
	s := &fakeScheduler{}
	cancels := 0

	h := Start(s, Spec{
		Duration: 0,
		OnCancel: func() { cancels++ },
	})
	s.frame(0)
	require.Equal(t, Resolved, h.Status())

	h.Cancel()
	assert.Equal(t, 0, cancels)
	assert.Equal(t, Resolved, h.Status())
	assert.NoError(t, h.Err())
}

func TestIndependentAnimations(t *testing.T) {
	s := &fakeScheduler{}
	var a, b []tick

	ha := Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 0, End: 1}},
		Duration:   time.Second,
		OnTick:     recordTicks(&a),
	})
	Start(s, Spec{
		Properties: map[string]Range{"x": {Start: 100, End: 200}},
		Duration:   2 * time.Second,
		OnTick:     recordTicks(&b),
	})

	s.frame(0)
	ha.Cancel()
	s.frame(time.Second)

	assert.Len(t, a, 1)
	require.Len(t, b, 2)
	assert.InDelta(t, 150, b[1].values["x"], 1e-12)
}

func TestWait(t *testing.T) {
	s := &fakeScheduler{}
	h := Start(s, Spec{Duration: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.Wait(ctx), context.DeadlineExceeded)

	s.frame(0)
	s.frame(time.Second)
	assert.NoError(t, h.Wait(context.Background()))

	c := Start(s, Spec{Duration: time.Second})
	c.Cancel()
	assert.ErrorIs(t, c.Wait(context.Background()), ErrCancelled)
}

func TestCompleted(t *testing.T) {
	h := Completed()
	assert.Equal(t, Resolved, h.Status())
	assert.Equal(t, "resolved", h.Status().String())
}
