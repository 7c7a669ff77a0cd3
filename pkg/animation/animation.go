// Package animation runs time-based interpolations driven by an external
// frame scheduler.
//
// An animation never blocks. Each frame callback interpolates every property,
// reports it through OnTick and hands control back to the scheduler until the
// duration has elapsed or the handle is cancelled.
package animation

import (
	"time"

	"github.com/Faultbox/panosphere/pkg/easing"
)

// Scheduler is the host render loop.
//
// RequestFrame runs fn once on the next display frame with the frame
// timestamp. After runs fn once d from now. Both are called and fire on the
// scheduler's goroutine.
type Scheduler interface {
	RequestFrame(fn func(now time.Duration))
	After(d time.Duration, fn func())
}

// Range is the start and end value of one animated property.
type Range struct {
	Start float64
	End   float64
}

// Values holds the interpolated value of each property for one frame.
type Values map[string]float64

// Spec describes one animation run.
type Spec struct {
	Properties map[string]Range
	Duration   time.Duration
	// Delay postpones the first frame. Zero starts on the next frame.
	Delay time.Duration
	// Easing defaults to easing.Linear.
	Easing easing.Func
	// OnTick receives the values and the raw time progress of every frame.
	// The last call has every property at its End and progress exactly 1.
	OnTick func(values Values, progress float64)
	// OnCancel runs once if the handle is cancelled before completion.
	OnCancel func()
}

type run struct {
	spec   Spec
	sched  Scheduler
	handle *Handle

	started bool
	start   time.Duration
}

// Start schedules spec on s and returns its handle.
//
// A non-positive Duration is treated as already elapsed: the first frame
// delivers the end values with progress 1 and resolves the handle.
func Start(s Scheduler, spec Spec) *Handle {
	if spec.Easing == nil {
		spec.Easing = easing.Linear
	}

	r := &run{
		spec:   spec,
		sched:  s,
		handle: newHandle(spec.OnCancel),
	}

	if spec.Delay > 0 {
		s.After(spec.Delay, func() {
			if r.handle.Status() == Pending {
				s.RequestFrame(r.frame)
			}
		})
	} else {
		s.RequestFrame(r.frame)
	}

	return r.handle
}

func (r *run) frame(now time.Duration) {
	if r.handle.Status() != Pending {
		return
	}

	if !r.started {
		r.started = true
		r.start = now
	}

	progress := 1.0
	if r.spec.Duration > 0 {
		progress = float64(now-r.start) / float64(r.spec.Duration)
	}

	current := make(Values, len(r.spec.Properties))

	if progress < 1 {
		eased := r.spec.Easing(progress)
		for name, p := range r.spec.Properties {
			current[name] = p.Start + (p.End-p.Start)*eased
		}
		r.tick(current, progress)

		// OnTick may have cancelled us.
		if r.handle.Status() == Pending {
			r.sched.RequestFrame(r.frame)
		}
		return
	}

	for name, p := range r.spec.Properties {
		current[name] = p.End
	}
	r.tick(current, 1.0)
	r.handle.resolve()
}

func (r *run) tick(values Values, progress float64) {
	if r.spec.OnTick != nil {
		r.spec.OnTick(values, progress)
	}
}
