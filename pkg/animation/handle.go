package animation

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrCancelled is reported by a handle whose animation was cancelled.
var ErrCancelled = errors.New("animation cancelled")

// Status is the state of a Handle.
type Status int32

const (
	Pending Status = iota
	Resolved
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Handle is the completion token of one animation. It settles exactly once,
// either resolved by the final frame or cancelled.
type Handle struct {
	status   atomic.Int32
	done     chan struct{}
	onCancel func()
}

func newHandle(onCancel func()) *Handle {
	return &Handle{
		done:     make(chan struct{}),
		onCancel: onCancel,
	}
}

// Completed returns a handle that has already resolved, for callers that
// apply a change instantly but must still return a handle.
func Completed() *Handle {
	h := newHandle(nil)
	h.resolve()
	return h
}

// Status returns the current state. Safe to call from any goroutine.
func (h *Handle) Status() Status {
	return Status(h.status.Load())
}

// Done is closed once the handle settles.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns ErrCancelled after cancellation and nil otherwise.
func (h *Handle) Err() error {
	if h.Status() == Cancelled {
		return ErrCancelled
	}
	return nil
}

// Wait blocks until the handle settles or ctx ends.
// It must not be called from the scheduler goroutine, which drives completion.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel stops the animation. Pending frames become no-ops and OnCancel runs
// once. Cancelling a settled handle does nothing.
//
// Cancel belongs on the scheduler goroutine, like the frames it stops.
func (h *Handle) Cancel() {
	if !h.status.CompareAndSwap(int32(Pending), int32(Cancelled)) {
		return
	}
	if h.onCancel != nil {
		h.onCancel()
	}
	close(h.done)
}

func (h *Handle) resolve() {
	if h.status.CompareAndSwap(int32(Pending), int32(Resolved)) {
		close(h.done)
	}
}
