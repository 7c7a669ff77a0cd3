package app

import (
	gomath "math"
	"time"

	"github.com/Faultbox/panosphere/internal/viewer"
)

type finger struct {
	x, y float64
}

// touchTracker turns finger events into viewer gestures: one finger drags,
// two fingers pinch.
type touchTracker struct {
	viewer  *viewer.Viewer
	fingers map[int64]finger
}

func newTouchTracker(v *viewer.Viewer) *touchTracker {
	return &touchTracker{viewer: v, fingers: make(map[int64]finger, 2)}
}

// down registers a finger at window pixel (x, y).
func (t *touchTracker) down(id int64, x, y float64, at time.Duration) {
	t.fingers[id] = finger{x, y}

	switch len(t.fingers) {
	case 1:
		t.viewer.PointerDown(x, y, at)
	case 2:
		t.viewer.PinchStart(t.spread())
	}
}

func (t *touchTracker) move(id int64, x, y float64, at time.Duration) {
	if _, ok := t.fingers[id]; !ok {
		return
	}
	t.fingers[id] = finger{x, y}

	switch len(t.fingers) {
	case 1:
		t.viewer.PointerMove(x, y, at)
	case 2:
		t.viewer.PinchMove(t.spread())
	}
}

func (t *touchTracker) up(id int64, x, y float64, at time.Duration) {
	if _, ok := t.fingers[id]; !ok {
		return
	}
	n := len(t.fingers)
	delete(t.fingers, id)

	switch n {
	case 1:
		t.viewer.PointerUp(x, y, at)
	case 2:
		t.viewer.PinchEnd()
	}
}

// spread returns the distance between the two fingers. Only called with
// exactly two down.
func (t *touchTracker) spread() float64 {
	var pts [2]finger
	i := 0
	for _, f := range t.fingers {
		pts[i] = f
		i++
	}
	return gomath.Hypot(pts[0].x-pts[1].x, pts[0].y-pts[1].y)
}
