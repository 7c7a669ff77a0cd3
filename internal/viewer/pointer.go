package viewer

import (
	gomath "math"
	"time"

	"github.com/Faultbox/panosphere/internal/event"
	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/animation"
	"github.com/Faultbox/panosphere/pkg/easing"
	"github.com/Faultbox/panosphere/pkg/math"
)

const (
	// MoveThreshold is the distance in pixels under which a press and
	// release count as a click.
	MoveThreshold = 4

	// InertiaWindow is how much pointer history feeds the release velocity.
	InertiaWindow = 300 * time.Millisecond
)

type pointerSample struct {
	t   time.Duration
	pos math.Vec2
}

type pointerState struct {
	down   bool
	moving bool // dragging or coasting

	startX, startY float64
	x, y           float64

	history []pointerSample
}

// IsMoving reports whether the view follows a drag or its inertia.
func (v *Viewer) IsMoving() bool {
	return v.pointer.moving
}

// PointerDown starts a drag at viewport pixel (x, y) at time t.
func (v *Viewer) PointerDown(x, y float64, t time.Duration) {
	v.StopAutorotate()
	v.StopAnimation()

	v.pointer.down = true
	v.pointer.moving = v.cfg.MouseMove
	v.pointer.startX, v.pointer.startY = x, y
	v.pointer.x, v.pointer.y = x, y

	v.pointer.history = v.pointer.history[:0]
	v.logPointer(x, y, t)
}

// PointerMove drags the view while the pointer is down.
func (v *Viewer) PointerMove(x, y float64, t time.Duration) {
	if !v.pointer.down {
		return
	}
	if v.pointer.moving {
		v.drag(x, y)
		v.logPointer(x, y, t)
	}
}

// PointerUp ends a drag. A release within MoveThreshold of the press is a
// click; otherwise the view coasts when move_inertia is enabled.
func (v *Viewer) PointerUp(x, y float64, t time.Duration) {
	if !v.pointer.down {
		return
	}
	v.pointer.down = false

	switch {
	case gomath.Abs(x-v.pointer.startX) < MoveThreshold && gomath.Abs(y-v.pointer.startY) < MoveThreshold:
		v.pointer.moving = false
		v.click(x, y)
	case v.pointer.moving && v.cfg.MoveInertia:
		v.logPointer(x, y, t)
		v.coast(x, y)
	default:
		v.pointer.moving = false
	}

	v.pointer.history = v.pointer.history[:0]
}

// drag rotates by the pointer offset since the last call, scaled so that
// crossing the whole viewport turns by one field of view.
func (v *Viewer) drag(x, y float64) {
	speed := v.cfg.MoveSpeed
	p := v.Position()
	p.Longitude -= (x - v.pointer.x) / v.width * speed * v.cam.HFov()
	p.Latitude += (y - v.pointer.y) / v.height * speed * v.cam.VFov

	v.rotate(p)

	v.pointer.x, v.pointer.y = x, y
}

// coast continues the drag along the release velocity, slowing down.
func (v *Viewer) coast(x, y float64) {
	release := math.Vec2{X: x, Y: y}
	d := release.Sub(v.pointer.history[0].pos)

	duration := time.Duration(d.Length() * float64(InertiaWindow) / 100)

	v.anim = animation.Start(v.sched, animation.Spec{
		Properties: map[string]animation.Range{
			"x": {Start: x, End: x + d.X},
			"y": {Start: y, End: y + d.Y},
		},
		Duration: duration,
		Easing:   easing.OutCirc,
		OnTick: func(values animation.Values, progress float64) {
			v.drag(values["x"], values["y"])
			if progress >= 1 {
				v.pointer.moving = false
			}
		},
		OnCancel: func() {
			v.pointer.moving = false
		},
	})
}

// logPointer records a sample and forgets what no longer describes the
// current gesture: samples older than InertiaWindow, and everything
// before a pause longer than a tenth of it.
func (v *Viewer) logPointer(x, y float64, t time.Duration) {
	h := append(v.pointer.history, pointerSample{t: t, pos: math.Vec2{X: x, Y: y}})

	start := 0
	for i, s := range h {
		switch {
		case s.t < t-InertiaWindow:
			start = i + 1
		case i > start && s.t-h[i-1].t > InertiaWindow/10:
			start = i
		}
	}

	v.pointer.history = append(h[:0], h[start:]...)
}

// click publishes the spherical and texture position under (x, y).
func (v *Viewer) click(x, y float64) {
	p := v.cam.Pick(x, y, v.width, v.height)
	p.Longitude = angle.Normalize(p.Longitude, 0)

	data := event.ClickData{ClientX: x, ClientY: y, Position: p}
	if v.geometry != nil {
		data.Texture = v.geometry.SphericalToTexture(p.Longitude, p.Latitude)
		data.HasTexture = true
	}

	v.bus.Publish(event.Event{Name: event.Click, Data: data})
}

// Wheel zooms by delta notches, positive towards the scene.
func (v *Viewer) Wheel(delta float64) {
	if !v.cfg.MouseWheel || delta == 0 {
		return
	}
	v.Zoom(v.zoomLvl + delta*v.cfg.ZoomSpeed)
}
