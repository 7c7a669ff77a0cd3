package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/event"
	"github.com/Faultbox/panosphere/pkg/ranges"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

// Fraction of the distance to anim_lat covered each autorotate frame.
const autorotateLatitudeEase = 1.0 / 200

type autorotateState struct {
	running bool
	gen     int  // bumped on every start/stop to retire stale callbacks
	idle    int  // bumped to retire a pending idle timer
	reverse bool // true after bouncing off a range edge

	started bool
	last    time.Duration
}

// IsAutorotating reports whether automatic rotation is running.
func (v *Viewer) IsAutorotating() bool {
	return v.auto.running
}

// StartAutorotate stops other motion and spins the view at anim_speed,
// easing the latitude towards anim_lat.
func (v *Viewer) StartAutorotate() {
	v.StopAll()

	v.auto.running = true
	v.auto.gen++
	v.auto.reverse = false
	v.auto.started = false

	gen := v.auto.gen
	v.sched.RequestFrame(func(now time.Duration) { v.autorotateFrame(gen, now) })

	v.log.Debug("autorotate started", zap.Float64("speed", v.cfg.AnimSpeed.RadiansPerSecond()))
	v.bus.Publish(event.Event{Name: event.Autorotate, Data: event.ToggleData{Enabled: true}})
}

func (v *Viewer) autorotateFrame(gen int, now time.Duration) {
	if !v.auto.running || v.auto.gen != gen {
		return
	}

	var elapsed time.Duration
	if v.auto.started {
		elapsed = now - v.auto.last
	}
	v.auto.started = true
	v.auto.last = now

	speed := v.cfg.AnimSpeed.RadiansPerSecond()
	if v.auto.reverse {
		speed = -speed
	}

	lat := v.cam.Latitude
	target := v.cfg.AnimLat.Radians()
	edges := v.rotate(sphere.Position{
		Longitude: v.cam.Longitude + speed*elapsed.Seconds(),
		Latitude:  lat - (lat-target)*autorotateLatitudeEase,
	})

	if hitSide(edges, speed) {
		if !v.cfg.AutorotateBounce {
			v.StopAutorotate()
			return
		}
		v.auto.reverse = !v.auto.reverse
	}

	v.sched.RequestFrame(func(now time.Duration) { v.autorotateFrame(gen, now) })
}

// hitSide reports whether the rotation ran into the side it was heading to.
func hitSide(edges ranges.Edge, speed float64) bool {
	return (speed > 0 && edges.Has(ranges.EdgeRight)) || (speed < 0 && edges.Has(ranges.EdgeLeft))
}

// StopAutorotate stops automatic rotation and disarms the idle timer.
func (v *Viewer) StopAutorotate() {
	v.auto.idle++
	if !v.auto.running {
		return
	}

	v.auto.running = false
	v.auto.gen++

	v.log.Debug("autorotate stopped")
	v.bus.Publish(event.Event{Name: event.Autorotate, Data: event.ToggleData{Enabled: false}})
}

// ToggleAutorotate starts or stops automatic rotation.
func (v *Viewer) ToggleAutorotate() {
	if v.auto.running {
		v.StopAutorotate()
	} else {
		v.StartAutorotate()
	}
}

// ScheduleAutorotate starts automatic rotation after time_anim unless
// something stops it first. A zero time_anim disables the timer.
func (v *Viewer) ScheduleAutorotate() {
	if v.cfg.TimeAnim <= 0 {
		return
	}

	v.auto.idle++
	idle := v.auto.idle
	v.sched.After(v.cfg.TimeAnim, func() {
		if v.auto.idle == idle && !v.auto.running {
			v.StartAutorotate()
		}
	})
}
