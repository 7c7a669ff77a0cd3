package app

import (
	"time"

	"github.com/Faultbox/panosphere/internal/engine/sensor"
	"github.com/Faultbox/panosphere/internal/event"
	"github.com/Faultbox/panosphere/internal/viewer"
	"github.com/Faultbox/panosphere/pkg/math"
)

// gyroFeed integrates gyroscope readings while gyroscope control is on.
type gyroFeed struct {
	viewer *viewer.Viewer
	gyro   *sensor.Gyro
}

// newGyroFeed returns the feed and the bus unsubscribe for its reset hook.
func newGyroFeed(v *viewer.Viewer) (*gyroFeed, func()) {
	f := &gyroFeed{viewer: v, gyro: sensor.NewGyro()}
	unsub := v.Bus().Subscribe(event.Gyroscope, func(e event.Event) {
		if e.Data.(event.ToggleData).Enabled {
			f.gyro.Reset()
		}
	})
	return f, unsub
}

// handle feeds one reading in radians per second around the device axes.
func (f *gyroFeed) handle(rates [3]float64, at time.Duration) {
	if !f.viewer.IsGyroscopeEnabled() {
		return
	}
	alpha, beta, gamma := f.gyro.Update(math.Vec3{X: rates[0], Y: rates[1], Z: rates[2]}, at)
	f.viewer.HandleOrientation(alpha, beta, gamma, 0)
}
