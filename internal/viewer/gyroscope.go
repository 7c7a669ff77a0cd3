package viewer

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/event"
	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/math"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

type gyroscopeState struct {
	enabled    bool
	calibrated bool
	offset     float64 // added to sensor longitude so enabling doesn't jump
}

// IsGyroscopeEnabled reports whether device orientation drives the view.
func (v *Viewer) IsGyroscopeEnabled() bool {
	return v.gyro.enabled
}

// StartGyroscope lets device orientation drive the view.
func (v *Viewer) StartGyroscope() error {
	if !v.caps.Gyroscope() {
		return ErrGyroscopeUnsupported
	}
	if v.gyro.enabled {
		return nil
	}

	v.StopAll()
	v.gyro = gyroscopeState{enabled: true}

	v.log.Debug("gyroscope control started")
	v.bus.Publish(event.Event{Name: event.Gyroscope, Data: event.ToggleData{Enabled: true}})
	return nil
}

// StopGyroscope returns control to the user.
func (v *Viewer) StopGyroscope() {
	if !v.gyro.enabled {
		return
	}
	v.gyro.enabled = false

	v.log.Debug("gyroscope control stopped")
	v.bus.Publish(event.Event{Name: event.Gyroscope, Data: event.ToggleData{Enabled: false}})
}

// ToggleGyroscope starts or stops gyroscope control.
func (v *Viewer) ToggleGyroscope() error {
	if v.gyro.enabled {
		v.StopGyroscope()
		return nil
	}
	return v.StartGyroscope()
}

// HandleOrientation feeds one device orientation sample, in radians: alpha
// around the vertical axis, beta front to back, gamma left to right, and
// the screen rotation. It is ignored while gyroscope control is off.
func (v *Viewer) HandleOrientation(alpha, beta, gamma, screen float64) {
	if !v.gyro.enabled {
		return
	}

	p := sphere.FromVector(deviceDirection(alpha, beta, gamma, screen))
	if gomath.IsNaN(p.Latitude) {
		return
	}

	if !v.gyro.calibrated {
		v.gyro.offset = v.cam.Longitude - p.Longitude
		v.gyro.calibrated = true
		v.log.Debug("gyroscope calibrated", zap.Float64("offset", angle.Normalize(v.gyro.offset, 0)))
	}
	p.Longitude += v.gyro.offset

	v.rotate(p)
}

// Quarter turn around X: the camera looks out of the back of the device,
// not its top.
var backOfDevice = math.QuatFromAxisAngle(math.Vec3{X: 1}, -angle.HalfPi)

// deviceDirection returns where the back of the device points.
func deviceDirection(alpha, beta, gamma, screen float64) math.Vec3 {
	q := math.QuatFromEulerYXZ(beta, alpha, -gamma).
		Mul(backOfDevice).
		Mul(math.QuatFromAxisAngle(math.Vec3{Z: 1}, -screen))
	return q.Rotate(math.Vec3{Z: -1})
}
