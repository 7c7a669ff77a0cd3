// Package sensor turns raw motion sensor readings into device orientation
// angles.
package sensor

import (
	gomath "math"
	"time"

	"github.com/Faultbox/panosphere/pkg/math"
)

// MaxStep is the longest gap between two readings that is integrated.
// Longer gaps mean the sensor was paused, and the old rate no longer holds.
const MaxStep = 250 * time.Millisecond

// A gyroscope has no absolute reference, so integration starts from a
// device held upright facing the screen: beta = 90°.
var upright = math.QuatFromAxisAngle(math.Vec3{X: 1}, gomath.Pi/2)

// Gyro integrates angular rates into a device orientation. Rates are in
// radians per second around the device axes: X to the right of the screen,
// Y to its top, Z out of it.
type Gyro struct {
	q       math.Quat // device to earth
	last    time.Duration
	started bool
}

// NewGyro returns an integrator at the upright pose.
func NewGyro() *Gyro {
	g := &Gyro{}
	g.Reset()
	return g
}

// Reset returns to the upright pose and forgets the last reading time.
func (g *Gyro) Reset() {
	g.q = upright
	g.started = false
}

// Update integrates the rates measured at t and returns the orientation.
func (g *Gyro) Update(rates math.Vec3, t time.Duration) (alpha, beta, gamma float64) {
	if g.started {
		dt := t - g.last
		if dt > 0 && dt <= MaxStep {
			if w := rates.Length(); w > 0 {
				step := math.QuatFromAxisAngle(rates.Scale(1/w), w*dt.Seconds())
				g.q = g.q.Mul(step).Normalize()
			}
		}
	}
	g.started = true
	g.last = t

	return g.Euler()
}

// Euler returns the orientation as device orientation angles, in radians:
// the rotation is Rz(alpha) * Rx(beta) * Ry(gamma).
func (g *Gyro) Euler() (alpha, beta, gamma float64) {
	x, y, z, w := g.q.X, g.q.Y, g.q.Z, g.q.W

	r21 := 2 * (y*z + w*x)
	beta = gomath.Asin(gomath.Max(-1, gomath.Min(1, r21)))

	if gomath.Abs(r21) > 1-1e-9 {
		// Upright or upside down: alpha and gamma turn about the same
		// axis, so all of it goes to alpha.
		r00 := 1 - 2*(y*y+z*z)
		r10 := 2 * (x*y + w*z)
		return gomath.Atan2(r10, r00), beta, 0
	}

	r01 := 2 * (x*y - w*z)
	r11 := 1 - 2*(x*x+z*z)
	r20 := 2 * (x*z - w*y)
	r22 := 1 - 2*(x*x+y*y)
	return gomath.Atan2(-r01, r11), beta, gomath.Atan2(-r20, r22)
}
