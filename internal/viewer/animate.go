package viewer

import (
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/animation"
	"github.com/Faultbox/panosphere/pkg/easing"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

// Animate moves the view to p at the given angular speed ("2rpm", "30dps",
// ...), following the shortest way around. An empty speed rotates
// instantly. The returned handle resolves when the view arrives and is
// cancelled by any later motion.
func (v *Viewer) Animate(p sphere.Position, speed string) (*animation.Handle, error) {
	var perSecond float64
	if speed != "" {
		var err error
		if perSecond, err = angle.ParseSpeed(speed); err != nil {
			return nil, err
		}
	}

	v.StopAll()

	target, _ := v.ranges.Apply(cleanPosition(p))
	current := v.Position()

	dist := sphere.Distance(current, target)
	if perSecond == 0 || dist < 1e-3 {
		v.rotate(target)
		return animation.Completed(), nil
	}

	// Go the short way around.
	startLong, endLong := current.Longitude, target.Longitude
	if gomath.Abs(endLong-startLong) > gomath.Pi {
		if startLong > endLong {
			endLong += angle.TwoPi
		} else {
			startLong += angle.TwoPi
		}
	}

	duration := time.Duration(dist / gomath.Abs(perSecond) * float64(time.Second))

	v.log.Debug("animating",
		zap.Float64("longitude", target.Longitude),
		zap.Float64("latitude", target.Latitude),
		zap.Duration("duration", duration),
	)

	v.anim = animation.Start(v.sched, animation.Spec{
		Properties: map[string]animation.Range{
			"longitude": {Start: startLong, End: endLong},
			"latitude":  {Start: current.Latitude, End: target.Latitude},
		},
		Duration: duration,
		Easing:   easing.InOutSine,
		OnTick: func(values animation.Values, _ float64) {
			v.rotate(sphere.Position{Longitude: values["longitude"], Latitude: values["latitude"]})
		},
	})
	return v.anim, nil
}
