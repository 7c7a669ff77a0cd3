package config

import (
	"fmt"
	"math"

	"github.com/Faultbox/panosphere/pkg/angle"
)

// Normalize repairs inconsistent viewer settings in place and puts every
// angle in its canonical range: longitudes in [0, 2π), latitudes in
// [-π/2, π/2]. Each repair is described in the returned warnings.
func (v *ViewerConfig) Normalize() []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if v.LongitudeRange != nil && len(v.LongitudeRange) != 2 {
		v.LongitudeRange = nil
		warn("longitude_range must have exactly two elements, ignoring it")
	}

	switch {
	case v.LatitudeRange != nil && len(v.LatitudeRange) != 2:
		v.LatitudeRange = nil
		warn("latitude_range must have exactly two elements, ignoring it")
	case v.LatitudeRange != nil && v.LatitudeRange[0] > v.LatitudeRange[1]:
		v.LatitudeRange[0], v.LatitudeRange[1] = v.LatitudeRange[1], v.LatitudeRange[0]
		warn("latitude_range values must be ordered, swapped them")
	case v.LatitudeRange == nil && (v.TiltUpMax != nil || v.TiltDownMax != nil):
		lo, hi := Angle(-angle.HalfPi), Angle(angle.HalfPi)
		if v.TiltDownMax != nil {
			lo = *v.TiltDownMax - math.Pi/4
		}
		if v.TiltUpMax != nil {
			hi = *v.TiltUpMax + math.Pi/4
		}
		v.LatitudeRange = []Angle{lo, hi}
		warn("tilt_up_max and tilt_down_max are deprecated, use latitude_range instead")
	}
	v.TiltUpMax, v.TiltDownMax = nil, nil

	if v.MaxFov < v.MinFov {
		v.MinFov, v.MaxFov = DefaultMinFov, DefaultMaxFov
		warn("max_fov cannot be lower than min_fov, using %v and %v", DefaultMinFov, DefaultMaxFov)
	}
	v.MinFov = angle.Clamp(v.MinFov, 1, 179)
	v.MaxFov = angle.Clamp(v.MaxFov, 1, 179)

	if v.DefaultFov == nil {
		fov := v.MaxFov/2 + v.MinFov/2
		v.DefaultFov = &fov
	} else {
		fov := angle.Clamp(*v.DefaultFov, v.MinFov, v.MaxFov)
		v.DefaultFov = &fov
	}

	v.DefaultLong = Angle(angle.Normalize(v.DefaultLong.Radians(), 0))
	v.DefaultLat = latitude(v.DefaultLat)

	if v.AnimLat == nil {
		lat := v.DefaultLat
		v.AnimLat = &lat
	} else {
		lat := latitude(*v.AnimLat)
		v.AnimLat = &lat
	}

	for i, a := range v.LongitudeRange {
		v.LongitudeRange[i] = Angle(angle.Normalize(a.Radians(), 0))
	}
	for i, a := range v.LatitudeRange {
		v.LatitudeRange[i] = latitude(a)
	}

	if v.MoveSpeed <= 0 {
		v.MoveSpeed = 1
		warn("move_speed must be positive, using 1")
	}
	if v.ZoomSpeed <= 0 {
		v.ZoomSpeed = 1
		warn("zoom_speed must be positive, using 1")
	}
	if v.TimeAnim < 0 {
		v.TimeAnim = 0
	}

	return warnings
}

// latitude folds a into [-π, π) and clamps it to the poles.
func latitude(a Angle) Angle {
	return Angle(angle.Clamp(angle.Normalize(a.Radians(), -math.Pi), -angle.HalfPi, angle.HalfPi))
}
