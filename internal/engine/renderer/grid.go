package renderer

import (
	gomath "math"

	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

// Grid defaults: a line every 15° with 96 segments per full circle.
const (
	DefaultGridStep     = gomath.Pi / 12
	DefaultGridSegments = 96
)

// GridLines returns GL_LINES vertices for meridians and parallels on the
// unit sphere, spaced step radians apart. Poles are left out.
func GridLines(step float64, segments int) []float32 {
	var out []float32
	push := func(lon, lat float64) {
		v := sphere.ToVector(lon, lat)
		out = append(out, float32(v.X), float32(v.Y), float32(v.Z))
	}

	// Meridians run pole to pole, half a circle each.
	half := segments / 2
	for lon := 0.0; lon < angle.TwoPi-1e-9; lon += step {
		for i := 0; i < half; i++ {
			lat0 := -angle.HalfPi + float64(i)/float64(half)*gomath.Pi
			lat1 := -angle.HalfPi + float64(i+1)/float64(half)*gomath.Pi
			push(lon, lat0)
			push(lon, lat1)
		}
	}

	// Parallels, skipping the degenerate circles at the poles.
	for lat := -angle.HalfPi + step; lat < angle.HalfPi-1e-9; lat += step {
		for i := 0; i < segments; i++ {
			push(float64(i)/float64(segments)*angle.TwoPi, lat)
			push(float64(i+1)/float64(segments)*angle.TwoPi, lat)
		}
	}

	return out
}
