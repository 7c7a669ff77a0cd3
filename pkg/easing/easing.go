// Package easing is a catalog of named time-to-progress curves.
//
// Every curve maps t in [0, 1] to progress with f(0) = 0 and f(1) = 1.
package easing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknown is returned by Lookup for a name not in the catalog.
var ErrUnknown = errors.New("unknown easing")

// Func maps linear time progress to animation progress.
type Func func(t float64) float64

// Linear has no acceleration.
func Linear(t float64) float64 { return t }

// InQuad accelerates from zero velocity.
func InQuad(t float64) float64 { return t * t }

// OutQuad decelerates to zero velocity.
func OutQuad(t float64) float64 { return t * (2 - t) }

// InOutQuad accelerates until halfway, then decelerates.
func InOutQuad(t float64) float64 {
	if t < .5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// InCubic accelerates from zero velocity, cubically.
func InCubic(t float64) float64 { return t * t * t }

// OutCubic decelerates to zero velocity, cubically.
func OutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// InOutCubic accelerates until halfway, then decelerates, cubically.
func InOutCubic(t float64) float64 {
	if t < .5 {
		return 4 * t * t * t
	}
	return (t-1)*(2*t-2)*(2*t-2) + 1
}

// InQuart accelerates from zero velocity, to the fourth power.
func InQuart(t float64) float64 { return t * t * t * t }

// OutQuart decelerates to zero velocity, to the fourth power.
func OutQuart(t float64) float64 {
	t--
	return 1 - t*t*t*t
}

// InOutQuart is the symmetric quartic ease.
func InOutQuart(t float64) float64 {
	if t < .5 {
		return 8 * t * t * t * t
	}
	t--
	return 1 - 8*t*t*t*t
}

// InQuint accelerates from zero velocity, to the fifth power.
func InQuint(t float64) float64 { return t * t * t * t * t }

// OutQuint decelerates to zero velocity, to the fifth power.
func OutQuint(t float64) float64 {
	t--
	return 1 + t*t*t*t*t
}

// InOutQuint is the symmetric quintic ease.
func InOutQuint(t float64) float64 {
	if t < .5 {
		return 16 * t * t * t * t * t
	}
	t--
	return 1 + 16*t*t*t*t*t
}

// InSine, OutSine and InOutSine pin their endpoints: cos(π/2) is not exactly
// zero in floating point.

// InSine follows the first quarter of a cosine.
func InSine(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Cos(t*(math.Pi/2))
}

// OutSine follows the first quarter of a sine.
func OutSine(t float64) float64 {
	if t == 1 {
		return 1
	}
	return math.Sin(t * (math.Pi / 2))
}

// InOutSine follows half a cosine wave.
func InOutSine(t float64) float64 {
	if t == 1 {
		return 1
	}
	return .5 - .5*math.Cos(math.Pi*t)
}

// The exponential curves never reach their asymptotes, so the endpoints are
// pinned explicitly.

// InExpo doubles its value every tenth of the run.
func InExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

// OutExpo halves the remaining distance every tenth of the run.
func OutExpo(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// InOutExpo is the symmetric exponential ease.
func InOutExpo(t float64) float64 {
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	t = t*2 - 1
	if t < 0 {
		return .5 * math.Pow(2, 10*t)
	}
	return 1 - .5*math.Pow(2, -10*t)
}

// InCirc follows a quarter circle, slow at the start.
func InCirc(t float64) float64 { return 1 - math.Sqrt(1-t*t) }

// OutCirc follows a quarter circle, slow at the end.
func OutCirc(t float64) float64 {
	t--
	return math.Sqrt(1 - t*t)
}

// InOutCirc joins two quarter circles.
func InOutCirc(t float64) float64 {
	t *= 2
	if t < 1 {
		return .5 - .5*math.Sqrt(1-t*t)
	}
	t -= 2
	return .5 + .5*math.Sqrt(1-t*t)
}

var catalog = map[string]Func{
	"linear":     Linear,
	"inQuad":     InQuad,
	"outQuad":    OutQuad,
	"inOutQuad":  InOutQuad,
	"inCubic":    InCubic,
	"outCubic":   OutCubic,
	"inOutCubic": InOutCubic,
	"inQuart":    InQuart,
	"outQuart":   OutQuart,
	"inOutQuart": InOutQuart,
	"inQuint":    InQuint,
	"outQuint":   OutQuint,
	"inOutQuint": InOutQuint,
	"inSine":     InSine,
	"outSine":    OutSine,
	"inOutSine":  InOutSine,
	"inExpo":     InExpo,
	"outExpo":    OutExpo,
	"inOutExpo":  InOutExpo,
	"inCirc":     InCirc,
	"outCirc":    OutCirc,
	"inOutCirc":  InOutCirc,
}

// Lookup returns the curve registered under name.
// An empty name selects Linear.
func Lookup(name string) (Func, error) {
	if name == "" {
		return Linear, nil
	}
	f, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
	return f, nil
}

// Names returns every curve name in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
