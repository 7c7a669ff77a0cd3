// Package angle provides normalization and parsing of angles and angular speeds.
//
// All angles are radians. Longitudes are conventionally kept in [0, 2π) and
// latitudes in [-π/2, π/2].
package angle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// TwoPi is a full turn.
	TwoPi = 2 * math.Pi
	// HalfPi is a quarter turn.
	HalfPi = math.Pi / 2
)

var (
	// ErrInvalidAngle is returned when a textual angle cannot be parsed.
	ErrInvalidAngle = errors.New("invalid angle")
	// ErrInvalidSpeed is returned when a textual speed cannot be parsed.
	ErrInvalidSpeed = errors.New("invalid speed")
)

// Normalize folds value into [min, min+2π).
//
// The fold is done by repeated addition or subtraction of 2π rather than
// math.Mod so the sign of the result around min is preserved.
// Non-finite values are returned unchanged.
func Normalize(value, min float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}

	// Skip whole turns first so huge inputs don't loop forever.
	if d := value - min; d >= TwoPi*64 || d < -TwoPi*64 {
		value -= math.Floor(d/TwoPi) * TwoPi
	}

	for value < min {
		value += TwoPi
	}
	for value >= min+TwoPi {
		value -= TwoPi
	}

	// Rounding in the two loops above can leave value a hair below min.
	if value < min {
		value = min
	}
	return value
}

// Clamp restricts x to [min, max]. The caller guarantees min <= max.
func Clamp(x, min, max float64) float64 {
	return math.Max(min, math.Min(max, x))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Parse reads a textual angle and normalizes it into [min, min+2π).
//
// Accepted forms: "1.2" (radians), "1.2rad", "90deg", "90°", "25%" (of a turn).
func Parse(s string, min float64) (float64, error) {
	value, err := ParseRadians(s)
	if err != nil {
		return 0, err
	}
	return Normalize(value, min), nil
}

// ParseRadians converts a textual angle to radians without normalizing it.
func ParseRadians(s string) (float64, error) {
	value, unit, err := splitUnit(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidAngle, s, err)
	}

	switch unit {
	case "", "rad", "rads", "radian", "radians":
		return value, nil
	case "deg", "degs", "degree", "degrees", "°":
		return Radians(value), nil
	case "%":
		return value / 100 * TwoPi, nil
	default:
		return 0, fmt.Errorf("%w %q: unknown unit %q", ErrInvalidAngle, s, unit)
	}
}

// ParseSpeed reads a textual angular speed and returns radians per second.
//
// A bare number is radians per second. Recognized units are rad/s, rps, rpm,
// dps, dpm and their long forms ("revolutions per minute", ...).
// Negative speeds reverse the direction of motion and zero disables it.
func ParseSpeed(s string) (float64, error) {
	value, unit, err := splitUnit(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidSpeed, s, err)
	}

	switch unit {
	case "", "rad/s", "rads", "radians per second":
		return value, nil
	case "rad/m", "radians per minute":
		return value / 60, nil
	case "dps", "deg/s", "degrees per second":
		return Radians(value), nil
	case "dpm", "deg/m", "degrees per minute":
		return Radians(value) / 60, nil
	case "rps", "revolutions per second":
		return value * TwoPi, nil
	case "rpm", "revolutions per minute":
		return value * TwoPi / 60, nil
	default:
		return 0, fmt.Errorf("%w %q: unknown unit %q", ErrInvalidSpeed, s, unit)
	}
}

// splitUnit separates the leading number of s from its trailing unit.
func splitUnit(s string) (float64, string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, "", errors.New("empty value")
	}

	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || ((c == '-' || c == '+') && end == 0) {
			end++
			continue
		}
		// Exponent, only when followed by a digit or sign.
		if (c == 'e') && end > 0 && end+1 < len(s) && strings.ContainsRune("0123456789+-", rune(s[end+1])) {
			end += 2
			continue
		}
		break
	}

	value, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed number %q", s[:end])
	}
	return value, strings.TrimSpace(s[end:]), nil
}
