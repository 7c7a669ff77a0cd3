// Package sphere converts between equirectangular texture pixels, spherical
// (longitude, latitude) positions and unit direction vectors.
package sphere

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/math"
)

// ErrInvalidGeometry is returned by Geometry.Validate.
var ErrInvalidGeometry = errors.New("invalid panorama geometry")

// Position is a view direction in radians.
type Position struct {
	Longitude float64
	Latitude  float64
}

// TextureCoord is a pixel offset into the panorama image.
type TextureCoord struct {
	X, Y int
}

// Geometry describes how a loaded image maps onto the full sphere.
// Cropped panoramas cover only part of a conceptual full-size canvas.
type Geometry struct {
	FullWidth     int
	FullHeight    int
	CroppedWidth  int
	CroppedHeight int
	CroppedX      int
	CroppedY      int
}

// FullGeometry returns the geometry of an uncropped width x height panorama.
func FullGeometry(width, height int) Geometry {
	return Geometry{
		FullWidth:     width,
		FullHeight:    height,
		CroppedWidth:  width,
		CroppedHeight: height,
	}
}

// Validate checks that the cropped area lies inside the full canvas.
func (g Geometry) Validate() error {
	switch {
	case g.FullWidth <= 0 || g.FullHeight <= 0:
		return fmt.Errorf("%w: full size %dx%d", ErrInvalidGeometry, g.FullWidth, g.FullHeight)
	case g.CroppedWidth <= 0 || g.CroppedHeight <= 0:
		return fmt.Errorf("%w: cropped size %dx%d", ErrInvalidGeometry, g.CroppedWidth, g.CroppedHeight)
	case g.CroppedX < 0 || g.CroppedY < 0:
		return fmt.Errorf("%w: negative crop offset (%d,%d)", ErrInvalidGeometry, g.CroppedX, g.CroppedY)
	case g.CroppedX+g.CroppedWidth > g.FullWidth || g.CroppedY+g.CroppedHeight > g.FullHeight:
		return fmt.Errorf("%w: crop %dx%d+%d+%d exceeds %dx%d", ErrInvalidGeometry,
			g.CroppedWidth, g.CroppedHeight, g.CroppedX, g.CroppedY, g.FullWidth, g.FullHeight)
	}
	return nil
}

// TextureToSpherical converts a pixel of the cropped image to a position.
//
// Column 0 of the full canvas maps to longitude π (the back of the sphere),
// so the centre column faces forward.
func (g Geometry) TextureToSpherical(x, y int) Position {
	relX := float64(x+g.CroppedX) / float64(g.FullWidth) * angle.TwoPi
	relY := float64(y+g.CroppedY) / float64(g.FullHeight) * gomath.Pi

	lon := relX + gomath.Pi
	if relX >= gomath.Pi {
		lon = relX - gomath.Pi
	}

	return Position{
		Longitude: lon,
		Latitude:  angle.HalfPi - relY,
	}
}

// SphericalToTexture is the inverse of TextureToSpherical, truncated to whole
// pixels.
func (g Geometry) SphericalToTexture(longitude, latitude float64) TextureCoord {
	fullW := float64(g.FullWidth)
	fullH := float64(g.FullHeight)

	relLong := longitude / angle.TwoPi * fullW
	relLat := latitude / gomath.Pi * fullH

	x := relLong - fullW/2
	if longitude < gomath.Pi {
		x = relLong + fullW/2
	}

	return TextureCoord{
		X: int(x) - g.CroppedX,
		Y: int(fullH/2-relLat) - g.CroppedY,
	}
}

// ToVector returns the unit direction for a position.
func ToVector(longitude, latitude float64) math.Vec3 {
	cosLat := gomath.Cos(latitude)
	return math.Vec3{
		X: -cosLat * gomath.Sin(longitude),
		Y: gomath.Sin(latitude),
		Z: cosLat * gomath.Cos(longitude),
	}
}

// FromVector returns the position a vector points at. v need not be unit
// length. The zero vector yields a NaN latitude, which is passed through.
//
// Longitudes come back in (0, 2π]: straight ahead is 2π, not 0.
func FromVector(v math.Vec3) Position {
	phi := gomath.Acos(v.Y / v.Length())
	theta := gomath.Atan2(v.X, v.Z)

	lon := angle.TwoPi - theta
	if theta < 0 {
		lon = -theta
	}

	return Position{
		Longitude: lon,
		Latitude:  angle.HalfPi - phi,
	}
}

// Distance returns the great-circle angle between two positions.
func Distance(a, b Position) float64 {
	d := ToVector(a.Longitude, a.Latitude).Dot(ToVector(b.Longitude, b.Latitude))
	return gomath.Acos(angle.Clamp(d, -1, 1))
}
