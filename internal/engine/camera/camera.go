// Package camera provides the panorama camera sitting at the center of the sphere.
package camera

import (
	gomath "math"

	"github.com/Faultbox/panosphere/pkg/math"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

// Clip planes for the projection. The camera sits at the origin inside a
// unit-radius sphere, so anything past the sphere is never drawn.
const (
	NearPlane = 0.01
	FarPlane  = 10.0
)

// Camera looks out from the center of the panorama sphere.
type Camera struct {
	// View direction (radians)
	Longitude float64
	Latitude  float64

	// Projection
	VFov   float64 // Vertical field of view (radians)
	Aspect float64 // Width / height
}

// New creates a camera looking at the panorama center with the given
// vertical FOV.
func New(vFov, aspect float64) *Camera {
	return &Camera{
		VFov:   vFov,
		Aspect: aspect,
	}
}

// HFov returns the horizontal field of view for the current aspect ratio.
func (c *Camera) HFov() float64 {
	return HFov(c.VFov, c.Aspect)
}

// HFov converts a vertical FOV to a horizontal one.
func HFov(vFov, aspect float64) float64 {
	return 2 * gomath.Atan(gomath.Tan(vFov/2)*aspect)
}

// Direction returns the unit forward vector.
func (c *Camera) Direction() math.Vec3 {
	return sphere.ToVector(c.Longitude, c.Latitude)
}

// Right returns the unit vector pointing to the right of the screen.
// It stays horizontal, including when looking straight at a pole.
func (c *Camera) Right() math.Vec3 {
	return math.Vec3{
		X: -gomath.Cos(c.Longitude),
		Y: 0,
		Z: -gomath.Sin(c.Longitude),
	}
}

// Up returns the unit vector pointing to the top of the screen.
func (c *Camera) Up() math.Vec3 {
	return c.Right().Cross(c.Direction())
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(math.Vec3{}, c.Direction(), c.Up())
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.VFov, c.Aspect, NearPlane, FarPlane)
}

// ViewProjection returns projection * view, ready for upload.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Unproject converts viewport pixel coordinates to a unit world direction.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
func (c *Camera) Unproject(screenX, screenY, viewportW, viewportH float64) math.Vec3 {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	tanY := gomath.Tan(c.VFov / 2)
	tanX := tanY * c.Aspect

	dir := c.Direction().
		Add(c.Right().Scale(ndcX * tanX)).
		Add(c.Up().Scale(ndcY * tanY))
	return dir.Normalize()
}

// Pick returns the spherical position under the given pixel.
func (c *Camera) Pick(screenX, screenY, viewportW, viewportH float64) sphere.Position {
	return sphere.FromVector(c.Unproject(screenX, screenY, viewportW, viewportH))
}
