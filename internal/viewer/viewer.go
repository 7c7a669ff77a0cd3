// Package viewer is the panorama navigation engine. It owns the view state
// and turns user input, timers and configuration into camera motion.
//
// A Viewer is driven from a single goroutine: the one pumping its
// animation.Scheduler. None of its methods are safe for concurrent use.
package viewer

import (
	"errors"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/config"
	"github.com/Faultbox/panosphere/internal/engine/camera"
	"github.com/Faultbox/panosphere/internal/event"
	"github.com/Faultbox/panosphere/internal/logger"
	"github.com/Faultbox/panosphere/internal/system"
	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/animation"
	"github.com/Faultbox/panosphere/pkg/ranges"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

var (
	// ErrNoPanorama is returned by texture operations before a panorama is set.
	ErrNoPanorama = errors.New("no panorama loaded")
	// ErrGyroscopeUnsupported is returned when the host has no orientation sensor.
	ErrGyroscopeUnsupported = errors.New("gyroscope not supported")
	// ErrInvalidSize is returned for a viewport with a non-positive side.
	ErrInvalidSize = errors.New("invalid viewport size")
)

// Options configures a Viewer.
type Options struct {
	Config       config.ViewerConfig
	Scheduler    animation.Scheduler
	Bus          *event.Bus           // nil creates a private bus
	Capabilities *system.Capabilities // nil means headless
	Width        int
	Height       int
}

// Viewer holds the view state of one panorama.
type Viewer struct {
	cfg   config.ViewerConfig
	sched animation.Scheduler
	bus   *event.Bus
	caps  *system.Capabilities
	log   *zap.Logger

	cam     camera.Camera
	ranges  ranges.Constraint
	zoomLvl float64
	width   float64
	height  float64

	path     string
	geometry *sphere.Geometry

	// Current go-to or inertia animation.
	anim *animation.Handle

	auto    autorotateState
	gyro    gyroscopeState
	pointer pointerState
	pinch   pinchState
}

// New creates a viewer at the configured default position and zoom.
// The config is normalized on a private copy; repairs are logged.
func New(opts Options) (*Viewer, error) {
	if opts.Scheduler == nil {
		return nil, errors.New("viewer: scheduler is required")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrInvalidSize
	}

	v := &Viewer{
		cfg:   opts.Config,
		sched: opts.Scheduler,
		bus:   opts.Bus,
		caps:  opts.Capabilities,
		log:   logger.Named("viewer"),
	}
	if v.bus == nil {
		v.bus = event.NewBus()
	}
	if v.caps == nil {
		v.caps = system.Headless()
	}

	// Copy slices so normalization doesn't reach into the caller's config.
	v.cfg.LongitudeRange = append([]config.Angle(nil), opts.Config.LongitudeRange...)
	v.cfg.LatitudeRange = append([]config.Angle(nil), opts.Config.LatitudeRange...)
	for _, w := range v.cfg.Normalize() {
		v.log.Warn("config adjusted", zap.String("reason", w))
	}

	if r := v.cfg.LongitudeRange; r != nil {
		v.ranges.Longitude = &ranges.Window{Min: r[0].Radians(), Max: r[1].Radians()}
	}
	if r := v.cfg.LatitudeRange; r != nil {
		v.ranges.Latitude = &ranges.Window{Min: r[0].Radians(), Max: r[1].Radians()}
	}
	v.ranges.OnEdge = func(e ranges.Edge) {
		v.bus.Publish(event.Event{Name: event.SideReached, Data: event.SideData{Edge: e}})
	}

	v.width, v.height = float64(opts.Width), float64(opts.Height)
	v.cam.Aspect = v.width / v.height

	v.Zoom(v.initialZoom())
	v.Rotate(sphere.Position{
		Longitude: v.cfg.DefaultLong.Radians(),
		Latitude:  v.cfg.DefaultLat.Radians(),
	})

	v.log.Debug("viewer created",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Float64("zoom", v.zoomLvl),
	)

	return v, nil
}

// initialZoom is the zoom level matching the default FOV.
func (v *Viewer) initialZoom() float64 {
	span := v.cfg.MaxFov - v.cfg.MinFov
	if span == 0 {
		return 0
	}
	return 100 - gomath.Round((*v.cfg.DefaultFov-v.cfg.MinFov)/span*100)
}

// Bus returns the event bus the viewer publishes on.
func (v *Viewer) Bus() *event.Bus {
	return v.bus
}

// Capabilities returns the host snapshot the viewer was built with.
func (v *Viewer) Capabilities() *system.Capabilities {
	return v.caps
}

// Camera returns a copy of the camera for rendering.
func (v *Viewer) Camera() camera.Camera {
	return v.cam
}

// Position returns the current view direction.
func (v *Viewer) Position() sphere.Position {
	return sphere.Position{Longitude: v.cam.Longitude, Latitude: v.cam.Latitude}
}

// ZoomLevel returns the zoom level, 0 (widest) to 100 (narrowest).
func (v *Viewer) ZoomLevel() float64 {
	return v.zoomLvl
}

// VFov returns the vertical field of view in radians.
func (v *Viewer) VFov() float64 {
	return v.cam.VFov
}

// HFov returns the horizontal field of view in radians.
func (v *Viewer) HFov() float64 {
	return v.cam.HFov()
}

// Size returns the viewport size in pixels.
func (v *Viewer) Size() (width, height int) {
	return int(v.width), int(v.height)
}

// Geometry returns the loaded panorama geometry.
func (v *Viewer) Geometry() (sphere.Geometry, bool) {
	if v.geometry == nil {
		return sphere.Geometry{}, false
	}
	return *v.geometry, true
}

// Rotate moves the view to p, after normalizing it and applying the
// configured ranges.
func (v *Viewer) Rotate(p sphere.Position) {
	v.rotate(p)
}

// rotate commits a position and returns the range edges it hit.
func (v *Viewer) rotate(p sphere.Position) ranges.Edge {
	p, edges := v.ranges.Apply(cleanPosition(p))

	v.cam.Longitude = p.Longitude
	v.cam.Latitude = p.Latitude

	v.bus.Publish(event.Event{Name: event.PositionUpdated, Data: event.PositionData{Position: p}})
	return edges
}

// cleanPosition puts longitude in [0, 2π) and latitude in [-π/2, π/2].
func cleanPosition(p sphere.Position) sphere.Position {
	return sphere.Position{
		Longitude: angle.Normalize(p.Longitude, 0),
		Latitude:  angle.Clamp(angle.Normalize(p.Latitude, -gomath.Pi), -angle.HalfPi, angle.HalfPi),
	}
}

// RotateTexture centers the view on a pixel of the panorama image.
func (v *Viewer) RotateTexture(x, y int) error {
	if v.geometry == nil {
		return ErrNoPanorama
	}
	v.Rotate(v.geometry.TextureToSpherical(x, y))
	return nil
}

// Zoom sets the zoom level, rounded and clamped to [0, 100].
func (v *Viewer) Zoom(level float64) {
	if gomath.IsNaN(level) {
		return
	}
	v.zoomLvl = angle.Clamp(gomath.Round(level), 0, 100)

	minFov := angle.Radians(v.cfg.MinFov)
	maxFov := angle.Radians(v.cfg.MaxFov)
	v.cam.VFov = maxFov + v.zoomLvl/100*(minFov-maxFov)
	v.ranges.SetFOV(v.cam.HFov(), v.cam.VFov)

	v.bus.Publish(event.Event{Name: event.ZoomUpdated, Data: event.ZoomData{Level: v.zoomLvl, VFov: v.cam.VFov}})

	// A wider view may push the edge of the viewport past a range.
	if v.ranges.Longitude != nil || v.ranges.Latitude != nil {
		v.rotate(v.Position())
	}
}

// ZoomIn zooms in by one level.
func (v *Viewer) ZoomIn() {
	if v.zoomLvl < 100 {
		v.Zoom(v.zoomLvl + 1)
	}
}

// ZoomOut zooms out by one level.
func (v *Viewer) ZoomOut() {
	if v.zoomLvl > 0 {
		v.Zoom(v.zoomLvl - 1)
	}
}

// Resize updates the viewport size and the horizontal field of view.
func (v *Viewer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	if float64(width) == v.width && float64(height) == v.height {
		return nil
	}

	v.width, v.height = float64(width), float64(height)
	v.cam.Aspect = v.width / v.height
	v.ranges.SetFOV(v.cam.HFov(), v.cam.VFov)

	v.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))

	if v.ranges.Longitude != nil || v.ranges.Latitude != nil {
		v.rotate(v.Position())
	}
	return nil
}

// SetPanorama installs the geometry used for texture conversions.
func (v *Viewer) SetPanorama(g sphere.Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if !v.caps.FitsTexture(g.FullWidth) {
		v.log.Warn("panorama wider than the largest texture, it will be downscaled",
			zap.Int("width", g.FullWidth),
			zap.Int("max_texture_width", v.caps.MaxTextureWidth()),
		)
	}
	v.geometry = &g
	return nil
}

// Load installs a panorama, announces it and starts the idle behaviour:
// autorotate right away when configured, otherwise after time_anim.
func (v *Viewer) Load(path string, g sphere.Geometry) error {
	if err := v.SetPanorama(g); err != nil {
		return err
	}
	v.path = path

	v.log.Info("panorama loaded",
		zap.String("path", path),
		zap.Int("width", g.FullWidth),
		zap.Int("height", g.FullHeight),
	)
	v.bus.Publish(event.Event{Name: event.PanoramaLoaded, Data: event.PanoramaData{Path: path, Geometry: g}})

	switch {
	case v.cfg.Autorotate:
		v.StartAutorotate()
	case v.cfg.TimeAnim > 0:
		v.ScheduleAutorotate()
	}
	return nil
}

// StopAnimation cancels the running go-to or inertia animation, if any.
func (v *Viewer) StopAnimation() {
	if v.anim != nil {
		v.anim.Cancel()
		v.anim = nil
	}
}

// StopAll stops every automatic motion.
func (v *Viewer) StopAll() {
	v.StopAutorotate()
	v.StopAnimation()
	v.StopGyroscope()
}
