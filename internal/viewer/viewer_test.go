package viewer

import (
	gomath "math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/panosphere/internal/config"
	"github.com/Faultbox/panosphere/internal/event"
	"github.com/Faultbox/panosphere/internal/frame"
	"github.com/Faultbox/panosphere/internal/system"
	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/ranges"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

const eps = 1e-9

var approx = cmpopts.EquateApprox(0, eps)

// newTestViewer builds a 1000x500 viewer on a manual frame loop. The
// default config puts it at zoom 50, a 60° vertical FOV.
func newTestViewer(t *testing.T, mutate func(*config.ViewerConfig), opts ...system.Option) (*Viewer, *frame.Loop) {
	t.Helper()

	cfg := config.Default().Viewer
	if mutate != nil {
		mutate(&cfg)
	}

	loop := frame.NewLoop()
	v, err := New(Options{
		Config:       cfg,
		Scheduler:    loop,
		Capabilities: system.Headless(opts...),
		Width:        1000,
		Height:       500,
	})
	require.NoError(t, err)
	return v, loop
}

// record collects the payloads published under name.
func record[T any](v *Viewer, name string) *[]T {
	var got []T
	v.Bus().Subscribe(name, func(e event.Event) {
		got = append(got, e.Data.(T))
	})
	return &got
}

func TestNewDefaults(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	assert.Equal(t, 50.0, v.ZoomLevel())
	assert.InDelta(t, gomath.Pi/3, v.VFov(), eps)
	assert.InDelta(t, 2*gomath.Atan(gomath.Tan(gomath.Pi/6)*2), v.HFov(), eps)
	assert.Equal(t, sphere.Position{}, v.Position())

	w, h := v.Size()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)

	_, ok := v.Geometry()
	assert.False(t, ok)
}

func TestNewDefaultPositionAndFov(t *testing.T) {
	fov := 45.0
	v, _ := newTestViewer(t, func(c *config.ViewerConfig) {
		c.DefaultLong = config.Angle(-gomath.Pi / 2)
		c.DefaultLat = 0.3
		c.DefaultFov = &fov
	})

	if diff := cmp.Diff(sphere.Position{Longitude: 3 * gomath.Pi / 2, Latitude: 0.3}, v.Position(), approx); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
	// 45° sits a quarter of the way from 30° to 90°.
	assert.Equal(t, 75.0, v.ZoomLevel())
	assert.InDelta(t, angle.Radians(45), v.VFov(), eps)
}

func TestNewDoesNotTouchCallerConfig(t *testing.T) {
	cfg := config.Default().Viewer
	cfg.LongitudeRange = []config.Angle{-1, 1}

	_, err := New(Options{Config: cfg, Scheduler: frame.NewLoop(), Width: 10, Height: 10})
	require.NoError(t, err)

	assert.Equal(t, []config.Angle{-1, 1}, cfg.LongitudeRange)
	assert.Nil(t, cfg.DefaultFov)
}

func TestNewInvalid(t *testing.T) {
	_, err := New(Options{Config: config.Default().Viewer, Width: 10, Height: 10})
	assert.Error(t, err)

	_, err = New(Options{Config: config.Default().Viewer, Scheduler: frame.NewLoop(), Width: 0, Height: 10})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestRotateCleansPosition(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	got := record[event.PositionData](v, event.PositionUpdated)

	v.Rotate(sphere.Position{Longitude: -gomath.Pi / 2, Latitude: 2})

	want := sphere.Position{Longitude: 3 * gomath.Pi / 2, Latitude: gomath.Pi / 2}
	if diff := cmp.Diff(want, v.Position(), approx); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, *got, 1)
	assert.Equal(t, v.Position(), (*got)[0].Position)
}

func TestRotateLatitudeWrap(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	// 3π/2 folds to -π/2 before clamping.
	v.Rotate(sphere.Position{Longitude: 1, Latitude: 3 * gomath.Pi / 2})
	assert.InDelta(t, -gomath.Pi/2, v.Position().Latitude, eps)
}

func TestRotateAppliesRanges(t *testing.T) {
	v, _ := newTestViewer(t, func(c *config.ViewerConfig) {
		c.LongitudeRange = []config.Angle{-1.5, 1.5}
		c.LatitudeRange = []config.Angle{-0.8, 0.8}
	})
	sides := record[event.SideData](v, event.SideReached)

	half := v.HFov() / 2
	v.Rotate(sphere.Position{Longitude: 2, Latitude: 0.7})

	assert.InDelta(t, 1.5-half, v.Position().Longitude, eps)
	assert.InDelta(t, 0.8-v.VFov()/2, v.Position().Latitude, eps)
	assert.Equal(t, []event.SideData{{Edge: ranges.EdgeRight | ranges.EdgeTop}}, *sides)
}

func TestRotateTexture(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	assert.ErrorIs(t, v.RotateTexture(10, 10), ErrNoPanorama)

	require.NoError(t, v.SetPanorama(sphere.FullGeometry(8000, 4000)))
	require.NoError(t, v.RotateTexture(6000, 1000))

	want := sphere.Position{Longitude: gomath.Pi / 2, Latitude: gomath.Pi / 4}
	if diff := cmp.Diff(want, v.Position(), approx); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
}

func TestZoom(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	got := record[event.ZoomData](v, event.ZoomUpdated)

	v.Zoom(0)
	assert.InDelta(t, gomath.Pi/2, v.VFov(), eps)

	v.Zoom(100)
	assert.InDelta(t, gomath.Pi/6, v.VFov(), eps)

	v.Zoom(150)
	assert.Equal(t, 100.0, v.ZoomLevel())

	v.Zoom(33.4)
	assert.Equal(t, 33.0, v.ZoomLevel())

	v.Zoom(gomath.NaN())
	assert.Equal(t, 33.0, v.ZoomLevel())

	require.Len(t, *got, 4)
	assert.Equal(t, 33.0, (*got)[3].Level)
	assert.InDelta(t, v.VFov(), (*got)[3].VFov, eps)
}

func TestZoomInOut(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	v.ZoomIn()
	assert.Equal(t, 51.0, v.ZoomLevel())
	v.ZoomOut()
	v.ZoomOut()
	assert.Equal(t, 49.0, v.ZoomLevel())

	v.Zoom(100)
	got := record[event.ZoomData](v, event.ZoomUpdated)
	v.ZoomIn()
	assert.Empty(t, *got)

	v.Zoom(0)
	v.ZoomOut()
	assert.Equal(t, 0.0, v.ZoomLevel())
}

func TestWheel(t *testing.T) {
	v, _ := newTestViewer(t, func(c *config.ViewerConfig) { c.ZoomSpeed = 2 })

	v.Wheel(3)
	assert.Equal(t, 56.0, v.ZoomLevel())
	v.Wheel(-1)
	assert.Equal(t, 54.0, v.ZoomLevel())

	off, _ := newTestViewer(t, func(c *config.ViewerConfig) { c.MouseWheel = false })
	off.Wheel(5)
	assert.Equal(t, 50.0, off.ZoomLevel())
}

func TestResize(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	require.NoError(t, v.Resize(500, 500))
	assert.InDelta(t, v.VFov(), v.HFov(), eps)
	assert.InDelta(t, 1.0, v.Camera().Aspect, eps)

	assert.ErrorIs(t, v.Resize(0, 100), ErrInvalidSize)
	assert.ErrorIs(t, v.Resize(100, -1), ErrInvalidSize)
}

func TestResizeReappliesRanges(t *testing.T) {
	v, _ := newTestViewer(t, func(c *config.ViewerConfig) {
		c.LongitudeRange = []config.Angle{-1.5, 1.5}
	})
	v.Rotate(sphere.Position{Longitude: 0.6})
	require.InDelta(t, 0.6, v.Position().Longitude, eps)

	// Going wider pushes the right edge of the viewport past the range.
	require.NoError(t, v.Resize(2000, 500))
	assert.InDelta(t, 1.5-v.HFov()/2, v.Position().Longitude, eps)
}

func TestSetPanorama(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	err := v.SetPanorama(sphere.Geometry{FullWidth: 100, FullHeight: 50, CroppedWidth: 200, CroppedHeight: 50})
	assert.ErrorIs(t, err, sphere.ErrInvalidGeometry)

	g := sphere.FullGeometry(6000, 3000)
	require.NoError(t, v.SetPanorama(g))
	got, ok := v.Geometry()
	assert.True(t, ok)
	assert.Equal(t, g, got)
}

func TestLoadPublishes(t *testing.T) {
	v, _ := newTestViewer(t, func(c *config.ViewerConfig) { c.TimeAnim = 0 })
	got := record[event.PanoramaData](v, event.PanoramaLoaded)

	g := sphere.FullGeometry(4000, 2000)
	require.NoError(t, v.Load("lake.jpg", g))

	assert.Equal(t, []event.PanoramaData{{Path: "lake.jpg", Geometry: g}}, *got)
	assert.False(t, v.IsAutorotating())
}

func TestLoadInvalid(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	got := record[event.PanoramaData](v, event.PanoramaLoaded)

	assert.Error(t, v.Load("bad.jpg", sphere.Geometry{}))
	assert.Empty(t, *got)
}
