package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/panosphere/internal/config"
	"github.com/Faultbox/panosphere/internal/event"
	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

const ms = time.Millisecond

func TestDragRotates(t *testing.T) {
	v, _ := newTestViewer(t, func(c *config.ViewerConfig) { c.MoveInertia = false })
	hFov, vFov := v.HFov(), v.VFov()

	v.PointerDown(500, 250, 0)
	v.PointerMove(600, 200, 10*ms)

	// Dragging right turns left; dragging up looks down.
	assert.InDelta(t, angle.Normalize(-0.1*hFov, 0), v.Position().Longitude, eps)
	assert.InDelta(t, -0.1*vFov, v.Position().Latitude, eps)
	assert.True(t, v.IsMoving())

	v.PointerUp(600, 200, 20*ms)
	assert.False(t, v.IsMoving())
}

func TestDragMoveSpeed(t *testing.T) {
	v, _ := newTestViewer(t, func(c *config.ViewerConfig) {
		c.MoveSpeed = 2
		c.MoveInertia = false
	})
	hFov := v.HFov()

	v.PointerDown(500, 250, 0)
	v.PointerMove(450, 250, 10*ms)
	assert.InDelta(t, 0.1*hFov, v.Position().Longitude, eps)
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	v.PointerMove(900, 100, 0)
	v.PointerUp(900, 100, 0)
	assert.Equal(t, sphere.Position{}, v.Position())
}

func TestMouseMoveDisabled(t *testing.T) {
	v, _ := newTestViewer(t, func(c *config.ViewerConfig) { c.MouseMove = false })

	v.PointerDown(500, 250, 0)
	v.PointerMove(700, 250, 10*ms)
	assert.Equal(t, sphere.Position{}, v.Position())
	assert.False(t, v.IsMoving())
}

func TestClick(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	g := sphere.FullGeometry(8000, 4000)
	require.NoError(t, v.SetPanorama(g))
	clicks := record[event.ClickData](v, event.Click)

	v.PointerDown(500, 250, 0)
	v.PointerUp(500, 250, 50*ms)

	require.Len(t, *clicks, 1)
	c := (*clicks)[0]
	assert.Equal(t, 500.0, c.ClientX)
	assert.Equal(t, 250.0, c.ClientY)
	assert.InDelta(t, 0, c.Position.Longitude, eps)
	assert.InDelta(t, 0, c.Position.Latitude, eps)
	assert.True(t, c.HasTexture)
	assert.Equal(t, g.SphericalToTexture(0, 0), c.Texture)
	assert.False(t, v.IsMoving())
}

func TestClickWithinThreshold(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	clicks := record[event.ClickData](v, event.Click)

	v.PointerDown(100, 100, 0)
	v.PointerMove(102, 103, 10*ms)
	v.PointerUp(103, 103, 20*ms)

	require.Len(t, *clicks, 1)
	assert.False(t, (*clicks)[0].HasTexture)

	// Released MoveThreshold away: a drag, not a click.
	v.PointerDown(100, 100, 30*ms)
	v.PointerUp(104, 100, 40*ms)
	assert.Len(t, *clicks, 1)
}

func TestClickPosition(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	clicks := record[event.ClickData](v, event.Click)

	// Right edge of the viewport on the horizon.
	v.PointerDown(1000, 250, 0)
	v.PointerUp(1000, 250, 0)

	require.Len(t, *clicks, 1)
	assert.InDelta(t, v.HFov()/2, (*clicks)[0].Position.Longitude, eps)
}

func TestInertia(t *testing.T) {
	v, loop := newTestViewer(t, nil)
	hFov := v.HFov()

	v.PointerDown(500, 250, 0)
	v.PointerMove(520, 250, 10*ms)
	v.PointerMove(540, 250, 20*ms)
	v.PointerUp(560, 250, 30*ms)

	// 40 px dragged so far; the release point is reached on the next frame.
	assert.InDelta(t, angle.Normalize(-0.04*hFov, 0), v.Position().Longitude, eps)
	assert.True(t, v.IsMoving())

	// The release velocity then carries the view another 60 px over 180 ms.
	loop.Advance(0)
	loop.Advance(100 * ms)
	assert.True(t, v.IsMoving())
	loop.Advance(200 * ms)

	assert.InDelta(t, angle.Normalize(-0.12*hFov, 0), v.Position().Longitude, 1e-9)
	assert.False(t, v.IsMoving())
}

func TestInertiaForgetsBeforePause(t *testing.T) {
	v, loop := newTestViewer(t, nil)
	hFov := v.HFov()

	v.PointerDown(500, 250, 0)
	v.PointerMove(520, 250, 10*ms)
	// A pause longer than a tenth of the window starts a new gesture.
	v.PointerMove(540, 250, 100*ms)
	v.PointerUp(560, 250, 110*ms)

	loop.Advance(0)
	loop.Advance(time.Second)

	// 60 px to the release point, then 20 px of inertia.
	assert.InDelta(t, angle.Normalize(-0.08*hFov, 0), v.Position().Longitude, 1e-9)
}

func TestInertiaForgetsOldSamples(t *testing.T) {
	v, loop := newTestViewer(t, nil)
	hFov := v.HFov()

	// Steady 10 px every 20 ms for 600 ms: only the last 300 ms count.
	v.PointerDown(0, 250, 0)
	x := 0.0
	for i := 1; i <= 30; i++ {
		x += 10
		v.PointerMove(x, 250, time.Duration(i)*20*ms)
	}
	v.PointerUp(x, 250, 600*ms)

	loop.Advance(0)
	loop.Advance(10 * time.Second)

	// 300 px to the release point plus 150 px coasting.
	assert.InDelta(t, angle.Normalize(-0.45*hFov, 0), v.Position().Longitude, 1e-9)
}

func TestPointerDownStopsInertia(t *testing.T) {
	v, loop := newTestViewer(t, nil)

	v.PointerDown(500, 250, 0)
	v.PointerMove(600, 250, 10*ms)
	v.PointerUp(700, 250, 20*ms)
	loop.Advance(0)
	loop.Advance(50 * ms)
	stopped := v.Position()

	v.PointerDown(300, 300, 100*ms)
	loop.Advance(time.Second)
	assert.Equal(t, stopped, v.Position())
	assert.True(t, v.IsMoving())

	v.PointerUp(300, 300, 200*ms)
	assert.False(t, v.IsMoving())
}
