package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/panosphere/internal/event"
)

func TestPinchZooms(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	zooms := record[event.ZoomData](v, event.ZoomUpdated)

	v.PinchStart(200)
	assert.True(t, v.IsPinching())

	// 100 px apart on a 1000 px viewport is 8 levels.
	v.PinchMove(300)
	assert.Equal(t, 58.0, v.ZoomLevel())

	v.PinchMove(250)
	assert.Equal(t, 54.0, v.ZoomLevel())

	v.PinchMove(100)
	assert.Equal(t, 42.0, v.ZoomLevel())
	assert.Len(t, *zooms, 3)

	v.PinchEnd()
	assert.False(t, v.IsPinching())
	v.PinchMove(900)
	assert.Equal(t, 42.0, v.ZoomLevel())
}

func TestSlowPinchAccumulates(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	v.PinchStart(200)
	for d := 201.0; d <= 210; d++ {
		v.PinchMove(d)
	}
	assert.Equal(t, 51.0, v.ZoomLevel())
}

func TestPinchCancelsDrag(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	clicks := record[event.ClickData](v, event.Click)

	v.PointerDown(500, 250, 0)
	v.PointerMove(520, 250, 10*ms)
	assert.True(t, v.IsMoving())
	moved := v.Position()

	v.PinchStart(150)
	assert.False(t, v.IsMoving())

	// The lifted finger neither clicks nor coasts.
	v.PointerUp(500, 250, 20*ms)
	assert.Empty(t, *clicks)
	assert.Equal(t, moved, v.Position())
	assert.False(t, v.IsMoving())
}

func TestPinchStopsAutorotate(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	v.StartAutorotate()
	v.PinchStart(100)
	assert.False(t, v.IsAutorotating())
}
