package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/panosphere/internal/system"
)

const ms = time.Millisecond

func TestTouchDrag(t *testing.T) {
	_, v, _ := newControls(t, system.WithTouch())
	tr := newTouchTracker(v)
	start := v.Position()

	tr.down(1, 400, 200, 0)
	tr.move(1, 480, 200, 10*ms)
	assert.True(t, v.IsMoving())
	assert.NotEqual(t, start.Longitude, v.Position().Longitude)

	// Unknown fingers are ignored.
	moved := v.Position()
	tr.move(7, 100, 100, 20*ms)
	assert.Equal(t, moved, v.Position())
}

func TestTouchPinch(t *testing.T) {
	_, v, _ := newControls(t, system.WithTouch())
	tr := newTouchTracker(v)

	tr.down(1, 300, 200, 0)
	tr.down(2, 500, 200, 5*ms)
	assert.True(t, v.IsPinching())
	assert.False(t, v.IsMoving())

	// 100 px wider on an 800 px viewport.
	tr.move(2, 600, 200, 10*ms)
	assert.Equal(t, 60.0, v.ZoomLevel())

	tr.move(1, 400, 200, 15*ms)
	assert.Equal(t, 50.0, v.ZoomLevel())

	tr.up(2, 600, 200, 20*ms)
	assert.False(t, v.IsPinching())

	// The remaining finger no longer zooms or drags.
	pos := v.Position()
	tr.move(1, 700, 200, 25*ms)
	assert.Equal(t, 50.0, v.ZoomLevel())
	assert.Equal(t, pos, v.Position())
}
