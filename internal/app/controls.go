package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/viewer"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

// Action is a keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionZoomIn
	ActionZoomOut
	ActionToggleAutorotate
	ActionToggleGyroscope
	ActionToggleFullscreen
	ActionGoHome
	ActionScreenshot
	ActionOpen
)

// Speed of the go-home animation.
const goHomeSpeed = "60dps"

// Controls turns keyboard commands into viewer calls.
type Controls struct {
	viewer *viewer.Viewer
	home   sphere.Position
	log    *zap.Logger

	// ToggleFullscreen is called for ActionToggleFullscreen, if set and the
	// host can go fullscreen.
	ToggleFullscreen func()
	// Screenshot is called for ActionScreenshot, if set.
	Screenshot func()
	// Open is called for ActionOpen, if set.
	Open func()
}

// NewControls binds controls to v. home is where ActionGoHome goes.
func NewControls(v *viewer.Viewer, home sphere.Position, log *zap.Logger) *Controls {
	return &Controls{viewer: v, home: home, log: log}
}

// Apply runs one command. It returns false for ActionQuit.
func (c *Controls) Apply(a Action) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionZoomIn:
		c.viewer.ZoomIn()
	case ActionZoomOut:
		c.viewer.ZoomOut()
	case ActionToggleAutorotate:
		c.viewer.ToggleAutorotate()
	case ActionToggleGyroscope:
		if err := c.viewer.ToggleGyroscope(); err != nil {
			c.log.Warn("gyroscope unavailable", zap.Error(err))
		}
	case ActionToggleFullscreen:
		if c.ToggleFullscreen != nil && c.viewer.Capabilities().Fullscreen() {
			c.ToggleFullscreen()
		}
	case ActionScreenshot:
		if c.Screenshot != nil {
			c.Screenshot()
		}
	case ActionOpen:
		if c.Open != nil {
			c.Open()
		}
	case ActionGoHome:
		if _, err := c.viewer.Animate(c.home, goHomeSpeed); err != nil {
			c.log.Error("go home failed", zap.Error(err))
		}
	}
	return true
}

// Pan turns the view while arrow keys are held: dx and dy are -1, 0 or 1
// and a full second of holding turns by one field of view.
func (c *Controls) Pan(dx, dy float64, dt time.Duration) {
	if dx == 0 && dy == 0 {
		return
	}
	c.viewer.StopAutorotate()
	c.viewer.StopAnimation()

	p := c.viewer.Position()
	p.Longitude += dx * c.viewer.HFov() * dt.Seconds()
	p.Latitude += dy * c.viewer.VFov() * dt.Seconds()
	c.viewer.Rotate(p)
}
