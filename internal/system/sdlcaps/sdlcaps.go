// Package sdlcaps detects host capabilities through SDL and OpenGL.
package sdlcaps

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/logger"
	"github.com/Faultbox/panosphere/internal/system"
)

// ErrNoGyroscope is returned by OpenGyroscope when no gyro sensor exists.
var ErrNoGyroscope = errors.New("no gyroscope sensor")

// Detect builds a snapshot from SDL and the current OpenGL context.
// IMPORTANT: Must be called AFTER the window and renderer are created!
func Detect() *system.Capabilities {
	var opts []system.Option

	displays, err := sdl.GetNumVideoDisplays()
	if err != nil {
		logger.Warn("cannot count displays", zap.Error(err))
	}
	if displays > 0 {
		opts = append(opts, system.WithFullscreen())
	}

	touchDevices := sdl.GetNumTouchDevices()
	if touchDevices > 0 {
		opts = append(opts, system.WithTouch())
	}

	if gyroIndex() >= 0 {
		opts = append(opts, system.WithGyroscope())
	}

	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	opts = append(opts, system.WithMaxTextureWidth(int(maxTex)))

	c := system.New(opts...)

	logger.Info("capabilities detected",
		zap.Int("displays", displays),
		zap.Int("touch_devices", touchDevices),
		zap.Int("max_texture_width", c.MaxTextureWidth()),
		zap.Bool("gyroscope", c.Gyroscope()),
	)
	return c
}

// OpenGyroscope opens the first gyro sensor. Its readings arrive as
// SENSORUPDATE events tagged with the returned sensor's instance ID.
func OpenGyroscope() (*sdl.Sensor, error) {
	i := gyroIndex()
	if i < 0 {
		return nil, ErrNoGyroscope
	}
	s := sdl.SensorOpen(i)
	if s == nil {
		return nil, fmt.Errorf("SDL_SensorOpen failed: %w", sdl.GetError())
	}
	return s, nil
}

// gyroIndex returns the device index of the first gyro, or -1.
func gyroIndex() int {
	if err := sdl.InitSubSystem(sdl.INIT_SENSOR); err != nil {
		logger.Warn("sensor subsystem unavailable", zap.Error(err))
		return -1
	}
	for i := 0; i < sdl.NumSensors(); i++ {
		if sdl.SensorGetDeviceType(i) == sdl.SENSOR_GYRO {
			return i
		}
	}
	return -1
}
