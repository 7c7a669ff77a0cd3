// Package config handles viewer configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/panosphere/pkg/sphere"
)

// Config holds all viewer settings.
type Config struct {
	Viewer   ViewerConfig   `yaml:"viewer"`
	Panorama PanoramaConfig `yaml:"panorama"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewerConfig holds navigation settings. FOV values are degrees, angles are
// radians or unit strings ("90deg").
type ViewerConfig struct {
	MinFov     float64  `yaml:"min_fov"`
	MaxFov     float64  `yaml:"max_fov"`
	DefaultFov *float64 `yaml:"default_fov,omitempty"` // nil = halfway between min and max

	DefaultLong Angle `yaml:"default_long"`
	DefaultLat  Angle `yaml:"default_lat"`

	LongitudeRange []Angle `yaml:"longitude_range,omitempty"` // [min, max], may wrap through 0
	LatitudeRange  []Angle `yaml:"latitude_range,omitempty"`  // [min, max]

	// Deprecated: use LatitudeRange.
	TiltUpMax *Angle `yaml:"tilt_up_max,omitempty"`
	// Deprecated: use LatitudeRange.
	TiltDownMax *Angle `yaml:"tilt_down_max,omitempty"`

	MoveSpeed   float64 `yaml:"move_speed"`
	ZoomSpeed   float64 `yaml:"zoom_speed"` // zoom levels per wheel notch
	MoveInertia bool    `yaml:"move_inertia"`
	MouseMove   bool    `yaml:"mousemove"`
	MouseWheel  bool    `yaml:"mousewheel"`

	Autorotate       bool          `yaml:"autorotate"`         // start rotating on load
	TimeAnim         time.Duration `yaml:"time_anim"`          // idle delay before autorotate, 0 = never
	AnimSpeed        Speed         `yaml:"anim_speed"`         // autorotate speed
	AnimLat          *Angle        `yaml:"anim_lat,omitempty"` // autorotate latitude, nil = default_lat
	AutorotateBounce bool          `yaml:"autorotate_bounce"`  // reverse at a longitude edge instead of stopping
}

// PanoramaConfig describes the loaded panorama image. When Path names a
// readable image its header (and GPano XMP metadata, if UseXMP) decide the
// geometry; the sizes below are used otherwise.
type PanoramaConfig struct {
	Path          string `yaml:"path"`
	Caption       string `yaml:"caption"`
	UseXMP        bool   `yaml:"use_xmp"`
	FullWidth     int    `yaml:"full_width"`
	FullHeight    int    `yaml:"full_height"`
	CroppedWidth  int    `yaml:"cropped_width"`
	CroppedHeight int    `yaml:"cropped_height"`
	CroppedX      int    `yaml:"cropped_x"`
	CroppedY      int    `yaml:"cropped_y"`
}

// Geometry returns the sphere mapping of the panorama. Missing cropped sizes
// default to the full size.
func (p PanoramaConfig) Geometry() sphere.Geometry {
	g := sphere.Geometry{
		FullWidth:     p.FullWidth,
		FullHeight:    p.FullHeight,
		CroppedWidth:  p.CroppedWidth,
		CroppedHeight: p.CroppedHeight,
		CroppedX:      p.CroppedX,
		CroppedY:      p.CroppedY,
	}
	if g.CroppedWidth == 0 {
		g.CroppedWidth = g.FullWidth
	}
	if g.CroppedHeight == 0 {
		g.CroppedHeight = g.FullHeight
	}
	return g
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir"` // "" = working directory
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default FOV bounds in degrees.
const (
	DefaultMinFov = 30.0
	DefaultMaxFov = 90.0
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			MinFov:           DefaultMinFov,
			MaxFov:           DefaultMaxFov,
			MoveSpeed:        1,
			ZoomSpeed:        1,
			MoveInertia:      true,
			MouseMove:        true,
			MouseWheel:       true,
			TimeAnim:         2 * time.Second,
			AnimSpeed:        MustSpeed("2rpm"),
			AutorotateBounce: true,
		},
		Panorama: PanoramaConfig{
			UseXMP:     true,
			FullWidth:  8192,
			FullHeight: 4096,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
