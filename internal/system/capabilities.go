// Package system describes what the host display and devices can do.
//
// The snapshot is plain data so the viewer and its tests build without SDL;
// package sdlcaps fills it in from a live window.
package system

// Capabilities is an immutable snapshot of the host, built once at startup
// and handed to the viewer.
type Capabilities struct {
	maxTextureWidth int
	touch           bool
	gyroscope       bool
	fullscreen      bool
}

// Option sets one capability.
type Option func(*Capabilities)

// WithGyroscope reports an orientation sensor.
func WithGyroscope() Option {
	return func(c *Capabilities) { c.gyroscope = true }
}

// WithTouch reports a touch screen.
func WithTouch() Option {
	return func(c *Capabilities) { c.touch = true }
}

// WithFullscreen reports a display the window can fill.
func WithFullscreen() Option {
	return func(c *Capabilities) { c.fullscreen = true }
}

// WithMaxTextureWidth sets the largest texture the GPU accepts.
func WithMaxTextureWidth(width int) Option {
	return func(c *Capabilities) { c.maxTextureWidth = width }
}

// New returns a snapshot with nothing but opts. The texture limit is unknown
// (0) unless set.
func New(opts ...Option) *Capabilities {
	c := &Capabilities{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Headless returns a snapshot for running without a display: no input
// devices, no fullscreen and a 4096 px texture limit.
func Headless(opts ...Option) *Capabilities {
	return New(append([]Option{WithMaxTextureWidth(4096)}, opts...)...)
}

// MaxTextureWidth returns the largest texture width the GPU accepts, or 0
// when unknown.
func (c *Capabilities) MaxTextureWidth() int { return c.maxTextureWidth }

// Touch reports whether a touch device is present.
func (c *Capabilities) Touch() bool { return c.touch }

// Gyroscope reports whether an orientation sensor is present.
func (c *Capabilities) Gyroscope() bool { return c.gyroscope }

// Fullscreen reports whether the window can go fullscreen.
func (c *Capabilities) Fullscreen() bool { return c.fullscreen }

// FitsTexture reports whether a panorama of the given width can be uploaded
// as a single texture.
func (c *Capabilities) FitsTexture(width int) bool {
	return c.maxTextureWidth == 0 || width <= c.maxTextureWidth
}
