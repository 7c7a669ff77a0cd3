// Package app runs the viewer window: it wires SDL input, the frame loop,
// the navigation engine and the renderer together.
package app

import (
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/panosphere/internal/config"
	"github.com/Faultbox/panosphere/internal/engine/input"
	"github.com/Faultbox/panosphere/internal/engine/renderer"
	"github.com/Faultbox/panosphere/internal/engine/screenshot"
	"github.com/Faultbox/panosphere/internal/engine/window"
	"github.com/Faultbox/panosphere/internal/event"
	"github.com/Faultbox/panosphere/internal/frame"
	"github.com/Faultbox/panosphere/internal/logger"
	"github.com/Faultbox/panosphere/internal/panorama"
	"github.com/Faultbox/panosphere/internal/system/sdlcaps"
	"github.com/Faultbox/panosphere/internal/viewer"
	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

const title = "Panosphere"

// App is the main viewer instance.
type App struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *screenshot.Capture

	loop     *frame.Loop
	viewer   *viewer.Viewer
	controls *Controls

	titleDirty bool
	unsubs     []func()

	// Paths picked in the file dialog, loaded on the main thread
	pendingPath chan string

	touch      *touchTracker // nil without a touch device
	gyroSensor *sdl.Sensor
	gyroID     int32
	gyro       *gyroFeed
}

// New creates the window, renderer and viewer.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:         cfg,
		log:         logger.Named("app"),
		pendingPath: make(chan string, 1),
	}

	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := a.window.GetDrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.shots = screenshot.New(cfg.Graphics.ScreenshotDir, "panosphere")
	a.loop = frame.NewLoop()

	w, h := a.window.GetSize()
	a.viewer, err = viewer.New(viewer.Options{
		Config:       cfg.Viewer,
		Scheduler:    a.loop,
		Bus:          event.NewBus(),
		Capabilities: sdlcaps.Detect(),
		Width:        w,
		Height:       h,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create viewer: %w", err)
	}

	home := a.viewer.Position()
	a.controls = NewControls(a.viewer, home, a.log)
	caps := a.viewer.Capabilities()
	if caps.Touch() {
		a.touch = newTouchTracker(a.viewer)
	}
	if caps.Gyroscope() {
		a.openGyroscope()
	}

	a.controls.ToggleFullscreen = func() {
		if err := a.window.SetFullscreen(!a.window.IsFullscreen()); err != nil {
			a.log.Warn("fullscreen toggle failed", zap.Error(err))
		}
	}

	a.controls.Screenshot = a.takeScreenshot
	a.controls.Open = a.openFileDialog

	a.subscribe()

	if err := a.viewer.Load(cfg.Panorama.Path, panoramaGeometry(cfg.Panorama, a.log)); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load panorama: %w", err)
	}

	a.log.Info("viewer initialized successfully")
	return a, nil
}

// panoramaGeometry inspects the configured image, falling back to the sizes
// given in the config when there is no file or it cannot be read.
func panoramaGeometry(p config.PanoramaConfig, log *zap.Logger) sphere.Geometry {
	if p.Path == "" {
		return p.Geometry()
	}

	info, err := panorama.Inspect(p.Path)
	if err != nil {
		log.Warn("cannot inspect panorama, using configured size",
			zap.String("path", p.Path), zap.Error(err))
		return p.Geometry()
	}

	log.Debug("panorama inspected",
		zap.String("format", info.Format),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Bool("xmp", info.FromXMP),
	)
	if info.FromXMP && p.UseXMP {
		return info.Geometry
	}
	if info.XMPErr != nil && p.UseXMP {
		log.Warn("ignoring GPano metadata", zap.String("path", p.Path), zap.Error(info.XMPErr))
	}
	return sphere.FullGeometry(info.Width, info.Height)
}

// openGyroscope starts gyroscope readings. Failure only disables the feed.
func (a *App) openGyroscope() {
	s, err := sdlcaps.OpenGyroscope()
	if err != nil {
		a.log.Warn("cannot open gyroscope", zap.Error(err))
		return
	}
	a.gyroSensor = s
	a.gyroID = int32(s.GetInstanceID())

	var unsub func()
	a.gyro, unsub = newGyroFeed(a.viewer)
	a.unsubs = append(a.unsubs, unsub)
}

func (a *App) subscribe() {
	bus := a.viewer.Bus()
	dirty := func(event.Event) { a.titleDirty = true }

	a.unsubs = append(a.unsubs,
		bus.Subscribe(event.PositionUpdated, dirty),
		bus.Subscribe(event.ZoomUpdated, dirty),
		bus.Subscribe(event.Click, func(e event.Event) {
			c := e.Data.(event.ClickData)
			fields := []zap.Field{
				zap.Float64("longitude", angle.Degrees(c.Position.Longitude)),
				zap.Float64("latitude", angle.Degrees(c.Position.Latitude)),
			}
			if c.HasTexture {
				fields = append(fields, zap.Int("texture_x", c.Texture.X), zap.Int("texture_y", c.Texture.Y))
			}
			a.log.Info("click", fields...)
		}),
		bus.Subscribe(event.SideReached, func(e event.Event) {
			a.log.Debug("side reached", zap.Stringer("edge", e.Data.(event.SideData).Edge))
		}),
		bus.Subscribe(event.Autorotate, func(e event.Event) {
			a.log.Info("autorotate", zap.Bool("enabled", e.Data.(event.ToggleData).Enabled))
		}),
	)
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			// Quit event received
			a.running = false
			break
		}
		a.handleEvents()
		a.handleHeldKeys(dt)
		a.loadPending()

		// 2. Fire timers and animation frames
		a.loop.Advance(now.Sub(start))

		// 3. Render
		a.renderer.Draw(a.viewer.Camera())
		a.window.SwapBuffers()

		if a.titleDirty {
			a.titleDirty = false
			a.window.SetTitle(a.windowTitle())
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			if err := a.viewer.Resize(e.Width, e.Height); err != nil {
				a.log.Warn("ignoring resize", zap.Error(err))
				continue
			}
			a.renderer.Resize(a.window.GetDrawableSize())
		case input.EventKeyDown:
			if !a.controls.Apply(keyAction(e.Key)) {
				a.running = false
			}
		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				a.viewer.PointerDown(float64(e.MouseX), float64(e.MouseY), e.Time)
			}
		case input.EventMouseMove:
			a.viewer.PointerMove(float64(e.MouseX), float64(e.MouseY), e.Time)
		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				a.viewer.PointerUp(float64(e.MouseX), float64(e.MouseY), e.Time)
			}
		case input.EventWheel:
			a.viewer.Wheel(e.Wheel)
		case input.EventFingerDown, input.EventFingerMove, input.EventFingerUp:
			a.handleFinger(e)
		case input.EventSensor:
			if a.gyro != nil && e.Sensor == a.gyroID {
				a.gyro.handle(e.Data, e.Time)
			}
		}
	}
}

// handleFinger scales a finger event to window pixels for the tracker.
func (a *App) handleFinger(e input.Event) {
	if a.touch == nil {
		return
	}
	w, h := a.window.GetSize()
	x, y := e.TouchX*float64(w), e.TouchY*float64(h)

	switch e.Type {
	case input.EventFingerDown:
		a.touch.down(e.Finger, x, y, e.Time)
	case input.EventFingerMove:
		a.touch.move(e.Finger, x, y, e.Time)
	case input.EventFingerUp:
		a.touch.up(e.Finger, x, y, e.Time)
	}
}

func (a *App) handleHeldKeys(dt time.Duration) {
	var dx, dy float64
	if a.input.IsKeyDown(sdl.SCANCODE_LEFT) {
		dx--
	}
	if a.input.IsKeyDown(sdl.SCANCODE_RIGHT) {
		dx++
	}
	if a.input.IsKeyDown(sdl.SCANCODE_UP) {
		dy++
	}
	if a.input.IsKeyDown(sdl.SCANCODE_DOWN) {
		dy--
	}
	a.controls.Pan(dx, dy, dt)
}

// keyAction maps a key press to a command.
func keyAction(key sdl.Scancode) Action {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return ActionQuit
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return ActionZoomIn
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return ActionZoomOut
	case sdl.SCANCODE_A:
		return ActionToggleAutorotate
	case sdl.SCANCODE_Y:
		return ActionToggleGyroscope
	case sdl.SCANCODE_F:
		return ActionToggleFullscreen
	case sdl.SCANCODE_G, sdl.SCANCODE_HOME:
		return ActionGoHome
	case sdl.SCANCODE_P, sdl.SCANCODE_PRINTSCREEN:
		return ActionScreenshot
	case sdl.SCANCODE_O:
		return ActionOpen
	}
	return ActionNone
}

// openFileDialog shows a native file dialog to pick another panorama.
// The dialog blocks, so it runs on its own goroutine and hands the path
// back to the main loop.
func (a *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Panoramas", "jpg", "jpeg", "png", "webp", "tif", "tiff", "bmp").
			Filter("All Files", "*").
			Title("Open Panorama").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				a.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}

		select {
		case a.pendingPath <- filename:
		default:
			a.log.Debug("panorama already pending, dropping", zap.String("path", filename))
		}
	}()
}

// loadPending loads a panorama picked in the file dialog, if any.
func (a *App) loadPending() {
	select {
	case path := <-a.pendingPath:
		p := a.cfg.Panorama
		p.Path = path
		p.Caption = ""
		if err := a.viewer.Load(path, panoramaGeometry(p, a.log)); err != nil {
			a.log.Error("failed to load panorama", zap.String("path", path), zap.Error(err))
			return
		}
		a.cfg.Panorama = p
		a.titleDirty = true
	default:
	}
}

// takeScreenshot saves the last drawn frame.
func (a *App) takeScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.Save(pixels, w, h, a.viewer.Position())
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) windowTitle() string {
	return formatTitle(a.cfg.Panorama.Caption, a.viewer.Position(), a.viewer.VFov())
}

// formatTitle renders the live position and FOV in degrees.
func formatTitle(caption string, p sphere.Position, vFov float64) string {
	name := title
	if caption != "" {
		name = caption + " - " + title
	}
	return fmt.Sprintf("%s | lon %.1f° lat %.1f° fov %.0f°",
		name, angle.Degrees(p.Longitude), angle.Degrees(p.Latitude), angle.Degrees(vFov))
}

// Close cleans up resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	for _, unsub := range a.unsubs {
		unsub()
	}
	if a.viewer != nil {
		a.viewer.StopAll()
	}
	if a.gyroSensor != nil {
		a.gyroSensor.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
