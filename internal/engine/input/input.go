// Package input handles SDL2 input events.
package input

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventWheel
	EventFingerDown
	EventFingerMove
	EventFingerUp
	EventSensor
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Time   time.Duration // SDL timestamp, since SDL init
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	Wheel  float64 // Notches, positive away from the user

	// Touch: finger id and position normalized to [0, 1] of the window
	Finger int64
	TouchX float64
	TouchY float64

	// Sensor: instance id and its first three readings
	Sensor int32
	Data   [3]float64
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

func stamp(ms uint32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit, Time: stamp(e.Timestamp)})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Time:   stamp(e.Timestamp),
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			typ := EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = EventKeyUp
			}
			i.events = append(i.events, Event{
				Type: typ,
				Time: stamp(e.Timestamp),
				Key:  e.Keysym.Scancode,
			})

		case *sdl.MouseMotionEvent:
			if e.Which == sdl.TOUCH_MOUSEID {
				continue // synthesized from a finger, handled below
			}
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				Time:   stamp(e.Timestamp),
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			if e.Which == sdl.TOUCH_MOUSEID {
				continue
			}
			typ := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				typ = EventMouseUp
			}
			i.events = append(i.events, Event{
				Type:   typ,
				Time:   stamp(e.Timestamp),
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})

		case *sdl.MouseWheelEvent:
			delta := float64(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				delta = -delta
			}
			i.events = append(i.events, Event{
				Type:  EventWheel,
				Time:  stamp(e.Timestamp),
				Wheel: delta,
			})

		case *sdl.TouchFingerEvent:
			typ := EventFingerMove
			switch e.Type {
			case sdl.FINGERDOWN:
				typ = EventFingerDown
			case sdl.FINGERUP:
				typ = EventFingerUp
			}
			i.events = append(i.events, Event{
				Type:   typ,
				Time:   stamp(e.Timestamp),
				Finger: int64(e.FingerID),
				TouchX: float64(e.X),
				TouchY: float64(e.Y),
			})

		case *sdl.SensorEvent:
			i.events = append(i.events, Event{
				Type:   EventSensor,
				Time:   stamp(e.Timestamp),
				Sensor: e.Which,
				Data:   [3]float64{float64(e.Data[0]), float64(e.Data[1]), float64(e.Data[2])},
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyDown reports whether a key is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	state := sdl.GetKeyboardState()
	return int(scancode) < len(state) && state[scancode] != 0
}
