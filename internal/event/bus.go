// Package event provides the viewer's publish/subscribe bus.
package event

import (
	"sync"

	"github.com/Faultbox/panosphere/pkg/ranges"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

// Event names published by the viewer.
const (
	PositionUpdated = "position-updated"
	ZoomUpdated     = "zoom-updated"
	Autorotate      = "autorotate"
	SideReached     = "side-reached"
	Click           = "click"
	PanoramaLoaded  = "panorama-loaded"
	Gyroscope       = "gyroscope"
)

// Event is a named notification with an optional payload.
type Event struct {
	Name string
	Data any
}

// Payloads carried by Event.Data.
type (
	// PositionData accompanies PositionUpdated.
	PositionData struct {
		Position sphere.Position
	}

	// ZoomData accompanies ZoomUpdated.
	ZoomData struct {
		Level float64 // 0 (widest) to 100 (narrowest)
		VFov  float64 // Vertical FOV in radians
	}

	// ToggleData accompanies Autorotate and Gyroscope.
	ToggleData struct {
		Enabled bool
	}

	// SideData accompanies SideReached.
	SideData struct {
		Edge ranges.Edge
	}

	// ClickData accompanies Click.
	ClickData struct {
		ClientX, ClientY float64 // Pixel position in the viewport
		Position         sphere.Position
		Texture          sphere.TextureCoord
		HasTexture       bool // false when no panorama is loaded
	}

	// PanoramaData accompanies PanoramaLoaded.
	PanoramaData struct {
		Path     string
		Geometry sphere.Geometry
	}
)

// Handler receives published events.
type Handler func(Event)

type subscriber struct {
	id int
	fn Handler
}

// Bus dispatches events synchronously to the handlers subscribed to their
// name, in subscription order. It is safe for concurrent use; handlers run
// on the publishing goroutine and may subscribe or unsubscribe.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string][]subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscriber)}
}

// Subscribe registers fn for events called name. The returned function
// removes the subscription; calling it more than once is harmless.
func (b *Bus) Subscribe(name string, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(name, id) })
	}
}

func (b *Bus) remove(name string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[name]
	for i, s := range list {
		if s.id == id {
			// Copy so an in-flight Publish keeps its snapshot intact.
			next := make([]subscriber, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(b.subs, name)
			} else {
				b.subs[name] = next
			}
			return
		}
	}
}

// Publish delivers e to every handler subscribed to e.Name.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	list := b.subs[e.Name]
	b.mu.Unlock()

	for _, s := range list {
		s.fn(e)
	}
}

// Count returns the number of handlers subscribed to name.
func (b *Bus) Count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[name])
}
