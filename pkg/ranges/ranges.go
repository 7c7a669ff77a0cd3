// Package ranges keeps a view direction inside configured longitude and
// latitude windows.
package ranges

import (
	gomath "math"
	"strings"

	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

// Edge identifies the side of a window that was reached.
// Values are bit flags so one Apply call can report one edge per axis.
type Edge uint8

const (
	EdgeLeft   Edge = 1 << iota // longitude minimum
	EdgeRight                   // longitude maximum
	EdgeTop                     // latitude maximum
	EdgeBottom                  // latitude minimum

	EdgeNone Edge = 0
)

var edgeNames = []struct {
	edge Edge
	name string
}{
	{EdgeLeft, "left"},
	{EdgeRight, "right"},
	{EdgeTop, "top"},
	{EdgeBottom, "bottom"},
}

// Has reports whether all bits of other are set in e.
func (e Edge) Has(other Edge) bool {
	return other != EdgeNone && e&other == other
}

// String returns "left", "right", "top", "bottom", a "|" joined list, or "none".
func (e Edge) String() string {
	if e == EdgeNone {
		return "none"
	}
	var parts []string
	for _, n := range edgeNames {
		if e.Has(n.edge) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Window is an angular interval. A longitude window with Min > Max wraps
// through 0. Latitude windows always have Min <= Max.
type Window struct {
	Min float64
	Max float64
}

// Constraint clamps positions to its windows, shrunk by half the current
// field of view so the edge of the viewport never passes the window edge.
type Constraint struct {
	Longitude *Window
	Latitude  *Window

	// HFov and VFov are the viewport field of view in radians.
	HFov float64
	VFov float64

	// OnEdge, if set, is called once per Apply that hit any edge, with all
	// edges hit.
	OnEdge func(Edge)
}

// SetFOV records the viewport field of view, in radians.
func (c *Constraint) SetFOV(hFov, vFov float64) {
	c.HFov = hFov
	c.VFov = vFov
}

// Apply returns p moved inside the windows and the edges that were hit.
func (c *Constraint) Apply(p sphere.Position) (sphere.Position, Edge) {
	var crossed Edge

	if c.Longitude != nil {
		var e Edge
		p.Longitude, e = clampLongitude(p.Longitude, *c.Longitude, c.HFov/2)
		crossed |= e
	}

	if c.Latitude != nil {
		var e Edge
		p.Latitude, e = clampLatitude(p.Latitude, *c.Latitude, c.VFov/2)
		crossed |= e
	}

	if c.OnEdge != nil && crossed != EdgeNone {
		c.OnEdge(crossed)
	}

	return p, crossed
}

func clampLongitude(lon float64, w Window, offset float64) (float64, Edge) {
	min := angle.Normalize(w.Min+offset, 0)
	max := angle.Normalize(w.Max-offset, 0)

	if min > max {
		// Window crosses longitude 0: only the arc (max, min) is forbidden.
		if lon > max && lon < min {
			if lon > min/2+max/2 {
				return min, EdgeLeft
			}
			return max, EdgeRight
		}
		return lon, EdgeNone
	}

	switch {
	case lon < min:
		return min, EdgeLeft
	case lon > max:
		return max, EdgeRight
	}
	return lon, EdgeNone
}

func clampLatitude(lat float64, w Window, offset float64) (float64, Edge) {
	// max is bounded by the shrunk min so a window narrower than the FOV
	// collapses to a single latitude.
	min := angle.Normalize(gomath.Min(w.Min+offset, w.Max), -gomath.Pi)
	max := angle.Normalize(gomath.Max(w.Max-offset, min), -gomath.Pi)

	switch {
	case lat < min:
		return min, EdgeBottom
	case lat > max:
		return max, EdgeTop
	}
	return lat, EdgeNone
}
