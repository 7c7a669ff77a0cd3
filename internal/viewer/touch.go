package viewer

// PinchScale is how many zoom levels a pinch across the whole viewport
// width is worth.
const PinchScale = 80

type pinchState struct {
	zooming   bool
	startDist float64 // pixels
	startLvl  float64
}

// IsPinching reports whether a two-finger zoom is in progress.
func (v *Viewer) IsPinching() bool {
	return v.pinch.zooming
}

// PointerCancel ends a drag without a click or inertia, as when a second
// finger turns the gesture into a pinch.
func (v *Viewer) PointerCancel() {
	v.pointer.down = false
	v.pointer.moving = false
	v.pointer.history = v.pointer.history[:0]
}

// PinchStart begins a pinch with the fingers dist pixels apart.
func (v *Viewer) PinchStart(dist float64) {
	v.StopAutorotate()
	v.StopAnimation()
	v.PointerCancel()

	v.pinch = pinchState{zooming: true, startDist: dist, startLvl: v.zoomLvl}
}

// PinchMove zooms by the change in finger distance since PinchStart.
// Measuring from the start keeps slow pinches from rounding away.
func (v *Viewer) PinchMove(dist float64) {
	if !v.pinch.zooming {
		return
	}
	v.Zoom(v.pinch.startLvl + PinchScale*(dist-v.pinch.startDist)/v.width)
}

// PinchEnd stops the pinch.
func (v *Viewer) PinchEnd() {
	v.pinch.zooming = false
}
