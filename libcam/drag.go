package libcam

import "github.com/go-gl/mathgl/mgl32"

// Drag turns cursor positions into deltas while a pointer button is held down.
type Drag struct {
	active bool
	last   mgl32.Vec2
}

func (d *Drag) Press(x, y float32) {
	d.active = true
	d.last = mgl32.Vec2{x, y}
}

func (d *Drag) Release() {
	d.active = false
}

func (d *Drag) Active() bool {
	return d.active
}

// Move records the new cursor position. ok is false when no drag is in progress.
func (d *Drag) Move(x, y float32) (delta mgl32.Vec2, ok bool) {
	if !d.active {
		return mgl32.Vec2{}, false
	}
	pos := mgl32.Vec2{x, y}
	delta = pos.Sub(d.last)
	d.last = pos
	return delta, true
}

// Apply forwards a cursor move to the camera.
func (d *Drag) Apply(cam *Orbit, x, y, sensitivity float32) {
	if delta, ok := d.Move(x, y); ok {
		cam.OnDragDelta(delta[0], delta[1], sensitivity)
	}
}
