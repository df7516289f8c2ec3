package libfractal

const (
	DefaultWidth     = 0.7
	DefaultThreshold = 0.01
	zoomStep         = 0.05
	panStep          = 0.01
)

// View is the pan and zoom state of the tiler demo.
// Pan is measured in multiples of the triangle width.
type View struct {
	X, Y  float32
	Width float32
	// Set whenever the view changes, cleared by Tile
	Dirty bool
}

func NewView() *View {
	return &View{
		Width: DefaultWidth,
		Dirty: true,
	}
}

func (v *View) ZoomIn() {
	v.Width += zoomStep * v.Width
	v.Dirty = true
}

func (v *View) ZoomOut() {
	v.Width -= zoomStep * v.Width
	v.Dirty = true
}

// Pan moves the view by one step per unit of dx and dy. Steps shrink as the triangle grows
// so panning feels the same at every zoom level.
func (v *View) Pan(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	v.X += dx * panStep / v.Width
	v.Y += dy * panStep / v.Width
	v.Dirty = true
}

// Origin returns the leftmost vertex of the outermost triangle, centered on screen when unpanned.
func (v *View) Origin() (x, y float32) {
	x = -v.Width/2 + v.X*v.Width
	y = -v.Width/2/sqrt3 + v.Y*v.Width
	return x, y
}

func (v *View) Tile(threshold float32) (Triangles, error) {
	x, y := v.Origin()
	tris, err := Subdivide(x, y, v.Width, threshold)
	if err != nil {
		return Triangles{}, err
	}
	v.Dirty = false
	return tris, nil
}
