package libwheel

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultTriangleSize = 30
	DefaultSpacing      = 0.7
	// Smallest triangle size in pixels
	MinTriangleSize = 1
	sizeStep        = 0.1
)

var sqrt3 = math32.Sqrt(3)

// Config describes a grid of triangles laid out over the viewport in pixel units.
type Config struct {
	TriangleSize float32
	// Distance between grid cells as a fraction of TriangleSize
	Spacing   float32
	ViewportW int
	ViewportH int
}

func DefaultConfig(width, height int) Config {
	return Config{
		TriangleSize: DefaultTriangleSize,
		Spacing:      DefaultSpacing,
		ViewportW:    width,
		ViewportH:    height,
	}
}

func (cfg *Config) Grow() {
	cfg.TriangleSize += sizeStep
}

func (cfg *Config) Shrink() {
	cfg.TriangleSize = math32.Max(cfg.TriangleSize-sizeStep, MinTriangleSize)
}

// next advances a pixel coordinate by one grid cell. Fractional steps are truncated
// after adding, the cell always advances by at least one pixel.
func (cfg Config) next(i int) int {
	n := int(float32(i) + cfg.Spacing*cfg.TriangleSize)
	if n <= i {
		return i + 1
	}
	return n
}

type Instance struct {
	// Cell position in normalized device coordinates
	Pos   mgl32.Vec2
	Model mgl32.Mat4
}

// Layout places one triangle per grid cell, turned towards the cursor and swirled over time.
// Cells are ordered column by column, left to right and bottom to top.
func Layout(cfg Config, cursor mgl32.Vec2, elapsedMs float32) []Instance {
	if cfg.ViewportW <= 0 || cfg.ViewportH <= 0 {
		return nil
	}

	var instances []Instance
	for i := 0; i < cfg.ViewportW; i = cfg.next(i) {
		for j := 0; j < cfg.ViewportH; j = cfg.next(j) {
			pos := mgl32.Vec2{
				float32(i)/float32(cfg.ViewportW)*2 - 1,
				float32(j)/float32(cfg.ViewportH)*2 - 1,
			}
			instances = append(instances, Instance{
				Pos:   pos,
				Model: Model(pos, cursor, elapsedMs),
			})
		}
	}
	return instances
}

// Model is Translate(pos) · RotateZ(Angle) · Scale(Scale).
func Model(pos, cursor mgl32.Vec2, elapsedMs float32) mgl32.Mat4 {
	r := cursor.Sub(pos).Len()
	s := Scale(r)
	return mgl32.Translate3D(pos[0], pos[1], 0).
		Mul4(mgl32.HomogRotate3DZ(Angle(pos, cursor, elapsedMs))).
		Mul4(mgl32.Scale3D(s, s, s))
}

// Angle points a cell at the cursor and adds two cosine waves: one travelling outwards
// from the cursor and one drifting slowly with the cell's distance from the center.
// Times below one millisecond are treated as one millisecond.
func Angle(pos, cursor mgl32.Vec2, elapsedMs float32) float32 {
	t := math32.Max(elapsedMs, 1)
	d := cursor.Sub(pos)
	r := d.Len()
	toCursor := math32.Atan2(d[1], d[0])
	return toCursor - math32.Cos(3*r+t*0.005)*math32.Pi +
		math32.Pi*math32.Cos(math32.Abs(pos[0])+math32.Abs(pos[1])+math32.Log(t)*0.01)
}

// Scale grows cells close to the cursor, up to 1.7 times their size.
func Scale(r float32) float32 {
	return 1 + 0.7*math32.Exp(-r)
}

// Triangle returns the base triangle as xy pairs in normalized device coordinates.
func Triangle(size float32, width, height int) []float32 {
	w := size / float32(width)
	h := size / float32(height)
	return []float32{
		0, 0,
		0, h * sqrt3 / 2,
		w / 2, 0,
	}
}

// CursorToNDC converts window coordinates with the origin at the top left.
func CursorToNDC(x, y float64, width, height int) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(x/float64(width)*2 - 1),
		float32(-y/float64(height)*2 + 1),
	}
}
