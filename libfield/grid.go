package libfield

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LineRange is a run of consecutive vertices drawn as one line strip.
type LineRange struct {
	Start int32
	Count int32
}

type Grid struct {
	Vertices []mgl32.Vec3
	Lines    []LineRange
}

// line is a lattice polyline with fixed coordinates on every axis except along.
type line struct {
	along Axis
	fixed mgl32.Vec3
}

// Generator samples the lattice once and displaces it again for every frame.
type Generator struct {
	config    Config
	displacer Displacer
	lines     []line
	samples   []mgl32.Vec3
	displaced []mgl32.Vec3
}

func NewGenerator(cfg Config, displacer Displacer) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if displacer == nil {
		displacer = NewSwDisplacer(cfg.Mass, cfg.Source)
	}

	g := &Generator{
		config:    cfg,
		displacer: displacer,
	}
	g.lines = latticeLines(cfg)
	g.samples = make([]mgl32.Vec3, 0, len(g.lines)*cfg.Steps)
	for _, l := range g.lines {
		for s := 0; s < cfg.Steps; s++ {
			g.samples = append(g.samples, cfg.sample(l, s))
		}
	}
	g.displaced = make([]mgl32.Vec3, len(g.samples))
	return g, nil
}

// GenerateField builds the grid for one frame with the default software displacer.
func GenerateField(cfg Config, elapsedMs float32) (Grid, error) {
	g, err := NewGenerator(cfg, nil)
	if err != nil {
		return Grid{}, err
	}
	return g.Generate(elapsedMs)
}

func (g *Generator) Config() Config {
	return g.config
}

// LineCount is the number of lattice polylines before any splitting.
func (g *Generator) LineCount() int {
	return len(g.lines)
}

// Generate displaces every sample and splits each polyline wherever a sample leaves the
// bounding box. A polyline can produce zero, one or several line ranges.
func (g *Generator) Generate(elapsedMs float32) (Grid, error) {
	if err := g.displacer.Displace(g.samples, g.displaced, elapsedMs); err != nil {
		return Grid{}, err
	}

	grid := Grid{
		Vertices: make([]mgl32.Vec3, 0, len(g.displaced)),
		Lines:    make([]LineRange, 0, len(g.lines)),
	}

	steps := g.config.Steps
	for i := range g.lines {
		start := len(grid.Vertices)
		for _, p := range g.displaced[i*steps : (i+1)*steps] {
			if !g.config.Contains(p) {
				grid.closeRange(start)
				start = len(grid.Vertices)
				continue
			}
			grid.Vertices = append(grid.Vertices, p)
		}
		grid.closeRange(start)
	}

	return grid, nil
}

func (g *Generator) Release() {
	g.displacer.Release()
}

func (grid *Grid) closeRange(start int) {
	count := len(grid.Vertices) - start
	if count == 0 {
		return
	}
	grid.Lines = append(grid.Lines, LineRange{Start: int32(start), Count: int32(count)})
}

// latticeLines lists the polylines in draw order: lines along Y for every (z, x),
// lines along X for every (z, y), then lines along Z for every (x, y).
func latticeLines(cfg Config) []line {
	coord := func(axis Axis, i int) float32 {
		step := (cfg.Max[axis] - cfg.Min[axis]) / float32(cfg.Counts[axis]-1)
		return cfg.Min[axis] + float32(i)*step
	}

	var lines []line
	for iz := 0; iz < cfg.Counts[Z]; iz++ {
		for ix := 0; ix < cfg.Counts[X]; ix++ {
			lines = append(lines, line{along: Y, fixed: mgl32.Vec3{coord(X, ix), 0, coord(Z, iz)}})
		}
	}
	for iz := 0; iz < cfg.Counts[Z]; iz++ {
		for iy := 0; iy < cfg.Counts[Y]; iy++ {
			lines = append(lines, line{along: X, fixed: mgl32.Vec3{0, coord(Y, iy), coord(Z, iz)}})
		}
	}
	for ix := 0; ix < cfg.Counts[X]; ix++ {
		for iy := 0; iy < cfg.Counts[Y]; iy++ {
			lines = append(lines, line{along: Z, fixed: mgl32.Vec3{coord(X, ix), coord(Y, iy), 0}})
		}
	}
	return lines
}

func (cfg Config) sample(l line, s int) mgl32.Vec3 {
	p := l.fixed
	a := l.along
	p[a] = cfg.Min[a] + (cfg.Max[a]-cfg.Min[a])*(float32(s)/float32(cfg.Steps-1))
	return p
}
