package libfractal

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDepthLimit      = errors.New("subdivision depth limit exceeded")
)

// DefaultMaxDepth allows a width to threshold ratio of 2^24.
const DefaultMaxDepth = 24

var sqrt3 = math32.Sqrt(3)

// Triangles is a flat xyz vertex list, three vertices per triangle.
type Triangles struct {
	Vertices []float32
	Count    int
}

type region struct {
	x, y, width float32
	depth       int
}

// culled reports whether the bounding box of the triangle lies entirely outside of [-1, 1]².
func (r region) culled() bool {
	height := r.width / 2 * sqrt3
	return r.y >= 1 || r.x+r.width <= -1 || r.x >= 1 || r.y+height <= -1
}

// Subdivide tiles the up-pointing equilateral triangle with leftmost vertex (x, y)
// and side length width into leaf triangles no wider than threshold.
func Subdivide(x, y, width, threshold float32) (Triangles, error) {
	return SubdivideLimit(x, y, width, threshold, DefaultMaxDepth)
}

func SubdivideLimit(x, y, width, threshold float32, maxDepth int) (Triangles, error) {
	if err := validate(x, y, width, threshold); err != nil {
		return Triangles{}, err
	}

	result := Triangles{}
	// Children are pushed in reverse so they pop as bottom-left, top, bottom-right.
	stack := []region{{x: x, y: y, width: width}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if r.culled() {
			continue
		}

		if r.width <= threshold {
			result.Vertices = appendLeaf(result.Vertices, r)
			result.Count++
			continue
		}

		if r.depth >= maxDepth {
			return Triangles{}, fmt.Errorf("width %v with threshold %v: %w", width, threshold, ErrDepthLimit)
		}

		half := r.width / 2
		quarter := r.width / 4
		stack = append(stack,
			region{x: r.x + half, y: r.y, width: half, depth: r.depth + 1},
			region{x: r.x + quarter, y: r.y + quarter*sqrt3, width: half, depth: r.depth + 1},
			region{x: r.x, y: r.y, width: half, depth: r.depth + 1},
		)
	}

	return result, nil
}

func appendLeaf(vertices []float32, r region) []float32 {
	return append(vertices,
		r.x, r.y, 0,
		r.x+r.width/2, r.y+r.width/2*sqrt3, 0,
		r.x+r.width, r.y, 0,
	)
}

func validate(x, y, width, threshold float32) error {
	for _, v := range [...]float32{x, y, width, threshold} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return fmt.Errorf("non-finite input %v: %w", v, ErrInvalidArgument)
		}
	}
	if threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %v: %w", threshold, ErrInvalidArgument)
	}
	if width <= 0 {
		return fmt.Errorf("width must be positive, got %v: %w", width, ErrInvalidArgument)
	}
	return nil
}
