package libfield

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere builds an indexed uv sphere, two triangles per quad.
// Rings and seams share duplicated vertices so the index math stays regular.
func Sphere(center mgl32.Vec3, radius float32, latSteps, lonSteps int) ([]mgl32.Vec3, []uint32) {
	verts := make([]mgl32.Vec3, 0, (latSteps+1)*(lonSteps+1))
	for i := 0; i <= latSteps; i++ {
		phi := math32.Pi * float32(i) / float32(latSteps)
		for j := 0; j <= lonSteps; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(lonSteps)
			verts = append(verts, mgl32.Vec3{
				center[0] + radius*math32.Sin(phi)*math32.Cos(theta),
				center[1] + radius*math32.Cos(phi),
				center[2] + radius*math32.Sin(phi)*math32.Sin(theta),
			})
		}
	}

	indices := make([]uint32, 0, latSteps*lonSteps*6)
	for i := 0; i < latSteps; i++ {
		for j := 0; j < lonSteps; j++ {
			first := uint32(i*(lonSteps+1) + j)
			second := first + uint32(lonSteps) + 1
			indices = append(indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}
	return verts, indices
}
