package libgl

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPointer(t *testing.T) {
	verts := []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}}
	assert.Equal(t, unsafe.Pointer(&verts[0]), Pointer(verts))
	assert.Equal(t, unsafe.Pointer(&verts[1]), Pointer(verts[1:]))

	m := mgl32.Ident4()
	assert.Equal(t, unsafe.Pointer(&m), Pointer(&m))

	assert.True(t, Pointer(nil) == nil)
	assert.True(t, Pointer([]float32{}) == nil)
	assert.True(t, Pointer((*mgl32.Mat4)(nil)) == nil)

	assert.Panics(t, func() { Pointer(42) })
}
