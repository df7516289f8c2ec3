package libcam_test

import (
	"testing"

	"learn-gl/libcam"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDragOnlyWhilePressed(t *testing.T) {
	cam := libcam.NewOrbit(10)
	drag := &libcam.Drag{}

	drag.Apply(cam, 100, 100, libcam.DefaultSensitivity)
	assert.Equal(t, mgl32.QuatIdent(), cam.Orientation)

	drag.Press(100, 100)
	assert.True(t, drag.Active())
	delta, ok := drag.Move(110, 95)
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec2{10, -5}, delta)

	drag.Apply(cam, 130, 95, libcam.DefaultSensitivity)
	assert.NotEqual(t, mgl32.QuatIdent(), cam.Orientation)

	drag.Release()
	frozen := cam.Orientation
	drag.Apply(cam, 500, 500, libcam.DefaultSensitivity)
	assert.Equal(t, frozen, cam.Orientation)
}
