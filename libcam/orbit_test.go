package libcam_test

import (
	"math"
	"math/rand"
	"testing"

	"learn-gl/libcam"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertQuat(t *testing.T, expected, actual mgl32.Quat, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.W, actual.W, delta, "W")
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected.V[i], actual.V[i], delta, "V[%d]", i)
	}
}

func assertVec3(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}

func TestOrbitZeroDrag(t *testing.T) {
	cam := libcam.NewOrbit(libcam.DefaultRadius)
	cam.OnDragDelta(0, 0, libcam.DefaultSensitivity)
	assertQuat(t, mgl32.QuatIdent(), cam.Orientation, 1e-7)

	tilted := libcam.NewOrbitTilted(10, mgl32.DegToRad(-20), mgl32.DegToRad(30))
	before := tilted.Orientation
	tilted.OnDragDelta(0, 0, libcam.DefaultSensitivity)
	assertQuat(t, before, tilted.Orientation, 1e-6)
}

func TestOrbitIdentityFrame(t *testing.T) {
	cam := libcam.NewOrbit(10)
	eye, target, up := cam.ViewMatrixInputs()
	assertVec3(t, mgl32.Vec3{0, 0, 10}, eye, 1e-6)
	assertVec3(t, mgl32.Vec3{}, target, 0)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, up, 1e-6)
}

func TestOrbitYawQuarterTurn(t *testing.T) {
	cam := libcam.NewOrbit(10)
	s := float32(0.005)
	cam.OnDragDelta(-math.Pi/2/s, 0, s)
	assertVec3(t, mgl32.Vec3{10, 0, 0}, cam.Position(), 1e-4)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, cam.Up(), 1e-5)
}

func TestOrbitPitchAroundCameraRight(t *testing.T) {
	cam := libcam.NewOrbit(10)
	s := float32(0.005)
	// yaw a quarter turn first, so the camera's right axis is no longer world X
	cam.OnDragDelta(-math.Pi/2/s, 0, s)
	cam.OnDragDelta(0, -math.Pi/2/s, s)

	// a quarter pitch around the camera right axis (now -Z) moves the eye onto -Y
	assertVec3(t, mgl32.Vec3{0, -10, 0}, cam.Position(), 1e-3)
	assert.InDelta(t, 1, cam.Orientation.Len(), 1e-6)
}

func TestOrbitCompositionOrder(t *testing.T) {
	cam := libcam.NewOrbitTilted(10, mgl32.DegToRad(-20), mgl32.DegToRad(30))
	q := cam.Orientation
	dx, dy, s := float32(13), float32(-7), float32(0.005)

	yaw := mgl32.QuatRotate(-dx*s, mgl32.Vec3{0, 1, 0})
	right := q.Rotate(mgl32.Vec3{1, 0, 0}).Normalize()
	pitch := mgl32.QuatRotate(-dy*s, right)
	expected := yaw.Mul(pitch).Mul(q).Normalize()

	cam.OnDragDelta(dx, dy, s)
	assertQuat(t, expected, cam.Orientation, 1e-6)

	swapped := pitch.Mul(yaw).Mul(q).Normalize()
	assert.False(t, swapped.ApproxEqualThreshold(cam.Orientation, 1e-6), "swapping yaw and pitch should change the result")
}

func TestOrbitDragsCompose(t *testing.T) {
	s := float32(0.005)

	split := libcam.NewOrbit(10)
	split.OnDragDelta(12, 0, s)
	split.OnDragDelta(30, 0, s)
	whole := libcam.NewOrbit(10)
	whole.OnDragDelta(42, 0, s)
	assertQuat(t, whole.Orientation, split.Orientation, 1e-5)

	split = libcam.NewOrbit(10)
	split.OnDragDelta(0, 5, s)
	split.OnDragDelta(0, 9, s)
	whole = libcam.NewOrbit(10)
	whole.OnDragDelta(0, 14, s)
	assertQuat(t, whole.Orientation, split.Orientation, 1e-5)
}

func TestOrbitStaysNormalized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cam := libcam.NewOrbitTilted(10, mgl32.DegToRad(-20), mgl32.DegToRad(30))

	for i := 0; i < 10_000; i++ {
		dx := rng.Float32()*40 - 20
		dy := rng.Float32()*40 - 20
		cam.OnDragDelta(dx, dy, libcam.DefaultSensitivity)
	}

	assert.InDelta(t, 1, cam.Orientation.Len(), 1e-5)
	assert.InDelta(t, 10, cam.Position().Len(), 1e-3)
	assert.InDelta(t, 1, cam.Up().Len(), 1e-5)
}

func TestOrbitTilted(t *testing.T) {
	cam := libcam.NewOrbitTilted(10, mgl32.DegToRad(-20), mgl32.DegToRad(30))
	assert.InDelta(t, 1, cam.Orientation.Len(), 1e-6)

	eye := cam.Position()
	// pitching by -20 degrees around X lifts the eye above the XZ plane
	assert.Greater(t, eye.Y(), float32(0))
	assert.Greater(t, eye.X(), float32(0))
	assert.InDelta(t, 10, eye.Len(), 1e-4)
}

func TestOrbitViewMatrix(t *testing.T) {
	cam := libcam.NewOrbitTilted(10, mgl32.DegToRad(-20), mgl32.DegToRad(30))
	view := cam.ViewMatrix()

	eye := view.Mul4x1(cam.Position().Vec4(1))
	assertVec3(t, mgl32.Vec3{}, eye.Vec3(), 1e-4)

	target := view.Mul4x1(cam.Target.Vec4(1))
	assertVec3(t, mgl32.Vec3{0, 0, -10}, target.Vec3(), 1e-4)

	vp := cam.ViewProjection(16.0 / 9.0)
	clip := vp.Mul4x1(cam.Target.Vec4(1))
	assert.Greater(t, clip.W(), float32(0))
}

func TestOrbitZoomClamped(t *testing.T) {
	cam := libcam.NewOrbit(10)
	cam.Zoom(100)
	assert.Equal(t, cam.MinRadius, cam.Radius)
	cam.Zoom(-1000)
	assert.Equal(t, cam.MaxRadius, cam.Radius)
}
