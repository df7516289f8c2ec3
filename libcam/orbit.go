package libcam

import (
	"github.com/go-gl/mathgl/mgl32"
)

var (
	WorldUp    = mgl32.Vec3{0, 1, 0}
	WorldRight = mgl32.Vec3{1, 0, 0}
)

const (
	DefaultRadius      = 10
	DefaultSensitivity = 0.005
	DefaultFov         = 60
	DefaultNear        = 0.1
	DefaultFar         = 200
)

// Orbit is a camera circling Target at a fixed distance.
// Its orientation is a unit quaternion, so repeated drags never run into gimbal lock.
type Orbit struct {
	Orientation mgl32.Quat
	Target      mgl32.Vec3
	Radius      float32
	MinRadius   float32
	MaxRadius   float32
	// Vertical field of view in degrees
	Fov       float32
	Near, Far float32
}

func NewOrbit(radius float32) *Orbit {
	return &Orbit{
		Orientation: mgl32.QuatIdent(),
		Radius:      radius,
		MinRadius:   radius / 4,
		MaxRadius:   radius * 4,
		Fov:         DefaultFov,
		Near:        DefaultNear,
		Far:         DefaultFar,
	}
}

// NewOrbitTilted starts with the orientation rotated by pitch around X, then by yaw around Y.
// Angles are in radians.
func NewOrbitTilted(radius, pitch, yaw float32) *Orbit {
	cam := NewOrbit(radius)
	q := mgl32.QuatRotate(yaw, WorldUp).Mul(mgl32.QuatRotate(pitch, WorldRight))
	cam.Orientation = q.Normalize()
	return cam
}

// OnDragDelta rotates the camera by a pointer movement of dx, dy pixels.
// Yaw turns around the world up axis, pitch around the camera's current right axis.
func (cam *Orbit) OnDragDelta(dx, dy, sensitivity float32) {
	yaw := mgl32.QuatRotate(-dx*sensitivity, WorldUp)

	right := cam.Orientation.Rotate(WorldRight).Normalize()
	pitch := mgl32.QuatRotate(-dy*sensitivity, right)

	cam.Orientation = yaw.Mul(pitch).Mul(cam.Orientation).Normalize()
}

// Zoom moves the camera towards the target for positive amounts, clamped to the radius limits.
func (cam *Orbit) Zoom(amount float32) {
	cam.Radius = mgl32.Clamp(cam.Radius-amount, cam.MinRadius, cam.MaxRadius)
}

func (cam *Orbit) Position() mgl32.Vec3 {
	return cam.Target.Add(cam.Orientation.Rotate(mgl32.Vec3{0, 0, cam.Radius}))
}

func (cam *Orbit) Up() mgl32.Vec3 {
	return cam.Orientation.Rotate(WorldUp).Normalize()
}

func (cam *Orbit) ViewMatrixInputs() (eye, target, up mgl32.Vec3) {
	return cam.Position(), cam.Target, cam.Up()
}

func (cam *Orbit) ViewMatrix() mgl32.Mat4 {
	eye, target, up := cam.ViewMatrixInputs()
	return mgl32.LookAtV(eye, target, up)
}

func (cam *Orbit) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(cam.Fov), aspect, cam.Near, cam.Far)
}

// ViewProjection returns projection * view; the model matrix is the identity.
func (cam *Orbit) ViewProjection(aspect float32) mgl32.Mat4 {
	return cam.ProjectionMatrix(aspect).Mul4(cam.ViewMatrix())
}
