package libfield

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Gravitational constant in m³/(kg·s²)
	G = 6.674e-11
	// Earth mass in kg
	EarthMass = 5.972e24
	// Visual scale applied to the escape velocity term
	Scale = 1e16
)

var ErrInvalidArgument = errors.New("invalid argument")

// Displace moves p towards source by the distance an object falling at escape velocity
// would cover in elapsedMs milliseconds. Points on top of the source, or with a mass
// that makes the velocity undefined, stay where they are.
func Displace(p mgl32.Vec3, elapsedMs, mass float32, source mgl32.Vec3) mgl32.Vec3 {
	toward := source.Sub(p)
	r := toward.Len()
	if r == 0 || math32.IsNaN(r) || math32.IsInf(r, 0) {
		return p
	}

	radicand := 2 * G * mass / r / Scale
	if !(radicand >= 0) || math32.IsInf(radicand, 0) {
		return p
	}

	v := math32.Sqrt(radicand)
	distance := v * elapsedMs / 1000
	if math32.IsNaN(distance) || math32.IsInf(distance, 0) {
		return p
	}

	return p.Add(toward.Mul(distance / r))
}
