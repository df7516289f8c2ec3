package libfield_test

import (
	"math"
	"testing"

	"learn-gl/libfield"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDisplaceZeroTime(t *testing.T) {
	points := []mgl32.Vec3{
		{1, 2, 3},
		{-5, 0, 5},
		{0.001, -0.002, 0},
		{100, 100, -100},
	}
	sources := []mgl32.Vec3{{}, {3, -1, 2}}

	for _, source := range sources {
		for _, p := range points {
			assert.Equal(t, p, libfield.Displace(p, 0, libfield.EarthMass, source))
		}
	}
}

func TestDisplaceTowardsSource(t *testing.T) {
	p := mgl32.Vec3{3, 4, 0}
	source := mgl32.Vec3{}
	elapsed := float32(1500)

	moved := libfield.Displace(p, elapsed, libfield.EarthMass, source)

	r := float32(5)
	v := math32.Sqrt(2 * libfield.G * libfield.EarthMass / r / libfield.Scale)
	distance := v * elapsed / 1000

	assert.InDelta(t, distance, p.Sub(moved).Len(), 1e-5)
	// still on the line between the point and the source
	assert.InDelta(t, 0, p.Cross(moved).Len(), 1e-5)
	assert.Less(t, moved.Len(), p.Len())
}

func TestDisplaceFalloff(t *testing.T) {
	p := mgl32.Vec3{}
	elapsed := float32(1000)

	previous := float32(math.Inf(1))
	for r := float32(1); r <= 1<<30; r *= 2 {
		displacement := libfield.Displace(p, elapsed, libfield.EarthMass, mgl32.Vec3{r, 0, 0}).Len()
		if displacement >= previous {
			t.Errorf("displacement at r=%v is %v, not below %v", r, displacement, previous)
		}
		previous = displacement
	}
	assert.Less(t, previous, float32(1e-3))
}

func TestDisplaceDegenerate(t *testing.T) {
	p := mgl32.Vec3{1, 1, 1}

	assert.Equal(t, p, libfield.Displace(p, 1000, libfield.EarthMass, p), "point on the source")
	assert.Equal(t, p, libfield.Displace(p, 1000, -libfield.EarthMass, mgl32.Vec3{}), "negative mass")
	assert.Equal(t, p, libfield.Displace(p, 1000, float32(math.NaN()), mgl32.Vec3{}), "nan mass")
	assert.Equal(t, p, libfield.Displace(p, float32(math.Inf(1)), libfield.EarthMass, mgl32.Vec3{}), "infinite time")

	for _, c := range libfield.Displace(p, 1000, libfield.EarthMass, mgl32.Vec3{1, 1, 1.0000001}) {
		assert.False(t, math32.IsNaN(c))
	}
}
