package libfield_test

import (
	"testing"

	"learn-gl/libfield"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClDisplacer(t *testing.T, source mgl32.Vec3) libfield.Displacer {
	d, err := libfield.NewClDisplacer(libfield.DeviceTypeGPU, libfield.EarthMass, source)
	if err != nil {
		t.Skipf("opencl is not available: %v", err)
	}
	t.Cleanup(d.Release)
	return d
}

func TestClDisplacerMatchesSoftware(t *testing.T) {
	source := mgl32.Vec3{0.5, 0, -1}
	cl := newClDisplacer(t, source)
	sw := libfield.NewSwDisplacer(libfield.EarthMass, source)

	// more samples than fit in one work group, and not a multiple of it
	src := make([]mgl32.Vec3, 1000)
	for i := range src {
		f := float32(i)
		src[i] = mgl32.Vec3{f*0.01 - 5, f*0.007 - 3, 5 - f*0.01}
	}
	src[123] = source

	want := make([]mgl32.Vec3, len(src))
	got := make([]mgl32.Vec3, len(src))
	require.NoError(t, sw.Displace(src, want, 2500))
	require.NoError(t, cl.Displace(src, got, 2500))

	for i := range want {
		assert.True(t, want[i].ApproxEqualThreshold(got[i], 1e-4), "sample %d: want %v, got %v", i, want[i], got[i])
	}
	assert.Equal(t, source, got[123])
}

func TestClGenerator(t *testing.T) {
	cfg := smallConfig()
	cfg.Source = mgl32.Vec3{10, 0, 0}
	cl := newClDisplacer(t, cfg.Source)

	gen, err := libfield.NewGenerator(cfg, cl)
	require.NoError(t, err)
	grid, err := gen.Generate(2800)
	require.NoError(t, err)

	assert.Len(t, grid.Lines, 21)
	assert.Len(t, grid.Vertices, 96)
}

func TestDisplacerLengthMismatch(t *testing.T) {
	sw := libfield.NewSwDisplacer(libfield.EarthMass, mgl32.Vec3{})
	err := sw.Displace(make([]mgl32.Vec3, 3), make([]mgl32.Vec3, 2), 1)
	assert.ErrorIs(t, err, libfield.ErrInvalidArgument)
}
