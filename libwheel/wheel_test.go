package libwheel_test

import (
	"testing"

	"learn-gl/libwheel"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorToNDC(t *testing.T) {
	assert.Equal(t, mgl32.Vec2{-1, 1}, libwheel.CursorToNDC(0, 0, 800, 600))
	assert.Equal(t, mgl32.Vec2{1, -1}, libwheel.CursorToNDC(800, 600, 800, 600))
	assert.Equal(t, mgl32.Vec2{0, 0}, libwheel.CursorToNDC(400, 300, 800, 600))
}

func TestTriangle(t *testing.T) {
	tri := libwheel.Triangle(40, 800, 400)
	require.Len(t, tri, 6)
	assert.Equal(t, []float32{0, 0}, tri[:2])
	assert.InDelta(t, 0.1*math32.Sqrt(3)/2, tri[3], 1e-6)
	assert.InDelta(t, 0.025, tri[4], 1e-6)
}

func TestLayoutGrid(t *testing.T) {
	cfg := libwheel.Config{TriangleSize: 40, Spacing: 0.5, ViewportW: 100, ViewportH: 60}
	instances := libwheel.Layout(cfg, mgl32.Vec2{}, 1000)

	// cells every 20 pixels
	require.Len(t, instances, 5*3)
	assert.Equal(t, mgl32.Vec2{-1, -1}, instances[0].Pos)
	assert.InDelta(t, -1+40.0/60*2, instances[2].Pos[1], 1e-6)
	assert.InDelta(t, -1+20.0/100*2, instances[3].Pos[0], 1e-6)

	for _, inst := range instances {
		origin := inst.Model.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		assert.InDelta(t, inst.Pos[0], origin[0], 1e-6)
		assert.InDelta(t, inst.Pos[1], origin[1], 1e-6)
	}
}

func TestLayoutEmptyViewport(t *testing.T) {
	cfg := libwheel.DefaultConfig(0, 600)
	assert.Empty(t, libwheel.Layout(cfg, mgl32.Vec2{}, 10))
}

func TestLayoutTinyTriangles(t *testing.T) {
	cfg := libwheel.Config{TriangleSize: 1, Spacing: 0.7, ViewportW: 10, ViewportH: 10}
	assert.Len(t, libwheel.Layout(cfg, mgl32.Vec2{}, 10), 100)
}

func TestModelScale(t *testing.T) {
	pos := mgl32.Vec2{0.25, -0.5}
	cursor := mgl32.Vec2{0.25, 0.5}

	model := libwheel.Model(pos, cursor, 500)
	tip := model.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec2().Sub(pos)
	assert.InDelta(t, libwheel.Scale(1), tip.Len(), 1e-5)

	angle := libwheel.Angle(pos, cursor, 500)
	assert.InDelta(t, math32.Cos(angle), tip[0]/tip.Len(), 1e-5)
	assert.InDelta(t, math32.Sin(angle), tip[1]/tip.Len(), 1e-5)
}

func TestScale(t *testing.T) {
	assert.InDelta(t, 1.7, libwheel.Scale(0), 1e-6)
	assert.Less(t, libwheel.Scale(3), libwheel.Scale(1))
	assert.InDelta(t, 1, libwheel.Scale(100), 1e-6)
}

func TestAngleClampsTime(t *testing.T) {
	pos := mgl32.Vec2{-0.3, 0.6}
	cursor := mgl32.Vec2{0.1, 0.1}
	at1 := libwheel.Angle(pos, cursor, 1)
	assert.Equal(t, at1, libwheel.Angle(pos, cursor, 0))
	assert.Equal(t, at1, libwheel.Angle(pos, cursor, -20))
	assert.False(t, math32.IsNaN(at1))
}

func TestResize(t *testing.T) {
	cfg := libwheel.DefaultConfig(800, 800)
	cfg.Grow()
	assert.InDelta(t, 30.1, cfg.TriangleSize, 1e-5)

	cfg.TriangleSize = 1.05
	cfg.Shrink()
	assert.Equal(t, float32(libwheel.MinTriangleSize), cfg.TriangleSize)
	cfg.Shrink()
	assert.Equal(t, float32(libwheel.MinTriangleSize), cfg.TriangleSize)
}
