package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"learn-gl/libfield"
	"learn-gl/libfractal"
	"learn-gl/libio"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrianglesFrame(t *testing.T) {
	tris, err := libfractal.Subdivide(-0.5, -0.5, 1, 0.5)
	require.NoError(t, err)

	frame := trianglesFrame(tris)
	assert.Equal(t, libio.FrameKindTriangles, frame.Kind)
	require.Len(t, frame.Vertices, tris.Count*3)
	assert.Equal(t, mgl32.Vec3{tris.Vertices[3], tris.Vertices[4], tris.Vertices[5]}, frame.Vertices[1])
	assert.NoError(t, frame.Validate())
}

func TestGridFrame(t *testing.T) {
	cfg := libfield.DefaultConfig()
	cfg.Counts = [3]int{2, 2, 2}
	cfg.Steps = 4
	grid, err := libfield.GenerateField(cfg, 0)
	require.NoError(t, err)

	frame := gridFrame(grid)
	assert.Equal(t, libio.FrameKindLineStrips, frame.Kind)
	require.Len(t, frame.Ranges, 12)
	assert.Equal(t, libio.FrameRange{Start: 4, Count: 4}, frame.Ranges[1])
	assert.NoError(t, frame.Validate())
}

func TestBounds(t *testing.T) {
	min, max := bounds(nil)
	assert.Equal(t, mgl32.Vec3{}, min)
	assert.Equal(t, mgl32.Vec3{}, max)

	min, max = bounds([]mgl32.Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}})
	assert.Equal(t, mgl32.Vec3{-1, -2, 0}, min)
	assert.Equal(t, mgl32.Vec3{1, 4, 5}, max)
}

func TestWriteFrame(t *testing.T) {
	dir := t.TempDir()
	cargs = &commonArgs{out: dir, compress: true, ext: "bin"}
	t.Cleanup(func() { cargs = &commonArgs{} })

	path := outputPath("grid")
	assert.Equal(t, filepath.Join(dir, "grid.bin"), path)

	frame := &libio.Frame{
		Kind:     libio.FrameKindLineStrips,
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}},
		Ranges:   []libio.FrameRange{{Start: 0, Count: 3}},
	}
	require.NoError(t, writeFrame(path, frame))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	header, err := libio.DecodeFrameHeader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, libio.FrameCompressionLz4, header.Compression)

	decoded, err := libio.DecodeFrame(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, frame, decoded)
}
