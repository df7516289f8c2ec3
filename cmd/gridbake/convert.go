package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"learn-gl/libfield"
	"learn-gl/libfractal"
	"learn-gl/libio"

	"github.com/go-gl/mathgl/mgl32"
)

func trianglesFrame(tris libfractal.Triangles) *libio.Frame {
	frame := &libio.Frame{
		Kind:     libio.FrameKindTriangles,
		Vertices: make([]mgl32.Vec3, len(tris.Vertices)/3),
	}
	for i := range frame.Vertices {
		frame.Vertices[i] = mgl32.Vec3{tris.Vertices[i*3], tris.Vertices[i*3+1], tris.Vertices[i*3+2]}
	}
	return frame
}

func gridFrame(grid libfield.Grid) *libio.Frame {
	frame := &libio.Frame{
		Kind:     libio.FrameKindLineStrips,
		Vertices: grid.Vertices,
		Ranges:   make([]libio.FrameRange, len(grid.Lines)),
	}
	for i, lr := range grid.Lines {
		frame.Ranges[i] = libio.FrameRange{Start: lr.Start, Count: lr.Count}
	}
	return frame
}

// bounds returns the axis aligned box around all vertices, zero when there are none.
func bounds(vertices []mgl32.Vec3) (min, max mgl32.Vec3) {
	if len(vertices) == 0 {
		return
	}
	min, max = vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v[axis] < min[axis] {
				min[axis] = v[axis]
			}
			if v[axis] > max[axis] {
				max[axis] = v[axis]
			}
		}
	}
	return
}

func frameCompression() libio.FrameCompression {
	if cargs.compress {
		return libio.FrameCompressionLz4
	}
	return libio.FrameCompressionNone
}

func outputPath(name string) string {
	ext := cargs.ext
	if ext == "" {
		ext = ".frame"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(cargs.out, name+ext)
}

func writeFrame(path string, frame *libio.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	defer close(file)

	err = libio.EncodeFrame(file, frame, frameCompression())
	if err != nil {
		return fmt.Errorf("could not encode %q: %w", path, err)
	}
	return nil
}
