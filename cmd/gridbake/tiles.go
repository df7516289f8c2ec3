package main

import (
	"flag"
	"path/filepath"
	"time"

	"learn-gl/libfractal"
)

type tilesArgs struct {
	commonArgs
	name      string
	x, y      float64
	width     float64
	threshold float64
	maxDepth  int
}

func createTilesCommand() *command {
	args := tilesArgs{
		name:      "tiles",
		width:     libfractal.DefaultWidth,
		threshold: libfractal.DefaultThreshold,
		maxDepth:  libfractal.DefaultMaxDepth,
	}

	flags := flag.NewFlagSet("tiles", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	flags.StringVar(&args.name, "name", args.name, "the result file name without extension")
	flags.Float64Var(&args.x, "x", args.x, "horizontal pan in triangle widths")
	flags.Float64Var(&args.y, "y", args.y, "vertical pan in triangle widths")
	flags.Float64Var(&args.width, "width", args.width, "side length of the outer triangle")
	flags.Float64Var(&args.threshold, "threshold", args.threshold, "maximum side length of a leaf triangle")
	flags.IntVar(&args.maxDepth, "max-depth", args.maxDepth, "the subdivision depth limit")

	return &command{
		Name: "tiles",
		Help: "bake the triangle tiling of one view",
		Run: func(self *command) {
			if self.Flags.NArg() > 0 || args.width <= 0 || args.threshold <= 0 {
				printCommandUsage(self, "")
			}
			setCommonArgs(&args.commonArgs)

			runTiles(args)
		},
		Flags: flags,
	}
}

func runTiles(args tilesArgs) {
	view := &libfractal.View{
		X:     float32(args.x),
		Y:     float32(args.y),
		Width: float32(args.width),
	}
	x, y := view.Origin()

	start := time.Now()
	tris, err := libfractal.SubdivideLimit(x, y, view.Width, float32(args.threshold), args.maxDepth)
	harderr(err)
	took := float32(time.Since(start).Milliseconds()) / 1000
	infof("Subdivided into %d triangles in %.3f seconds\n", tris.Count, took)

	outFilename := outputPath(args.name)
	infof("Writing %q ...\n", filepath.ToSlash(filepath.Clean(outFilename)))
	harderr(writeFrame(outFilename, trianglesFrame(tris)))
}
