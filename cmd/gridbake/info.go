package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"learn-gl/libio"
)

type infoArgs struct {
	commonArgs
	header bool
}

func createInfoCommand() *command {
	args := infoArgs{}

	flags := flag.NewFlagSet("info", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	flags.BoolVar(&args.header, "header", args.header, "only read the frame headers")

	return &command{
		Name: "info",
		Help: "print information about baked frames",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 {
				printCommandUsage(self, " file-glob...")
			}
			setCommonArgs(&args.commonArgs)

			runInfo(args, gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runInfo(args infoArgs, inputFiles []string) {
	for _, p := range inputFiles {
		err := printFrameInfo(p, args.header)
		softerr(err)
	}
}

func printFrameInfo(p string, headerOnly bool) error {
	file, err := os.Open(p)
	if err != nil {
		return err
	}
	defer close(file)

	fmt.Printf("%s:\n", filepath.ToSlash(filepath.Clean(p)))

	if headerOnly {
		header, err := libio.DecodeFrameHeader(file)
		if err != nil {
			return fmt.Errorf("%q: %w", p, err)
		}
		fmt.Printf("  version:     %d\n", header.Version)
		fmt.Printf("  kind:        %v\n", header.Kind)
		fmt.Printf("  compression: %v\n", header.Compression)
		fmt.Printf("  vertices:    %d\n", header.VertexCount)
		fmt.Printf("  ranges:      %d\n", header.RangeCount)
		return nil
	}

	frame, err := libio.DecodeFrame(file)
	if err != nil {
		return fmt.Errorf("%q: %w", p, err)
	}
	min, max := bounds(frame.Vertices)
	fmt.Printf("  kind:        %v\n", frame.Kind)
	fmt.Printf("  vertices:    %d\n", len(frame.Vertices))
	if frame.Kind == libio.FrameKindTriangles {
		fmt.Printf("  triangles:   %d\n", len(frame.Vertices)/3)
	} else {
		fmt.Printf("  ranges:      %d\n", len(frame.Ranges))
	}
	fmt.Printf("  bounds:      %v %v\n", min, max)
	return nil
}
