package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"learn-gl/libfield"
)

type fieldArgs struct {
	commonArgs
	name   string
	config string
	impl   impl
	device device
	frames int
	start  float64
	step   float64
}

func createFieldCommand() *command {
	args := fieldArgs{
		name:   "field",
		impl:   implCl,
		device: "gpu",
		frames: 1,
		step:   1000.0 / 60.0,
	}

	flags := flag.NewFlagSet("field", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	flags.StringVar(&args.name, "name", args.name, "the result file name prefix")
	flags.StringVar(&args.config, "config", args.config, "a toml field config, defaults are used when empty")
	flags.Var(&args.impl, "impl", "the implementation, either 'opencl' or 'software'")
	flags.Var(&args.device, "device", "the preferred opencl device type, one of 'gpu', 'cpu' or 'accelerator'")
	flags.IntVar(&args.frames, "frames", args.frames, "number of frames to bake")
	flags.Float64Var(&args.start, "start", args.start, "elapsed time of the first frame in milliseconds")
	flags.Float64Var(&args.step, "step", args.step, "time between frames in milliseconds")

	return &command{
		Name: "field",
		Help: "bake frames of the bent field grid",
		Run: func(self *command) {
			if self.Flags.NArg() > 0 || args.frames < 1 || args.step < 0 || args.start < 0 {
				printCommandUsage(self, "")
			}
			setCommonArgs(&args.commonArgs)

			runField(args)
		},
		Flags: flags,
	}
}

func runField(args fieldArgs) {
	cfg := libfield.DefaultConfig()
	if args.config != "" {
		var err error
		cfg, err = libfield.LoadConfig(args.config)
		harderr(err)
	}
	harderr(cfg.Validate())

	var err error
	var displacer libfield.Displacer

	switch args.impl {
	case implCl:
		displacer, err = libfield.NewClDisplacer(args.device.Type(), cfg.Mass, cfg.Source)
		if err == nil {
			infof("Using OpenCL implementation\n")
			break
		}
		softerr(err)
		infof("Falling back to software implementation\n")
		fallthrough
	case implSw:
		displacer = libfield.NewSwDisplacer(cfg.Mass, cfg.Source)
		infof("Using software implementation\n")
	}

	gen, err := libfield.NewGenerator(cfg, displacer)
	harderr(err)
	defer gen.Release()

	success := 0
	start := time.Now()
	for i := 0; i < args.frames; i++ {
		elapsed := args.start + float64(i)*args.step
		outFilename := outputPath(fmt.Sprintf("%s_%04d", args.name, i))
		infof("Baking frame %d/%d at %.1f ms to %q ...\n", i+1, args.frames, elapsed, filepath.ToSlash(filepath.Clean(outFilename)))

		grid, err := gen.Generate(float32(elapsed))
		if softerr(err) {
			continue
		}
		if softerr(writeFrame(outFilename, gridFrame(grid))) {
			continue
		}
		success++
	}

	took := float32(time.Since(start).Milliseconds()) / 1000
	infof("Baked %d/%d frames of %d lines in %.3f seconds\n", success, args.frames, gen.LineCount(), took)
}
