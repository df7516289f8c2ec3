package libfield

import (
	_ "embed"
	"fmt"
	"unsafe"

	"github.com/Qendolin/go-opencl/cl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

//go:embed displace.cl
var openclDisplaceSrc string

type DeviceType = cl.DeviceType

const (
	DeviceTypeCPU         = DeviceType(cl.DeviceTypeCPU)
	DeviceTypeGPU         = DeviceType(cl.DeviceTypeGPU)
	DeviceTypeAccelerator = DeviceType(cl.DeviceTypeAccelerator)
)

const clWorkGroupSize = 64

type clDisplacer struct {
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernel  *cl.Kernel
	mass    float32
	source  mgl32.Vec3
}

// NewClDisplacer compiles the displacement kernel for the most capable device,
// favoring devices of the preferred type.
func NewClDisplacer(preferredDevice DeviceType, mass float32, source mgl32.Vec3) (Displacer, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, err
	}

	var devices []*cl.Device
	for _, p := range platforms {
		devs, err := p.GetDevices(cl.DeviceTypeAll)
		if err != nil {
			continue
		}
		devices = append(devices, devs...)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no opencl devices found")
	}

	slices.SortFunc(devices, func(a, b *cl.Device) int {
		if a.Type() == preferredDevice && b.Type() != preferredDevice {
			return -1
		}
		if a.Type() != preferredDevice && b.Type() == preferredDevice {
			return 1
		}

		aPower := a.MaxComputeUnits() * a.MaxClockFrequency()
		bPower := b.MaxComputeUnits() * b.MaxClockFrequency()

		return bPower - aPower
	})

	device := devices[0]

	ctx, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, err
	}

	queue, err := ctx.CreateCommandQueue(device, 0)
	if err != nil {
		ctx.Release()
		return nil, err
	}

	prog, err := ctx.CreateProgramWithSource([]string{openclDisplaceSrc})
	if err != nil {
		queue.Release()
		ctx.Release()
		return nil, err
	}
	err = prog.BuildProgram(nil, "")
	if err != nil {
		prog.Release()
		queue.Release()
		ctx.Release()
		return nil, err
	}

	kernel, err := prog.CreateKernel("displace_points")
	if err != nil {
		prog.Release()
		queue.Release()
		ctx.Release()
		return nil, err
	}

	return &clDisplacer{
		context: ctx,
		queue:   queue,
		program: prog,
		kernel:  kernel,
		mass:    mass,
		source:  source,
	}, nil
}

func (d *clDisplacer) Displace(src, dst []mgl32.Vec3, elapsedMs float32) error {
	if len(src) != len(dst) {
		return fmt.Errorf("source has %d samples but destination %d: %w", len(src), len(dst), ErrInvalidArgument)
	}
	if len(src) == 0 {
		return nil
	}

	size := len(src) * int(unsafe.Sizeof(src[0]))

	srcBuf, err := d.context.CreateBuffer(cl.MemReadOnly|cl.MemCopyHostPtr, size, unsafe.Pointer(&src[0]))
	if err != nil {
		return err
	}
	defer srcBuf.Release()

	dstBuf, err := d.context.CreateBuffer(cl.MemWriteOnly, size, nil)
	if err != nil {
		return err
	}
	defer dstBuf.Release()

	if err = d.kernel.SetArgBuffer(0, srcBuf); err != nil {
		return err
	}
	if err = d.kernel.SetArgBuffer(1, dstBuf); err != nil {
		return err
	}
	if err = d.kernel.SetArgInt32(2, int32(len(src))); err != nil {
		return err
	}
	if err = d.kernel.SetArgFloat32(3, d.source[0]); err != nil {
		return err
	}
	if err = d.kernel.SetArgFloat32(4, d.source[1]); err != nil {
		return err
	}
	if err = d.kernel.SetArgFloat32(5, d.source[2]); err != nil {
		return err
	}
	if err = d.kernel.SetArgFloat32(6, d.mass); err != nil {
		return err
	}
	if err = d.kernel.SetArgFloat32(7, elapsedMs); err != nil {
		return err
	}

	globalWorkSize := []int{roundUpKernelSize(clWorkGroupSize, len(src))}
	localWorkSize := []int{clWorkGroupSize}

	_, err = d.queue.EnqueueNDRangeKernel(d.kernel, []int{0}, globalWorkSize, localWorkSize, nil)
	if err != nil {
		return err
	}

	_, err = d.queue.EnqueueReadBuffer(dstBuf, true, 0, size, unsafe.Pointer(&dst[0]), nil)
	return err
}

func (d *clDisplacer) Release() {
	d.kernel.Release()
	d.program.Release()
	d.queue.Release()
	d.context.Release()
}

func roundUpKernelSize(groupSize, globalSize int) int {
	r := globalSize % groupSize
	if r == 0 {
		return globalSize
	}
	return globalSize + groupSize - r
}
