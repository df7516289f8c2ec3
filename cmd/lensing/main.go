package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"learn-gl/libcam"
	"learn-gl/libfield"
	"learn-gl/libgl"
	"learn-gl/libui"
	"learn-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	im "github.com/inkyblackness/imgui-go/v4"
)

//go:embed shaders/solid.vert
var Res_SolidVshSrc string

//go:embed shaders/solid.frag
var Res_SolidFshSrc string

type impl string

const (
	implCl impl = "opencl"
	implSw impl = "software"
)

func (i *impl) String() string {
	return string(*i)
}

func (i *impl) Set(s string) error {
	switch impl(s) {
	case implCl, implSw:
		*i = impl(s)
		return nil
	}
	return fmt.Errorf("%s is not a valid implementation", s)
}

var Arguments struct {
	EnableCompatibilityProfile bool
	Width, Height              int
	Config                     string
	Impl                       impl
	Sensitivity                float64
	Fps                        float64
}

const (
	vec3Size      = 12
	sphereRadius  = 3
	sphereSteps   = 20
	timeWrapMs    = 1_000_000
	zoomPerScroll = 0.5
	initialPitch  = -20
	initialYaw    = 30
)

func main() {
	Arguments.Width, Arguments.Height = 1280, 720
	Arguments.Impl = implSw
	Arguments.Sensitivity = libcam.DefaultSensitivity
	Arguments.Fps = 60

	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.IntVar(&Arguments.Width, "width", Arguments.Width, "window width")
	flag.IntVar(&Arguments.Height, "height", Arguments.Height, "window height")
	flag.StringVar(&Arguments.Config, "config", Arguments.Config, "a toml field config, defaults are used when empty")
	flag.Var(&Arguments.Impl, "impl", "the displacement implementation, either 'opencl' or 'software'")
	flag.Float64Var(&Arguments.Sensitivity, "sensitivity", Arguments.Sensitivity, "radians of rotation per dragged pixel")
	flag.Float64Var(&Arguments.Fps, "fps", Arguments.Fps, "frame rate limit")
	flag.Parse()

	cfg := libfield.DefaultConfig()
	if Arguments.Config != "" {
		var err error
		cfg, err = libfield.LoadConfig(Arguments.Config)
		check(err)
	}

	var displacer libfield.Displacer
	if Arguments.Impl == implCl {
		var err error
		displacer, err = libfield.NewClDisplacer(libfield.DeviceTypeGPU, cfg.Mass, cfg.Source)
		if err != nil {
			log.Printf("OpenCL is not available, falling back to software: %v\n", err)
		}
	}
	if displacer == nil {
		displacer = libfield.NewSwDisplacer(cfg.Mass, cfg.Source)
	}

	generator, err := libfield.NewGenerator(cfg, displacer)
	check(err)
	defer generator.Release()

	win, err := libgl.InitWindow(libgl.WindowConfig{
		Title:         "Gravitational Lensing",
		Width:         Arguments.Width,
		Height:        Arguments.Height,
		Compatibility: Arguments.EnableCompatibilityProfile,
		Resizable:     true,
		SwapInterval:  1,
	})
	check(err)
	defer glfw.Terminate()

	err = libgl.InitGL()
	check(err)

	gui, err := libui.NewGui(win)
	check(err)

	input := libutil.NewInput(win)
	gui.OnScroll = input.AddScroll
	limiter := libutil.NewFrameLimiter(Arguments.Fps)

	shader, err := libgl.NewPipelineFromSource(Res_SolidVshSrc, Res_SolidFshSrc, nil)
	check(err)

	gridVbo := libgl.NewBuffer()
	gridVbo.SetDebugLabel("field_grid")
	gridVbo.AllocateEmptyMutable(generator.LineCount()*cfg.Steps*vec3Size, gl.STREAM_DRAW)

	gridVao := libgl.NewVertexArray()
	gridVao.SetDebugLabel("field_grid")
	gridVao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	gridVao.BindBuffer(0, gridVbo, 0, vec3Size)

	sphereVerts, sphereIndices := libfield.Sphere(cfg.Source, sphereRadius, sphereSteps, sphereSteps)
	sphereVbo := libgl.NewBuffer()
	sphereVbo.SetDebugLabel("mass_sphere")
	sphereVbo.Allocate(sphereVerts, 0)
	sphereEbo := libgl.NewBuffer()
	sphereEbo.SetDebugLabel("mass_sphere")
	sphereEbo.Allocate(sphereIndices, 0)

	sphereVao := libgl.NewVertexArray()
	sphereVao.SetDebugLabel("mass_sphere")
	sphereVao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	sphereVao.BindBuffer(0, sphereVbo, 0, vec3Size)
	sphereVao.BindElementBuffer(sphereEbo)

	resources := []libutil.Deleter{gui, shader, gridVao, gridVbo, sphereVao, sphereVbo, sphereEbo}
	defer func() {
		for _, r := range resources {
			r.Delete()
		}
	}()

	cam := libcam.NewOrbitTilted(libcam.DefaultRadius, initialPitch*libutil.Deg2Rad, initialYaw*libutil.Deg2Rad)
	drag := &libcam.Drag{}
	sensitivity := float32(Arguments.Sensitivity)

	lineColor := libutil.Hsl2rgb(mgl32.Vec3{2. / 3., 2. / 3., 0.85})
	sphereColor := mgl32.Vec3{0.8, 0.8, 0.8}
	paused := false
	var pausedAt float64
	var firsts, counts []int32

	libgl.State.ClearColor(0.07, 0.07, 0.09, 1.0)
	libgl.State.LineWidth(1)
	win.Show()
	start := time.Now()

	for !win.ShouldClose() {
		glfw.PollEvents()
		input.Update(win)

		if !gui.WantsKeyboard() && input.IsKeyDown(glfw.KeyEscape) {
			win.SetShouldClose(true)
		}

		cursor := input.CursorPos()
		if input.IsMouseTap(glfw.MouseButtonLeft) && !gui.WantsMouse() {
			drag.Press(cursor[0], cursor[1])
		}
		if input.IsMouseRelease(glfw.MouseButtonLeft) {
			drag.Release()
		}
		drag.Apply(cam, cursor[0], cursor[1], sensitivity)
		if scroll := input.ScrollDelta(); scroll[1] != 0 {
			cam.Zoom(scroll[1] * zoomPerScroll)
		}

		elapsed := float64(time.Since(start).Microseconds()) / 1000
		if paused {
			elapsed = pausedAt
		}
		grid, err := generator.Generate(float32(math.Mod(elapsed, timeWrapMs)))
		if err != nil {
			log.Printf("Field generation failed: %v\n", err)
		}

		gridVbo.Reserve(len(grid.Vertices) * vec3Size)
		gridVbo.Write(0, grid.Vertices)
		firsts, counts = firsts[:0], counts[:0]
		for _, lr := range grid.Lines {
			firsts = append(firsts, lr.Start)
			counts = append(counts, lr.Count)
		}

		fbWidth, fbHeight := win.GetFramebufferSize()
		libgl.State.Viewport(0, 0, fbWidth, fbHeight)
		libgl.State.Enable(libgl.DepthTest)
		libgl.State.DepthFunc(libgl.DepthFuncLess)
		libgl.State.DepthMask(true)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		aspect := float32(1)
		if fbHeight > 0 {
			aspect = float32(fbWidth) / float32(fbHeight)
		}
		shader.Bind()
		shader.Get(gl.VERTEX_SHADER).SetUniform("u_mvp_mat", cam.ViewProjection(aspect))

		if len(counts) > 0 {
			libgl.PushDebugGroup("field_grid")
			gridVao.Bind()
			shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_color", lineColor)
			gl.MultiDrawArrays(gl.LINE_STRIP, &firsts[0], &counts[0], int32(len(counts)))
			libgl.PopDebugGroup()
		}

		libgl.PushDebugGroup("mass_sphere")
		sphereVao.Bind()
		shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_color", sphereColor)
		gl.DrawElements(gl.TRIANGLES, int32(len(sphereIndices)), gl.UNSIGNED_INT, nil)
		libgl.PopDebugGroup()

		libgl.State.Disable(libgl.DepthTest)

		gui.NewFrame()
		im.Begin("Lensing")
		if im.Checkbox("Paused", &paused) {
			pausedAt = elapsed
		}
		im.ColorEdit3("Lines", (*[3]float32)(&lineColor))
		im.ColorEdit3("Mass", (*[3]float32)(&sphereColor))
		im.SliderFloatV("Sensitivity", &sensitivity, 0.0005, 0.05, "%.4f", im.SliderFlagsLogarithmic)
		im.SliderFloat("Radius", &cam.Radius, cam.MinRadius, cam.MaxRadius)
		im.Textf("Time: %.0f ms", math.Mod(elapsed, timeWrapMs))
		im.Textf("Lines: %d/%d  Vertices: %d", len(grid.Lines), generator.LineCount(), len(grid.Vertices))
		im.Text("Drag with the left mouse button, scroll to zoom")
		im.End()
		gui.Draw()

		win.SwapBuffers()
		limiter.Wait()
	}
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
