package main

import (
	_ "embed"
	"flag"
	"log"
	"time"
	"unsafe"

	"learn-gl/libgl"
	"learn-gl/libui"
	"learn-gl/libutil"
	"learn-gl/libwheel"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	im "github.com/inkyblackness/imgui-go/v4"
)

//go:embed shaders/wheel.vert
var Res_WheelVshSrc string

//go:embed shaders/wheel.frag
var Res_WheelFshSrc string

var Arguments struct {
	EnableCompatibilityProfile bool
	Width, Height              int
	TriangleSize               float64
	Fps                        float64
}

const (
	floatSize    = 4
	instanceSize = int(unsafe.Sizeof(libwheel.Instance{}))
	modelOffset  = int(unsafe.Offsetof(libwheel.Instance{}.Model))
)

func main() {
	Arguments.Width, Arguments.Height = 800, 800
	Arguments.TriangleSize = libwheel.DefaultTriangleSize
	Arguments.Fps = 60

	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.IntVar(&Arguments.Width, "width", Arguments.Width, "window width")
	flag.IntVar(&Arguments.Height, "height", Arguments.Height, "window height")
	flag.Float64Var(&Arguments.TriangleSize, "size", Arguments.TriangleSize, "triangle size in pixels")
	flag.Float64Var(&Arguments.Fps, "fps", Arguments.Fps, "frame rate limit")
	flag.Parse()

	win, err := libgl.InitWindow(libgl.WindowConfig{
		Title:         "Color Wheel",
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
	defer gui.Delete()

	input := libutil.NewInput(win)
	gui.OnKey = func(key glfw.Key, action glfw.Action) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	}
	limiter := libutil.NewFrameLimiter(Arguments.Fps)

	shader, err := libgl.NewPipelineFromSource(Res_WheelVshSrc, Res_WheelFshSrc, nil)
	check(err)
	defer shader.Delete()

	triangleVbo := libgl.NewBuffer()
	triangleVbo.SetDebugLabel("wheel_triangle")
	triangleVbo.AllocateEmptyMutable(3*2*floatSize, gl.DYNAMIC_DRAW)
	defer triangleVbo.Delete()

	instanceVbo := libgl.NewBuffer()
	instanceVbo.SetDebugLabel("wheel_instances")
	instanceVbo.AllocateEmptyMutable(1024*instanceSize, gl.STREAM_DRAW)
	defer instanceVbo.Delete()

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("wheel")
	vao.Layout(0, 0, 2, gl.FLOAT, false, 0)
	vao.BindBuffer(0, triangleVbo, 0, 2*floatSize)
	// a mat4 attribute takes one location per column
	for col := 0; col < 4; col++ {
		vao.Layout(1, 1+col, 4, gl.FLOAT, false, modelOffset+col*4*floatSize)
	}
	vao.Layout(1, 5, 2, gl.FLOAT, false, 0)
	vao.BindBuffer(1, instanceVbo, 0, instanceSize)
	vao.BindingDivisor(1, 1)
	defer vao.Delete()

	cfg := libwheel.DefaultConfig(win.GetFramebufferSize())
	cfg.TriangleSize = float32(Arguments.TriangleSize)
	uploadedSize := float32(0)
	uploadedW, uploadedH := 0, 0

	libgl.State.ClearColor(0.2, 0.3, 0.3, 1.0)
	win.Show()
	start := time.Now()

	for !win.ShouldClose() {
		glfw.PollEvents()
		input.Update(win)

		if !gui.WantsKeyboard() {
			if input.IsKeyDown(glfw.KeyUp) {
				cfg.Grow()
			}
			if input.IsKeyDown(glfw.KeyDown) {
				cfg.Shrink()
			}
		}

		cfg.ViewportW, cfg.ViewportH = win.GetFramebufferSize()
		if cfg.TriangleSize != uploadedSize || cfg.ViewportW != uploadedW || cfg.ViewportH != uploadedH {
			triangleVbo.Write(0, libwheel.Triangle(cfg.TriangleSize, cfg.ViewportW, cfg.ViewportH))
			uploadedSize, uploadedW, uploadedH = cfg.TriangleSize, cfg.ViewportW, cfg.ViewportH
		}

		winWidth, winHeight := win.GetSize()
		cursorPos := input.CursorPos()
		cursor := libwheel.CursorToNDC(float64(cursorPos[0]), float64(cursorPos[1]), winWidth, winHeight)
		elapsed := float32(time.Since(start).Milliseconds())

		instances := libwheel.Layout(cfg, cursor, elapsed)
		if len(instances) > 0 {
			instanceVbo.Reserve(len(instances) * instanceSize)
			instanceVbo.Write(0, instances)
		}

		libgl.State.Viewport(0, 0, cfg.ViewportW, cfg.ViewportH)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if len(instances) > 0 {
			libgl.PushDebugGroup("wheel")
			vao.Bind()
			shader.Bind()
			gl.DrawArraysInstanced(gl.TRIANGLES, 0, 3, int32(len(instances)))
			libgl.PopDebugGroup()
		}

		gui.NewFrame()
		im.Begin("Color Wheel")
		im.SliderFloatV("Size", &cfg.TriangleSize, libwheel.MinTriangleSize, 200, "%.1f px", im.SliderFlagsAlwaysClamp)
		im.SliderFloat("Spacing", &cfg.Spacing, 0.2, 2)
		im.Textf("Triangles: %d", len(instances))
		im.Textf("Cursor: %.2f, %.2f", cursor[0], cursor[1])
		im.Textf("Frame: %.1f ms", input.TimeDelta()*1000)
		im.Text("Resize with UP/DOWN")
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
