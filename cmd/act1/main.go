package main

import (
	_ "embed"
	"flag"
	"log"

	"learn-gl/libfractal"
	"learn-gl/libgl"
	"learn-gl/libui"
	"learn-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	im "github.com/inkyblackness/imgui-go/v4"
)

//go:embed shaders/tiles.vert
var Res_TilesVshSrc string

//go:embed shaders/tiles.frag
var Res_TilesFshSrc string

var Arguments struct {
	EnableCompatibilityProfile bool
	Width, Height              int
	Threshold                  float64
	Fps                        float64
}

const floatSize = 4

func main() {
	Arguments.Width, Arguments.Height = 800, 800
	Arguments.Threshold = libfractal.DefaultThreshold
	Arguments.Fps = 60

	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.IntVar(&Arguments.Width, "width", Arguments.Width, "window width")
	flag.IntVar(&Arguments.Height, "height", Arguments.Height, "window height")
	flag.Float64Var(&Arguments.Threshold, "threshold", Arguments.Threshold, "maximum side length of a leaf triangle")
	flag.Float64Var(&Arguments.Fps, "fps", Arguments.Fps, "frame rate limit")
	flag.Parse()

	win, err := libgl.InitWindow(libgl.WindowConfig{
		Title:         "Triangle Tiler",
		Width:         Arguments.Width,
		Height:        Arguments.Height,
		Compatibility: Arguments.EnableCompatibilityProfile,
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
	gui.OnScroll = input.AddScroll
	limiter := libutil.NewFrameLimiter(Arguments.Fps)

	shader, err := libgl.NewPipelineFromSource(Res_TilesVshSrc, Res_TilesFshSrc, nil)
	check(err)
	defer shader.Delete()

	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel("tiles")
	vbo.AllocateEmptyMutable(1024*3*3*floatSize, gl.DYNAMIC_DRAW)
	defer vbo.Delete()

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("tiles")
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.BindBuffer(0, vbo, 0, 3*floatSize)
	defer vao.Delete()

	view := libfractal.NewView()
	threshold := float32(Arguments.Threshold)
	color := mgl32.Vec3{1.0, 0.5, 0.2}
	triangleCount := 0

	libgl.State.ClearColor(0.2, 0.3, 0.3, 1.0)
	win.Show()

	for !win.ShouldClose() {
		glfw.PollEvents()
		input.Update(win)

		if !gui.WantsKeyboard() {
			if input.IsKeyDown(glfw.KeyEscape) {
				win.SetShouldClose(true)
			}
			if input.IsKeyDown(glfw.KeyUp) {
				view.ZoomIn()
			}
			if input.IsKeyDown(glfw.KeyDown) {
				view.ZoomOut()
			}
			if input.IsKeyTap(glfw.KeyR) {
				view = libfractal.NewView()
			}
			view.Pan(input.Axis(glfw.KeyA, glfw.KeyD), input.Axis(glfw.KeyS, glfw.KeyW))
		}

		if view.Dirty {
			tris, err := view.Tile(threshold)
			if err != nil {
				log.Printf("Tiling failed: %v\n", err)
				view.Dirty = false
			} else {
				triangleCount = tris.Count
				log.Printf("Number of triangles: %d\n", triangleCount)
				vbo.Reserve(len(tris.Vertices) * floatSize)
				vbo.Write(0, tris.Vertices)
			}
		}

		fbWidth, fbHeight := win.GetFramebufferSize()
		libgl.State.Viewport(0, 0, fbWidth, fbHeight)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if triangleCount > 0 {
			libgl.PushDebugGroup("tiles")
			vao.Bind()
			shader.Bind()
			shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_color", color)
			gl.DrawArrays(gl.TRIANGLES, 0, int32(triangleCount*3))
			libgl.PopDebugGroup()
		}

		gui.NewFrame()
		im.Begin("Tiler")
		if im.SliderFloatV("Threshold", &threshold, 0.001, 0.1, "%.4f", im.SliderFlagsLogarithmic) {
			view.Dirty = true
		}
		im.ColorEdit3("Color", (*[3]float32)(&color))
		im.Textf("Triangles: %d", triangleCount)
		im.Textf("Width: %.4f  Pan: %.2f, %.2f", view.Width, view.X, view.Y)
		im.Textf("Frame: %.1f ms", input.TimeDelta()*1000)
		im.Text("Zoom with UP/DOWN, pan with WASD, reset with R")
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
