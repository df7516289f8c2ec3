package libui

import (
	_ "embed"

	"learn-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

//go:embed shaders/imgui.vert
var imguiVertSrc string

//go:embed shaders/imgui.frag
var imguiFragSrc string

// Gui renders imgui draw lists and feeds it glfw input. It takes over the window's input
// callbacks; the scroll and key callbacks are forwarded to OnScroll and OnKey when imgui
// does not want the input itself.
type Gui struct {
	IO        imgui.IO
	FrameTime float32
	OnScroll  func(x, y float64)
	OnKey     func(key glfw.Key, action glfw.Action)
	context   *imgui.Context
	win       *glfw.Window
	vao       libgl.UnboundVertexArray
	vbo       libgl.UnboundBuffer
	ebo       libgl.UnboundBuffer
	atlas     uint32
	shader    libgl.UnboundShaderPipeline
}

func NewGui(win *glfw.Window) (*Gui, error) {
	shader, err := libgl.NewPipelineFromSource(imguiVertSrc, imguiFragSrc, nil)
	if err != nil {
		return nil, err
	}

	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	dispWidth, dispHeight := win.GetSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	imgui.StyleColorsDark()

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("imgui")
	vao.Layout(0, 0, 2, gl.FLOAT, false, vertexOffsetPos)
	vao.Layout(0, 1, 2, gl.FLOAT, false, vertexOffsetUv)
	vao.Layout(0, 2, 4, gl.UNSIGNED_BYTE, true, vertexOffsetCol)

	vbo := libgl.NewBuffer()
	vbo.AllocateEmptyMutable(64*1024, gl.STREAM_DRAW)
	vao.BindBuffer(0, vbo, 0, vertexSize)
	ebo := libgl.NewBuffer()
	ebo.AllocateEmptyMutable(32*1024, gl.STREAM_DRAW)
	vao.BindElementBuffer(ebo)

	image := io.Fonts().TextureDataRGBA32()
	var atlas uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &atlas)
	gl.TextureStorage2D(atlas, 1, gl.RGBA8, int32(image.Width), int32(image.Height))
	gl.TextureSubImage2D(atlas, 0, 0, 0, int32(image.Width), int32(image.Height), gl.RGBA, gl.UNSIGNED_BYTE, image.Pixels)
	gl.TextureParameteri(atlas, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TextureParameteri(atlas, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	io.Fonts().SetTextureID(imgui.TextureID(atlas))

	gui := &Gui{
		IO:        io,
		FrameTime: float32(glfw.GetTime()),
		context:   context,
		win:       win,
		vao:       vao,
		vbo:       vbo,
		ebo:       ebo,
		atlas:     atlas,
		shader:    shader,
	}
	gui.installCallbacks()
	return gui, nil
}

func (gui *Gui) installCallbacks() {
	io := gui.IO
	gui.win.SetCursorPosCallback(func(w *glfw.Window, mx, my float64) {
		io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
	})
	gui.win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button <= glfw.MouseButtonMiddle {
			io.SetMouseButtonDown(int(button), action == glfw.Press)
		}
	})
	gui.win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		io.AddMouseWheelDelta(float32(x), float32(y))
		if gui.OnScroll != nil && !gui.WantsMouse() {
			gui.OnScroll(x, y)
		}
	})
	gui.win.SetCharCallback(func(w *glfw.Window, char rune) {
		io.AddInputCharacters(string(char))
	})
	gui.win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyUnknown {
			return
		}
		if action == glfw.Press {
			io.KeyPress(int(key))
		}
		if action == glfw.Release {
			io.KeyRelease(int(key))
		}

		// Modifiers are not reliable across systems
		io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
		io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
		io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
		io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))

		if gui.OnKey != nil && !gui.WantsKeyboard() {
			gui.OnKey(key, action)
		}
	})

	for imKey, glfwKey := range map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	} {
		io.KeyMap(imKey, int(glfwKey))
	}
}

// WantsMouse reports whether the cursor is over a window or a widget is being dragged.
func (gui *Gui) WantsMouse() bool {
	return gui.IO.WantCaptureMouse()
}

func (gui *Gui) WantsKeyboard() bool {
	return gui.IO.WantCaptureKeyboard()
}

func (gui *Gui) NewFrame() {
	dispWidth, dispHeight := gui.win.GetSize()
	gui.IO.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})

	time := float32(glfw.GetTime())
	delta := time - gui.FrameTime
	if delta <= 0 {
		delta = 1. / 60.
	}
	gui.IO.SetDeltaTime(delta)
	gui.FrameTime = time

	imgui.NewFrame()
}

func (gui *Gui) Draw() {
	libgl.PushDebugGroup("Draw ImGui")
	defer libgl.PopDebugGroup()

	imgui.Render()
	drawData := imgui.RenderedDrawData()

	dispWidth, dispHeight := gui.win.GetSize()
	fbWidth, fbHeight := gui.win.GetFramebufferSize()
	if fbWidth == 0 || fbHeight == 0 {
		return
	}
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	ortho := mgl32.Ortho2D(0, float32(dispWidth), float32(dispHeight), 0)

	gui.vao.Bind()
	gui.shader.Bind()
	gui.shader.Get(gl.VERTEX_SHADER).SetUniform("u_proj_mat", ortho)

	libgl.State.SetEnabled(libgl.Blend, libgl.ScissorTest)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	libgl.State.ActiveTexture(0)
	libgl.State.BindSampler(0, 0)

	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(dispWidth),
		Y: float32(fbHeight) / float32(dispHeight),
	})

	var indexType uint32
	indexSize := imgui.IndexBufferLayout()
	switch indexSize {
	case 1:
		indexType = gl.UNSIGNED_BYTE
	case 2:
		indexType = gl.UNSIGNED_SHORT
	case 4:
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gui.vbo.Reserve(vertexBufferSize)
		if vertexBufferSize > 0 {
			gl.NamedBufferSubData(gui.vbo.Id(), 0, vertexBufferSize, vertexBuffer)
		}

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gui.ebo.Reserve(indexBufferSize)
		if indexBufferSize > 0 {
			gl.NamedBufferSubData(gui.ebo.Id(), 0, indexBufferSize, indexBuffer)
		}

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			libgl.State.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
			clipRect := cmd.ClipRect()
			x, y := int(clipRect.X), fbHeight-int(clipRect.W)
			if y < 0 {
				y = 0
			}
			libgl.State.Scissor(x, y, int(clipRect.Z-clipRect.X), int(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
		}
	}

	libgl.State.SetEnabled()
}

func (gui *Gui) Delete() {
	gui.vao.Delete()
	gui.vbo.Delete()
	gui.ebo.Delete()
	gl.DeleteTextures(1, &gui.atlas)
	gui.shader.Delete()
	gui.context.Destroy()
}
