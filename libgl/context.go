package libgl

import (
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// Request a compatibility profile instead of a core profile
	Compatibility bool
	Resizable     bool
	// 0 disables vsync
	SwapInterval int
}

// InitWindow initializes glfw and opens a hidden window with a 4.5 debug context made
// current on the calling thread. The caller must call glfw.Terminate.
func InitWindow(cfg WindowConfig) (*glfw.Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	if cfg.Compatibility {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(cfg.SwapInterval)

	return win, nil
}

// InitGL loads the function pointers for the current context, enables debug output
// and resets the state cache.
func InitGL() error {
	err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			return unsafe.Pointer(uintptr(0xffff_ffff_ffff_ffff))
		}
		return addr
	})
	if err != nil {
		return err
	}

	InitDebugOutput()
	State = NewStateManager()

	dims := [4]int32{}
	gl.GetIntegerv(gl.VIEWPORT, &dims[0])
	State.ViewportRect = [4]int{int(dims[0]), int(dims[1]), int(dims[2]), int(dims[3])}

	return nil
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
