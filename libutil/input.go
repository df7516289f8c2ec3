package libutil

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Input polls keyboard and mouse state once per frame so that taps can be told apart
// from held keys.
type Input struct {
	curr   inputState
	prev   inputState
	scroll mgl32.Vec2
}

type inputState struct {
	time         float32
	cursorPos    mgl32.Vec2
	scroll       mgl32.Vec2
	keys         []bool
	mousebuttons []bool
}

func newInputState() inputState {
	return inputState{
		keys:         make([]bool, glfw.KeyLast+1),
		mousebuttons: make([]bool, glfw.MouseButtonLast+1),
	}
}

func NewInput(win *glfw.Window) *Input {
	i := &Input{
		curr: newInputState(),
		prev: newInputState(),
	}

	i.Update(win)
	i.prev.cursorPos = i.curr.cursorPos
	// dTime must not be 0
	i.prev.time = i.curr.time - 1./60.
	copy(i.prev.keys, i.curr.keys)
	copy(i.prev.mousebuttons, i.curr.mousebuttons)

	return i
}

// AddScroll accumulates scroll offsets until the next Update.
// glfw only reports scrolling through a callback.
func (i *Input) AddScroll(x, y float64) {
	i.scroll = i.scroll.Add(mgl32.Vec2{float32(x), float32(y)})
}

func (i *Input) CursorPos() mgl32.Vec2 {
	return i.curr.cursorPos
}

func (i *Input) ScrollDelta() mgl32.Vec2 {
	return i.curr.scroll
}

func (i *Input) TimeDelta() float32 {
	return i.curr.time - i.prev.time
}

func (i *Input) IsKeyDown(key glfw.Key) bool {
	return i.curr.keys[key]
}

func (i *Input) IsKeyTap(key glfw.Key) bool {
	return i.curr.keys[key] && !i.prev.keys[key]
}

func (i *Input) IsMouseTap(button glfw.MouseButton) bool {
	return i.curr.mousebuttons[button] && !i.prev.mousebuttons[button]
}

func (i *Input) IsMouseRelease(button glfw.MouseButton) bool {
	return !i.curr.mousebuttons[button] && i.prev.mousebuttons[button]
}

// Axis is +1 while only positive is held, -1 while only negative is held and 0 otherwise.
func (i *Input) Axis(positive, negative glfw.Key) float32 {
	var v float32
	if i.IsKeyDown(positive) {
		v += 1
	}
	if i.IsKeyDown(negative) {
		v -= 1
	}
	return v
}

func (i *Input) Update(win *glfw.Window) {
	keys := i.prev.keys
	mousebuttons := i.prev.mousebuttons
	i.prev = i.curr
	cursorX, cursorY := win.GetCursorPos()

	// glfw has no keys below space
	for key := glfw.KeySpace; key <= glfw.KeyLast; key++ {
		keys[key] = win.GetKey(key) != glfw.Release
	}

	for button := glfw.MouseButton1; button <= glfw.MouseButtonLast; button++ {
		mousebuttons[button] = win.GetMouseButton(button) != glfw.Release
	}

	i.curr = inputState{
		time:         float32(glfw.GetTime()),
		cursorPos:    mgl32.Vec2{float32(cursorX), float32(cursorY)},
		scroll:       i.scroll,
		keys:         keys,
		mousebuttons: mousebuttons,
	}
	i.scroll = mgl32.Vec2{}
}
