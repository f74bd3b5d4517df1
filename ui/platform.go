//go:build !tinygo && cgo

package ui

import (
	"fmt"
	"math"
	"runtime"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/drawbox/log"
	"github.com/soypat/geometry/ms2"
)

const (
	mouseButtonPrimary imgui.MouseButton = iota
	mouseButtonSecondary
	mouseButtonTertiary
	mouseButtonCount
)

// platform owns the GLFW window and feeds its input to imgui.
type platform struct {
	io     *imgui.IO
	window *glfw.Window

	time             float64
	mouseJustPressed [mouseButtonCount]bool
	mouseCursors     [imgui.MouseCursorCOUNT]*glfw.Cursor
	currentCursor    *glfw.Cursor
}

// newPlatform creates the window with a current OpenGL 4.1 core context.
// imgui's context must exist beforehand.
func newPlatform(cfg Config, lg *log.Logger) (*platform, error) {
	lg.Info("Starting GLFW initialization")
	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	lg.Infof("GLFW: %s", glfw.GetVersionString())

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	err = gl.Init()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	lg.Infof("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	io := imgui.CurrentIO()
	io.SetBackendFlags(io.BackendFlags() | imgui.BackendFlagsHasMouseCursors)
	p := &platform{
		io:     io,
		window: window,
	}
	p.installCallbacks()
	p.createMouseCursors()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	lg.Info("Finished GLFW initialization")
	return p, nil
}

func (p *platform) dispose() {
	for _, c := range p.mouseCursors {
		if c != nil {
			c.Destroy()
		}
	}
	p.window.Destroy()
	glfw.Terminate()
}

func (p *platform) shouldStop() bool { return p.window.ShouldClose() }

func (p *platform) displaySize() ms2.Vec {
	w, h := p.window.GetSize()
	return ms2.Vec{X: float32(w), Y: float32(h)}
}

func (p *platform) framebufferSize() ms2.Vec {
	w, h := p.window.GetFramebufferSize()
	return ms2.Vec{X: float32(w), Y: float32(h)}
}

// pixelScale returns framebuffer pixels per screen coordinate.
func (p *platform) pixelScale() float32 {
	ds := p.displaySize()
	if ds.X <= 0 {
		return 1
	}
	return p.framebufferSize().X / ds.X
}

func (p *platform) processEvents() { glfw.PollEvents() }

func (p *platform) postRender() { p.window.SwapBuffers() }

func (p *platform) newFrame() {
	// Setup display size (every frame to accommodate for window resizing)
	ds := p.displaySize()
	p.io.SetDisplaySize(imgui.Vec2{X: ds.X, Y: ds.Y})

	currentTime := glfw.GetTime()
	if p.time > 0 {
		p.io.SetDeltaTime(float32(currentTime - p.time))
	}
	p.time = currentTime

	if p.window.GetAttrib(glfw.Focused) != 0 {
		x, y := p.window.GetCursorPos()
		p.io.SetMousePos(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		p.io.SetMousePos(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	for i := range p.mouseJustPressed {
		down := p.mouseJustPressed[i] ||
			p.window.GetMouseButton(glfwButtonIDByIndex[imgui.MouseButton(i)]) == glfw.Press
		p.io.SetMouseButtonDown(i, down)
		p.mouseJustPressed[i] = false
	}

	cursor := p.mouseCursors[imgui.CurrentMouseCursor()]
	if cursor == nil {
		cursor = p.mouseCursors[imgui.MouseCursorArrow]
	}
	if cursor != p.currentCursor {
		p.currentCursor = cursor
		p.window.SetCursor(cursor)
	}
}

func (p *platform) installCallbacks() {
	p.window.SetMouseButtonCallback(p.mouseButtonChange)
	p.window.SetScrollCallback(p.mouseScrollChange)
	p.window.SetKeyCallback(p.keyChange)
	p.window.SetCharCallback(p.charChange)
}

var glfwButtonIndexByID = map[glfw.MouseButton]imgui.MouseButton{
	glfw.MouseButton1: mouseButtonPrimary,
	glfw.MouseButton2: mouseButtonSecondary,
	glfw.MouseButton3: mouseButtonTertiary,
}

var glfwButtonIDByIndex = map[imgui.MouseButton]glfw.MouseButton{
	mouseButtonPrimary:   glfw.MouseButton1,
	mouseButtonSecondary: glfw.MouseButton2,
	mouseButtonTertiary:  glfw.MouseButton3,
}

func (p *platform) mouseButtonChange(window *glfw.Window, rawButton glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	buttonIndex, known := glfwButtonIndexByID[rawButton]
	if !known {
		return
	}
	if action == glfw.Press {
		// Presses shorter than a frame must still reach imgui.
		p.mouseJustPressed[buttonIndex] = true
	}
	p.updateKeyModifiers()
}

func (p *platform) mouseScrollChange(window *glfw.Window, x, y float64) {
	p.io.AddMouseWheelDelta(float32(x), float32(y))
}

func (p *platform) keyChange(window *glfw.Window, keycode glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	p.updateKeyModifiers()
	if action != glfw.Press && action != glfw.Release {
		return
	}
	p.io.AddKeyEvent(glfwKeyToImguiKey(keycode), action == glfw.Press)
}

func (p *platform) updateKeyModifiers() {
	pressed := func(a, b glfw.Key) bool {
		return p.window.GetKey(a) == glfw.Press || p.window.GetKey(b) == glfw.Press
	}
	p.io.AddKeyEvent(imgui.ModShift, pressed(glfw.KeyLeftShift, glfw.KeyRightShift))
	p.io.AddKeyEvent(imgui.ModAlt, pressed(glfw.KeyLeftAlt, glfw.KeyRightAlt))
	p.io.AddKeyEvent(imgui.ModCtrl, pressed(glfw.KeyLeftControl, glfw.KeyRightControl))
	p.io.AddKeyEvent(imgui.ModSuper, pressed(glfw.KeyLeftSuper, glfw.KeyRightSuper))
}

func (p *platform) charChange(window *glfw.Window, char rune) {
	p.io.AddInputCharactersUTF8(string(char))
}

func (p *platform) createMouseCursors() {
	p.mouseCursors[imgui.MouseCursorArrow] = glfw.CreateStandardCursor(glfw.ArrowCursor)
	p.mouseCursors[imgui.MouseCursorTextInput] = glfw.CreateStandardCursor(glfw.IBeamCursor)
	p.mouseCursors[imgui.MouseCursorResizeNS] = glfw.CreateStandardCursor(glfw.VResizeCursor)
	p.mouseCursors[imgui.MouseCursorResizeEW] = glfw.CreateStandardCursor(glfw.HResizeCursor)
	p.mouseCursors[imgui.MouseCursorHand] = glfw.CreateStandardCursor(glfw.HandCursor)
}

// glfwKeyToImguiKey maps the keys used by the panel's text and slider input.
func glfwKeyToImguiKey(keycode glfw.Key) imgui.Key {
	switch keycode {
	case glfw.KeyTab:
		return imgui.KeyTab
	case glfw.KeyLeft:
		return imgui.KeyLeftArrow
	case glfw.KeyRight:
		return imgui.KeyRightArrow
	case glfw.KeyUp:
		return imgui.KeyUpArrow
	case glfw.KeyDown:
		return imgui.KeyDownArrow
	case glfw.KeyHome:
		return imgui.KeyHome
	case glfw.KeyEnd:
		return imgui.KeyEnd
	case glfw.KeyDelete:
		return imgui.KeyDelete
	case glfw.KeyBackspace:
		return imgui.KeyBackspace
	case glfw.KeyEnter:
		return imgui.KeyEnter
	case glfw.KeyKPEnter:
		return imgui.KeyKeypadEnter
	case glfw.KeyEscape:
		return imgui.KeyEscape
	case glfw.KeyMinus:
		return imgui.KeyMinus
	case glfw.KeyPeriod:
		return imgui.KeyPeriod
	case glfw.KeyLeftShift:
		return imgui.KeyLeftShift
	case glfw.KeyRightShift:
		return imgui.KeyRightShift
	case glfw.KeyLeftControl:
		return imgui.KeyLeftCtrl
	case glfw.KeyRightControl:
		return imgui.KeyRightCtrl
	case glfw.KeyLeftAlt:
		return imgui.KeyLeftAlt
	case glfw.KeyRightAlt:
		return imgui.KeyRightAlt
	case glfw.KeyLeftSuper:
		return imgui.KeyLeftSuper
	case glfw.KeyRightSuper:
		return imgui.KeyRightSuper
	case glfw.KeyA:
		return imgui.KeyA
	case glfw.KeyC:
		return imgui.KeyC
	case glfw.KeyV:
		return imgui.KeyV
	case glfw.KeyX:
		return imgui.KeyX
	case glfw.KeyY:
		return imgui.KeyY
	case glfw.KeyZ:
		return imgui.KeyZ
	}
	if keycode >= glfw.Key0 && keycode <= glfw.Key9 {
		return imgui.Key0 + imgui.Key(keycode-glfw.Key0)
	}
	if keycode >= glfw.KeyKP0 && keycode <= glfw.KeyKP9 {
		return imgui.KeyKeypad0 + imgui.Key(keycode-glfw.KeyKP0)
	}
	return imgui.KeyNone
}
