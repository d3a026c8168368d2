package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// mousePointerID is the pointer id used for every mouse event. GLFW exposes a single cursor.
const mousePointerID = 1

// wheelNotchPixels is the pixel delta reported for one wheel notch, the size browsers report in pixel mode.
const wheelNotchPixels = 100

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			w.dispatchKey(input.KeyEvent{Code: uint32(key), Mods: translateMods(mods), Repeat: action == glfw.Repeat})
		case glfw.Release:
			w.dispatchKey(input.KeyReleaseEvent{Code: uint32(key), Mods: translateMods(mods)})
		}
	})

	// GLFW reports +y for scrolling up, the DOM convention is +y for scrolling down.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		x, y := gw.cursorPos()
		w.dispatchInput(input.WheelEvent{
			X:         x,
			Y:         y,
			DeltaY:    float32(-yoff * wheelNotchPixels),
			DeltaMode: input.DeltaPixel,
			Mods:      gw.heldMods(),
		})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		phase := input.PointerDown
		if action == glfw.Release {
			phase = input.PointerUp
		}
		x, y := gw.cursorPos()
		w.dispatchInput(input.PointerEvent{
			Phase:  phase,
			ID:     mousePointerID,
			Type:   input.PointerMouse,
			Button: b,
			X:      x,
			Y:      y,
			Mods:   translateMods(mods),
		})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		sx, sy := gw.contentScale()
		w.dispatchInput(input.PointerEvent{
			Phase:  input.PointerMove,
			ID:     mousePointerID,
			Type:   input.PointerMouse,
			Button: input.ButtonNone,
			X:      float32(xpos) * sx,
			Y:      float32(ypos) * sy,
			Mods:   gw.heldMods(),
		})
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// contentScale returns the framebuffer-to-window size ratio. Cursor positions are reported in
// window coordinates while Bounds is in framebuffer pixels.
func (gw *glfwWindow) contentScale() (sx, sy float32) {
	winWidth, winHeight := gw.window.GetSize()
	if winWidth <= 0 || winHeight <= 0 {
		return 1, 1
	}
	return float32(gw.parent.width) / float32(winWidth), float32(gw.parent.height) / float32(winHeight)
}

// cursorPos returns the cursor position in framebuffer pixels.
func (gw *glfwWindow) cursorPos() (x, y float32) {
	xpos, ypos := gw.window.GetCursorPos()
	sx, sy := gw.contentScale()
	return float32(xpos) * sx, float32(ypos) * sy
}

// heldMods polls the modifier keys for callbacks that GLFW does not pass modifiers to.
func (gw *glfwWindow) heldMods() input.Modifiers {
	var m input.Modifiers
	held := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if gw.window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	if held(glfw.KeyLeftShift, glfw.KeyRightShift) {
		m |= input.ModShift
	}
	if held(glfw.KeyLeftControl, glfw.KeyRightControl) {
		m |= input.ModCtrl
	}
	if held(glfw.KeyLeftAlt, glfw.KeyRightAlt) {
		m |= input.ModAlt
	}
	if held(glfw.KeyLeftSuper, glfw.KeyRightSuper) {
		m |= input.ModMeta
	}
	return m
}

func translateMods(mods glfw.ModifierKey) input.Modifiers {
	var m input.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= input.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= input.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= input.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= input.ModMeta
	}
	return m
}

func translateButton(button glfw.MouseButton) (input.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft, true
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle, true
	case glfw.MouseButtonRight:
		return input.ButtonRight, true
	}
	return input.ButtonNone, false
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
