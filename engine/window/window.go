package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Raw input is delivered through the input.Surface and input.KeySource contracts so any number
// of controllers can subscribe to the same window.
type Window interface {
	input.Surface
	input.KeySource

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and input listener registries.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// inputListeners receive pointer and wheel events.
	inputListeners common.Listeners[func(input.Event)]

	// keyListeners receive key press and release events.
	keyListeners common.Listeners[func(input.Event)]

	// mu guards captured.
	mu sync.Mutex

	// captured is the set of captured pointer ids. GLFW keeps delivering cursor events to the
	// window while a button is held, so capture is bookkeeping only.
	captured map[int]bool
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window (not yet spawned)
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Default Window Title",
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
		captured:  make(map[int]bool),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Bounds() input.Rect {
	return input.Rect{Width: float32(w.width), Height: float32(w.height)}
}

func (w *engineWindow) AddInputListener(fn func(input.Event)) common.ListenerID {
	return w.inputListeners.Add(fn)
}

func (w *engineWindow) RemoveInputListener(id common.ListenerID) {
	w.inputListeners.Remove(id)
}

func (w *engineWindow) AddKeyListener(fn func(input.Event)) common.ListenerID {
	return w.keyListeners.Add(fn)
}

func (w *engineWindow) RemoveKeyListener(id common.ListenerID) {
	w.keyListeners.Remove(id)
}

func (w *engineWindow) SetPointerCapture(pointerID int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.captured[pointerID] = true
}

func (w *engineWindow) ReleasePointerCapture(pointerID int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.captured, pointerID)
}

// dispatchInput delivers a pointer or wheel event to every input listener.
func (w *engineWindow) dispatchInput(ev input.Event) {
	for _, fn := range w.inputListeners.Snapshot() {
		fn(ev)
	}
}

// dispatchKey delivers a key event to every key listener.
func (w *engineWindow) dispatchKey(ev input.Event) {
	for _, fn := range w.keyListeners.Snapshot() {
		fn(ev)
	}
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
