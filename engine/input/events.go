// Package input defines the raw input model shared by render surfaces and the controllers that consume them.
// Surfaces translate platform events (GLFW callbacks, browser pointer events, synthetic test input) into
// these plain structs; consumers subscribe through the Surface and KeySource interfaces.
package input

import "fmt"

// PointerType identifies the device that produced a pointer event.
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

// MouseButton identifies a mouse button, using DOM button numbering.
type MouseButton int

const (
	ButtonNone   MouseButton = -1
	ButtonLeft   MouseButton = 0
	ButtonMiddle MouseButton = 1
	ButtonRight  MouseButton = 2
)

// PointerPhase is the lifecycle phase of a pointer event.
type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	}
	return fmt.Sprintf("PointerPhase(%d)", int(p))
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether every bit in m2 is set in m.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// Any reports whether any bit in m2 is set in m.
func (m Modifiers) Any(m2 Modifiers) bool {
	return m&m2 != 0
}

// DeltaMode is the unit of a wheel delta, matching the DOM WheelEvent constants.
type DeltaMode int

const (
	DeltaPixel DeltaMode = 0x00
	DeltaLine  DeltaMode = 0x01
	DeltaPage  DeltaMode = 0x02
)

// Event is implemented by every raw input event a Surface delivers.
type Event interface {
	isEvent()
}

// PointerEvent is a unified mouse/touch/pen event in surface client coordinates (pixels).
type PointerEvent struct {
	Phase  PointerPhase
	ID     int
	Type   PointerType
	Button MouseButton
	X, Y   float32
	Mods   Modifiers
}

// WheelEvent is a scroll wheel or trackpad scroll. Positive DeltaY scrolls down (zoom out).
type WheelEvent struct {
	X, Y      float32
	DeltaY    float32
	DeltaMode DeltaMode
	Mods      Modifiers
}

// KeyEvent is a key press (or auto-repeat). Code uses the GLFW key numbering from package common.
type KeyEvent struct {
	Code   uint32
	Mods   Modifiers
	Repeat bool
}

// KeyReleaseEvent is a key release.
type KeyReleaseEvent struct {
	Code uint32
	Mods Modifiers
}

func (PointerEvent) isEvent()    {}
func (WheelEvent) isEvent()      {}
func (KeyEvent) isEvent()        {}
func (KeyReleaseEvent) isEvent() {}

// Rect is a surface bounding rectangle in client pixels.
type Rect struct {
	Left, Top     float32
	Width, Height float32
}

// NDC converts a client-space point to normalized device coordinates in [-1, 1] with +Y up.
// A degenerate rectangle maps everything to the origin.
//
// Parameters:
//   - x, y: client-space coordinates
//
// Returns:
//   - nx, ny: normalized device coordinates
func (r Rect) NDC(x, y float32) (nx, ny float32) {
	if r.Width <= 0 || r.Height <= 0 {
		return 0, 0
	}
	nx = (x-r.Left)/r.Width*2 - 1
	ny = -(y-r.Top)/r.Height*2 + 1
	return nx, ny
}
