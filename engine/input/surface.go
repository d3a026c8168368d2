package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// Surface is a render surface that delivers raw pointer and wheel input.
// Implementations must deliver events in arrival order.
type Surface interface {
	// Bounds returns the surface's bounding rectangle in client pixels.
	//
	// Returns:
	//   - Rect: the bounding rectangle
	Bounds() Rect

	// AddInputListener registers fn to receive PointerEvent and WheelEvent values.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - common.ListenerID: handle for RemoveInputListener
	AddInputListener(fn func(Event)) common.ListenerID

	// RemoveInputListener unregisters a listener. Unknown handles are ignored.
	//
	// Parameters:
	//   - id: handle returned by AddInputListener
	RemoveInputListener(id common.ListenerID)

	// SetPointerCapture routes all further events of pointerID to this surface until released.
	//
	// Parameters:
	//   - pointerID: the pointer to capture
	SetPointerCapture(pointerID int)

	// ReleasePointerCapture ends a capture started with SetPointerCapture.
	//
	// Parameters:
	//   - pointerID: the pointer to release
	ReleasePointerCapture(pointerID int)
}

// KeySource delivers KeyEvent and KeyReleaseEvent values.
type KeySource interface {
	// AddKeyListener registers fn to receive key events.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - common.ListenerID: handle for RemoveKeyListener
	AddKeyListener(fn func(Event)) common.ListenerID

	// RemoveKeyListener unregisters a key listener. Unknown handles are ignored.
	//
	// Parameters:
	//   - id: handle returned by AddKeyListener
	RemoveKeyListener(id common.ListenerID)
}

// VirtualSurface is a headless Surface and KeySource. Events are injected with Dispatch and
// delivered synchronously to every listener. It backs offscreen drivers and tests.
type VirtualSurface struct {
	mu       sync.Mutex
	bounds   Rect
	captured map[int]bool

	inputListeners common.Listeners[func(Event)]
	keyListeners   common.Listeners[func(Event)]
}

var _ Surface = &VirtualSurface{}
var _ KeySource = &VirtualSurface{}

// NewVirtualSurface creates a VirtualSurface with the given bounds.
//
// Parameters:
//   - bounds: the surface rectangle in client pixels
//
// Returns:
//   - *VirtualSurface: the surface
func NewVirtualSurface(bounds Rect) *VirtualSurface {
	return &VirtualSurface{
		bounds:   bounds,
		captured: make(map[int]bool),
	}
}

func (s *VirtualSurface) Bounds() Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

// SetBounds changes the surface rectangle, as a window resize would.
func (s *VirtualSurface) SetBounds(bounds Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = bounds
}

func (s *VirtualSurface) AddInputListener(fn func(Event)) common.ListenerID {
	return s.inputListeners.Add(fn)
}

func (s *VirtualSurface) RemoveInputListener(id common.ListenerID) {
	s.inputListeners.Remove(id)
}

func (s *VirtualSurface) AddKeyListener(fn func(Event)) common.ListenerID {
	return s.keyListeners.Add(fn)
}

func (s *VirtualSurface) RemoveKeyListener(id common.ListenerID) {
	s.keyListeners.Remove(id)
}

func (s *VirtualSurface) SetPointerCapture(pointerID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captured[pointerID] = true
}

func (s *VirtualSurface) ReleasePointerCapture(pointerID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.captured, pointerID)
}

// Captured reports whether pointerID is currently captured.
func (s *VirtualSurface) Captured(pointerID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captured[pointerID]
}

// CaptureCount returns the number of captured pointers.
func (s *VirtualSurface) CaptureCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.captured)
}

// InputListenerCount returns the number of registered input listeners.
func (s *VirtualSurface) InputListenerCount() int {
	return s.inputListeners.Len()
}

// KeyListenerCount returns the number of registered key listeners.
func (s *VirtualSurface) KeyListenerCount() int {
	return s.keyListeners.Len()
}

// Dispatch delivers ev to the matching listeners: key events go to key listeners, everything
// else to input listeners.
//
// Parameters:
//   - ev: the event to deliver
func (s *VirtualSurface) Dispatch(ev Event) {
	var fns []func(Event)
	switch ev.(type) {
	case KeyEvent, KeyReleaseEvent:
		fns = s.keyListeners.Snapshot()
	default:
		fns = s.inputListeners.Snapshot()
	}
	for _, fn := range fns {
		fn(ev)
	}
}
