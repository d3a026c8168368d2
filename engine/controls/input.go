package controls

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// onInput receives pointer and wheel events from the surface.
func (c *orbitController) onInput(ev input.Event) {
	c.do(func() {
		if c.disposed || !c.cfg.Enabled {
			return
		}
		switch e := ev.(type) {
		case input.PointerEvent:
			if !common.IsFinite(e.X) || !common.IsFinite(e.Y) {
				return
			}
			switch e.Phase {
			case input.PointerDown:
				c.onPointerDown(e)
			case input.PointerMove:
				c.onPointerMove(e)
			case input.PointerUp, input.PointerCancel:
				c.onPointerUp(e)
			}
		case input.WheelEvent:
			if !common.IsFinite(e.X) || !common.IsFinite(e.Y) || !common.IsFinite(e.DeltaY) {
				return
			}
			c.onMouseWheel(e)
		}
	})
}

// onKey receives navigation keys from the source registered with ListenToKeyEvents.
func (c *orbitController) onKey(ev input.Event) {
	c.do(func() {
		if c.disposed || !c.cfg.Enabled {
			return
		}
		if e, ok := ev.(input.KeyEvent); ok {
			c.handleKeyDown(e)
		}
	})
}

// onModifierKey tracks whether a Ctrl key is physically held.
func (c *orbitController) onModifierKey(ev input.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch e := ev.(type) {
	case input.KeyEvent:
		if isControlKey(e.Code) {
			c.controlActive = true
		}
	case input.KeyReleaseEvent:
		if isControlKey(e.Code) {
			c.controlActive = false
		}
	}
}

func isControlKey(code uint32) bool {
	return code == common.KeyLeftControl || code == common.KeyRightControl
}

func (c *orbitController) onPointerDown(e input.PointerEvent) {
	if c.isTrackingPointer(e.ID) {
		return
	}
	if len(c.pointers) == 0 && c.surface != nil {
		c.surface.SetPointerCapture(e.ID)
		c.capturedPointer = e.ID
		c.captured = true
	}
	c.addPointer(e)

	if e.Type == input.PointerTouch {
		c.onTouchStart(e)
	} else {
		c.onMouseDown(e)
	}
}

func (c *orbitController) onPointerMove(e input.PointerEvent) {
	if len(c.pointers) == 0 || !c.isTrackingPointer(e.ID) {
		return
	}
	if e.Type == input.PointerTouch {
		c.onTouchMove(e)
	} else {
		c.trackPointer(e)
		c.onMouseMove(e)
	}
}

func (c *orbitController) onPointerUp(e input.PointerEvent) {
	if !c.isTrackingPointer(e.ID) {
		return
	}
	c.removePointer(e.ID)

	switch len(c.pointers) {
	case 0:
		if c.captured && c.surface != nil {
			c.surface.ReleasePointerCapture(c.capturedPointer)
		}
		c.captured = false
		if c.started {
			c.queue(EventEnd)
		}
		c.started = false
		c.mode = ModeNone
	case 1:
		// a touch gesture continues with the remaining finger
		id := c.pointers[0]
		if c.pointerTypes[id] == input.PointerTouch {
			pos := c.pointerPositions[id]
			c.onTouchStart(input.PointerEvent{
				Phase: input.PointerDown,
				ID:    id,
				Type:  input.PointerTouch,
				X:     pos.X(),
				Y:     pos.Y(),
			})
		}
	}
}

func (c *orbitController) onMouseWheel(e input.WheelEvent) {
	if !c.cfg.EnableZoom || c.mode != ModeNone {
		return
	}
	c.queue(EventStart)
	e.DeltaY = c.normalizeWheelDelta(e)
	c.handleMouseWheel(e)
	c.queue(EventEnd)
}

// normalizeWheelDelta converts line and page deltas to pixels and amplifies trackpad pinches,
// which arrive as Ctrl+wheel without a held Ctrl key.
func (c *orbitController) normalizeWheelDelta(e input.WheelEvent) float32 {
	dy := e.DeltaY
	switch e.DeltaMode {
	case input.DeltaLine:
		dy *= 16
	case input.DeltaPage:
		dy *= 100
	}
	if e.Mods.Has(input.ModCtrl) && !c.controlActive {
		dy *= 10
	}
	return dy
}

func (c *orbitController) isTrackingPointer(id int) bool {
	_, ok := c.pointerPositions[id]
	return ok
}

func (c *orbitController) addPointer(e input.PointerEvent) {
	c.pointers = append(c.pointers, e.ID)
	c.pointerPositions[e.ID] = mgl32.Vec2{e.X, e.Y}
	c.pointerTypes[e.ID] = e.Type
}

func (c *orbitController) removePointer(id int) {
	delete(c.pointerPositions, id)
	delete(c.pointerTypes, id)
	for i, p := range c.pointers {
		if p == id {
			c.pointers = append(c.pointers[:i], c.pointers[i+1:]...)
			return
		}
	}
}

func (c *orbitController) trackPointer(e input.PointerEvent) {
	c.pointerPositions[e.ID] = mgl32.Vec2{e.X, e.Y}
}

// secondPointerPosition returns the position of the tracked pointer that is not id.
func (c *orbitController) secondPointerPosition(id int) mgl32.Vec2 {
	other := c.pointers[0]
	if id == other {
		other = c.pointers[1]
	}
	return c.pointerPositions[other]
}

// touchPoint is the event position for one finger and the centroid of both for two.
func (c *orbitController) touchPoint(e input.PointerEvent) mgl32.Vec2 {
	p := mgl32.Vec2{e.X, e.Y}
	if len(c.pointers) < 2 {
		return p
	}
	return p.Add(c.secondPointerPosition(e.ID)).Mul(0.5)
}
