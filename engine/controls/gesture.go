package controls

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// swapModifiers turns a rotate button into a pan button and vice versa.
const swapModifiers = input.ModCtrl | input.ModMeta | input.ModShift

// enterMode switches to mode and queues EventStart the first time the gesture gets a mode.
func (c *orbitController) enterMode(mode InteractionMode) {
	c.mode = mode
	if mode != ModeNone && !c.started {
		c.started = true
		c.queue(EventStart)
	}
}

func (c *orbitController) onMouseDown(e input.PointerEvent) {
	c.enterMode(c.classifyMouse(e))
}

// classifyMouse maps the pressed button to a mode and records the gesture's start point.
// A gesture whose feature is disabled yields ModeNone.
func (c *orbitController) classifyMouse(e input.PointerEvent) InteractionMode {
	var action MouseAction
	switch e.Button {
	case input.ButtonLeft:
		action = c.cfg.MouseButtons.Left
	case input.ButtonMiddle:
		action = c.cfg.MouseButtons.Middle
	case input.ButtonRight:
		action = c.cfg.MouseButtons.Right
	default:
		return ModeNone
	}

	swap := e.Mods.Any(swapModifiers)
	switch action {
	case MouseDolly:
		if !c.cfg.EnableZoom {
			return ModeNone
		}
		c.updateZoomParameters(e.X, e.Y)
		c.dollyStart = mgl32.Vec2{e.X, e.Y}
		return ModeDolly
	case MouseRotate:
		if swap {
			return c.beginMousePan(e)
		}
		return c.beginMouseRotate(e)
	case MousePan:
		if swap {
			return c.beginMouseRotate(e)
		}
		return c.beginMousePan(e)
	case MouseDisabled:
	}
	return ModeNone
}

func (c *orbitController) beginMouseRotate(e input.PointerEvent) InteractionMode {
	if !c.cfg.EnableRotate {
		return ModeNone
	}
	c.rotateStart = mgl32.Vec2{e.X, e.Y}
	return ModeRotate
}

func (c *orbitController) beginMousePan(e input.PointerEvent) InteractionMode {
	if !c.cfg.EnablePan {
		return ModeNone
	}
	c.panStart = mgl32.Vec2{e.X, e.Y}
	return ModePan
}

func (c *orbitController) onMouseMove(e input.PointerEvent) {
	switch c.mode {
	case ModeRotate:
		if c.cfg.EnableRotate {
			c.handleMouseMoveRotate(e)
		}
	case ModeDolly:
		if c.cfg.EnableZoom {
			c.handleMouseMoveDolly(e)
		}
	case ModePan:
		if c.cfg.EnablePan {
			c.handleMouseMovePan(e)
		}
	case ModeNone, ModeTouchRotate, ModeTouchPan, ModeTouchDollyPan, ModeTouchDollyRotate:
	}
}

func (c *orbitController) onTouchStart(e input.PointerEvent) {
	c.trackPointer(e)
	c.enterMode(c.classifyTouch(e))
}

// classifyTouch maps the active touch count to a mode and records the gesture's start points.
func (c *orbitController) classifyTouch(e input.PointerEvent) InteractionMode {
	switch len(c.pointers) {
	case 1:
		switch c.cfg.Touches.One {
		case TouchRotate:
			if !c.cfg.EnableRotate {
				return ModeNone
			}
			c.rotateStart = c.touchPoint(e)
			return ModeTouchRotate
		case TouchPan:
			if !c.cfg.EnablePan {
				return ModeNone
			}
			c.panStart = c.touchPoint(e)
			return ModeTouchPan
		case TouchDollyPan, TouchDollyRotate, TouchDisabled:
		}
	case 2:
		switch c.cfg.Touches.Two {
		case TouchDollyPan:
			if !c.cfg.EnableZoom && !c.cfg.EnablePan {
				return ModeNone
			}
			if c.cfg.EnableZoom {
				c.beginTouchDolly(e)
			}
			if c.cfg.EnablePan {
				c.panStart = c.touchPoint(e)
			}
			return ModeTouchDollyPan
		case TouchDollyRotate:
			if !c.cfg.EnableZoom && !c.cfg.EnableRotate {
				return ModeNone
			}
			if c.cfg.EnableZoom {
				c.beginTouchDolly(e)
			}
			if c.cfg.EnableRotate {
				c.rotateStart = c.touchPoint(e)
			}
			return ModeTouchDollyRotate
		case TouchRotate, TouchPan, TouchDisabled:
		}
	}
	return ModeNone
}

func (c *orbitController) beginTouchDolly(e input.PointerEvent) {
	d := mgl32.Vec2{e.X, e.Y}.Sub(c.secondPointerPosition(e.ID)).Len()
	c.dollyStart = mgl32.Vec2{0, d}
}

func (c *orbitController) onTouchMove(e input.PointerEvent) {
	c.trackPointer(e)
	switch c.mode {
	case ModeTouchRotate:
		if c.cfg.EnableRotate {
			c.handleTouchMoveRotate(e)
		}
	case ModeTouchPan:
		if c.cfg.EnablePan {
			c.handleTouchMovePan(e)
		}
	case ModeTouchDollyPan:
		if c.cfg.EnableZoom {
			c.handleTouchMoveDolly(e)
		}
		if c.cfg.EnablePan {
			c.handleTouchMovePan(e)
		}
	case ModeTouchDollyRotate:
		if c.cfg.EnableZoom {
			c.handleTouchMoveDolly(e)
		}
		if c.cfg.EnableRotate {
			c.handleTouchMoveRotate(e)
		}
	case ModeNone, ModeRotate, ModePan, ModeDolly:
	}
}
