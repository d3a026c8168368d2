package controls

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func (c *orbitController) rotateLeft(angle float32) {
	c.pending.theta -= angle
}

func (c *orbitController) rotateUp(angle float32) {
	c.pending.phi -= angle
}

// rotateByPixels converts a pointer drag to rotation: a drag across the full surface height is one turn.
func (c *orbitController) rotateByPixels(delta mgl32.Vec2) {
	h := c.bounds().Height
	if h <= 0 {
		return
	}
	c.rotateLeft(common.TwoPi * delta.X() / h)
	c.rotateUp(common.TwoPi * delta.Y() / h)
}

// zoomScale converts a wheel or drag delta in pixels to a dolly factor below 1.
func (c *orbitController) zoomScale(delta float32) float32 {
	normalized := math.Abs(float64(delta) * 0.01)
	return float32(math.Pow(0.95, float64(c.cfg.ZoomSpeed)*normalized))
}

func (c *orbitController) dollyOut(scale float32) {
	if !c.supportsZoom() || !validScale(scale) {
		return
	}
	c.pending.scale /= scale
}

func (c *orbitController) dollyIn(scale float32) {
	if !c.supportsZoom() || !validScale(scale) {
		return
	}
	c.pending.scale *= scale
}

func validScale(s float32) bool {
	return s > 0 && common.IsFinite(s)
}

// supportsZoom disables zooming with a warning for cameras that are neither perspective nor orthographic.
func (c *orbitController) supportsZoom() bool {
	switch c.cam.(type) {
	case camera.PerspectiveCamera, camera.OrthographicCamera:
		return true
	}
	log.Printf("controls: unsupported camera %T, zoom disabled", c.cam)
	c.cfg.EnableZoom = false
	return false
}

// pan converts a screen-space delta in pixels to a world-space target offset.
func (c *orbitController) pan(dx, dy float32) {
	r := c.bounds()
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	orientation := c.cam.Quaternion()

	switch cam := c.cam.(type) {
	case camera.PerspectiveCamera:
		// half the visible height at the target's depth
		targetDistance := cam.Position().Sub(c.target).Len() * float32(math.Tan(float64(cam.Fov())/2))
		c.panLeft(2*dx*targetDistance/r.Height, orientation)
		c.panUp(2*dy*targetDistance/r.Height, orientation)
	case camera.OrthographicCamera:
		left, right, top, bottom := cam.Bounds()
		zoom := cam.Zoom()
		c.panLeft(dx*(right-left)/zoom/r.Width, orientation)
		c.panUp(dy*(top-bottom)/zoom/r.Height, orientation)
	default:
		log.Printf("controls: unsupported camera %T, pan disabled", c.cam)
		c.cfg.EnablePan = false
	}
}

func (c *orbitController) panLeft(distance float32, orientation mgl32.Quat) {
	right := orientation.Rotate(mgl32.Vec3{1, 0, 0})
	c.pending.pan = c.pending.pan.Add(right.Mul(-distance))
}

func (c *orbitController) panUp(distance float32, orientation mgl32.Quat) {
	var v mgl32.Vec3
	if c.cfg.ScreenSpacePanning {
		v = orientation.Rotate(mgl32.Vec3{0, 1, 0})
	} else {
		v = c.cam.Up().Cross(orientation.Rotate(mgl32.Vec3{1, 0, 0}))
	}
	c.pending.pan = c.pending.pan.Add(v.Mul(distance))
}

func (c *orbitController) handleMouseMoveRotate(e input.PointerEvent) {
	end := mgl32.Vec2{e.X, e.Y}
	c.rotateByPixels(end.Sub(c.rotateStart).Mul(c.cfg.RotateSpeed))
	c.rotateStart = end
}

func (c *orbitController) handleMouseMoveDolly(e input.PointerEvent) {
	end := mgl32.Vec2{e.X, e.Y}
	dy := end.Sub(c.dollyStart).Y()
	if dy > 0 {
		c.dollyOut(c.zoomScale(dy))
	} else if dy < 0 {
		c.dollyIn(c.zoomScale(dy))
	}
	c.dollyStart = end
}

func (c *orbitController) handleMouseMovePan(e input.PointerEvent) {
	end := mgl32.Vec2{e.X, e.Y}
	delta := end.Sub(c.panStart).Mul(c.cfg.PanSpeed)
	c.pan(delta.X(), delta.Y())
	c.panStart = end
}

func (c *orbitController) handleMouseWheel(e input.WheelEvent) {
	c.updateZoomParameters(e.X, e.Y)
	if e.DeltaY < 0 {
		c.dollyIn(c.zoomScale(e.DeltaY))
	} else if e.DeltaY > 0 {
		c.dollyOut(c.zoomScale(e.DeltaY))
	}
}

func (c *orbitController) handleTouchMoveRotate(e input.PointerEvent) {
	end := c.touchPoint(e)
	c.rotateByPixels(end.Sub(c.rotateStart).Mul(c.cfg.RotateSpeed))
	c.rotateStart = end
}

func (c *orbitController) handleTouchMovePan(e input.PointerEvent) {
	end := c.touchPoint(e)
	delta := end.Sub(c.panStart).Mul(c.cfg.PanSpeed)
	c.pan(delta.X(), delta.Y())
	c.panStart = end
}

// handleTouchMoveDolly turns a change in finger spread into a dolly: spreading zooms in, pinching zooms out.
func (c *orbitController) handleTouchMoveDolly(e input.PointerEvent) {
	if len(c.pointers) < 2 {
		return
	}
	p := mgl32.Vec2{e.X, e.Y}
	other := c.secondPointerPosition(e.ID)
	d := p.Sub(other).Len()

	if start := c.dollyStart.Y(); start > 0 && d > 0 {
		c.dollyOut(float32(math.Pow(float64(d/start), float64(c.cfg.ZoomSpeed))))
	}
	c.dollyStart = mgl32.Vec2{0, d}

	center := p.Add(other).Mul(0.5)
	c.updateZoomParameters(center.X(), center.Y())
}

func (c *orbitController) handleKeyDown(e input.KeyEvent) {
	rotating := e.Mods.Any(swapModifiers)
	var angle float32
	if h := c.bounds().Height; h > 0 {
		angle = common.TwoPi * c.cfg.KeyRotateSpeed / h
	}
	step := c.cfg.KeyPanSpeed

	switch e.Code {
	case c.cfg.Keys.Up:
		if rotating {
			if c.cfg.EnableRotate {
				c.rotateUp(angle)
			}
		} else if c.cfg.EnablePan {
			c.pan(0, step)
		}
	case c.cfg.Keys.Bottom:
		if rotating {
			if c.cfg.EnableRotate {
				c.rotateUp(-angle)
			}
		} else if c.cfg.EnablePan {
			c.pan(0, -step)
		}
	case c.cfg.Keys.Left:
		if rotating {
			if c.cfg.EnableRotate {
				c.rotateLeft(angle)
			}
		} else if c.cfg.EnablePan {
			c.pan(step, 0)
		}
	case c.cfg.Keys.Right:
		if rotating {
			if c.cfg.EnableRotate {
				c.rotateLeft(-angle)
			}
		} else if c.cfg.EnablePan {
			c.pan(-step, 0)
		}
	}
}
