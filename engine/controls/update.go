package controls

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
)

func (c *orbitController) Update(deltaTime *float32) bool {
	var changed bool
	c.do(func() {
		changed = c.update(deltaTime)
	})
	return changed
}

// update advances the spherical state by the buffered input and commits the pose when it moved.
// Caller must hold the mutex.
func (c *orbitController) update(deltaTime *float32) bool {
	cfg := &c.cfg
	up := c.cam.Up()
	c.checkZoomToCursorSupport()

	if cfg.AutoRotate && c.mode == ModeNone {
		c.rotateLeft(c.autoRotationAngle(deltaTime))
	}

	dTheta, dPhi, dPan := c.pending.applied(cfg.EnableDamping, cfg.DampingFactor)
	s := c.spherical
	s.Theta = clampAzimuth(s.Theta+dTheta, cfg.MinAzimuthAngle, cfg.MaxAzimuthAngle)
	s.Phi = clampPolar(s.Phi+dPhi, cfg.MinPolarAngle, cfg.MaxPolarAngle)

	target := c.clampTarget(c.target.Add(dPan))

	_, ortho := c.cam.(camera.OrthographicCamera)
	cursorZoom := cfg.ZoomToCursor && c.performCursorZoom
	zoomChanged := false
	if cursorZoom || ortho {
		s.Radius = c.clampDistance(s.Radius)
	} else {
		prev := s.Radius
		s.Radius = c.clampDistance(s.Radius * c.pending.scale)
		zoomChanged = prev != s.Radius
	}

	position := target.Add(c.quatInverse.Rotate(s.Vec3()))
	next := pose{
		position:    position,
		orientation: common.LookRotation(position, target, up),
		target:      target,
		zoom:        c.cameraZoom(),
	}
	c.pending.decay(cfg.EnableDamping, cfg.DampingFactor)
	c.spherical = s

	if cursorZoom {
		next, zoomChanged = c.refineCursorZoom(next, s.Radius, up)
		c.syncSpherical(next.position, next.target)
	} else if ortho {
		prev := next.zoom
		next.zoom = c.clampZoom(next.zoom / c.pending.scale)
		zoomChanged = prev != next.zoom
	}

	c.target = next.target
	c.pending.scale = 1
	c.performCursorZoom = false

	if !zoomChanged &&
		c.lastPosition.Sub(next.position).LenSqr() <= common.Epsilon &&
		8*(1-c.lastQuaternion.Dot(next.orientation)) <= common.Epsilon &&
		c.lastTarget.Sub(next.target).LenSqr() == 0 {
		return false
	}

	c.cam.SetPosition(next.position)
	c.cam.SetQuaternion(next.orientation)
	if o, ok := c.cam.(camera.OrthographicCamera); ok && zoomChanged {
		o.SetZoom(next.zoom)
	}
	c.lastPosition = next.position
	c.lastQuaternion = next.orientation
	c.lastTarget = next.target
	c.queue(EventChange)
	return true
}
