package controls

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// tiltLimit is cos(70°). Without screen-space panning, a view ray steeper than this against
// the up axis moves the target onto the ground plane instead of along the view ray.
var tiltLimit = float32(math.Cos(70 * math.Pi / 180))

// pose is a candidate camera state computed by Update before it is committed.
type pose struct {
	position    mgl32.Vec3
	orientation mgl32.Quat
	target      mgl32.Vec3
	zoom        float32
}

// updateZoomParameters caches the cursor NDC and the view ray through it at the start of a zoom gesture.
func (c *orbitController) updateZoomParameters(x, y float32) {
	c.performCursorZoom = false
	if !c.cfg.ZoomToCursor {
		return
	}
	rp, ok := c.cam.(camera.RayProjector)
	if !ok {
		return
	}
	c.performCursorZoom = true

	nx, ny := c.bounds().NDC(x, y)
	c.mouse = mgl32.Vec2{nx, ny}
	dir := rp.Unproject(mgl32.Vec3{nx, ny, 1}).Sub(c.cam.Position())
	if dir.LenSqr() > 0 {
		c.dollyDirection = dir.Normalize()
	}
}

// checkZoomToCursorSupport turns zoom-to-cursor off with a warning for unsupported cameras.
func (c *orbitController) checkZoomToCursorSupport() {
	if !c.cfg.ZoomToCursor {
		return
	}
	switch c.cam.(type) {
	case camera.PerspectiveCamera, camera.OrthographicCamera:
		return
	}
	log.Printf("controls: unsupported camera %T, zoom to cursor disabled", c.cam)
	c.cfg.ZoomToCursor = false
	c.performCursorZoom = false
}

// refineCursorZoom applies the pending zoom so the world point under the cursor keeps its pixel.
// radius is the orbit radius already clamped for this frame.
//
// Returns the refined pose and whether the zoom changed.
func (c *orbitController) refineCursorZoom(p pose, radius float32, up mgl32.Vec3) (pose, bool) {
	var newRadius float32
	zoomChanged := false

	switch cam := c.cam.(type) {
	case camera.PerspectiveCamera:
		prev := p.position.Sub(p.target).Len()
		newRadius = c.clampDistance(prev * c.pending.scale)
		delta := prev - newRadius
		p.position = p.position.Add(c.dollyDirection.Mul(delta))
		zoomChanged = delta != 0
	case camera.OrthographicCamera:
		left, right, top, bottom := cam.Bounds()
		prevZoom := p.zoom
		p.zoom = c.clampZoom(p.zoom / c.pending.scale)
		zoomChanged = prevZoom != p.zoom
		if zoomChanged && prevZoom != 0 && p.zoom != 0 {
			// unprojected cursor before minus after, in view space
			k := 1/prevZoom - 1/p.zoom
			shift := mgl32.Vec3{c.mouse.X() * (right - left) / 2 * k, c.mouse.Y() * (top - bottom) / 2 * k, 0}
			p.position = p.position.Add(p.orientation.Rotate(shift))
		}
		newRadius = radius
	default:
		return p, false
	}

	// the orientation is kept so the cursor's world point stays on its pixel
	forward := p.orientation.Rotate(mgl32.Vec3{0, 0, -1})
	if c.cfg.ScreenSpacePanning || mgl32.Abs(up.Dot(forward)) < tiltLimit {
		p.target = p.position.Add(forward.Mul(newRadius))
	} else if hit, ok := intersectPlane(p.position, forward, up, p.target); ok {
		p.target = hit
	}
	return p, zoomChanged
}

// intersectPlane intersects the ray origin + t·dir (t >= 0) with the plane through point with the given normal.
func intersectPlane(origin, dir, normal, point mgl32.Vec3) (mgl32.Vec3, bool) {
	denom := normal.Dot(dir)
	if denom == 0 {
		return mgl32.Vec3{}, false
	}
	t := normal.Dot(point.Sub(origin)) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
