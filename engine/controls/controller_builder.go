package controls

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// ControllerOption is a functional option for configuring an OrbitController.
type ControllerOption func(*orbitController)

// WithConfig replaces every tunable setting. Options after it override individual fields.
//
// Parameters:
//   - cfg: the settings to use
//
// Returns:
//   - ControllerOption: functional option to set the config
func WithConfig(cfg Config) ControllerOption {
	return func(c *orbitController) {
		c.cfg = cfg
	}
}

// WithTarget sets the initial orbit target.
//
// Parameters:
//   - x, y, z: the target coordinates
//
// Returns:
//   - ControllerOption: functional option to set the target
func WithTarget(x, y, z float32) ControllerOption {
	return func(c *orbitController) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithCursor sets the center of the sphere the target is confined to.
//
// Parameters:
//   - x, y, z: the cursor coordinates
//
// Returns:
//   - ControllerOption: functional option to set the cursor
func WithCursor(x, y, z float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.Cursor = mgl32.Vec3{x, y, z}
	}
}

// WithDistanceLimits sets how close and how far a perspective camera may dolly.
//
// Parameters:
//   - minDistance: minimum camera-to-target distance
//   - maxDistance: maximum camera-to-target distance
//
// Returns:
//   - ControllerOption: functional option to set the distance limits
func WithDistanceLimits(minDistance, maxDistance float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.MinDistance = minDistance
		c.cfg.MaxDistance = maxDistance
	}
}

// WithZoomLimits sets the zoom range of an orthographic camera.
//
// Parameters:
//   - minZoom: minimum zoom
//   - maxZoom: maximum zoom
//
// Returns:
//   - ControllerOption: functional option to set the zoom limits
func WithZoomLimits(minZoom, maxZoom float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.MinZoom = minZoom
		c.cfg.MaxZoom = maxZoom
	}
}

// WithTargetRadiusLimits sets how far the target may be panned from the cursor.
//
// Parameters:
//   - minRadius: minimum target distance from the cursor
//   - maxRadius: maximum target distance from the cursor
//
// Returns:
//   - ControllerOption: functional option to set the target radius limits
func WithTargetRadiusLimits(minRadius, maxRadius float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.MinTargetRadius = minRadius
		c.cfg.MaxTargetRadius = maxRadius
	}
}

// WithPolarLimits sets the vertical orbit range in radians, measured from the up axis.
//
// Parameters:
//   - minAngle: lower polar bound, 0 is straight above the target
//   - maxAngle: upper polar bound, π is straight below the target
//
// Returns:
//   - ControllerOption: functional option to set the polar limits
func WithPolarLimits(minAngle, maxAngle float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.MinPolarAngle = minAngle
		c.cfg.MaxPolarAngle = maxAngle
	}
}

// WithAzimuthLimits sets the horizontal orbit window in radians. A window with
// minAngle > maxAngle wraps through ±π.
//
// Parameters:
//   - minAngle: lower azimuth bound
//   - maxAngle: upper azimuth bound
//
// Returns:
//   - ControllerOption: functional option to set the azimuth limits
func WithAzimuthLimits(minAngle, maxAngle float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.MinAzimuthAngle = minAngle
		c.cfg.MaxAzimuthAngle = maxAngle
	}
}

// WithDamping enables inertia with the given damping factor.
//
// Parameters:
//   - factor: share of the pending motion applied per frame, in (0, 1]
//
// Returns:
//   - ControllerOption: functional option to enable damping
func WithDamping(factor float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.EnableDamping = true
		c.cfg.DampingFactor = factor
	}
}

// WithZoom enables or disables zooming and sets its speed.
//
// Parameters:
//   - enabled: whether zoom input is handled
//   - speed: zoom speed multiplier
//
// Returns:
//   - ControllerOption: functional option to configure zooming
func WithZoom(enabled bool, speed float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.EnableZoom = enabled
		c.cfg.ZoomSpeed = speed
	}
}

// WithRotate enables or disables rotation and sets its speed.
//
// Parameters:
//   - enabled: whether rotate input is handled
//   - speed: rotate speed multiplier
//
// Returns:
//   - ControllerOption: functional option to configure rotation
func WithRotate(enabled bool, speed float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.EnableRotate = enabled
		c.cfg.RotateSpeed = speed
	}
}

// WithPan enables or disables panning and sets its speed.
//
// Parameters:
//   - enabled: whether pan input is handled
//   - speed: pan speed multiplier
//
// Returns:
//   - ControllerOption: functional option to configure panning
func WithPan(enabled bool, speed float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.EnablePan = enabled
		c.cfg.PanSpeed = speed
	}
}

// WithScreenSpacePanning selects whether vertical pans move in screen space or along the ground plane.
func WithScreenSpacePanning(enabled bool) ControllerOption {
	return func(c *orbitController) {
		c.cfg.ScreenSpacePanning = enabled
	}
}

// WithKeySpeeds sets the per-press pan distance in pixels and the rotate speed for navigation keys.
func WithKeySpeeds(panSpeed, rotateSpeed float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.KeyPanSpeed = panSpeed
		c.cfg.KeyRotateSpeed = rotateSpeed
	}
}

// WithZoomToCursor keeps the point under the cursor fixed while zooming.
func WithZoomToCursor(enabled bool) ControllerOption {
	return func(c *orbitController) {
		c.cfg.ZoomToCursor = enabled
	}
}

// WithAutoRotate orbits the camera while no gesture is active.
//
// Parameters:
//   - speed: orbits per minute
//
// Returns:
//   - ControllerOption: functional option to enable auto-rotation
func WithAutoRotate(speed float32) ControllerOption {
	return func(c *orbitController) {
		c.cfg.AutoRotate = true
		c.cfg.AutoRotateSpeed = speed
	}
}

// WithMouseButtons sets the button-to-gesture table.
func WithMouseButtons(b MouseButtons) ControllerOption {
	return func(c *orbitController) {
		c.cfg.MouseButtons = b
	}
}

// WithTouches sets the touch-count-to-gesture table.
func WithTouches(t Touches) ControllerOption {
	return func(c *orbitController) {
		c.cfg.Touches = t
	}
}

// WithKeys sets the navigation key codes.
func WithKeys(k Keys) ControllerOption {
	return func(c *orbitController) {
		c.cfg.Keys = k
	}
}

// WithKeyEvents starts handling navigation keys from source, as ListenToKeyEvents does.
//
// Parameters:
//   - source: the key event source
//
// Returns:
//   - ControllerOption: functional option to attach a key source
func WithKeyEvents(source input.KeySource) ControllerOption {
	return func(c *orbitController) {
		c.initialKeySource = source
	}
}
