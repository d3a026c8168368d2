package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// cameraConfig collects builder settings for both camera kinds. Each constructor reads the
// fields relevant to its projection and ignores the rest.
type cameraConfig struct {
	position mgl32.Vec3
	up       mgl32.Vec3
	target   *mgl32.Vec3

	fov    float32
	aspect float32

	left, right, top, bottom float32
	zoom                     float32

	near float32
	far  float32
}

func defaultCameraConfig() *cameraConfig {
	return &cameraConfig{
		up:     mgl32.Vec3{0, 1, 0},
		fov:    45.0 * (math.Pi / 180.0), // radians
		aspect: 1.0,
		left:   -1,
		right:  1,
		top:    1,
		bottom: -1,
		zoom:   1,
		near:   0.1,
		far:    1000.0,
	}
}

// CameraBuilderOption configures a camera at construction.
type CameraBuilderOption func(*cameraConfig)

// WithPosition sets the camera's initial world position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.up = mgl32.Vec3{x, y, z}
	}
}

// WithLookAt orients the new camera toward a world point once position and up are applied.
//
// Parameters:
//   - x, y, z: the point to look at
//
// Returns:
//   - CameraBuilderOption: a function that sets the initial look-at point
func WithLookAt(x, y, z float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		t := mgl32.Vec3{x, y, z}
		c.target = &t
	}
}

// WithFov sets the perspective camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.fov = fov
	}
}

// WithAspect sets the perspective camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.aspect = aspect
	}
}

// WithBounds sets the orthographic camera's view volume edges at zoom 1.
//
// Parameters:
//   - left, right, top, bottom: the view volume edges
//
// Returns:
//   - CameraBuilderOption: a function that sets the view bounds
func WithBounds(left, right, top, bottom float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.left, c.right, c.top, c.bottom = left, right, top, bottom
	}
}

// WithZoom sets the orthographic camera's initial zoom factor.
//
// Parameters:
//   - zoom: the zoom factor
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.zoom = zoom
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraConfig) {
		c.far = far
	}
}
