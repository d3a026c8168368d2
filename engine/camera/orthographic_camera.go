package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OrthographicCamera is a camera with an orthographic projection. The visible region is the
// view bounds divided by the zoom factor, centered on the bounds' midpoint.
type OrthographicCamera interface {
	Camera
	RayProjector

	// Zoom returns the zoom factor.
	//
	// Returns:
	//   - float32: the zoom factor
	Zoom() float32

	// SetZoom sets the zoom factor.
	//
	// Parameters:
	//   - zoom: the zoom factor
	SetZoom(zoom float32)

	// Bounds returns the view volume edges at zoom 1.
	//
	// Returns:
	//   - left, right, top, bottom: the view volume edges
	Bounds() (left, right, top, bottom float32)

	// SetBounds sets the view volume edges at zoom 1.
	//
	// Parameters:
	//   - left, right, top, bottom: the view volume edges
	SetBounds(left, right, top, bottom float32)

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32
}

type orthographicCamera struct {
	cameraBase

	left, right, top, bottom float32
	zoom                     float32
	near                     float32
	far                      float32
}

var _ OrthographicCamera = &orthographicCamera{}

// NewOrthographicCamera creates a new OrthographicCamera.
// Defaults: position at the origin, +Y up, bounds [-1, 1] on both axes, zoom 1, near 0.1, far 1000.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - OrthographicCamera: the newly created camera
func NewOrthographicCamera(options ...CameraBuilderOption) OrthographicCamera {
	cfg := defaultCameraConfig()
	for _, option := range options {
		option(cfg)
	}
	return &orthographicCamera{
		cameraBase: newCameraBase(cfg),
		left:       cfg.left,
		right:      cfg.right,
		top:        cfg.top,
		bottom:     cfg.bottom,
		zoom:       cfg.zoom,
		near:       cfg.near,
		far:        cfg.far,
	}
}

func (c *orthographicCamera) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *orthographicCamera) SetZoom(zoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
}

func (c *orthographicCamera) Bounds() (left, right, top, bottom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.top, c.bottom
}

func (c *orthographicCamera) SetBounds(left, right, top, bottom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left, c.right, c.top, c.bottom = left, right, top, bottom
}

func (c *orthographicCamera) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *orthographicCamera) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *orthographicCamera) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix()
}

func (c *orthographicCamera) Project(world mgl32.Vec3) mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.project(world, c.projectionMatrix())
}

func (c *orthographicCamera) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unproject(ndc, c.projectionMatrix())
}

// projectionMatrix computes the zoomed orthographic projection.
// Caller must hold the mutex.
func (c *orthographicCamera) projectionMatrix() mgl32.Mat4 {
	zoom := c.zoom
	if zoom == 0 {
		zoom = 1
	}
	dx := (c.right - c.left) / (2 * zoom)
	dy := (c.top - c.bottom) / (2 * zoom)
	cx := (c.right + c.left) / 2
	cy := (c.top + c.bottom) / 2
	return mgl32.Ortho(cx-dx, cx+dx, cy-dy, cy+dy, c.near, c.far)
}
