package controls

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// orbitController is the single implementation of OrbitController.
// The spherical state is authoritative: Update derives the camera pose from it and never reads
// the pose back, except after zoom-to-cursor refinement and Reset, which re-derive it.
type orbitController struct {
	mu *sync.Mutex

	cam     camera.Camera
	surface input.Surface

	cfg    Config
	target mgl32.Vec3

	// rotation from the camera's up axis to +Y, and back
	quat        mgl32.Quat
	quatInverse mgl32.Quat

	mode      InteractionMode
	spherical common.Spherical
	// started is set once EventStart was queued for the gesture in progress
	started bool
	pending   deltaAccumulator

	pointers         []int
	pointerPositions map[int]mgl32.Vec2
	pointerTypes     map[int]input.PointerType
	capturedPointer  int
	captured         bool

	rotateStart mgl32.Vec2
	panStart    mgl32.Vec2
	dollyStart  mgl32.Vec2

	// cursor position in NDC and the ray through it, cached when a zoom gesture starts
	mouse             mgl32.Vec2
	dollyDirection    mgl32.Vec3
	performCursorZoom bool

	// physical Ctrl key state, to tell a held Ctrl from a trackpad pinch
	controlActive bool

	lastPosition   mgl32.Vec3
	lastQuaternion mgl32.Quat
	lastTarget     mgl32.Vec3

	target0   mgl32.Vec3
	position0 mgl32.Vec3
	zoom0     float32

	inputListenerID  common.ListenerID
	modifierSource   input.KeySource
	modifierListener common.ListenerID
	keySource        input.KeySource
	keyListener      common.ListenerID
	initialKeySource input.KeySource
	disposed         bool

	bus    eventBus
	queued []Event
}

var _ OrbitController = &orbitController{}

// NewOrbitController creates a controller for cam that listens to surface for pointer and wheel input.
// The initial spherical state is derived from the camera position relative to the target.
// If surface also implements input.KeySource, it is used to track the physical Ctrl key.
//
// Parameters:
//   - cam: the camera to drive
//   - surface: the input surface
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(cam camera.Camera, surface input.Surface, options ...ControllerOption) OrbitController {
	c := &orbitController{
		mu:               &sync.Mutex{},
		cam:              cam,
		surface:          surface,
		cfg:              DefaultConfig(),
		pending:          newDeltaAccumulator(),
		pointerPositions: make(map[int]mgl32.Vec2),
		pointerTypes:     make(map[int]input.PointerType),
	}
	for _, option := range options {
		option(c)
	}

	c.quat, c.quatInverse = common.UpAlignment(cam.Up())
	position := cam.Position()
	c.syncSpherical(position, c.target)

	c.lastPosition = position
	c.lastQuaternion = cam.Quaternion()
	c.lastTarget = c.target

	c.target0 = c.target
	c.position0 = position
	c.zoom0 = c.cameraZoom()

	if surface != nil {
		c.inputListenerID = surface.AddInputListener(c.onInput)
		if ks, ok := surface.(input.KeySource); ok {
			c.modifierSource = ks
			c.modifierListener = ks.AddKeyListener(c.onModifierKey)
		}
	}
	if c.initialKeySource != nil {
		c.listenToKeyEvents(c.initialKeySource)
		c.initialKeySource = nil
	}
	return c
}

// do runs fn under the mutex, then delivers the events fn queued.
func (c *orbitController) do(fn func()) {
	c.mu.Lock()
	fn()
	events := c.queued
	c.queued = nil
	c.mu.Unlock()
	c.bus.emit(events)
}

// queue records a lifecycle event for delivery once the mutex is released.
// Caller must hold the mutex.
func (c *orbitController) queue(kind EventKind) {
	c.queued = append(c.queued, Event{Kind: kind, Mode: c.mode})
}

// syncSpherical re-derives the spherical state from a camera position and target.
// Caller must hold the mutex.
func (c *orbitController) syncSpherical(position, target mgl32.Vec3) {
	c.spherical = common.SphericalFromVec3(c.quat.Rotate(position.Sub(target)))
}

// cameraZoom returns the orthographic zoom, or 1 for cameras without one.
func (c *orbitController) cameraZoom() float32 {
	if o, ok := c.cam.(camera.OrthographicCamera); ok {
		return o.Zoom()
	}
	return 1
}

func (c *orbitController) bounds() input.Rect {
	if c.surface == nil {
		return input.Rect{}
	}
	return c.surface.Bounds()
}

func (c *orbitController) SaveState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target0 = c.target
	c.position0 = c.cam.Position()
	c.zoom0 = c.cameraZoom()
}

func (c *orbitController) Reset() {
	c.do(func() {
		c.target = c.target0
		orientation := common.LookRotation(c.position0, c.target, c.cam.Up())
		c.cam.SetPosition(c.position0)
		c.cam.SetQuaternion(orientation)
		if o, ok := c.cam.(camera.OrthographicCamera); ok {
			o.SetZoom(c.zoom0)
		}

		c.pending.clear()
		c.performCursorZoom = false
		c.mode = ModeNone
		c.syncSpherical(c.position0, c.target)

		c.lastPosition = c.position0
		c.lastQuaternion = orientation
		c.lastTarget = c.target
		c.queue(EventChange)
	})
}

func (c *orbitController) Dispose() {
	c.mu.Lock()
	if c.surface != nil {
		c.surface.RemoveInputListener(c.inputListenerID)
		if c.captured {
			c.surface.ReleasePointerCapture(c.capturedPointer)
			c.captured = false
		}
	}
	if c.modifierSource != nil {
		c.modifierSource.RemoveKeyListener(c.modifierListener)
		c.modifierSource = nil
	}
	c.stopListenToKeyEvents()
	c.pointers = nil
	clear(c.pointerPositions)
	clear(c.pointerTypes)
	c.mode = ModeNone
	c.started = false
	c.disposed = true
	c.mu.Unlock()

	c.bus.clear()
}

func (c *orbitController) ListenToKeyEvents(source input.KeySource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.listenToKeyEvents(source)
}

// listenToKeyEvents swaps the navigation key source.
// Caller must hold the mutex, except during construction.
func (c *orbitController) listenToKeyEvents(source input.KeySource) {
	c.stopListenToKeyEvents()
	if source == nil {
		return
	}
	c.keySource = source
	c.keyListener = source.AddKeyListener(c.onKey)
}

func (c *orbitController) StopListenToKeyEvents() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopListenToKeyEvents()
}

func (c *orbitController) stopListenToKeyEvents() {
	if c.keySource == nil {
		return
	}
	c.keySource.RemoveKeyListener(c.keyListener)
	c.keySource = nil
	c.keyListener = 0
}

func (c *orbitController) PolarAngle() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spherical.Phi
}

func (c *orbitController) AzimuthalAngle() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spherical.Theta
}

func (c *orbitController) Distance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cam.Position().Sub(c.target).Len()
}

func (c *orbitController) Mode() InteractionMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *orbitController) Camera() camera.Camera {
	return c.cam
}

func (c *orbitController) AddEventListener(kind EventKind, fn func(Event)) common.ListenerID {
	return c.bus.add(kind, fn)
}

func (c *orbitController) RemoveEventListener(kind EventKind, id common.ListenerID) bool {
	return c.bus.remove(kind, id)
}

func (c *orbitController) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

func (c *orbitController) ApplyConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
}

func (c *orbitController) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *orbitController) SetTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.syncSpherical(c.cam.Position(), target)
}

// get and set read and write one settings field under the mutex.
func get[T any](c *orbitController, field func(*Config) *T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *field(&c.cfg)
}

func set[T any](c *orbitController, field func(*Config) *T, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*field(&c.cfg) = v
}

func (c *orbitController) Enabled() bool {
	return get(c, func(cfg *Config) *bool { return &cfg.Enabled })
}

func (c *orbitController) SetEnabled(enabled bool) {
	set(c, func(cfg *Config) *bool { return &cfg.Enabled }, enabled)
}

func (c *orbitController) Cursor() mgl32.Vec3 {
	return get(c, func(cfg *Config) *mgl32.Vec3 { return &cfg.Cursor })
}

func (c *orbitController) SetCursor(cursor mgl32.Vec3) {
	set(c, func(cfg *Config) *mgl32.Vec3 { return &cfg.Cursor }, cursor)
}

func (c *orbitController) MinDistance() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MinDistance })
}

func (c *orbitController) SetMinDistance(d float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MinDistance }, d)
}

func (c *orbitController) MaxDistance() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MaxDistance })
}

func (c *orbitController) SetMaxDistance(d float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MaxDistance }, d)
}

func (c *orbitController) MinZoom() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MinZoom })
}

func (c *orbitController) SetMinZoom(z float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MinZoom }, z)
}

func (c *orbitController) MaxZoom() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MaxZoom })
}

func (c *orbitController) SetMaxZoom(z float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MaxZoom }, z)
}

func (c *orbitController) MinTargetRadius() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MinTargetRadius })
}

func (c *orbitController) SetMinTargetRadius(r float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MinTargetRadius }, r)
}

func (c *orbitController) MaxTargetRadius() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MaxTargetRadius })
}

func (c *orbitController) SetMaxTargetRadius(r float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MaxTargetRadius }, r)
}

func (c *orbitController) MinPolarAngle() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MinPolarAngle })
}

func (c *orbitController) SetMinPolarAngle(a float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MinPolarAngle }, a)
}

func (c *orbitController) MaxPolarAngle() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MaxPolarAngle })
}

func (c *orbitController) SetMaxPolarAngle(a float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MaxPolarAngle }, a)
}

func (c *orbitController) MinAzimuthAngle() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MinAzimuthAngle })
}

func (c *orbitController) SetMinAzimuthAngle(a float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MinAzimuthAngle }, a)
}

func (c *orbitController) MaxAzimuthAngle() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.MaxAzimuthAngle })
}

func (c *orbitController) SetMaxAzimuthAngle(a float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.MaxAzimuthAngle }, a)
}

func (c *orbitController) EnableDamping() bool {
	return get(c, func(cfg *Config) *bool { return &cfg.EnableDamping })
}

func (c *orbitController) SetEnableDamping(enabled bool) {
	set(c, func(cfg *Config) *bool { return &cfg.EnableDamping }, enabled)
}

func (c *orbitController) DampingFactor() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.DampingFactor })
}

func (c *orbitController) SetDampingFactor(f float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.DampingFactor }, f)
}

func (c *orbitController) EnableZoom() bool {
	return get(c, func(cfg *Config) *bool { return &cfg.EnableZoom })
}

func (c *orbitController) SetEnableZoom(enabled bool) {
	set(c, func(cfg *Config) *bool { return &cfg.EnableZoom }, enabled)
}

func (c *orbitController) ZoomSpeed() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.ZoomSpeed })
}

func (c *orbitController) SetZoomSpeed(s float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.ZoomSpeed }, s)
}

func (c *orbitController) EnableRotate() bool {
	return get(c, func(cfg *Config) *bool { return &cfg.EnableRotate })
}

func (c *orbitController) SetEnableRotate(enabled bool) {
	set(c, func(cfg *Config) *bool { return &cfg.EnableRotate }, enabled)
}

func (c *orbitController) RotateSpeed() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.RotateSpeed })
}

func (c *orbitController) SetRotateSpeed(s float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.RotateSpeed }, s)
}

func (c *orbitController) EnablePan() bool {
	return get(c, func(cfg *Config) *bool { return &cfg.EnablePan })
}

func (c *orbitController) SetEnablePan(enabled bool) {
	set(c, func(cfg *Config) *bool { return &cfg.EnablePan }, enabled)
}

func (c *orbitController) PanSpeed() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.PanSpeed })
}

func (c *orbitController) SetPanSpeed(s float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.PanSpeed }, s)
}

func (c *orbitController) ScreenSpacePanning() bool {
	return get(c, func(cfg *Config) *bool { return &cfg.ScreenSpacePanning })
}

func (c *orbitController) SetScreenSpacePanning(enabled bool) {
	set(c, func(cfg *Config) *bool { return &cfg.ScreenSpacePanning }, enabled)
}

func (c *orbitController) KeyPanSpeed() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.KeyPanSpeed })
}

func (c *orbitController) SetKeyPanSpeed(s float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.KeyPanSpeed }, s)
}

func (c *orbitController) KeyRotateSpeed() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.KeyRotateSpeed })
}

func (c *orbitController) SetKeyRotateSpeed(s float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.KeyRotateSpeed }, s)
}

func (c *orbitController) ZoomToCursor() bool {
	return get(c, func(cfg *Config) *bool { return &cfg.ZoomToCursor })
}

func (c *orbitController) SetZoomToCursor(enabled bool) {
	set(c, func(cfg *Config) *bool { return &cfg.ZoomToCursor }, enabled)
}

func (c *orbitController) AutoRotate() bool {
	return get(c, func(cfg *Config) *bool { return &cfg.AutoRotate })
}

func (c *orbitController) SetAutoRotate(enabled bool) {
	set(c, func(cfg *Config) *bool { return &cfg.AutoRotate }, enabled)
}

func (c *orbitController) AutoRotateSpeed() float32 {
	return get(c, func(cfg *Config) *float32 { return &cfg.AutoRotateSpeed })
}

func (c *orbitController) SetAutoRotateSpeed(s float32) {
	set(c, func(cfg *Config) *float32 { return &cfg.AutoRotateSpeed }, s)
}

func (c *orbitController) MouseButtons() MouseButtons {
	return get(c, func(cfg *Config) *MouseButtons { return &cfg.MouseButtons })
}

func (c *orbitController) SetMouseButtons(b MouseButtons) {
	set(c, func(cfg *Config) *MouseButtons { return &cfg.MouseButtons }, b)
}

func (c *orbitController) Touches() Touches {
	return get(c, func(cfg *Config) *Touches { return &cfg.Touches })
}

func (c *orbitController) SetTouches(t Touches) {
	set(c, func(cfg *Config) *Touches { return &cfg.Touches }, t)
}

func (c *orbitController) Keys() Keys {
	return get(c, func(cfg *Config) *Keys { return &cfg.Keys })
}

func (c *orbitController) SetKeys(k Keys) {
	set(c, func(cfg *Config) *Keys { return &cfg.Keys }, k)
}
