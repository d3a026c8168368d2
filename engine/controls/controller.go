// Package controls implements an interactive orbit controller: it turns raw pointer, wheel and
// key input from an input.Surface into constrained, optionally damped orbit, pan and zoom motion
// of a camera around a target point.
//
// Input handlers only buffer deltas. The camera is written exclusively by Update, which a frame
// driver calls once per frame.
package controls

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitController orbits, pans and zooms a camera around a target in response to user input.
type OrbitController interface {
	// Update applies buffered input to the camera. Call once per frame.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame, or nil to assume 1/60 s for auto-rotation
	//
	// Returns:
	//   - bool: true if the camera pose (or zoom) changed and was written
	Update(deltaTime *float32) bool

	// SaveState records the current target, camera position and zoom for Reset.
	SaveState()

	// Reset restores the state captured by the last SaveState (or at construction) and emits EventChange.
	Reset()

	// Dispose detaches the controller from its surface and key source, releases any captured
	// pointers and removes all lifecycle listeners.
	Dispose()

	// ListenToKeyEvents starts handling navigation keys from source. A previous source is detached.
	//
	// Parameters:
	//   - source: the key event source
	ListenToKeyEvents(source input.KeySource)

	// StopListenToKeyEvents stops handling navigation keys.
	StopListenToKeyEvents()

	// PolarAngle returns the current polar angle in radians, measured from the up axis.
	PolarAngle() float32

	// AzimuthalAngle returns the current azimuthal angle in radians, in (-π, π].
	AzimuthalAngle() float32

	// Distance returns the distance from the camera to the target.
	Distance() float32

	// Mode returns the interaction mode of the gesture in progress.
	Mode() InteractionMode

	// Camera returns the controlled camera.
	Camera() camera.Camera

	// AddEventListener registers fn for lifecycle events of the given kind.
	// Listeners run on the goroutine that triggered the event, after the controller is unlocked.
	//
	// Parameters:
	//   - kind: the event kind
	//   - fn: the callback
	//
	// Returns:
	//   - common.ListenerID: handle for RemoveEventListener, zero if kind is invalid
	AddEventListener(kind EventKind, fn func(Event)) common.ListenerID

	// RemoveEventListener unregisters a lifecycle listener.
	//
	// Parameters:
	//   - kind: the event kind the listener was registered for
	//   - id: the handle returned by AddEventListener
	//
	// Returns:
	//   - bool: true if a listener was removed
	RemoveEventListener(kind EventKind, id common.ListenerID) bool

	// Config returns a snapshot of every tunable setting.
	Config() Config

	// ApplyConfig replaces every tunable setting. Gesture state and the target are kept.
	//
	// Parameters:
	//   - cfg: the settings to apply
	ApplyConfig(cfg Config)

	Enabled() bool
	SetEnabled(enabled bool)

	// Target returns the point the camera orbits.
	Target() mgl32.Vec3
	// SetTarget moves the orbit point. The camera keeps its position and re-aims on the next Update.
	SetTarget(target mgl32.Vec3)

	// Cursor returns the center of the sphere the target is confined to.
	Cursor() mgl32.Vec3
	SetCursor(cursor mgl32.Vec3)

	MinDistance() float32
	SetMinDistance(d float32)
	MaxDistance() float32
	SetMaxDistance(d float32)

	MinZoom() float32
	SetMinZoom(z float32)
	MaxZoom() float32
	SetMaxZoom(z float32)

	MinTargetRadius() float32
	SetMinTargetRadius(r float32)
	MaxTargetRadius() float32
	SetMaxTargetRadius(r float32)

	MinPolarAngle() float32
	SetMinPolarAngle(a float32)
	MaxPolarAngle() float32
	SetMaxPolarAngle(a float32)

	MinAzimuthAngle() float32
	SetMinAzimuthAngle(a float32)
	MaxAzimuthAngle() float32
	SetMaxAzimuthAngle(a float32)

	EnableDamping() bool
	SetEnableDamping(enabled bool)
	DampingFactor() float32
	SetDampingFactor(f float32)

	EnableZoom() bool
	SetEnableZoom(enabled bool)
	ZoomSpeed() float32
	SetZoomSpeed(s float32)

	EnableRotate() bool
	SetEnableRotate(enabled bool)
	RotateSpeed() float32
	SetRotateSpeed(s float32)

	EnablePan() bool
	SetEnablePan(enabled bool)
	PanSpeed() float32
	SetPanSpeed(s float32)

	ScreenSpacePanning() bool
	SetScreenSpacePanning(enabled bool)

	KeyPanSpeed() float32
	SetKeyPanSpeed(s float32)
	KeyRotateSpeed() float32
	SetKeyRotateSpeed(s float32)

	ZoomToCursor() bool
	SetZoomToCursor(enabled bool)

	AutoRotate() bool
	SetAutoRotate(enabled bool)
	AutoRotateSpeed() float32
	SetAutoRotateSpeed(s float32)

	MouseButtons() MouseButtons
	SetMouseButtons(b MouseButtons)
	Touches() Touches
	SetTouches(t Touches)
	Keys() Keys
	SetKeys(k Keys)
}
