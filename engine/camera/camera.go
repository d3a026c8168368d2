package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera defines the pose contract shared by every camera kind.
// A camera holds a world position and orientation; controllers drive it by writing both.
type Camera interface {
	// Position returns the camera's world position.
	//
	// Returns:
	//   - mgl32.Vec3: the world position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world position.
	//
	// Parameters:
	//   - p: the new world position
	SetPosition(p mgl32.Vec3)

	// Quaternion returns the camera's world orientation.
	//
	// Returns:
	//   - mgl32.Quat: the world orientation
	Quaternion() mgl32.Quat

	// SetQuaternion sets the camera's world orientation.
	//
	// Parameters:
	//   - q: the new world orientation
	SetQuaternion(q mgl32.Quat)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: the new up vector
	SetUp(up mgl32.Vec3)

	// LookAt orients the camera so its local -Z axis points at target.
	//
	// Parameters:
	//   - target: the world point to look at
	LookAt(target mgl32.Vec3)

	// ViewMatrix returns the world-to-view matrix for the current pose.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the view-to-clip matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4
}

// RayProjector is implemented by cameras that can map between world space and normalized device coordinates.
type RayProjector interface {
	// Project maps a world point to normalized device coordinates.
	//
	// Parameters:
	//   - world: the world-space point
	//
	// Returns:
	//   - mgl32.Vec3: the NDC point, x and y in [-1, 1] when visible
	Project(world mgl32.Vec3) mgl32.Vec3

	// Unproject maps a normalized device coordinate back to world space.
	//
	// Parameters:
	//   - ndc: the NDC point; z = -1 is the near plane, z = 1 the far plane
	//
	// Returns:
	//   - mgl32.Vec3: the world-space point
	Unproject(ndc mgl32.Vec3) mgl32.Vec3
}

// cameraBase holds the pose shared by both camera kinds. The owning camera's projection
// fields are guarded by the same mutex.
type cameraBase struct {
	mu *sync.Mutex

	position   mgl32.Vec3
	quaternion mgl32.Quat
	up         mgl32.Vec3
}

func newCameraBase(cfg *cameraConfig) cameraBase {
	b := cameraBase{
		mu:         &sync.Mutex{},
		position:   cfg.position,
		quaternion: mgl32.QuatIdent(),
		up:         cfg.up,
	}
	if cfg.target != nil {
		b.quaternion = common.LookRotation(b.position, *cfg.target, b.up)
	}
	return b
}

func (b *cameraBase) Position() mgl32.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.position
}

func (b *cameraBase) SetPosition(p mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.position = p
}

func (b *cameraBase) Quaternion() mgl32.Quat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.quaternion
}

func (b *cameraBase) SetQuaternion(q mgl32.Quat) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quaternion = q
}

func (b *cameraBase) Up() mgl32.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.up
}

func (b *cameraBase) SetUp(up mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.up = up
}

func (b *cameraBase) LookAt(target mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quaternion = common.LookRotation(b.position, target, b.up)
}

func (b *cameraBase) ViewMatrix() mgl32.Mat4 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewMatrix()
}

// viewMatrix is the inverse of the camera's world transform.
// Caller must hold the mutex.
func (b *cameraBase) viewMatrix() mgl32.Mat4 {
	p := b.position
	return b.quaternion.Conjugate().Mat4().Mul4(mgl32.Translate3D(-p[0], -p[1], -p[2]))
}

// project and unproject share the NDC convention of mgl32's OpenGL-style projections.
// Caller must hold the mutex.
func (b *cameraBase) project(world mgl32.Vec3, proj mgl32.Mat4) mgl32.Vec3 {
	return mgl32.TransformCoordinate(world, proj.Mul4(b.viewMatrix()))
}

func (b *cameraBase) unproject(ndc mgl32.Vec3, proj mgl32.Mat4) mgl32.Vec3 {
	return mgl32.TransformCoordinate(ndc, proj.Mul4(b.viewMatrix()).Inv())
}
