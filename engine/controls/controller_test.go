package controls

import (
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	surfaceWidth  = 800
	surfaceHeight = 600
	tol           = 1e-4
)

type rig struct {
	c       *orbitController
	cam     camera.Camera
	surface *input.VirtualSurface
}

func newSurface() *input.VirtualSurface {
	return input.NewVirtualSurface(input.Rect{Width: surfaceWidth, Height: surfaceHeight})
}

func newPerspectiveRig(t *testing.T, opts ...ControllerOption) *rig {
	t.Helper()
	cam := camera.NewPerspectiveCamera(
		camera.WithPosition(0, 0, 5),
		camera.WithLookAt(0, 0, 0),
		camera.WithAspect(float32(surfaceWidth)/surfaceHeight),
	)
	return newRig(t, cam, opts...)
}

func newOrthographicRig(t *testing.T, opts ...ControllerOption) *rig {
	t.Helper()
	cam := camera.NewOrthographicCamera(
		camera.WithPosition(0, 0, 10),
		camera.WithLookAt(0, 0, 0),
		camera.WithBounds(-4, 4, 3, -3),
	)
	return newRig(t, cam, opts...)
}

func newRig(t *testing.T, cam camera.Camera, opts ...ControllerOption) *rig {
	t.Helper()
	surface := newSurface()
	c, ok := NewOrbitController(cam, surface, opts...).(*orbitController)
	require.True(t, ok)
	t.Cleanup(c.Dispose)
	return &rig{c: c, cam: cam, surface: surface}
}

func (r *rig) mouseDown(button input.MouseButton, x, y float32, mods input.Modifiers) {
	r.surface.Dispatch(input.PointerEvent{Phase: input.PointerDown, ID: 1, Type: input.PointerMouse, Button: button, X: x, Y: y, Mods: mods})
}

func (r *rig) mouseMove(x, y float32) {
	r.surface.Dispatch(input.PointerEvent{Phase: input.PointerMove, ID: 1, Type: input.PointerMouse, Button: input.ButtonNone, X: x, Y: y})
}

func (r *rig) mouseUp(x, y float32) {
	r.surface.Dispatch(input.PointerEvent{Phase: input.PointerUp, ID: 1, Type: input.PointerMouse, X: x, Y: y})
}

func (r *rig) drag(button input.MouseButton, x0, y0, x1, y1 float32) {
	r.mouseDown(button, x0, y0, 0)
	r.mouseMove(x1, y1)
	r.mouseUp(x1, y1)
}

func (r *rig) touch(phase input.PointerPhase, id int, x, y float32) {
	r.surface.Dispatch(input.PointerEvent{Phase: phase, ID: id, Type: input.PointerTouch, X: x, Y: y})
}

func (r *rig) wheel(x, y, deltaY float32) {
	r.surface.Dispatch(input.WheelEvent{X: x, Y: y, DeltaY: deltaY})
}

type recorder struct {
	mu    sync.Mutex
	kinds []EventKind
}

func record(c OrbitController) *recorder {
	r := &recorder{}
	for k := EventStart; k < eventKindCount; k++ {
		c.AddEventListener(k, func(e Event) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.kinds = append(r.kinds, e.Kind)
		})
	}
	return r
}

func (r *recorder) events() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]EventKind(nil), r.kinds...)
}

func assertVec3(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v vs %v", i, want, got)
	}
}

func TestNewControllerDerivesSphericalState(t *testing.T) {
	r := newPerspectiveRig(t)
	assert.InDelta(t, 5, r.c.spherical.Radius, 1e-6)
	assert.InDelta(t, 0, r.c.AzimuthalAngle(), 1e-6)
	assert.InDelta(t, math.Pi/2, r.c.PolarAngle(), 1e-6)
	assert.InDelta(t, 5, r.c.Distance(), 1e-6)

	cam := camera.NewPerspectiveCamera(camera.WithPosition(3, 3, 0), camera.WithLookAt(0, 0, 0))
	c := NewOrbitController(cam, newSurface())
	defer c.Dispose()
	assert.InDelta(t, math.Pi/2, c.AzimuthalAngle(), 1e-6)
	assert.InDelta(t, math.Pi/4, c.PolarAngle(), 1e-6)
}

func TestNewControllerWithZUp(t *testing.T) {
	cam := camera.NewPerspectiveCamera(camera.WithUp(0, 0, 1), camera.WithPosition(0, -5, 5), camera.WithLookAt(0, 0, 0))
	c := NewOrbitController(cam, newSurface())
	defer c.Dispose()
	// 45° above the ground plane in the Z-up frame
	assert.InDelta(t, math.Pi/4, c.PolarAngle(), 1e-5)
	assert.InDelta(t, math.Sqrt(50), c.Distance(), 1e-5)
}

func TestUpdateIdleReportsNoChange(t *testing.T) {
	r := newPerspectiveRig(t)
	rec := record(r.c)
	assert.False(t, r.c.Update(nil))
	assert.False(t, r.c.Update(nil))
	assert.Empty(t, rec.events())
}

func TestRotateDragOrbitsAroundTarget(t *testing.T) {
	r := newPerspectiveRig(t)
	rec := record(r.c)

	r.drag(input.ButtonLeft, 400, 300, 450, 300)
	require.True(t, r.c.Update(nil))

	// a drag across the full height is one turn; dragging right decreases the azimuth
	want := -2 * math.Pi * 50 / surfaceHeight
	assert.InDelta(t, want, r.c.AzimuthalAngle(), 1e-5)
	assert.InDelta(t, 5, r.c.Distance(), 1e-5)
	assertVec3(t, mgl32.Vec3{}, r.c.Target(), 0)

	// the camera looks at the target
	forward := r.cam.Quaternion().Rotate(mgl32.Vec3{0, 0, -1})
	assertVec3(t, r.c.Target().Sub(r.cam.Position()).Normalize(), forward, tol)

	assert.Equal(t, []EventKind{EventStart, EventEnd, EventChange}, rec.events())
}

func TestPolarAngleStaysWithinBounds(t *testing.T) {
	tests := []struct {
		name     string
		minPolar float32
		maxPolar float32
	}{
		{name: "default", minPolar: 0, maxPolar: math.Pi},
		{name: "upper hemisphere", minPolar: math.Pi / 4, maxPolar: math.Pi / 2},
	}
	drags := []float32{-900, 250, 1200, -40, 600, -1500}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPerspectiveRig(t, WithPolarLimits(tt.minPolar, tt.maxPolar))
			for _, dy := range drags {
				r.drag(input.ButtonLeft, 400, 300, 410, 300+dy)
				r.c.Update(nil)
				phi := r.c.PolarAngle()
				assert.GreaterOrEqual(t, phi, tt.minPolar)
				assert.LessOrEqual(t, phi, tt.maxPolar)
				assert.Greater(t, phi, float32(0))
				assert.Less(t, phi, common.Pi)
			}
		})
	}
}

func TestRadiusStaysWithinBounds(t *testing.T) {
	r := newPerspectiveRig(t, WithDistanceLimits(2, 10))
	deltas := []float32{-500, -2000, 300, 4000, 4000, -100, 1000, -8000}
	for _, d := range deltas {
		r.wheel(400, 300, d)
		r.c.Update(nil)
		assert.GreaterOrEqual(t, r.c.spherical.Radius, float32(2))
		assert.LessOrEqual(t, r.c.spherical.Radius, float32(10))
		assert.InDelta(t, r.c.spherical.Radius, r.c.Distance(), 1e-4)
	}
}

func TestWheelZoomInClampsToMinDistance(t *testing.T) {
	r := newPerspectiveRig(t, WithDistanceLimits(2, 10))
	require.InDelta(t, 5, r.c.Distance(), 1e-6)

	// each step requests a 5% zoom in
	for range 200 {
		r.wheel(400, 300, -100)
		r.c.Update(nil)
	}
	assert.Equal(t, float32(2), r.c.spherical.Radius)
	assert.InDelta(t, 2, r.c.Distance(), 1e-5)
}

func TestWheelZoomBufferedUntilUpdate(t *testing.T) {
	r := newPerspectiveRig(t)
	r.wheel(400, 300, -100)
	r.wheel(400, 300, -100)
	assert.InDelta(t, 5, r.c.Distance(), 1e-6)

	require.True(t, r.c.Update(nil))
	assert.InDelta(t, 5*0.95*0.95, r.c.Distance(), 1e-4)
}

func TestAzimuthClampsToNearestBound(t *testing.T) {
	r := newPerspectiveRig(t, WithAzimuthLimits(-math.Pi/8, math.Pi/8))

	r.c.mu.Lock()
	r.c.rotateLeft(-common.Pi)
	r.c.mu.Unlock()
	r.c.Update(nil)
	assert.InDelta(t, math.Pi/8, r.c.AzimuthalAngle(), 1e-6)

	// dragging left far past the window lands on the same bound
	r2 := newPerspectiveRig(t, WithAzimuthLimits(-math.Pi/8, math.Pi/8))
	r2.drag(input.ButtonLeft, 400, 300, 110, 300)
	r2.c.Update(nil)
	assert.InDelta(t, math.Pi/8, r2.c.AzimuthalAngle(), 1e-6)
}

func TestClampAzimuth(t *testing.T) {
	inf := common.Inf(1)
	tests := []struct {
		name   string
		theta  float32
		lo, hi float32
		want   float32
	}{
		{name: "unbounded keeps angle", theta: 1, lo: -inf, hi: inf, want: 1},
		{name: "unbounded normalizes", theta: 3 * math.Pi / 2, lo: -inf, hi: inf, want: -math.Pi / 2},
		{name: "inside window", theta: 0.1, lo: -0.5, hi: 0.5, want: 0.1},
		{name: "above window", theta: math.Pi, lo: -math.Pi / 8, hi: math.Pi / 8, want: math.Pi / 8},
		{name: "below window", theta: -2, lo: -math.Pi / 8, hi: math.Pi / 8, want: -math.Pi / 8},
		{name: "bounds beyond pi are wrapped", theta: 0, lo: 3 * math.Pi / 2, hi: 2 * math.Pi, want: 0},
		{name: "wrapped window keeps inside angle", theta: math.Pi, lo: 3 * math.Pi / 4, hi: -3 * math.Pi / 4, want: math.Pi},
		{name: "wrapped window positive side", theta: math.Pi / 2, lo: 3 * math.Pi / 4, hi: -3 * math.Pi / 4, want: 3 * math.Pi / 4},
		{name: "wrapped window negative side", theta: -math.Pi / 2, lo: 3 * math.Pi / 4, hi: -3 * math.Pi / 4, want: -3 * math.Pi / 4},
		{name: "full circle window", theta: 3, lo: -math.Pi, hi: math.Pi, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampAzimuth(tt.theta, tt.lo, tt.hi)
			assert.InDelta(t, tt.want, got, 1e-5)
			assert.InDelta(t, got, clampAzimuth(got, tt.lo, tt.hi), 1e-6, "clamp is idempotent")
		})
	}
}

func TestPinchInZoomsOutAndPansByCentroid(t *testing.T) {
	r := newPerspectiveRig(t, WithTouches(Touches{One: TouchRotate, Two: TouchDollyPan}))
	rec := record(r.c)

	r.touch(input.PointerDown, 10, 350, 300)
	r.touch(input.PointerDown, 11, 450, 300)
	require.Equal(t, ModeTouchDollyPan, r.c.Mode())

	// 100px apart -> 50px apart, centroid moves from x=400 to x=375
	r.touch(input.PointerMove, 11, 400, 300)
	require.True(t, r.c.Update(nil))

	assert.Greater(t, r.c.Distance(), float32(5))
	assert.InDelta(t, 10, r.c.Distance(), 1e-4)

	// half the visible height at the target is 5·tan(22.5°); the centroid moved 25px left
	targetDistance := 5 * math.Tan(math.Pi/8)
	wantX := 2 * 25 * targetDistance / surfaceHeight
	assertVec3(t, mgl32.Vec3{float32(wantX), 0, 0}, r.c.Target(), 1e-5)

	r.touch(input.PointerUp, 11, 400, 300)
	assert.Equal(t, ModeTouchRotate, r.c.Mode())
	r.touch(input.PointerUp, 10, 350, 300)
	assert.Equal(t, ModeNone, r.c.Mode())
	assert.Equal(t, 0, r.surface.CaptureCount())

	assert.Equal(t, []EventKind{EventStart, EventChange, EventEnd}, rec.events())
}

func TestDampingDecaysPendingRotation(t *testing.T) {
	const factor = 0.1
	r := newPerspectiveRig(t, WithDamping(factor))

	r.drag(input.ButtonLeft, 400, 300, 500, 300)
	r.c.mu.Lock()
	delta := r.c.pending.theta
	r.c.mu.Unlock()
	require.InDelta(t, -2*math.Pi*100/surfaceHeight, delta, 1e-5)

	prevTheta := r.c.AzimuthalAngle()
	prevStep := float32(math.Inf(1))
	for n := 1; n <= 40; n++ {
		r.c.Update(nil)
		theta := r.c.AzimuthalAngle()
		step := mgl32.Abs(theta - prevTheta)
		assert.Less(t, step, prevStep, "frame %d", n)
		prevStep, prevTheta = step, theta

		r.c.mu.Lock()
		pending := r.c.pending.theta
		r.c.mu.Unlock()
		want := float64(delta) * math.Pow(1-factor, float64(n))
		assert.InDelta(t, want, pending, 1e-5, "frame %d", n)
	}

	// theta has covered most of the drag
	assert.InDelta(t, float64(delta)*(1-math.Pow(1-factor, 40)), r.c.AzimuthalAngle(), 1e-4)
}

func TestDampingDecaysPan(t *testing.T) {
	r := newPerspectiveRig(t, WithDamping(0.25))
	r.drag(input.ButtonRight, 400, 300, 300, 300)

	r.c.mu.Lock()
	pan := r.c.pending.pan
	r.c.mu.Unlock()
	require.Greater(t, pan.X(), float32(0))

	r.c.Update(nil)
	assertVec3(t, pan.Mul(0.25), r.c.Target(), 1e-6)
	r.c.Update(nil)
	assertVec3(t, pan.Mul(0.25+0.25*0.75), r.c.Target(), 1e-6)
}

func TestZoomToCursorKeepsCursorPointFixedPerspective(t *testing.T) {
	r := newPerspectiveRig(t, WithZoomToCursor(true))
	cam := r.cam.(camera.PerspectiveCamera)

	const x, y = 600, 200
	nx, ny := r.surface.Bounds().NDC(x, y)
	ray := cam.Unproject(mgl32.Vec3{nx, ny, 1}).Sub(cam.Position()).Normalize()
	world := cam.Position().Add(ray.Mul(7))

	before := cam.Project(world)
	require.InDelta(t, nx, before[0], tol)
	require.InDelta(t, ny, before[1], tol)

	for range 3 {
		r.wheel(x, y, -100)
		require.True(t, r.c.Update(nil))
		after := cam.Project(world)
		assert.InDelta(t, nx, after[0], tol)
		assert.InDelta(t, ny, after[1], tol)
	}
	assert.InDelta(t, 5*math.Pow(0.95, 3), r.c.Distance(), 1e-3)
	assert.InDelta(t, r.c.spherical.Radius, r.c.Distance(), 1e-4)
}

func TestZoomToCursorKeepsCursorPointFixedWithoutScreenSpacePanning(t *testing.T) {
	r := newPerspectiveRig(t, WithZoomToCursor(true), WithScreenSpacePanning(false))
	cam := r.cam.(camera.PerspectiveCamera)

	const x, y = 600, 200
	nx, ny := r.surface.Bounds().NDC(x, y)
	ray := cam.Unproject(mgl32.Vec3{nx, ny, 1}).Sub(cam.Position()).Normalize()
	world := cam.Position().Add(ray.Mul(7))
	orientation := cam.Quaternion()

	for range 3 {
		r.wheel(x, y, -100)
		require.True(t, r.c.Update(nil))
		after := cam.Project(world)
		assert.InDelta(t, nx, after[0], tol)
		assert.InDelta(t, ny, after[1], tol)
	}
	assert.InDelta(t, 1, math.Abs(float64(orientation.Dot(cam.Quaternion()))), 1e-5)
	assert.InDelta(t, 5*math.Pow(0.95, 3), r.c.Distance(), 1e-3)
	assert.InDelta(t, r.c.spherical.Radius, r.c.Distance(), 1e-4)
}

func TestZoomToCursorKeepsCursorPointFixedOrthographic(t *testing.T) {
	r := newOrthographicRig(t, WithZoomToCursor(true))
	cam := r.cam.(camera.OrthographicCamera)

	const x, y = 600, 200
	nx, ny := r.surface.Bounds().NDC(x, y)
	world := cam.Unproject(mgl32.Vec3{nx, ny, 0})

	r.wheel(x, y, -100)
	require.True(t, r.c.Update(nil))

	assert.InDelta(t, 1/0.95, cam.Zoom(), 1e-5)
	after := cam.Project(world)
	assert.InDelta(t, nx, after[0], tol)
	assert.InDelta(t, ny, after[1], tol)
}

func TestOrthographicWheelChangesZoom(t *testing.T) {
	r := newOrthographicRig(t, WithZoomLimits(0.5, 1.2))
	cam := r.cam.(camera.OrthographicCamera)
	start := cam.Position()

	r.wheel(400, 300, -100)
	require.True(t, r.c.Update(nil))
	assert.InDelta(t, 1/0.95, cam.Zoom(), 1e-5)
	assertVec3(t, start, cam.Position(), 1e-5)

	for range 20 {
		r.wheel(400, 300, -100)
		r.c.Update(nil)
	}
	assert.Equal(t, float32(1.2), cam.Zoom())

	for range 40 {
		r.wheel(400, 300, 100)
		r.c.Update(nil)
	}
	assert.Equal(t, float32(0.5), cam.Zoom())
}

func TestSaveStateResetRoundTrip(t *testing.T) {
	r := newPerspectiveRig(t)
	r.drag(input.ButtonLeft, 400, 300, 470, 260)
	r.c.Update(nil)
	r.c.SaveState()
	savedPosition := r.cam.Position()
	savedTarget := r.c.Target()

	r.drag(input.ButtonLeft, 400, 300, 100, 500)
	r.drag(input.ButtonRight, 400, 300, 250, 350)
	r.wheel(400, 300, 700)
	r.c.Update(nil)
	require.NotEqual(t, savedPosition, r.cam.Position())

	rec := record(r.c)
	r.c.Reset()
	assert.Equal(t, savedPosition, r.cam.Position())
	assert.Equal(t, savedTarget, r.c.Target())
	assert.Equal(t, ModeNone, r.c.Mode())
	assert.Equal(t, []EventKind{EventChange}, rec.events())
	assert.False(t, r.c.Update(nil))
}

func TestResetRestoresOrthographicZoom(t *testing.T) {
	r := newOrthographicRig(t)
	cam := r.cam.(camera.OrthographicCamera)
	r.wheel(400, 300, -300)
	r.c.Update(nil)
	require.NotEqual(t, float32(1), cam.Zoom())

	r.c.Reset()
	assert.Equal(t, float32(1), cam.Zoom())
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, cam.Position())
}

func TestPanDragMovesTargetAndCamera(t *testing.T) {
	r := newPerspectiveRig(t)
	r.drag(input.ButtonRight, 400, 300, 460, 300)
	require.True(t, r.c.Update(nil))

	// dragging right moves the scene right, so the target moves left
	target := r.c.Target()
	assert.Less(t, target.X(), float32(0))
	assert.InDelta(t, 0, target.Y(), 1e-6)
	assertVec3(t, target.Add(mgl32.Vec3{0, 0, 5}), r.cam.Position(), 1e-4)
}

func TestPanWithoutScreenSpacePanningStaysOnGround(t *testing.T) {
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 5, 5), camera.WithLookAt(0, 0, 0))
	r := newRig(t, cam, WithScreenSpacePanning(false))
	r.drag(input.ButtonRight, 400, 300, 400, 360)
	r.c.Update(nil)

	target := r.c.Target()
	assert.InDelta(t, 0, target.Y(), 1e-6)
	assert.Less(t, target.Z(), float32(0))
}

func TestTargetRadiusClampedAroundCursor(t *testing.T) {
	r := newPerspectiveRig(t, WithTargetRadiusLimits(0, 0.5), WithCursor(0, 0, 0))
	r.drag(input.ButtonRight, 400, 300, 0, 300)
	r.c.Update(nil)
	assert.InDelta(t, 0.5, r.c.Target().Len(), 1e-5)
}

func TestAutoRotate(t *testing.T) {
	r := newPerspectiveRig(t, WithAutoRotate(2))

	r.c.Update(nil)
	assert.InDelta(t, -2*math.Pi/60/60*2, r.c.AzimuthalAngle(), 1e-6)

	dt := float32(0.5)
	r.c.Update(&dt)
	assert.InDelta(t, -2*math.Pi/60/60*2-2*math.Pi/60*2*0.5, r.c.AzimuthalAngle(), 1e-5)

	// paused while a gesture is active
	r.mouseDown(input.ButtonLeft, 400, 300, 0)
	theta := r.c.AzimuthalAngle()
	r.c.Update(&dt)
	assert.Equal(t, theta, r.c.AzimuthalAngle())
}

func TestSetTargetReaimsCamera(t *testing.T) {
	r := newPerspectiveRig(t)
	r.c.SetTarget(mgl32.Vec3{1, 0, 0})
	require.True(t, r.c.Update(nil))

	assertVec3(t, mgl32.Vec3{0, 0, 5}, r.cam.Position(), 1e-4)
	forward := r.cam.Quaternion().Rotate(mgl32.Vec3{0, 0, -1})
	assertVec3(t, mgl32.Vec3{1, 0, -5}.Normalize(), forward, 1e-4)
}

func TestChangeListenerMayCallBack(t *testing.T) {
	r := newPerspectiveRig(t)
	var distance float32
	r.c.AddEventListener(EventChange, func(Event) {
		distance = r.c.Distance()
	})
	r.wheel(400, 300, 100)
	require.True(t, r.c.Update(nil))
	assert.Greater(t, distance, float32(5))
}

func TestRemoveEventListener(t *testing.T) {
	r := newPerspectiveRig(t)
	calls := 0
	id := r.c.AddEventListener(EventStart, func(Event) { calls++ })
	assert.NotZero(t, id)
	assert.True(t, r.c.RemoveEventListener(EventStart, id))
	assert.False(t, r.c.RemoveEventListener(EventStart, id))
	assert.Zero(t, r.c.AddEventListener(EventKind(42), func(Event) {}))

	r.wheel(400, 300, 100)
	assert.Zero(t, calls)
}

// stubCamera is neither perspective nor orthographic.
type stubCamera struct {
	position   mgl32.Vec3
	quaternion mgl32.Quat
}

func (s *stubCamera) Position() mgl32.Vec3 { return s.position }
func (s *stubCamera) SetPosition(p mgl32.Vec3) { s.position = p }
func (s *stubCamera) Quaternion() mgl32.Quat { return s.quaternion }
func (s *stubCamera) SetQuaternion(q mgl32.Quat) { s.quaternion = q }
func (s *stubCamera) Up() mgl32.Vec3 { return mgl32.Vec3{0, 1, 0} }
func (s *stubCamera) SetUp(mgl32.Vec3) {}
func (s *stubCamera) LookAt(t mgl32.Vec3) { s.quaternion = common.LookRotation(s.position, t, s.Up()) }
func (s *stubCamera) ViewMatrix() mgl32.Mat4 { return mgl32.Ident4() }
func (s *stubCamera) ProjectionMatrix() mgl32.Mat4 { return mgl32.Ident4() }

func TestUnsupportedCameraDisablesFeatures(t *testing.T) {
	cam := &stubCamera{position: mgl32.Vec3{0, 0, 5}, quaternion: mgl32.QuatIdent()}
	r := newRig(t, cam, WithZoomToCursor(true))

	r.c.Update(nil)
	assert.False(t, r.c.ZoomToCursor())

	r.wheel(400, 300, -100)
	assert.False(t, r.c.EnableZoom())

	r.drag(input.ButtonRight, 400, 300, 450, 300)
	assert.False(t, r.c.EnablePan())

	// rotation still works
	r.drag(input.ButtonLeft, 400, 300, 450, 300)
	assert.True(t, r.c.Update(nil))
	assert.InDelta(t, 5, r.c.Distance(), 1e-5)
}

func TestDisposeDetaches(t *testing.T) {
	r := newPerspectiveRig(t)
	r.c.ListenToKeyEvents(r.surface)
	require.Equal(t, 1, r.surface.InputListenerCount())
	require.Equal(t, 2, r.surface.KeyListenerCount())

	rec := record(r.c)
	r.mouseDown(input.ButtonLeft, 400, 300, 0)
	require.Equal(t, 1, r.surface.CaptureCount())

	r.c.Dispose()
	assert.Equal(t, 0, r.surface.InputListenerCount())
	assert.Equal(t, 0, r.surface.KeyListenerCount())
	assert.Equal(t, 0, r.surface.CaptureCount())
	assert.Equal(t, ModeNone, r.c.Mode())

	r.mouseMove(500, 300)
	assert.False(t, r.c.Update(nil))
	assert.Equal(t, []EventKind{EventStart}, rec.events())
}
