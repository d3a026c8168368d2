package controls

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseButtonClassification(t *testing.T) {
	tests := []struct {
		name   string
		opts   []ControllerOption
		button input.MouseButton
		mods   input.Modifiers
		want   InteractionMode
	}{
		{name: "left rotates", button: input.ButtonLeft, want: ModeRotate},
		{name: "middle dollies", button: input.ButtonMiddle, want: ModeDolly},
		{name: "right pans", button: input.ButtonRight, want: ModePan},
		{name: "ctrl left pans", button: input.ButtonLeft, mods: input.ModCtrl, want: ModePan},
		{name: "meta left pans", button: input.ButtonLeft, mods: input.ModMeta, want: ModePan},
		{name: "shift right rotates", button: input.ButtonRight, mods: input.ModShift, want: ModeRotate},
		{name: "alt does not swap", button: input.ButtonLeft, mods: input.ModAlt, want: ModeRotate},
		{name: "ctrl middle still dollies", button: input.ButtonMiddle, mods: input.ModCtrl, want: ModeDolly},
		{name: "rotate disabled", opts: []ControllerOption{WithRotate(false, 1)}, button: input.ButtonLeft, want: ModeNone},
		{name: "pan disabled", opts: []ControllerOption{WithPan(false, 1)}, button: input.ButtonRight, want: ModeNone},
		{name: "zoom disabled", opts: []ControllerOption{WithZoom(false, 1)}, button: input.ButtonMiddle, want: ModeNone},
		{name: "swap onto disabled pan", opts: []ControllerOption{WithPan(false, 1)}, button: input.ButtonLeft, mods: input.ModShift, want: ModeNone},
		{
			name:   "remapped left pans",
			opts:   []ControllerOption{WithMouseButtons(MouseButtons{Left: MousePan, Middle: MouseDolly, Right: MouseRotate})},
			button: input.ButtonLeft,
			want:   ModePan,
		},
		{
			name:   "disabled button",
			opts:   []ControllerOption{WithMouseButtons(MouseButtons{Left: MouseDisabled, Middle: MouseDolly, Right: MousePan})},
			button: input.ButtonLeft,
			want:   ModeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPerspectiveRig(t, tt.opts...)
			rec := record(r.c)
			r.mouseDown(tt.button, 400, 300, tt.mods)
			assert.Equal(t, tt.want, r.c.Mode())
			if tt.want == ModeNone {
				assert.Empty(t, rec.events())
			} else {
				assert.Equal(t, []EventKind{EventStart}, rec.events())
			}
		})
	}
}

func TestTouchClassification(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ControllerOption
		touches int
		want    InteractionMode
	}{
		{name: "one finger rotates", touches: 1, want: ModeTouchRotate},
		{name: "two fingers dolly and pan", touches: 2, want: ModeTouchDollyPan},
		{name: "one finger pans", opts: []ControllerOption{WithTouches(Touches{One: TouchPan, Two: TouchDollyRotate})}, touches: 1, want: ModeTouchPan},
		{name: "two fingers dolly and rotate", opts: []ControllerOption{WithTouches(Touches{One: TouchPan, Two: TouchDollyRotate})}, touches: 2, want: ModeTouchDollyRotate},
		{name: "one finger rotate disabled", opts: []ControllerOption{WithRotate(false, 1)}, touches: 1, want: ModeNone},
		{name: "two fingers with only pan", opts: []ControllerOption{WithZoom(false, 1)}, touches: 2, want: ModeTouchDollyPan},
		{name: "two fingers without zoom and pan", opts: []ControllerOption{WithZoom(false, 1), WithPan(false, 1)}, touches: 2, want: ModeNone},
		{name: "two fingers disabled", opts: []ControllerOption{WithTouches(Touches{One: TouchRotate, Two: TouchDisabled})}, touches: 2, want: ModeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPerspectiveRig(t, tt.opts...)
			for i := range tt.touches {
				r.touch(input.PointerDown, 20+i, 300+float32(i)*100, 300)
			}
			assert.Equal(t, tt.want, r.c.Mode())
		})
	}
}

func TestPointerCaptureFollowsFirstPointer(t *testing.T) {
	r := newPerspectiveRig(t)
	r.touch(input.PointerDown, 7, 300, 300)
	assert.True(t, r.surface.Captured(7))
	r.touch(input.PointerDown, 8, 400, 300)
	assert.False(t, r.surface.Captured(8))
	assert.Equal(t, 1, r.surface.CaptureCount())

	r.touch(input.PointerUp, 7, 300, 300)
	assert.Equal(t, 1, r.surface.CaptureCount())
	r.touch(input.PointerUp, 8, 400, 300)
	assert.Equal(t, 0, r.surface.CaptureCount())
}

func TestPointerCancelEndsGesture(t *testing.T) {
	r := newPerspectiveRig(t)
	rec := record(r.c)
	r.mouseDown(input.ButtonLeft, 400, 300, 0)
	r.surface.Dispatch(input.PointerEvent{Phase: input.PointerCancel, ID: 1, Type: input.PointerMouse})
	assert.Equal(t, ModeNone, r.c.Mode())
	assert.Equal(t, 0, r.surface.CaptureCount())
	assert.Equal(t, []EventKind{EventStart, EventEnd}, rec.events())
}

func TestDuplicatePointerDownIgnored(t *testing.T) {
	r := newPerspectiveRig(t)
	rec := record(r.c)
	r.touch(input.PointerDown, 3, 300, 300)
	r.touch(input.PointerDown, 3, 310, 300)

	r.c.mu.Lock()
	pointers := append([]int(nil), r.c.pointers...)
	r.c.mu.Unlock()
	assert.Equal(t, []int{3}, pointers)
	assert.Equal(t, ModeTouchRotate, r.c.Mode())
	assert.Equal(t, []EventKind{EventStart}, rec.events())
}

func TestUntrackedPointerIgnored(t *testing.T) {
	r := newPerspectiveRig(t)
	r.mouseDown(input.ButtonLeft, 400, 300, 0)
	r.surface.Dispatch(input.PointerEvent{Phase: input.PointerMove, ID: 9, Type: input.PointerMouse, X: 600, Y: 300})
	r.surface.Dispatch(input.PointerEvent{Phase: input.PointerUp, ID: 9, Type: input.PointerMouse, X: 600, Y: 300})
	assert.Equal(t, ModeRotate, r.c.Mode())
	assert.False(t, r.c.Update(nil))
}

func TestNonFiniteCoordinatesIgnored(t *testing.T) {
	r := newPerspectiveRig(t)
	nan := float32(math.NaN())
	r.mouseDown(input.ButtonLeft, nan, 300, 0)
	assert.Equal(t, ModeNone, r.c.Mode())

	r.mouseDown(input.ButtonLeft, 400, 300, 0)
	r.mouseMove(nan, 300)
	r.mouseMove(400, common.Inf(1))
	assert.False(t, r.c.Update(nil))

	r.wheel(400, 300, nan)
	r.mouseUp(400, 300)
	r.wheel(nan, 300, 100)
	assert.False(t, r.c.Update(nil))
}

func TestDisabledControllerIgnoresInput(t *testing.T) {
	r := newPerspectiveRig(t)
	r.c.ListenToKeyEvents(r.surface)
	r.c.SetEnabled(false)
	rec := record(r.c)

	r.drag(input.ButtonLeft, 400, 300, 500, 300)
	r.wheel(400, 300, -100)
	r.surface.Dispatch(input.KeyEvent{Code: common.KeyUp})
	assert.False(t, r.c.Update(nil))
	assert.Empty(t, rec.events())
	assert.Equal(t, 0, r.surface.CaptureCount())
}

func TestWheelIgnoredDuringGesture(t *testing.T) {
	r := newPerspectiveRig(t)
	r.mouseDown(input.ButtonLeft, 400, 300, 0)
	r.wheel(400, 300, -500)
	r.mouseUp(400, 300)
	assert.False(t, r.c.Update(nil))
}

func TestWheelEmitsStartAndEnd(t *testing.T) {
	r := newPerspectiveRig(t)
	rec := record(r.c)
	r.wheel(400, 300, 100)
	assert.Equal(t, []EventKind{EventStart, EventEnd}, rec.events())
	assert.Equal(t, ModeNone, r.c.Mode())
}

func TestGestureEventsBalanced(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ControllerOption
		gesture func(r *rig)
		want    []EventKind
	}{
		{
			name: "disabled button",
			opts: []ControllerOption{WithMouseButtons(MouseButtons{Left: MouseDisabled, Middle: MouseDolly, Right: MousePan})},
			gesture: func(r *rig) {
				r.drag(input.ButtonLeft, 400, 300, 450, 300)
			},
		},
		{
			name: "rotate disabled touch",
			opts: []ControllerOption{WithRotate(false, 1)},
			gesture: func(r *rig) {
				r.touch(input.PointerDown, 4, 300, 300)
				r.touch(input.PointerMove, 4, 340, 300)
				r.touch(input.PointerUp, 4, 340, 300)
			},
		},
		{
			name: "second finger onto disabled action",
			opts: []ControllerOption{WithTouches(Touches{One: TouchRotate, Two: TouchDisabled})},
			gesture: func(r *rig) {
				r.touch(input.PointerDown, 4, 300, 300)
				r.touch(input.PointerDown, 5, 400, 300)
				r.touch(input.PointerUp, 5, 400, 300)
				r.touch(input.PointerUp, 4, 300, 300)
			},
			want: []EventKind{EventStart, EventEnd},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newPerspectiveRig(t, tt.opts...)
			rec := record(r.c)
			tt.gesture(r)
			if tt.want == nil {
				assert.Empty(t, rec.events())
			} else {
				assert.Equal(t, tt.want, rec.events())
			}
			assert.Equal(t, ModeNone, r.c.Mode())
			assert.Equal(t, 0, r.surface.CaptureCount())
		})
	}
}

func TestNormalizeWheelDelta(t *testing.T) {
	r := newPerspectiveRig(t)
	tests := []struct {
		name string
		ev   input.WheelEvent
		want float32
	}{
		{name: "pixels", ev: input.WheelEvent{DeltaY: 3}, want: 3},
		{name: "lines", ev: input.WheelEvent{DeltaY: 3, DeltaMode: input.DeltaLine}, want: 48},
		{name: "pages", ev: input.WheelEvent{DeltaY: -1, DeltaMode: input.DeltaPage}, want: -100},
		{name: "pinch", ev: input.WheelEvent{DeltaY: 2, Mods: input.ModCtrl}, want: 20},
		{name: "pinch in lines", ev: input.WheelEvent{DeltaY: 1, DeltaMode: input.DeltaLine, Mods: input.ModCtrl}, want: 160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.c.mu.Lock()
			defer r.c.mu.Unlock()
			assert.Equal(t, tt.want, r.c.normalizeWheelDelta(tt.ev))
		})
	}
}

func TestHeldControlKeyIsNotAPinch(t *testing.T) {
	r := newPerspectiveRig(t)
	ev := input.WheelEvent{DeltaY: 2, Mods: input.ModCtrl}
	normalize := func() float32 {
		r.c.mu.Lock()
		defer r.c.mu.Unlock()
		return r.c.normalizeWheelDelta(ev)
	}

	r.surface.Dispatch(input.KeyEvent{Code: common.KeyLeftControl, Mods: input.ModCtrl})
	assert.Equal(t, float32(2), normalize())
	r.surface.Dispatch(input.KeyReleaseEvent{Code: common.KeyLeftControl})
	assert.Equal(t, float32(20), normalize())

	r.surface.Dispatch(input.KeyEvent{Code: common.KeyRightControl, Mods: input.ModCtrl})
	assert.Equal(t, float32(2), normalize())
}

func TestWheelLineModeZoomsFurther(t *testing.T) {
	r := newPerspectiveRig(t)
	r.surface.Dispatch(input.WheelEvent{X: 400, Y: 300, DeltaY: -3, DeltaMode: input.DeltaLine})
	require.True(t, r.c.Update(nil))
	assert.InDelta(t, 5*math.Pow(0.95, 0.48), r.c.Distance(), 1e-4)
}

func TestMouseDollyDrag(t *testing.T) {
	r := newPerspectiveRig(t)
	// dragging down dollies out
	r.drag(input.ButtonMiddle, 400, 300, 400, 400)
	require.True(t, r.c.Update(nil))
	assert.InDelta(t, 5/0.95, r.c.Distance(), 1e-4)

	r.drag(input.ButtonMiddle, 400, 300, 400, 200)
	require.True(t, r.c.Update(nil))
	assert.InDelta(t, 5, r.c.Distance(), 1e-4)
}

func TestKeyboardNavigation(t *testing.T) {
	r := newPerspectiveRig(t)

	// no key source yet
	r.surface.Dispatch(input.KeyEvent{Code: common.KeyUp})
	assert.False(t, r.c.Update(nil))

	r.c.ListenToKeyEvents(r.surface)
	r.surface.Dispatch(input.KeyEvent{Code: common.KeyUp})
	require.True(t, r.c.Update(nil))
	targetDistance := 5 * math.Tan(math.Pi/8)
	assert.InDelta(t, 2*7*targetDistance/surfaceHeight, r.c.Target().Y(), 1e-5)

	r.surface.Dispatch(input.KeyEvent{Code: common.KeyLeft, Mods: input.ModCtrl})
	require.True(t, r.c.Update(nil))
	assert.InDelta(t, -2*math.Pi/surfaceHeight, r.c.AzimuthalAngle(), 1e-5)

	r.surface.Dispatch(input.KeyEvent{Code: common.KeyDown, Mods: input.ModShift})
	require.True(t, r.c.Update(nil))
	assert.InDelta(t, math.Pi/2+2*math.Pi/surfaceHeight, r.c.PolarAngle(), 1e-5)

	r.c.StopListenToKeyEvents()
	assert.Equal(t, 1, r.surface.KeyListenerCount())
	r.surface.Dispatch(input.KeyEvent{Code: common.KeyRight})
	assert.False(t, r.c.Update(nil))
}

func TestKeyboardNavigationRespectsFlags(t *testing.T) {
	r := newPerspectiveRig(t, WithKeyEvents(newSurface()), WithPan(false, 1), WithRotate(false, 1))
	source := newSurface()
	r.c.ListenToKeyEvents(source)

	source.Dispatch(input.KeyEvent{Code: common.KeyUp})
	source.Dispatch(input.KeyEvent{Code: common.KeyUp, Mods: input.ModCtrl})
	assert.False(t, r.c.Update(nil))
}

func TestListenToKeyEventsReplacesSource(t *testing.T) {
	first := newSurface()
	r := newPerspectiveRig(t, WithKeyEvents(first))
	assert.Equal(t, 1, first.KeyListenerCount())

	second := newSurface()
	r.c.ListenToKeyEvents(second)
	assert.Equal(t, 0, first.KeyListenerCount())
	assert.Equal(t, 1, second.KeyListenerCount())

	r.c.Dispose()
	assert.Equal(t, 0, second.KeyListenerCount())
}
