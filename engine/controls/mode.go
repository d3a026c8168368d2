package controls

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// InteractionMode is the gesture the controller is currently tracking. Exactly one is active at a time.
type InteractionMode int

const (
	ModeNone InteractionMode = iota
	ModeRotate
	ModePan
	ModeDolly
	ModeTouchRotate
	ModeTouchPan
	ModeTouchDollyPan
	ModeTouchDollyRotate
)

func (m InteractionMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeRotate:
		return "rotate"
	case ModePan:
		return "pan"
	case ModeDolly:
		return "dolly"
	case ModeTouchRotate:
		return "touch-rotate"
	case ModeTouchPan:
		return "touch-pan"
	case ModeTouchDollyPan:
		return "touch-dolly-pan"
	case ModeTouchDollyRotate:
		return "touch-dolly-rotate"
	}
	return fmt.Sprintf("InteractionMode(%d)", int(m))
}

// MouseAction is the gesture a mouse button starts.
type MouseAction int

const (
	MouseRotate MouseAction = iota
	MouseDolly
	MousePan
	MouseDisabled
)

var mouseActionNames = map[MouseAction]string{
	MouseRotate:   "rotate",
	MouseDolly:    "dolly",
	MousePan:      "pan",
	MouseDisabled: "none",
}

func (a MouseAction) String() string {
	if s, ok := mouseActionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("MouseAction(%d)", int(a))
}

// ParseMouseAction converts a name ("rotate", "dolly", "pan" or "none") to a MouseAction.
//
// Parameters:
//   - s: the action name, case-insensitive
//
// Returns:
//   - MouseAction: the parsed action
//   - error: error if the name is unknown
func ParseMouseAction(s string) (MouseAction, error) {
	for a, name := range mouseActionNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return MouseDisabled, errors.Errorf("unknown mouse action %q", s)
}

func (a MouseAction) MarshalYAML() (any, error) {
	return a.String(), nil
}

func (a *MouseAction) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseMouseAction(value.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*a = parsed
	return nil
}

// TouchAction is the gesture a one- or two-finger touch starts.
type TouchAction int

const (
	TouchRotate TouchAction = iota
	TouchPan
	TouchDollyPan
	TouchDollyRotate
	TouchDisabled
)

var touchActionNames = map[TouchAction]string{
	TouchRotate:      "rotate",
	TouchPan:         "pan",
	TouchDollyPan:    "dolly-pan",
	TouchDollyRotate: "dolly-rotate",
	TouchDisabled:    "none",
}

func (a TouchAction) String() string {
	if s, ok := touchActionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("TouchAction(%d)", int(a))
}

// ParseTouchAction converts a name ("rotate", "pan", "dolly-pan", "dolly-rotate" or "none") to a TouchAction.
//
// Parameters:
//   - s: the action name, case-insensitive
//
// Returns:
//   - TouchAction: the parsed action
//   - error: error if the name is unknown
func ParseTouchAction(s string) (TouchAction, error) {
	for a, name := range touchActionNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return TouchDisabled, errors.Errorf("unknown touch action %q", s)
}

func (a TouchAction) MarshalYAML() (any, error) {
	return a.String(), nil
}

func (a *TouchAction) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseTouchAction(value.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*a = parsed
	return nil
}

// MouseButtons maps each mouse button to the gesture it starts.
type MouseButtons struct {
	Left   MouseAction `yaml:"left"`
	Middle MouseAction `yaml:"middle"`
	Right  MouseAction `yaml:"right"`
}

// DefaultMouseButtons returns left = rotate, middle = dolly, right = pan.
func DefaultMouseButtons() MouseButtons {
	return MouseButtons{Left: MouseRotate, Middle: MouseDolly, Right: MousePan}
}

// Touches maps one- and two-finger touches to the gesture they start.
// One accepts TouchRotate or TouchPan; Two accepts TouchDollyPan or TouchDollyRotate.
type Touches struct {
	One TouchAction `yaml:"one"`
	Two TouchAction `yaml:"two"`
}

// DefaultTouches returns one finger = rotate, two fingers = dolly + pan.
func DefaultTouches() Touches {
	return Touches{One: TouchRotate, Two: TouchDollyPan}
}

// Keys holds the key codes that pan (or, with a modifier, rotate) the camera.
type Keys struct {
	Left   uint32 `yaml:"left"`
	Up     uint32 `yaml:"up"`
	Right  uint32 `yaml:"right"`
	Bottom uint32 `yaml:"bottom"`
}

// DefaultKeys returns the arrow keys.
func DefaultKeys() Keys {
	return Keys{Left: common.KeyLeft, Up: common.KeyUp, Right: common.KeyRight, Bottom: common.KeyDown}
}
