package controls

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable setting of an OrbitController. Angles are in radians; unbounded
// limits are written as .inf / -.inf in YAML.
type Config struct {
	Enabled bool `yaml:"enabled"`

	// Cursor is the center of the sphere the target is confined to.
	Cursor mgl32.Vec3 `yaml:"cursor,flow"`

	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	MinZoom         float32 `yaml:"min_zoom"`
	MaxZoom         float32 `yaml:"max_zoom"`
	MinTargetRadius float32 `yaml:"min_target_radius"`
	MaxTargetRadius float32 `yaml:"max_target_radius"`
	MinPolarAngle   float32 `yaml:"min_polar_angle"`
	MaxPolarAngle   float32 `yaml:"max_polar_angle"`
	MinAzimuthAngle float32 `yaml:"min_azimuth_angle"`
	MaxAzimuthAngle float32 `yaml:"max_azimuth_angle"`

	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float32 `yaml:"damping_factor"`

	EnableZoom   bool    `yaml:"enable_zoom"`
	ZoomSpeed    float32 `yaml:"zoom_speed"`
	ZoomToCursor bool    `yaml:"zoom_to_cursor"`

	EnableRotate bool    `yaml:"enable_rotate"`
	RotateSpeed  float32 `yaml:"rotate_speed"`

	EnablePan          bool    `yaml:"enable_pan"`
	PanSpeed           float32 `yaml:"pan_speed"`
	ScreenSpacePanning bool    `yaml:"screen_space_panning"`

	KeyPanSpeed    float32 `yaml:"key_pan_speed"`
	KeyRotateSpeed float32 `yaml:"key_rotate_speed"`

	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`

	MouseButtons MouseButtons `yaml:"mouse_buttons"`
	Touches      Touches      `yaml:"touches"`
	Keys         Keys         `yaml:"keys"`
}

// DefaultConfig returns the settings a new controller starts with.
func DefaultConfig() Config {
	return Config{
		Enabled:            true,
		MinDistance:        0,
		MaxDistance:        common.Inf(1),
		MinZoom:            0,
		MaxZoom:            common.Inf(1),
		MinTargetRadius:    0,
		MaxTargetRadius:    common.Inf(1),
		MinPolarAngle:      0,
		MaxPolarAngle:      math.Pi,
		MinAzimuthAngle:    common.Inf(-1),
		MaxAzimuthAngle:    common.Inf(1),
		DampingFactor:      0.05,
		EnableZoom:         true,
		ZoomSpeed:          1,
		EnableRotate:       true,
		RotateSpeed:        1,
		EnablePan:          true,
		PanSpeed:           1,
		ScreenSpacePanning: true,
		KeyPanSpeed:        7,
		KeyRotateSpeed:     1,
		AutoRotateSpeed:    2,
		MouseButtons:       DefaultMouseButtons(),
		Touches:            DefaultTouches(),
		Keys:               DefaultKeys(),
	}
}

// ParseConfig decodes a YAML document on top of DefaultConfig, so omitted keys keep their defaults.
// Unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the decoded settings
//   - error: error if the document is not valid YAML or names an unknown key or action
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, errors.Wrap(err, "failed to decode controls config")
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML config file.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the decoded settings
//   - error: error if the file cannot be read or decoded
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read controls config %q", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "controls config %q", path)
	}
	return cfg, nil
}

// Encode renders the config as a YAML document.
//
// Returns:
//   - []byte: the YAML document
//   - error: error if encoding fails
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, "failed to encode controls config")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode controls config")
	}
	return buf.Bytes(), nil
}
