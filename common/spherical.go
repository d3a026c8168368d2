package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PolarEpsilon keeps the polar angle away from the poles so the look-at up vector never degenerates.
const PolarEpsilon = 1e-6

// Spherical is a point in spherical coordinates relative to a +Y up axis.
// Phi is the polar angle measured from +Y, Theta the azimuth around +Y measured from +Z.
type Spherical struct {
	Radius float32
	Theta  float32
	Phi    float32
}

// SphericalFromVec3 converts a Cartesian offset into spherical coordinates.
// A zero vector yields the zero Spherical.
//
// Parameters:
//   - v: offset in the +Y-up frame
//
// Returns:
//   - Spherical: the equivalent spherical coordinates
func SphericalFromVec3(v mgl32.Vec3) Spherical {
	s := Spherical{Radius: v.Len()}
	if s.Radius == 0 {
		return s
	}
	s.Theta = float32(math.Atan2(float64(v[0]), float64(v[2])))
	s.Phi = float32(math.Acos(float64(Clamp(v[1]/s.Radius, -1, 1))))
	return s
}

// Vec3 converts back to a Cartesian offset.
//
// Returns:
//   - mgl32.Vec3: x = r·sinφ·sinθ, y = r·cosφ, z = r·sinφ·cosθ
func (s Spherical) Vec3() mgl32.Vec3 {
	sinPhi, cosPhi := math.Sincos(float64(s.Phi))
	sinTheta, cosTheta := math.Sincos(float64(s.Theta))
	return mgl32.Vec3{
		s.Radius * float32(sinPhi*sinTheta),
		s.Radius * float32(cosPhi),
		s.Radius * float32(sinPhi*cosTheta),
	}
}

// MakeSafe restricts Phi to [PolarEpsilon, π-PolarEpsilon].
//
// Returns:
//   - Spherical: the restricted coordinates
func (s Spherical) MakeSafe() Spherical {
	s.Phi = Clamp(s.Phi, PolarEpsilon, Pi-PolarEpsilon)
	return s
}
