package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the squared-distance threshold used for change detection and degenerate-vector guards.
const Epsilon = 1e-6

// TwoPi is 2π as float32.
const TwoPi = float32(2 * math.Pi)

// Pi is π as float32.
const Pi = float32(math.Pi)

// IsFinite reports whether f is neither NaN nor ±Inf.
//
// Parameters:
//   - f: the value to test
//
// Returns:
//   - bool: true if f is a finite number
func IsFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// Inf returns positive infinity as float32 for sign >= 0 and negative infinity otherwise.
//
// Parameters:
//   - sign: the sign of the infinity
//
// Returns:
//   - float32: ±Inf
func Inf(sign int) float32 {
	return float32(math.Inf(sign))
}

// Clamp restricts v to [lo, hi]. Unlike mgl32.Clamp it is safe with infinite bounds.
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound (may be -Inf)
//   - hi: upper bound (may be +Inf)
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	return float32(math.Max(float64(lo), math.Min(float64(hi), float64(v))))
}

// NormalizeAngle wraps an angle into the half-open interval (-π, π].
//
// Parameters:
//   - a: angle in radians
//
// Returns:
//   - float32: the equivalent angle in (-π, π]
func NormalizeAngle(a float32) float32 {
	if !IsFinite(a) {
		return a
	}
	r := float32(math.Mod(float64(a), 2*math.Pi))
	if r <= -Pi {
		r += TwoPi
	} else if r > Pi {
		r -= TwoPi
	}
	return r
}

// ClampLength scales v so that its length lies within [minLen, maxLen].
// A zero-length vector is returned unchanged.
//
// Parameters:
//   - v: the vector to clamp
//   - minLen: minimum length
//   - maxLen: maximum length (may be +Inf)
//
// Returns:
//   - mgl32.Vec3: the clamped vector
func ClampLength(v mgl32.Vec3, minLen, maxLen float32) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(Clamp(l, minLen, maxLen) / l)
}

// LookRotation returns the orientation of an object at eye looking toward target, with its local
// -Z axis pointing at target and its local +Y as close to up as possible.
// Follows the same axis construction as a right-handed look-at view matrix.
//
// Parameters:
//   - eye: object position in world space
//   - target: point to look at
//   - up: world up vector
//
// Returns:
//   - mgl32.Quat: the world-space orientation
func LookRotation(eye, target, up mgl32.Vec3) mgl32.Quat {
	z := eye.Sub(target)
	if z.LenSqr() == 0 {
		z[2] = 1
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LenSqr() == 0 {
		// up and view direction are parallel, nudge z
		if mgl32.Abs(up[2]) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(x, y, z).Mat4()).Normalize()
}

// UpAlignment returns the rotation taking up onto +Y and its inverse.
// Orbit math is done in the +Y-up frame and rotated back afterwards.
//
// Parameters:
//   - up: the camera's up vector
//
// Returns:
//   - toYUp: rotation from world frame to the +Y-up frame
//   - fromYUp: inverse rotation
func UpAlignment(up mgl32.Vec3) (toYUp, fromYUp mgl32.Quat) {
	if up.LenSqr() == 0 {
		return mgl32.QuatIdent(), mgl32.QuatIdent()
	}
	toYUp = mgl32.QuatBetweenVectors(up, mgl32.Vec3{0, 1, 0}).Normalize()
	return toYUp, toYUp.Inverse()
}

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
