package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

func (c *orbitController) clampDistance(d float32) float32 {
	return common.Clamp(d, c.cfg.MinDistance, c.cfg.MaxDistance)
}

func (c *orbitController) clampZoom(z float32) float32 {
	return common.Clamp(z, c.cfg.MinZoom, c.cfg.MaxZoom)
}

// clampTarget keeps target within [MinTargetRadius, MaxTargetRadius] of the cursor.
func (c *orbitController) clampTarget(target mgl32.Vec3) mgl32.Vec3 {
	rel := common.ClampLength(target.Sub(c.cfg.Cursor), c.cfg.MinTargetRadius, c.cfg.MaxTargetRadius)
	return c.cfg.Cursor.Add(rel)
}

// clampPolar restricts phi to [lo, hi] and then away from the poles.
func clampPolar(phi, lo, hi float32) float32 {
	return common.Spherical{Phi: common.Clamp(phi, lo, hi)}.MakeSafe().Phi
}

// clampAzimuth normalizes theta into (-π, π] and restricts it to the window [lo, hi].
// Finite bounds are shifted by one turn into [-π, π]. When lo > hi the window wraps
// through ±π and theta snaps to the bound on its side of the window's midpoint.
func clampAzimuth(theta, lo, hi float32) float32 {
	theta = common.NormalizeAngle(theta)
	lo, hi = wrapBound(lo), wrapBound(hi)
	if lo <= hi || !common.IsFinite(lo) || !common.IsFinite(hi) {
		return common.Clamp(theta, lo, hi)
	}
	if theta > (lo+hi)/2 {
		return float32(math.Max(float64(lo), float64(theta)))
	}
	return float32(math.Min(float64(hi), float64(theta)))
}

func wrapBound(b float32) float32 {
	switch {
	case !common.IsFinite(b):
		return b
	case b < -common.Pi:
		return b + common.TwoPi
	case b > common.Pi:
		return b - common.TwoPi
	}
	return b
}
