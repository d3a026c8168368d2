package controls

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
)

// deltaAccumulator buffers motion requested by input handlers between two updates.
type deltaAccumulator struct {
	theta float32
	phi   float32
	pan   mgl32.Vec3
	scale float32
}

func newDeltaAccumulator() deltaAccumulator {
	return deltaAccumulator{scale: 1}
}

// applied returns the share of pending rotation and pan that this frame consumes:
// everything without damping, factor of it with damping.
func (d *deltaAccumulator) applied(damping bool, factor float32) (theta, phi float32, pan mgl32.Vec3) {
	if !damping {
		return d.theta, d.phi, d.pan
	}
	return d.theta * factor, d.phi * factor, d.pan.Mul(factor)
}

// decay drops the consumed share: pending values are zeroed without damping and
// multiplied by (1 - factor) with it.
func (d *deltaAccumulator) decay(damping bool, factor float32) {
	if !damping {
		d.theta, d.phi, d.pan = 0, 0, mgl32.Vec3{}
		return
	}
	k := 1 - factor
	d.theta *= k
	d.phi *= k
	d.pan = d.pan.Mul(k)
}

func (d *deltaAccumulator) clear() {
	*d = newDeltaAccumulator()
}

// autoRotationAngle is the azimuth step auto-rotation injects this frame. At speed 1 the camera
// completes an orbit in 60 seconds.
func (c *orbitController) autoRotationAngle(deltaTime *float32) float32 {
	if deltaTime != nil {
		return common.TwoPi / 60 * c.cfg.AutoRotateSpeed * *deltaTime
	}
	return common.TwoPi / 60 / 60 * c.cfg.AutoRotateSpeed
}
