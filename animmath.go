package garland

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CPU mirrors of the animation terms in shaders/sparkle.wgsl. The shader
// text is the authoritative copy; these exist so the numeric contract is
// testable without a GPU. Keep both sides in sync when tuning.

// Breath maps sin(time*speed+phase) into [0,1].
func Breath(time, speed, phase float32) float32 {
	return 0.5 + 0.5*sin32(time*speed+phase)
}

// BreathOpacity maps a breath value into [0.5, 1.0].
func BreathOpacity(b float32) float32 {
	return 0.5 + 0.5*b
}

// BreathIntensity maps a breath value into the HDR multiplier [0.8, 3.0].
// Values above 1.0 are intentional; the bloom pass keys off them.
func BreathIntensity(b float32) float32 {
	return 0.8 + 2.2*b
}

// BreathSizePulse maps a breath value into the point size pulse [0.8, 1.2].
func BreathSizePulse(b float32) float32 {
	return 0.8 + 0.4*b
}

// VortexAngle is the per-particle rotation angle. Height-dependent twist
// makes higher particles spiral offset relative to lower ones; this is a
// position-dependent rotation, not a rigid transform of the whole cloud.
func VortexAngle(time, y, rotationSpeed, twist float32) float32 {
	return time*rotationSpeed + y*twist
}

// VortexRotate applies the vortex angle to the horizontal plane of p.
func VortexRotate(p mgl32.Vec3, angle float32) mgl32.Vec3 {
	ca := cos32(angle)
	sa := sin32(angle)
	return mgl32.Vec3{
		p.X()*ca - p.Z()*sa,
		p.Y(),
		p.X()*sa + p.Z()*ca,
	}
}

// Turbulence is the low-frequency floating jitter: per axis, two
// sine/cosine terms of the other two axes plus time, amplitudes 0.08
// and 0.04. Non-physical on purpose.
func Turbulence(time float32, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		sin32(time*1.5+p.Y()*2.0)*0.08 + cos32(time*2.3+p.Z()*3.0)*0.04,
		cos32(time*1.8+p.X()*2.0)*0.08 + sin32(time*2.6+p.Z()*2.0)*0.04,
		sin32(time*2.1+p.X()*3.0)*0.08 + cos32(time*1.7+p.Y()*2.0)*0.04,
	}
}

// HeartPulse is the per-frame uniform scale of the heart node, an
// independent heartbeat layered on top of the shader-level breathing.
func HeartPulse(time, amplitude float32) float32 {
	return 1.0 + amplitude*sin32(time*3.0)
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }
