package garland

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBreath_Periodic(t *testing.T) {
	speeds := []float32{0.8, 1.3, 2.4}
	for _, speed := range speeds {
		period := float32(2 * math.Pi / float64(speed))
		for _, tm := range []float32{0, 0.37, 2.2, 5.9} {
			a := Breath(tm, speed, 0.7)
			b := Breath(tm+period, speed, 0.7)
			if diff := a - b; diff < -1e-3 || diff > 1e-3 {
				t.Errorf("Breath not periodic at t=%v speed=%v: %v vs %v", tm, speed, a, b)
			}
		}
	}
}

func TestBreath_DerivedRanges(t *testing.T) {
	for i := 0; i < 1000; i++ {
		tm := float32(i) * 0.013
		b := Breath(tm, 1.7, 0.3)
		if b < 0 || b > 1 {
			t.Fatalf("Breath %v outside [0,1]", b)
		}
		if o := BreathOpacity(b); o < 0.5 || o > 1.0 {
			t.Fatalf("Opacity %v outside [0.5,1.0]", o)
		}
		if in := BreathIntensity(b); in < 0.8 || in > 3.0 {
			t.Fatalf("Intensity %v outside [0.8,3.0]", in)
		}
		if p := BreathSizePulse(b); p < 0.8 || p > 1.2 {
			t.Fatalf("Size pulse %v outside [0.8,1.2]", p)
		}
	}
}

func TestVortexRotate_PreservesHeightAndRadius(t *testing.T) {
	p := mgl32.Vec3{1.5, -2.0, 0.7}
	angle := VortexAngle(3.2, p.Y(), 0.25, 0.18)
	q := VortexRotate(p, angle)

	if q.Y() != p.Y() {
		t.Errorf("Rotation changed height: %v -> %v", p.Y(), q.Y())
	}
	before := math.Hypot(float64(p.X()), float64(p.Z()))
	after := math.Hypot(float64(q.X()), float64(q.Z()))
	if diff := before - after; diff < -1e-5 || diff > 1e-5 {
		t.Errorf("Rotation changed horizontal radius: %v -> %v", before, after)
	}
}

func TestVortexAngle_HeightDependent(t *testing.T) {
	low := VortexAngle(1.0, -6, 0.25, 0.18)
	high := VortexAngle(1.0, 6, 0.25, 0.18)
	if low == high {
		t.Error("Vortex angle must vary with height; rigid rotation is wrong")
	}
}

func TestTurbulence_Bounded(t *testing.T) {
	for i := 0; i < 500; i++ {
		tm := float32(i) * 0.021
		p := mgl32.Vec3{sin32(tm) * 3, cos32(tm) * 5, sin32(tm * 1.3)}
		d := Turbulence(tm, p)
		for axis := 0; axis < 3; axis++ {
			if v := d[axis]; v < -0.12 || v > 0.12 {
				t.Fatalf("Turbulence axis %d amplitude %v exceeds 0.08+0.04", axis, v)
			}
		}
	}
}

func TestHeartPulse_Range(t *testing.T) {
	for i := 0; i < 400; i++ {
		tm := float32(i) * 0.017
		s := HeartPulse(tm, HeartPulseAmp)
		if s < 1-HeartPulseAmp-1e-5 || s > 1+HeartPulseAmp+1e-5 {
			t.Fatalf("Heart pulse %v outside amplitude envelope", s)
		}
	}
}
