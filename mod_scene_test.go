package garland

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSnowStep_WrapInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	snow := GenerateSnow(SnowParams{Count: 300}, rng)

	const dt = 1.0 / 60.0
	tm := float32(0)
	for tick := 0; tick < 2500; tick++ {
		snowStep(snow, tm, dt)
		tm += dt
		for i, p := range snow {
			if p.Y() < SnowBottomY || p.Y() > SnowTopY {
				t.Fatalf("Tick %d: snow particle %d escaped vertical bounds: y=%v", tick, i, p.Y())
			}
			if p.X() < -SnowHalfExtent-1e-3 || p.X() > SnowHalfExtent+1e-3 {
				t.Fatalf("Tick %d: snow particle %d escaped horizontal bounds: x=%v", tick, i, p.X())
			}
		}
	}
}

func TestSnowStep_ResetsToTopExactly(t *testing.T) {
	// One step past the lower bound must land exactly on the upper bound.
	snow := []mgl32.Vec3{{0, SnowBottomY + 0.001, 0}}
	snowStep(snow, 0, 1.0/60.0)

	if snow[0].Y() != SnowTopY {
		t.Fatalf("Expected exact reset to %v, got %v", float32(SnowTopY), snow[0].Y())
	}
}

func TestSnowStep_FallsAtConstantRate(t *testing.T) {
	snow := []mgl32.Vec3{{0, 5, 0}}
	const dt = 0.02
	snowStep(snow, 1.0, dt)

	want := float32(5) - SnowFallRate*dt
	if got := snow[0].Y(); got != want {
		t.Fatalf("Expected y=%v after one step, got %v", want, got)
	}
}

func TestHeartPulseSystem(t *testing.T) {
	scene := &SceneState{HeartScale: 1}
	clock := &Time{Elapsed: 1.37}

	heartPulseSystem(scene, clock)

	if want := HeartPulse(1.37, HeartPulseAmp); scene.HeartScale != want {
		t.Fatalf("Expected heart scale %v, got %v", want, scene.HeartScale)
	}
}

func TestSnowFallSystem_MarksBufferDirty(t *testing.T) {
	scene := &SceneState{
		Snow: GenerateSnow(SnowParams{Count: 10}, rand.New(rand.NewSource(2))),
	}
	scene.takeSnowDirty() // clear the initial upload flag

	snowFallSystem(scene, &Time{Elapsed: 0.5, Dt: 0.016})

	if !scene.takeSnowDirty() {
		t.Error("Snow mutation must mark the buffer for re-upload")
	}
	if scene.takeSnowDirty() {
		t.Error("Dirty flag must clear after being drained")
	}
}

func TestSnowFallSystem_ZeroDtIsNoOp(t *testing.T) {
	scene := &SceneState{
		Snow: []mgl32.Vec3{{1, 2, 3}},
	}
	scene.takeSnowDirty()

	snowFallSystem(scene, &Time{Elapsed: 0.5, Dt: 0})

	if scene.Snow[0] != (mgl32.Vec3{1, 2, 3}) {
		t.Error("Zero dt must not move snow")
	}
	if scene.takeSnowDirty() {
		t.Error("Zero dt must not mark the buffer dirty")
	}
}
