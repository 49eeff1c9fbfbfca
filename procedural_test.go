package garland

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testTreeParams(count int) TreeParams {
	return TreeParams{
		Count:       count,
		Tiers:       7,
		TopColor:    mgl32.Vec3{0.62, 0.91, 0.63},
		BottomColor: mgl32.Vec3{0.11, 0.37, 0.23},
	}
}

func TestGenerateTree_CountsAndBounds(t *testing.T) {
	const n = 5000
	pc := GenerateTree(testTreeParams(n), rand.New(rand.NewSource(42)))

	if pc.Len() != n {
		t.Fatalf("Expected %d particles, got %d", n, pc.Len())
	}
	for _, name := range []struct {
		label string
		size  int
	}{
		{"positions", len(pc.Positions)},
		{"colors", len(pc.Colors)},
		{"sizes", len(pc.Sizes)},
		{"speeds", len(pc.Speeds)},
		{"phases", len(pc.Phases)},
	} {
		if name.size != n {
			t.Errorf("Attribute array %s has %d entries, expected %d", name.label, name.size, n)
		}
	}

	maxRadial := float32(TreeMaxRadius) * (1 + TreeTierFlare)
	for i, p := range pc.Positions {
		if p.Y() < -TreeHeight/2 || p.Y() > TreeHeight/2 {
			t.Fatalf("Particle %d height %v outside [-6, 6]", i, p.Y())
		}
		radial := float32(math.Hypot(float64(p.X()), float64(p.Z())))
		if radial > maxRadial+1e-4 {
			t.Fatalf("Particle %d radial distance %v exceeds flared max %v", i, radial, maxRadial)
		}
	}

	for i := 0; i < n; i++ {
		if pc.Sizes[i] <= 0 {
			t.Fatalf("Particle %d has non-positive size", i)
		}
		if pc.Speeds[i] < 0.8 || pc.Speeds[i] > 2.4 {
			t.Fatalf("Particle %d speed %v outside range", i, pc.Speeds[i])
		}
		if pc.Phases[i] < 0 || pc.Phases[i] > 2*math.Pi {
			t.Fatalf("Particle %d phase %v outside [0, 2pi]", i, pc.Phases[i])
		}
	}
}

func TestGenerateTree_DeterministicGivenSeed(t *testing.T) {
	a := GenerateTree(testTreeParams(500), rand.New(rand.NewSource(7)))
	b := GenerateTree(testTreeParams(500), rand.New(rand.NewSource(7)))

	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] || a.Colors[i] != b.Colors[i] {
			t.Fatalf("Generation diverged at particle %d with identical seeds", i)
		}
	}
}

func TestGenerateTree_DegenerateCount(t *testing.T) {
	pc := GenerateTree(testTreeParams(0), rand.New(rand.NewSource(1)))
	if pc.Len() != 0 {
		t.Errorf("Expected empty cloud for zero count, got %d", pc.Len())
	}
}

// outlineRadiusBins samples the heart curve densely and records the max
// boundary radius per angle bin around the local origin.
func outlineRadiusBins(bins int) []float32 {
	out := make([]float32, bins)
	const samples = 16384
	for i := 0; i < samples; i++ {
		tt := float32(i) / samples * 2 * math.Pi
		hx, hy := heartCurve(tt)
		r := float32(math.Hypot(float64(hx), float64(hy)))
		angle := math.Atan2(float64(hy), float64(hx)) // [-pi, pi]
		bin := int((angle + math.Pi) / (2 * math.Pi) * float64(bins))
		if bin >= bins {
			bin = bins - 1
		}
		if r > out[bin] {
			out[bin] = r
		}
	}
	return out
}

func TestGenerateHeart_InteriorInvariant(t *testing.T) {
	const n = 4000
	pc := GenerateHeart(HeartParams{Count: n, Primary: mgl32.Vec3{1, 0.2, 0.3}}, rand.New(rand.NewSource(99)))

	if pc.Len() != n {
		t.Fatalf("Expected %d particles, got %d", n, pc.Len())
	}

	const bins = 128
	outline := outlineRadiusBins(bins)

	for i, p := range pc.Positions {
		// Undo the placement transform; jitter only affects z.
		qx := p.X() / HeartScale
		qy := (p.Y() - HeartOffsetY) / HeartScale
		qz := p.Z() / HeartScale

		if qz < -HeartDepthJitter-1e-3 || qz > HeartDepthJitter+1e-3 {
			t.Fatalf("Particle %d depth %v outside jitter bound", i, qz)
		}

		r := float32(math.Hypot(float64(qx), float64(qy)))
		if r < 1e-4 {
			continue
		}
		angle := math.Atan2(float64(qy), float64(qx))
		bin := int((angle + math.Pi) / (2 * math.Pi) * bins)
		if bin >= bins {
			bin = bins - 1
		}
		// Neighbor bins absorb angle quantization at bin edges.
		limit := outline[bin]
		if v := outline[(bin+1)%bins]; v > limit {
			limit = v
		}
		if v := outline[(bin+bins-1)%bins]; v > limit {
			limit = v
		}
		if r > limit+0.25 {
			t.Fatalf("Particle %d at radius %v escapes heart boundary %v (bin %d)", i, r, limit, bin)
		}
	}
}

func TestGenerateSwirl_BandAndRipple(t *testing.T) {
	const n = 2000
	pc := GenerateSwirl(SwirlParams{Count: n}, rand.New(rand.NewSource(5)))

	for i, p := range pc.Positions {
		radial := float32(math.Hypot(float64(p.X()), float64(p.Z())))
		if radial < SwirlInnerRadius-1e-3 || radial > SwirlOuterRadius+1e-3 {
			t.Fatalf("Particle %d radius %v outside band", i, radial)
		}
		if d := p.Y() - SwirlBaseY; d < -SwirlRippleAmp-1e-3 || d > SwirlRippleAmp+1e-3 {
			t.Fatalf("Particle %d ripple %v exceeds amplitude", i, d)
		}
	}
}

func TestGenerateSnow_InsideVolume(t *testing.T) {
	const n = 800
	snow := GenerateSnow(SnowParams{Count: n}, rand.New(rand.NewSource(3)))

	if len(snow) != n {
		t.Fatalf("Expected %d snow particles, got %d", n, len(snow))
	}
	for i, p := range snow {
		if p.X() < -SnowHalfExtent || p.X() > SnowHalfExtent ||
			p.Z() < -SnowHalfExtent || p.Z() > SnowHalfExtent {
			t.Fatalf("Snow particle %d outside horizontal extent: %v", i, p)
		}
		if p.Y() < SnowBottomY || p.Y() > SnowTopY {
			t.Fatalf("Snow particle %d outside vertical extent: %v", i, p)
		}
	}
}

func TestPointCloud_InstancePacking(t *testing.T) {
	pc := GenerateSwirl(SwirlParams{Count: 64}, rand.New(rand.NewSource(11)))
	instances := pc.Instances()

	if len(instances) != pc.Len() {
		t.Fatalf("Expected %d instances, got %d", pc.Len(), len(instances))
	}
	for i, inst := range instances {
		p := pc.Positions[i]
		if inst.Pos != [3]float32{p.X(), p.Y(), p.Z()} {
			t.Fatalf("Instance %d position mismatch", i)
		}
		if inst.Size != pc.Sizes[i] {
			t.Fatalf("Instance %d size mismatch", i)
		}
		if inst.Anim != [2]float32{pc.Speeds[i], pc.Phases[i]} {
			t.Fatalf("Instance %d animation attributes mismatch", i)
		}
	}
}
