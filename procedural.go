package garland

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometric envelope of the generated systems. Tests rely on these, the
// shaders do not.
const (
	TreeHeight    = 12.0 // vertical extent [-6, 6]
	TreeMaxRadius = 2.6
	TreeTierGap   = 0.9  // tier occupies the lower 90% of its slot
	TreeTierFlare = 0.25 // extra radius at a tier's base
	TreeRadialPow = 0.7  // <1 biases samples outward

	HeartScale       = 0.12
	HeartOffsetY     = 8.2 // places the heart above the tree apex
	HeartDepthJitter = 1.2 // pre-scale z jitter bound

	SwirlInnerRadius = 2.8
	SwirlOuterRadius = 5.2
	SwirlSpiral      = 0.85 // angle offset per unit radius
	SwirlBaseY       = -6.2
	SwirlRippleAmp   = 0.18

	SnowHalfExtent = 9.0
	SnowBottomY    = -7.0
	SnowTopY       = 11.0
)

var (
	colorGold    = mgl32.Vec3{1.0, 0.84, 0.35}
	colorDeepRed = mgl32.Vec3{0.55, 0.05, 0.08}
	colorPink    = mgl32.Vec3{1.0, 0.62, 0.84}
	colorMagenta = mgl32.Vec3{1.0, 0.18, 0.78}
)

type TreeParams struct {
	Count       int
	Tiers       int
	TopColor    mgl32.Vec3
	BottomColor mgl32.Vec3
}

type HeartParams struct {
	Count   int
	Primary mgl32.Vec3
}

type SwirlParams struct {
	Count int
}

type SnowParams struct {
	Count int
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func mix3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{lerp(a.X(), b.X(), t), lerp(a.Y(), b.Y(), t), lerp(a.Z(), b.Z(), t)}
}

// buildTreePalette interpolates five stops between the bottom and top
// color of the tree.
func buildTreePalette(top, bottom mgl32.Vec3) [5]mgl32.Vec3 {
	var pal [5]mgl32.Vec3
	for i := range pal {
		pal[i] = mix3(bottom, top, float32(i)/4.0)
	}
	return pal
}

// GenerateTree builds the tiered fir silhouette. The vertical extent is
// split into Tiers slots; a particle lands uniformly in the lower 90% of
// its slot, leaving a gap that reads as stacked branches. Radius falls
// off linearly toward the apex and flares near each tier's base; the
// radial distance is power-law biased outward so the outer foliage is
// denser than the core.
func GenerateTree(p TreeParams, rng *rand.Rand) PointCloud {
	pc := makePointCloud("tree", p.Count)
	if p.Count <= 0 {
		return pc
	}
	tiers := p.Tiers
	if tiers <= 0 {
		tiers = 1
	}
	palette := buildTreePalette(p.TopColor, p.BottomColor)
	slotH := float32(TreeHeight) / float32(tiers)

	for i := 0; i < p.Count; i++ {
		tier := rng.Intn(tiers)
		y0 := float32(-TreeHeight/2) + float32(tier)*slotH
		tierFrac := rng.Float32() * TreeTierGap
		y := y0 + tierFrac*slotH

		hNorm := (y + TreeHeight/2) / TreeHeight // 0 bottom .. 1 apex
		baseR := float32(TreeMaxRadius) * (1.0 - hNorm)
		flare := 1.0 + TreeTierFlare*(1.0-tierFrac/TreeTierGap)
		rMax := baseR * flare

		r := rMax * pow32(rng.Float32(), TreeRadialPow)
		theta := rng.Float32() * 2 * math.Pi

		pc.Positions[i] = mgl32.Vec3{r * cos32(theta), y, r * sin32(theta)}

		// Recolor, not resample: palette pick, then pushed toward gold at
		// the outer radial extreme and deep red at the core.
		c := palette[rng.Intn(len(palette))]
		if rMax > 0 {
			rf := r / rMax
			if rf > 0.8 {
				c = mix3(c, colorGold, (rf-0.8)/0.2*0.7)
			} else if rf < 0.25 {
				c = mix3(c, colorDeepRed, (1.0-rf/0.25)*0.6)
			}
		}
		pc.Colors[i] = c

		pc.Sizes[i] = 0.09 * (0.6 + 0.8*rng.Float32())
		pc.Speeds[i] = lerp(0.8, 2.4, rng.Float32())
		pc.Phases[i] = rng.Float32() * 2 * math.Pi
	}
	return pc
}

// heartCurve is the closed parametric heart outline.
func heartCurve(t float32) (x, y float32) {
	s := sin32(t)
	x = 16 * s * s * s
	y = 13*cos32(t) - 5*cos32(2*t) - 2*cos32(3*t) - cos32(4*t)
	return
}

// GenerateHeart fills the heart interior, not just the outline: scaling
// every axis by sqrt(u) keeps the areal point density even. Depth jitter
// is applied before the fill scale so the slab thins toward the center.
func GenerateHeart(p HeartParams, rng *rand.Rand) PointCloud {
	pc := makePointCloud("heart", p.Count)
	for i := 0; i < p.Count; i++ {
		t := rng.Float32() * 2 * math.Pi
		hx, hy := heartCurve(t)
		hz := (rng.Float32()*2 - 1) * HeartDepthJitter

		k := sqrt32(rng.Float32())
		pc.Positions[i] = mgl32.Vec3{
			hx * k * HeartScale,
			hy*k*HeartScale + HeartOffsetY,
			hz * k * HeartScale,
		}

		// Biased two-way pick: mostly the primary hue, some gold.
		if rng.Float32() < 0.75 {
			pc.Colors[i] = p.Primary
		} else {
			pc.Colors[i] = colorGold
		}

		pc.Sizes[i] = 0.11 * (0.6 + 0.8*rng.Float32())
		pc.Speeds[i] = lerp(1.4, 3.0, rng.Float32())
		pc.Phases[i] = rng.Float32() * 2 * math.Pi
	}
	return pc
}

// GenerateSwirl lays a spiral ground base: radius uniform in a band, the
// angle offset grows with radius so the arm winds outward, and a small
// sinusoidal ripple keyed to radius and angle breaks the flatness.
func GenerateSwirl(p SwirlParams, rng *rand.Rand) PointCloud {
	pc := makePointCloud("swirl", p.Count)
	for i := 0; i < p.Count; i++ {
		r := lerp(SwirlInnerRadius, SwirlOuterRadius, rng.Float32())
		theta := rng.Float32()*2*math.Pi + r*SwirlSpiral
		y := float32(SwirlBaseY) + sin32(r*1.7+theta*2.0)*SwirlRippleAmp

		pc.Positions[i] = mgl32.Vec3{r * cos32(theta), y, r * sin32(theta)}
		pc.Colors[i] = mix3(colorPink, colorMagenta, rng.Float32())

		pc.Sizes[i] = 0.08 * (0.6 + 0.8*rng.Float32())
		pc.Speeds[i] = lerp(0.8, 2.0, rng.Float32())
		pc.Phases[i] = rng.Float32() * 2 * math.Pi
	}
	return pc
}

// GenerateSnow scatters positions uniformly inside the snow volume. Snow
// carries no per-particle color/size/speed/phase; it renders with the
// uniform snowflake material and is simulated on the CPU.
func GenerateSnow(p SnowParams, rng *rand.Rand) []mgl32.Vec3 {
	if p.Count <= 0 {
		return nil
	}
	out := make([]mgl32.Vec3, p.Count)
	for i := range out {
		out[i] = mgl32.Vec3{
			(rng.Float32()*2 - 1) * SnowHalfExtent,
			lerp(SnowBottomY, SnowTopY, rng.Float32()),
			(rng.Float32()*2 - 1) * SnowHalfExtent,
		}
	}
	return out
}

func pow32(x, e float32) float32 { return float32(math.Pow(float64(x), float64(e))) }
func sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }
