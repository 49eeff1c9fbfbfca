package garland

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PointCloud is one particle system's attribute set, SoA with parallel
// slices indexed identically. Count is fixed at creation.
type PointCloud struct {
	Name      string
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec3 // linear RGB
	Sizes     []float32
	Speeds    []float32 // breathing speed, rad/s factor
	Phases    []float32 // breathing phase offset, radians
}

func makePointCloud(name string, count int) PointCloud {
	if count < 0 {
		count = 0
	}
	return PointCloud{
		Name:      name,
		Positions: make([]mgl32.Vec3, count),
		Colors:    make([]mgl32.Vec3, count),
		Sizes:     make([]float32, count),
		Speeds:    make([]float32, count),
		Phases:    make([]float32, count),
	}
}

func (pc *PointCloud) Len() int {
	return len(pc.Positions)
}

// SparkleInstance matches the instance layout in shaders/sparkle.wgsl.
type SparkleInstance struct {
	Pos   [3]float32 `garland:"layout" format:"float3" location:"0"`
	Size  float32    `garland:"layout" format:"float" location:"1"`
	Color [4]float32 `garland:"layout" format:"float4" location:"2"`
	Anim  [2]float32 `garland:"layout" format:"float2" location:"3"`
}

// SnowInstance matches the instance layout in shaders/snowflake.wgsl.
// Snow carries positions only; color and size are uniform.
type SnowInstance struct {
	Pos [3]float32 `garland:"layout" format:"float3" location:"0"`
}

// Instances packs the cloud into the GPU instance layout.
func (pc *PointCloud) Instances() []SparkleInstance {
	out := make([]SparkleInstance, pc.Len())
	for i := range out {
		p := pc.Positions[i]
		c := pc.Colors[i]
		out[i] = SparkleInstance{
			Pos:   [3]float32{p.X(), p.Y(), p.Z()},
			Size:  pc.Sizes[i],
			Color: [4]float32{c.X(), c.Y(), c.Z(), 1.0},
			Anim:  [2]float32{pc.Speeds[i], pc.Phases[i]},
		}
	}
	return out
}

func packSnowInstances(positions []mgl32.Vec3) []SnowInstance {
	out := make([]SnowInstance, len(positions))
	for i, p := range positions {
		out[i] = SnowInstance{Pos: [3]float32{p.X(), p.Y(), p.Z()}}
	}
	return out
}
