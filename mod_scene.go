package garland

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	SnowFallRate  = 1.6  // units/s straight down
	SnowDriftAmp  = 0.45 // horizontal sinusoidal drift amplitude, units/s
	HeartPulseAmp = 0.08 // heartbeat scale amplitude around 1.0
)

// SceneState holds the four particle systems and the per-frame scalars
// the render system consumes. The clouds are immutable after mount; the
// only recurring mutations are the heart scale and the snow buffer.
type SceneState struct {
	Tree  PointCloud
	Heart PointCloud
	Swirl PointCloud
	Snow  []mgl32.Vec3

	HeartScale float32

	MaskTexture AssetId

	snowDirty bool
}

type SceneModule struct {
	Config SceneConfig
}

func (m SceneModule) Install(app *App) {
	if ResourceOf[WindowState](app) == nil {
		// No mount point; the scene is a no-op rather than an error.
		app.Logger().Warnf("No window mounted, scene construction skipped")
		return
	}

	cfg := m.Config.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))

	topColor := mustHexColor(cfg.TreeTopColor, mgl32.Vec3{0.62, 0.91, 0.63})
	bottomColor := mustHexColor(cfg.TreeBottomColor, mgl32.Vec3{0.11, 0.37, 0.23})
	heartColor := mustHexColor(cfg.HeartColor, mgl32.Vec3{1.0, 0.18, 0.33})

	scene := &SceneState{
		Tree: GenerateTree(TreeParams{
			Count:       cfg.TreeCount,
			Tiers:       cfg.TreeTiers,
			TopColor:    topColor,
			BottomColor: bottomColor,
		}, rng),
		Heart: GenerateHeart(HeartParams{
			Count:   cfg.HeartCount,
			Primary: heartColor,
		}, rng),
		Swirl:      GenerateSwirl(SwirlParams{Count: cfg.SwirlCount}, rng),
		Snow:       GenerateSnow(SnowParams{Count: cfg.SnowCount}, rng),
		HeartScale: 1.0,
		snowDirty:  true,
	}

	if assets := ResourceOf[AssetServer](app); assets != nil {
		scene.MaskTexture = assets.CreateSoftCircleTexture(64)
	}

	app.AddResources(scene)
	app.UseSystem(heartPulseSystem, Update)
	app.UseSystem(snowFallSystem, Update)

	app.Logger().Infof("Scene built: tree=%d heart=%d swirl=%d snow=%d",
		scene.Tree.Len(), scene.Heart.Len(), scene.Swirl.Len(), len(scene.Snow))
}

func heartPulseSystem(scene *SceneState, t *Time) {
	scene.HeartScale = HeartPulse(t.Elapsed, HeartPulseAmp)
}

func snowFallSystem(scene *SceneState, t *Time) {
	if t.Dt <= 0 || len(scene.Snow) == 0 {
		return
	}
	snowStep(scene.Snow, t.Elapsed, t.Dt)
	scene.snowDirty = true
}

// snowStep advances the CPU-resident snow buffer one tick: constant fall
// rate, small sinusoidal horizontal drift keyed to time and height, and
// a toroidal wrap that resets a particle crossing the lower bound to
// exactly the upper bound.
func snowStep(positions []mgl32.Vec3, time, dt float32) {
	for i := range positions {
		p := positions[i]
		x := p.X() + sin32(time*0.6+p.Y()*0.35)*SnowDriftAmp*dt
		if x > SnowHalfExtent {
			x -= 2 * SnowHalfExtent
		} else if x < -SnowHalfExtent {
			x += 2 * SnowHalfExtent
		}
		y := p.Y() - SnowFallRate*dt
		if y < SnowBottomY {
			y = SnowTopY
		}
		positions[i] = mgl32.Vec3{x, y, p.Z()}
	}
}

// takeSnowDirty reports whether the snow buffer needs re-upload, at most
// once per tick.
func (s *SceneState) takeSnowDirty() bool {
	dirty := s.snowDirty
	s.snowDirty = false
	return dirty
}
