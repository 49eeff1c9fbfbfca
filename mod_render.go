package garland

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/garland3d/garland/shaders"
)

// sceneUniforms matches SceneUniforms in shaders/sparkle.wgsl.
type sceneUniforms struct {
	View          mgl32.Mat4
	Proj          mgl32.Mat4
	Model         mgl32.Mat4
	Time          float32
	PixelRatio    float32
	RotationSpeed float32
	Twist         float32
}

// snowUniforms matches SnowUniforms in shaders/snowflake.wgsl. The snow
// motion is host-side, so there is no time uniform here.
type snowUniforms struct {
	View       mgl32.Mat4
	Proj       mgl32.Mat4
	PixelRatio float32
	Size       float32
	Pad        [2]float32
	Color      [4]float32
}

// passParams is the single-vec4 uniform of the post passes.
type passParams struct {
	Params [4]float32
}

// Per-system vortex tuning. The swirl base spins fastest; the heart only
// drifts so the heartbeat pulse stays readable.
var (
	treeVortex  = [2]float32{0.25, 0.18} // rotation speed, twist
	heartVortex = [2]float32{0.12, 0.04}
	swirlVortex = [2]float32{0.6, 0.3}
)

const (
	hdrFormat     = wgpu.TextureFormatRGBA16Float
	snowPointSize = float32(0.07)
)

type sparkleSystem struct {
	name          string
	count         uint32
	rotationSpeed float32
	twist         float32
	isHeart       bool

	instances *wgpu.Buffer
	uniforms  *wgpu.Buffer
	bind      *wgpu.BindGroup
}

type snowSystem struct {
	count     uint32
	instances *wgpu.Buffer
	uniforms  *wgpu.Buffer
	bind      *wgpu.BindGroup
}

type renderState struct {
	cfg SceneConfig

	maskView    *wgpu.TextureView
	overlayView *wgpu.TextureView
	sampler     *wgpu.Sampler

	sparklePipeline   *wgpu.RenderPipeline
	snowPipeline      *wgpu.RenderPipeline
	brightPipeline    *wgpu.RenderPipeline
	blurPipeline      *wgpu.RenderPipeline
	compositePipeline *wgpu.RenderPipeline

	systems []*sparkleSystem
	snow    *snowSystem

	// Offscreen targets; rebuilt on resize.
	hdrTexture    *wgpu.Texture
	hdrView       *wgpu.TextureView
	brightTexture *wgpu.Texture
	brightView    *wgpu.TextureView
	blurATexture  *wgpu.Texture
	blurAView     *wgpu.TextureView
	blurBTexture  *wgpu.Texture
	blurBView     *wgpu.TextureView
	halfW, halfH  uint32

	brightBuf    *wgpu.Buffer
	blurHBuf     *wgpu.Buffer
	blurVBuf     *wgpu.Buffer
	compositeBuf *wgpu.Buffer

	brightBind    *wgpu.BindGroup
	blurHBind     *wgpu.BindGroup
	blurVBind     *wgpu.BindGroup
	compositeBind *wgpu.BindGroup
}

type RenderModule struct {
	Config SceneConfig
}

func (m RenderModule) Install(app *App) {
	gpu := ResourceOf[GpuState](app)
	scene := ResourceOf[SceneState](app)
	ws := ResourceOf[WindowState](app)
	if gpu == nil || scene == nil || ws == nil {
		app.Logger().Warnf("Renderer not installed: missing GPU or scene")
		return
	}

	rs := buildRenderState(m.Config.withDefaults(), gpu, ws, scene,
		ResourceOf[AssetServer](app), ResourceOf[OverlayState](app))
	app.AddResources(rs)
	app.UseSystem(prepareFrameSystem, PreRender)
	app.UseSystem(renderSystem, Render)
	app.UseSystem(renderTeardownSystem, Finale)
}

func buildRenderState(cfg SceneConfig, g *GpuState, ws *WindowState, scene *SceneState, assets *AssetServer, ov *OverlayState) *renderState {
	rs := &renderState{cfg: cfg}

	rs.maskView = uploadMaskTexture(scene, assets, g)
	rs.overlayView = uploadOverlayTexture(ov, assets, g)
	rs.sampler = createLinearSampler(g)

	rs.sparklePipeline = createBillboardPipeline("sparkle", shaders.SparkleWGSL, SparkleInstance{}, g, hdrFormat)
	rs.snowPipeline = createBillboardPipeline("snowflake", shaders.SnowflakeWGSL, SnowInstance{}, g, hdrFormat)
	rs.brightPipeline = createPostPipeline("bloom bright", shaders.BrightWGSL, g, hdrFormat)
	rs.blurPipeline = createPostPipeline("bloom blur", shaders.BlurWGSL, g, hdrFormat)
	rs.compositePipeline = createPostPipeline("composite", shaders.CompositeWGSL, g, g.config.Format)

	for _, sys := range []struct {
		cloud  *PointCloud
		vortex [2]float32
		heart  bool
	}{
		{&scene.Tree, treeVortex, false},
		{&scene.Heart, heartVortex, true},
		{&scene.Swirl, swirlVortex, false},
	} {
		if sys.cloud.Len() == 0 {
			continue
		}
		s := &sparkleSystem{
			name:          sys.cloud.Name,
			count:         uint32(sys.cloud.Len()),
			rotationSpeed: sys.vortex[0],
			twist:         sys.vortex[1],
			isHeart:       sys.heart,
		}
		s.instances = createInstanceBuffer(s.name+" instances", toBufferBytes(sys.cloud.Instances()), false, g)
		s.uniforms = createUniformBuffer(s.name+" uniforms", sceneUniforms{}, g)
		s.bind = createSparkleBindGroup(rs.sparklePipeline, s.uniforms, rs.maskView, rs.sampler, g)
		rs.systems = append(rs.systems, s)
	}

	if len(scene.Snow) > 0 {
		snow := &snowSystem{count: uint32(len(scene.Snow))}
		snow.instances = createInstanceBuffer("snow instances", toBufferBytes(packSnowInstances(scene.Snow)), true, g)
		snow.uniforms = createUniformBuffer("snow uniforms", snowUniforms{}, g)
		snow.bind = createSparkleBindGroup(rs.snowPipeline, snow.uniforms, rs.maskView, rs.sampler, g)
		rs.snow = snow
	}

	rs.brightBuf = createUniformBuffer("bright params", passParams{}, g)
	rs.blurHBuf = createUniformBuffer("blur h params", passParams{}, g)
	rs.blurVBuf = createUniformBuffer("blur v params", passParams{}, g)
	rs.compositeBuf = createUniformBuffer("composite params", passParams{}, g)

	rs.createTargets(g, ws.Width, ws.Height)
	return rs
}

func uploadMaskTexture(scene *SceneState, assets *AssetServer, g *GpuState) *wgpu.TextureView {
	if assets != nil {
		if tx, ok := assets.Texture(scene.MaskTexture); ok {
			return uploadTexture(&tx, g)
		}
	}
	// Degraded: blank mask, square sprites instead of a hard failure.
	blank := TextureAsset{texels: []uint8{255, 255, 255, 255}, width: 1, height: 1}
	return uploadTexture(&blank, g)
}

func uploadOverlayTexture(ov *OverlayState, assets *AssetServer, g *GpuState) *wgpu.TextureView {
	if ov != nil && ov.Enabled && assets != nil {
		if tx, ok := assets.Texture(ov.Texture); ok {
			return uploadTexture(&tx, g)
		}
	}
	clear := TextureAsset{texels: []uint8{0, 0, 0, 0}, width: 1, height: 1}
	return uploadTexture(&clear, g)
}

func createSparkleBindGroup(pipeline *wgpu.RenderPipeline, uniforms *wgpu.Buffer, mask *wgpu.TextureView, sampler *wgpu.Sampler, g *GpuState) *wgpu.BindGroup {
	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()

	bind, err := g.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniforms, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: mask, Size: wgpu.WholeSize},
			{Binding: 2, Sampler: sampler, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		panic(err)
	}
	return bind
}

// createTargets (re)builds the offscreen chain for the given framebuffer
// size and refreshes the bind groups that reference the old views.
func (rs *renderState) createTargets(g *GpuState, width, height int) {
	rs.releaseTargets()

	w, h := uint32(width), uint32(height)
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	rs.halfW, rs.halfH = max32(w/2, 1), max32(h/2, 1)

	rs.hdrTexture, rs.hdrView = createSceneTexture("scene hdr", w, h, hdrFormat, g)
	rs.brightTexture, rs.brightView = createSceneTexture("bloom bright", rs.halfW, rs.halfH, hdrFormat, g)
	rs.blurATexture, rs.blurAView = createSceneTexture("bloom blur a", rs.halfW, rs.halfH, hdrFormat, g)
	rs.blurBTexture, rs.blurBView = createSceneTexture("bloom blur b", rs.halfW, rs.halfH, hdrFormat, g)

	rs.rebuildPostBindGroups(g)

	// Static pass parameters; the blur step scales with the target size.
	writeUniform(g, rs.brightBuf, passParams{Params: [4]float32{rs.cfg.BloomThreshold}})
	writeUniform(g, rs.blurHBuf, passParams{Params: [4]float32{rs.cfg.BloomRadius * 2 / float32(rs.halfW), 0}})
	writeUniform(g, rs.blurVBuf, passParams{Params: [4]float32{0, rs.cfg.BloomRadius * 2 / float32(rs.halfH)}})
	writeUniform(g, rs.compositeBuf, passParams{Params: [4]float32{rs.cfg.BloomStrength, rs.cfg.Exposure}})
}

func (rs *renderState) rebuildPostBindGroups(g *GpuState) {
	releaseBindGroups(rs.brightBind, rs.blurHBind, rs.blurVBind, rs.compositeBind)

	rs.brightBind = createPostBindGroup(rs.brightPipeline, g,
		[]wgpu.BindGroupEntry{
			{Binding: 0, TextureView: rs.hdrView, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: rs.sampler, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: rs.brightBuf, Size: wgpu.WholeSize},
		})
	rs.blurHBind = createPostBindGroup(rs.blurPipeline, g,
		[]wgpu.BindGroupEntry{
			{Binding: 0, TextureView: rs.brightView, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: rs.sampler, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: rs.blurHBuf, Size: wgpu.WholeSize},
		})
	rs.blurVBind = createPostBindGroup(rs.blurPipeline, g,
		[]wgpu.BindGroupEntry{
			{Binding: 0, TextureView: rs.blurAView, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: rs.sampler, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: rs.blurVBuf, Size: wgpu.WholeSize},
		})
	rs.compositeBind = createPostBindGroup(rs.compositePipeline, g,
		[]wgpu.BindGroupEntry{
			{Binding: 0, TextureView: rs.hdrView, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: rs.blurBView, Size: wgpu.WholeSize},
			{Binding: 2, TextureView: rs.overlayView, Size: wgpu.WholeSize},
			{Binding: 3, Sampler: rs.sampler, Size: wgpu.WholeSize},
			{Binding: 4, Buffer: rs.compositeBuf, Size: wgpu.WholeSize},
		})
}

func createPostBindGroup(pipeline *wgpu.RenderPipeline, g *GpuState, entries []wgpu.BindGroupEntry) *wgpu.BindGroup {
	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()

	bind, err := g.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		panic(err)
	}
	return bind
}

func writeUniform(g *GpuState, buf *wgpu.Buffer, data any) {
	if err := g.queue.WriteBuffer(buf, 0, toBufferBytes(data)); err != nil {
		panic(err)
	}
}

// prepareFrameSystem drains the resize latch, syncs every uniform buffer
// and re-uploads the snow buffer when dirty. renderSystem then encodes
// scene -> bright -> blur -> composite.
func prepareFrameSystem(ws *WindowState, gpu *GpuState, scene *SceneState, cam *OrbitCamera, t *Time, rs *renderState) {
	if w, h, ok := ws.takeResize(); ok {
		gpu.Resize(w, h)
		cam.SetAspect(w, h)
		rs.createTargets(gpu, w, h)
	}

	view := cam.ViewMatrix()
	proj := cam.ProjMatrix()

	for _, s := range rs.systems {
		model := mgl32.Ident4()
		if s.isHeart {
			// Pulse about the heart's own center so the heartbeat does
			// not translate the cloud.
			c := mgl32.Vec3{0, HeartOffsetY, 0}
			p := scene.HeartScale
			model = mgl32.Translate3D(c.X(), c.Y(), c.Z()).
				Mul4(mgl32.Scale3D(p, p, p)).
				Mul4(mgl32.Translate3D(-c.X(), -c.Y(), -c.Z()))
		}
		writeUniform(gpu, s.uniforms, sceneUniforms{
			View:          view,
			Proj:          proj,
			Model:         model,
			Time:          t.Elapsed,
			PixelRatio:    ws.PixelRatio,
			RotationSpeed: s.rotationSpeed,
			Twist:         s.twist,
		})
	}

	if rs.snow != nil {
		writeUniform(gpu, rs.snow.uniforms, snowUniforms{
			View:       view,
			Proj:       proj,
			PixelRatio: ws.PixelRatio,
			Size:       snowPointSize,
			Color:      [4]float32{0.95, 0.97, 1.0, 0.85},
		})
		if scene.takeSnowDirty() {
			if err := gpu.queue.WriteBuffer(rs.snow.instances, 0, toBufferBytes(packSnowInstances(scene.Snow))); err != nil {
				panic(err)
			}
		}
	}
}

func renderSystem(gpu *GpuState, rs *renderState) {
	rs.encodeFrame(gpu)
}

func (rs *renderState) encodeFrame(g *GpuState) {
	nextTexture, err := g.surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	surfaceView, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer surfaceView.Release()

	encoder, err := g.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	// Scene pass: all particle systems, additively, into the HDR target.
	scenePass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       rs.hdrView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0.004, G: 0.005, B: 0.018, A: 1.0},
			},
		},
	})
	scenePass.SetPipeline(rs.sparklePipeline)
	for _, s := range rs.systems {
		scenePass.SetBindGroup(0, s.bind, nil)
		scenePass.SetVertexBuffer(0, s.instances, 0, wgpu.WholeSize)
		scenePass.Draw(6, s.count, 0, 0)
	}
	if rs.snow != nil {
		scenePass.SetPipeline(rs.snowPipeline)
		scenePass.SetBindGroup(0, rs.snow.bind, nil)
		scenePass.SetVertexBuffer(0, rs.snow.instances, 0, wgpu.WholeSize)
		scenePass.Draw(6, rs.snow.count, 0, 0)
	}
	if err := scenePass.End(); err != nil {
		panic(err)
	}
	scenePass.Release()

	rs.fullscreenPass(encoder, rs.brightPipeline, rs.brightBind, rs.brightView)
	rs.fullscreenPass(encoder, rs.blurPipeline, rs.blurHBind, rs.blurAView)
	rs.fullscreenPass(encoder, rs.blurPipeline, rs.blurVBind, rs.blurBView)
	rs.fullscreenPass(encoder, rs.compositePipeline, rs.compositeBind, surfaceView)

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	g.queue.Submit(cmdBuffer)
	g.surface.Present()
}

func (rs *renderState) fullscreenPass(encoder *wgpu.CommandEncoder, pipeline *wgpu.RenderPipeline, bind *wgpu.BindGroup, target *wgpu.TextureView) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{},
			},
		},
	})
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bind, nil)
	pass.Draw(3, 1, 0, 0)
	if err := pass.End(); err != nil {
		panic(err)
	}
	pass.Release()
}

func (rs *renderState) releaseTargets() {
	for _, tx := range []*wgpu.Texture{rs.hdrTexture, rs.brightTexture, rs.blurATexture, rs.blurBTexture} {
		if tx != nil {
			tx.Release()
		}
	}
	for _, v := range []*wgpu.TextureView{rs.hdrView, rs.brightView, rs.blurAView, rs.blurBView} {
		if v != nil {
			v.Release()
		}
	}
	rs.hdrTexture, rs.brightTexture, rs.blurATexture, rs.blurBTexture = nil, nil, nil, nil
	rs.hdrView, rs.brightView, rs.blurAView, rs.blurBView = nil, nil, nil, nil
}

func releaseBindGroups(binds ...*wgpu.BindGroup) {
	for _, b := range binds {
		if b != nil {
			b.Release()
		}
	}
}

func renderTeardownSystem(rs *renderState) {
	rs.releaseTargets()
	releaseBindGroups(rs.brightBind, rs.blurHBind, rs.blurVBind, rs.compositeBind)
	rs.brightBind, rs.blurHBind, rs.blurVBind, rs.compositeBind = nil, nil, nil, nil

	for _, s := range rs.systems {
		s.instances.Release()
		s.uniforms.Release()
		s.bind.Release()
	}
	rs.systems = nil
	if rs.snow != nil {
		rs.snow.instances.Release()
		rs.snow.uniforms.Release()
		rs.snow.bind.Release()
		rs.snow = nil
	}

	for _, buf := range []*wgpu.Buffer{rs.brightBuf, rs.blurHBuf, rs.blurVBuf, rs.compositeBuf} {
		if buf != nil {
			buf.Release()
		}
	}
	for _, p := range []*wgpu.RenderPipeline{rs.sparklePipeline, rs.snowPipeline, rs.brightPipeline, rs.blurPipeline, rs.compositePipeline} {
		if p != nil {
			p.Release()
		}
	}
	if rs.maskView != nil {
		rs.maskView.Release()
	}
	if rs.overlayView != nil {
		rs.overlayView.Release()
	}
	if rs.sampler != nil {
		rs.sampler.Release()
	}
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
