package garland

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
)

// GpuState holds the wgpu objects shared by every render pass.
type GpuState struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
	config  *wgpu.SurfaceConfiguration
}

type GpuModule struct{}

func (GpuModule) Install(app *App) {
	ws := ResourceOf[WindowState](app)
	if ws == nil || ws.window == nil {
		// No mount surface: skip GPU setup entirely, scene stays a no-op.
		app.Logger().Warnf("No window available, GPU setup skipped")
		return
	}
	app.AddResources(createGpuState(ws))
	app.UseSystem(gpuTeardownSystem, Finale)
}

func createGpuState(ws *WindowState) *GpuState {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()
	// wraps the GLFW window into a wgpu surface
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(ws.window))
	// finds a suitable GPU (discrete GPU preferred)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		panic(err)
	}
	// allocates the device and command queue
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            "Garland Device",
		RequiredFeatures: nil,
		RequiredLimits:   nil,
	})
	if err != nil {
		panic(err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	// swapchain behavior (size, format, vsync)
	config := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(ws.Width),
		Height:      uint32(ws.Height),
		PresentMode: wgpu.PresentModeFifo, // vsync drives the tick rate
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &config)

	return &GpuState{
		surface: surface,
		adapter: adapter,
		device:  device,
		queue:   queue,
		config:  &config,
	}
}

// Resize reconfigures the swapchain to the new framebuffer dimensions.
func (g *GpuState) Resize(width, height int) {
	g.config.Width = uint32(width)
	g.config.Height = uint32(height)
	g.surface.Configure(g.adapter, g.device, g.config)
}

func gpuTeardownSystem(g *GpuState) {
	if g.device == nil {
		return
	}
	g.queue.Release()
	g.device.Release()
	g.surface.Release()
	g.adapter.Release()
	g.device = nil
}

// additiveBlend accumulates sparkle brightness in the HDR target; the
// destination keeps full weight so overlapping particles stack up.
var additiveBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOne,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOne,
	},
}

// createBillboardPipeline builds the instanced quad pipeline used by the
// particle systems: six vertices per instance, corner expansion in the
// vertex stage, no depth buffer, additive blending into the HDR target.
func createBillboardPipeline(name string, shaderCode string, instanceType any, g *GpuState, targetFormat wgpu.TextureFormat) *wgpu.RenderPipeline {
	shader, err := g.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		panic(err)
	}
	defer shader.Release()

	layout := createInstanceBufferLayout(instanceType)

	pipeline, err := g.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: name,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{layout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     &additiveBlend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		panic(err)
	}
	return pipeline
}

// createPostPipeline builds a fullscreen-triangle pass with no vertex
// buffers; the vertex stage synthesizes positions from the vertex index.
func createPostPipeline(name string, shaderCode string, g *GpuState, targetFormat wgpu.TextureFormat) *wgpu.RenderPipeline {
	shader, err := g.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		panic(err)
	}
	defer shader.Release()

	pipeline, err := g.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: name,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		panic(err)
	}
	return pipeline
}

func reflectStructType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic("instance layout must be a struct")
	}
	return t
}

func parseFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float":
		return wgpu.VertexFormatFloat32
	case "float2":
		return wgpu.VertexFormatFloat32x2
	case "float3":
		return wgpu.VertexFormatFloat32x3
	case "float4":
		return wgpu.VertexFormatFloat32x4
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

// createInstanceBufferLayout derives the per-instance vertex layout from
// struct tags: `garland:"layout" format:"float3" location:"0"`.
func createInstanceBufferLayout(instanceType any) wgpu.VertexBufferLayout {
	t := reflectStructType(instanceType)

	var attributes []wgpu.VertexAttribute
	var offset uint64 = 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if "layout" == field.Tag.Get("garland") {
			format := parseFormat(field.Tag.Get("format"))
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if nil != err {
				panic(err)
			}
			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         format,
			})
		}
		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attributes,
	}
}

func createInstanceBuffer(name string, contents []byte, mutable bool, g *GpuState) *wgpu.Buffer {
	usage := wgpu.BufferUsageVertex
	if mutable {
		usage |= wgpu.BufferUsageCopyDst
	}
	buffer, err := g.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: contents,
		Usage:    usage,
	})
	if err != nil {
		panic(err)
	}
	return buffer
}

func createUniformBuffer(name string, data any, g *GpuState) *wgpu.Buffer {
	buffer, err := g.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: toBufferBytes(data),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	return buffer
}

// toBufferBytes serializes a fixed-size struct for a GPU buffer upload.
func toBufferBytes(data any) []byte {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, data); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func createSceneTexture(name string, width, height uint32, format wgpu.TextureFormat, g *GpuState) (*wgpu.Texture, *wgpu.TextureView) {
	texture, err := g.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: name,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		panic(err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	return texture, view
}

func uploadTexture(tx *TextureAsset, g *GpuState) *wgpu.TextureView {
	extent := wgpu.Extent3D{
		Width:              tx.width,
		Height:             tx.height,
		DepthOrArrayLayers: 1,
	}
	texture, err := g.device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	defer texture.Release()

	view, err := texture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	err = g.queue.WriteTexture(
		texture.AsImageCopy(),
		tx.texels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  tx.width * 4,
			RowsPerImage: tx.height,
		},
		&extent,
	)
	if err != nil {
		panic(err)
	}
	return view
}

func createLinearSampler(g *GpuState) *wgpu.Sampler {
	sampler, err := g.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0.,
		LodMaxClamp:   1.,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		panic(err)
	}
	return sampler
}
