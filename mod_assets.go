package garland

import (
	"github.com/google/uuid"
)

type AssetId string

// AssetServer owns CPU-side texture data until the render module uploads
// it. Everything here is created once at mount.
type AssetServer struct {
	textures map[AssetId]TextureAsset
}

type TextureAsset struct {
	texels []uint8 // RGBA8
	width  uint32
	height uint32
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App) {
	app.AddResources(&AssetServer{
		textures: make(map[AssetId]TextureAsset),
	})
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

func (server *AssetServer) CreateTexture(texels []uint8, width, height uint32) AssetId {
	id := makeAssetId()
	server.textures[id] = TextureAsset{
		texels: texels,
		width:  width,
		height: height,
	}
	return id
}

func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	tx, ok := server.textures[id]
	return tx, ok
}

// CreateSoftCircleTexture synthesizes the shared radial falloff mask that
// turns each square billboard into a round sprite. A degenerate size
// degrades to a single opaque texel instead of failing the scene.
func (server *AssetServer) CreateSoftCircleTexture(size int) AssetId {
	if size <= 0 {
		return server.CreateTexture([]uint8{255, 255, 255, 255}, 1, 1)
	}
	texels := make([]uint8, size*size*4)
	center := float32(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) - center) / center
			dy := (float32(y) - center) / center
			d := sqrt32(dx*dx + dy*dy)
			a := smoothstep(1.0, 0.25, d)
			i := (y*size + x) * 4
			texels[i+0] = 255
			texels[i+1] = 255
			texels[i+2] = 255
			texels[i+3] = uint8(a * 255)
		}
	}
	return server.CreateTexture(texels, uint32(size), uint32(size))
}

// smoothstep with edge0 > edge1 supported (descending ramp).
func smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
