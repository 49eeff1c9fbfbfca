package garland

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// OverlayState is the static greeting layered above the render surface.
// It has no interaction with the scene core; the composite pass samples
// it last.
type OverlayState struct {
	Texture AssetId
	Enabled bool
}

type OverlayModule struct {
	Text string
}

const overlayTextScale = 3

func (m OverlayModule) Install(app *App) {
	assets := ResourceOf[AssetServer](app)
	ws := ResourceOf[WindowState](app)
	if assets == nil || ws == nil {
		return
	}

	ov := &OverlayState{}
	if m.Text == "" {
		// Transparent placeholder keeps the composite bindings uniform.
		ov.Texture = assets.CreateTexture([]uint8{0, 0, 0, 0}, 1, 1)
	} else {
		img := renderGreeting(m.Text, ws.Width, ws.Height)
		b := img.Bounds()
		ov.Texture = assets.CreateTexture(img.Pix, uint32(b.Dx()), uint32(b.Dy()))
		ov.Enabled = true
	}
	app.AddResources(ov)
}

// renderGreeting rasterizes the greeting line into a screen-sized RGBA
// canvas, centered horizontally near the top.
func renderGreeting(text string, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		width, height = 1280, 720
	}

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()

	small := image.NewRGBA(image.Rect(0, 0, textWidth+8, face.Height+8))
	drawer := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.RGBA{R: 255, G: 235, B: 200, A: 255}),
		Face: face,
		Dot:  fixed.P(4, face.Ascent+4),
	}
	drawer.DrawString(text)

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	scaled := scaleNearest(small, overlayTextScale)
	sb := scaled.Bounds()
	x0 := (width - sb.Dx()) / 2
	y0 := height / 10
	draw.Draw(canvas, image.Rect(x0, y0, x0+sb.Dx(), y0+sb.Dy()), scaled, image.Point{}, draw.Over)
	return canvas
}

func scaleNearest(src *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	for y := 0; y < b.Dy()*factor; y++ {
		for x := 0; x < b.Dx()*factor; x++ {
			dst.SetRGBA(x, y, src.RGBAAt(b.Min.X+x/factor, b.Min.Y+y/factor))
		}
	}
	return dst
}
