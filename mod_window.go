package garland

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState owns the GLFW window the scene mounts into. Resize events
// are latched here and drained by the render system once per tick.
type WindowState struct {
	window *glfw.Window

	Width  int
	Height int
	Title  string

	// PixelRatio feeds the shader size attenuation; clamped to <= 2
	// regardless of what the monitor reports.
	PixelRatio float32

	pendingWidth  int
	pendingHeight int
	resized       bool
}

type WindowModule struct {
	Width  int
	Height int
	Title  string
}

func (m WindowModule) Install(app *App) {
	width := m.Width
	height := m.Height
	title := m.Title
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Garland"
	}

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // wgpu owns the surface, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		panic(err)
	}

	scaleX, _ := win.GetContentScale()
	ws := &WindowState{
		window:     win,
		Width:      width,
		Height:     height,
		Title:      title,
		PixelRatio: ClampPixelRatio(scaleX),
	}

	win.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		ws.noteResize(fbWidth, fbHeight)
	})
	win.SetContentScaleCallback(func(w *glfw.Window, x, y float32) {
		ws.noteContentScale(x)
	})

	app.AddResources(ws)
	app.UseSystem(windowEventsSystem, PreUpdate)
	app.UseSystem(windowTeardownSystem, Finale)
}

// ClampPixelRatio bounds the device pixel ratio uniform to [1, 2].
func ClampPixelRatio(scale float32) float32 {
	if scale <= 0 {
		return 1
	}
	if scale > 2 {
		return 2
	}
	return scale
}

func (ws *WindowState) noteResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	ws.pendingWidth = width
	ws.pendingHeight = height
	ws.resized = true
}

// noteContentScale resyncs the pixel-ratio source when the window moves
// between monitors with different content scales.
func (ws *WindowState) noteContentScale(scale float32) {
	ws.PixelRatio = ClampPixelRatio(scale)
}

// takeResize drains a latched resize, at most once per tick.
func (ws *WindowState) takeResize() (width, height int, ok bool) {
	if !ws.resized {
		return 0, 0, false
	}
	ws.resized = false
	ws.Width = ws.pendingWidth
	ws.Height = ws.pendingHeight
	return ws.Width, ws.Height, true
}

func windowEventsSystem(app *App, ws *WindowState) {
	if ws.window == nil {
		return
	}
	glfw.PollEvents()
	if ws.window.ShouldClose() {
		app.Stop()
	}
}

func windowTeardownSystem(ws *WindowState) {
	if ws.window == nil {
		return
	}
	// Detach callbacks before destroying so a late resize cannot fire
	// into released state.
	ws.window.SetFramebufferSizeCallback(nil)
	ws.window.SetContentScaleCallback(nil)
	ws.window.SetCursorPosCallback(nil)
	ws.window.SetMouseButtonCallback(nil)
	ws.window.SetScrollCallback(nil)
	ws.window.Destroy()
	ws.window = nil
	glfw.Terminate()
}
