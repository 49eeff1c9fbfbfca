package garland

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Polar clamp: the camera never dips below the horizon plane.
	orbitMinPitch = 0.05
	orbitMaxPitch = float32(math.Pi/2) - 0.05

	orbitMinDistance = 4.0
	orbitMaxDistance = 40.0

	orbitRotateSens = 0.005
	orbitZoomSens   = 0.1
)

// OrbitCamera orbits a fixed target with damped interpolation toward the
// user's drag input. No auto-rotate: the vortex shader already supplies
// perceived motion.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32

	TargetYaw      float32
	TargetPitch    float32
	TargetDistance float32

	Damping float32 // 1/s, rate of approach toward the target values

	Aspect float32
	Fovy   float32
	Near   float32
	Far    float32

	dragging     bool
	lastX, lastY float64
}

func NewOrbitCamera(aspect float32) *OrbitCamera {
	cam := &OrbitCamera{
		Target:   mgl32.Vec3{0, 1.5, 0},
		Yaw:      0.6,
		Pitch:    0.45,
		Distance: 18,
		Damping:  8,
		Aspect:   aspect,
		Fovy:     mgl32.DegToRad(55),
		Near:     0.1,
		Far:      200,
	}
	cam.TargetYaw = cam.Yaw
	cam.TargetPitch = cam.Pitch
	cam.TargetDistance = cam.Distance
	return cam
}

type OrbitCameraModule struct{}

func (OrbitCameraModule) Install(app *App) {
	ws := ResourceOf[WindowState](app)
	aspect := float32(1)
	if ws != nil && ws.Height > 0 {
		aspect = float32(ws.Width) / float32(ws.Height)
	}
	cam := NewOrbitCamera(aspect)
	app.AddResources(cam)

	if ws != nil && ws.window != nil {
		cam.attachInput(ws.window)
	}
	app.UseSystem(orbitCameraSystem, Update)
}

func (cam *OrbitCamera) attachInput(win *glfw.Window) {
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if action == glfw.Press {
			cam.dragging = true
			cam.lastX, cam.lastY = w.GetCursorPos()
		} else if action == glfw.Release {
			cam.dragging = false
		}
	})
	win.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if !cam.dragging {
			return
		}
		dx := float32(x - cam.lastX)
		dy := float32(y - cam.lastY)
		cam.lastX, cam.lastY = x, y
		cam.Rotate(-dx*orbitRotateSens, dy*orbitRotateSens)
	})
	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		cam.Dolly(float32(yoff))
	})
}

// Rotate adjusts the orbit targets; the per-tick system damps toward them.
func (cam *OrbitCamera) Rotate(dYaw, dPitch float32) {
	cam.TargetYaw += dYaw
	cam.TargetPitch = ClampPolar(cam.TargetPitch + dPitch)
}

func (cam *OrbitCamera) Dolly(scroll float32) {
	d := cam.TargetDistance * (1 - scroll*orbitZoomSens)
	if d < orbitMinDistance {
		d = orbitMinDistance
	}
	if d > orbitMaxDistance {
		d = orbitMaxDistance
	}
	cam.TargetDistance = d
}

// ClampPolar keeps the polar angle above the horizon plane.
func ClampPolar(pitch float32) float32 {
	if pitch < orbitMinPitch {
		return orbitMinPitch
	}
	if pitch > orbitMaxPitch {
		return orbitMaxPitch
	}
	return pitch
}

func (cam *OrbitCamera) SetAspect(width, height int) {
	if height <= 0 {
		return
	}
	cam.Aspect = float32(width) / float32(height)
}

// Damp moves the live orbit state toward the targets.
func (cam *OrbitCamera) Damp(dt float32) {
	t := cam.Damping * dt
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	cam.Yaw += (cam.TargetYaw - cam.Yaw) * t
	cam.Pitch = ClampPolar(cam.Pitch + (cam.TargetPitch-cam.Pitch)*t)
	cam.Distance += (cam.TargetDistance - cam.Distance) * t
}

func (cam *OrbitCamera) Position() mgl32.Vec3 {
	cp := cos32(cam.Pitch)
	return cam.Target.Add(mgl32.Vec3{
		cp * sin32(cam.Yaw),
		sin32(cam.Pitch),
		cp * cos32(cam.Yaw),
	}.Mul(cam.Distance))
}

func (cam *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(cam.Position(), cam.Target, mgl32.Vec3{0, 1, 0})
}

func (cam *OrbitCamera) ProjMatrix() mgl32.Mat4 {
	return mgl32.Perspective(cam.Fovy, cam.Aspect, cam.Near, cam.Far)
}

func orbitCameraSystem(cam *OrbitCamera, t *Time) {
	if t.Dt <= 0 {
		return
	}
	cam.Damp(t.Dt)
}
