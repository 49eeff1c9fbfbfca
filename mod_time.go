package garland

import (
	"time"
)

// Time is the single source of truth for animation phase. Elapsed is
// monotonic seconds since scene start; every shader-driven system reads
// its time uniform from here.
type Time struct {
	Start   time.Time
	Now     time.Time
	Elapsed float32
	Dt      float32
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App) {
	now := time.Now()
	app.AddResources(&Time{
		Start: now,
		Now:   now,
	})
	app.UseSystem(timeSystem, PreUpdate)
}

func timeSystem(t *Time) {
	now := time.Now()
	t.Dt = float32(now.Sub(t.Now).Seconds())
	t.Now = now
	t.Elapsed = float32(now.Sub(t.Start).Seconds())
}
