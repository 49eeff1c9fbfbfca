package garland

import "testing"

func TestContentScaleResync(t *testing.T) {
	ws := &WindowState{PixelRatio: 1}

	// Dragging the window onto a 2x monitor.
	ws.noteContentScale(2)
	if ws.PixelRatio != 2 {
		t.Errorf("Pixel ratio must follow the monitor scale, got %v", ws.PixelRatio)
	}

	// A 3x monitor still clamps to 2.
	ws.noteContentScale(3)
	if ws.PixelRatio != 2 {
		t.Errorf("Pixel ratio must stay clamped to 2, got %v", ws.PixelRatio)
	}

	// A bogus zero scale degrades to 1 rather than zeroing sprite sizes.
	ws.noteContentScale(0)
	if ws.PixelRatio != 1 {
		t.Errorf("Zero scale must degrade to 1, got %v", ws.PixelRatio)
	}
}
