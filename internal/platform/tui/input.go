package tui

import "github.com/vovakirdan/tui-survivors/internal/core"

// heldInput approximates held movement keys. Terminals only report key
// presses, so each press keeps its axis active for a few ticks and key
// repeat refreshes it.
type heldInput struct {
	hold       int
	x, y       float64
	xTTL, yTTL int
}

func newHeldInput(hold int) heldInput {
	return heldInput{hold: max(1, hold)}
}

// Press activates the axes of dir.
func (h *heldInput) Press(dir core.Vec2) {
	if dir.X != 0 {
		h.x, h.xTTL = dir.X, h.hold
	}
	if dir.Y != 0 {
		h.y, h.yTTL = dir.Y, h.hold
	}
}

// Tick ages the held axes by one frame.
func (h *heldInput) Tick() {
	if h.xTTL > 0 {
		h.xTTL--
		if h.xTTL == 0 {
			h.x = 0
		}
	}
	if h.yTTL > 0 {
		h.yTTL--
		if h.yTTL == 0 {
			h.y = 0
		}
	}
}

// Move returns the current movement vector.
func (h *heldInput) Move() core.Vec2 {
	return core.V(h.x, h.y)
}

// Release drops all held axes.
func (h *heldInput) Release() {
	h.x, h.y, h.xTTL, h.yTTL = 0, 0, 0, 0
}

// viewport maps world coordinates onto the arena cells of the screen.
type viewport struct {
	arena  core.Rect
	worldW float64
	worldH float64
}

// newViewport lays out the arena below the HUD line, framed by a box.
func newViewport(screenW, screenH int, worldW, worldH float64) viewport {
	return viewport{
		arena:  core.NewRect(1, 2, max(1, screenW-2), max(1, screenH-3)),
		worldW: worldW,
		worldH: worldH,
	}
}

// ToCell converts a world position to a screen cell, clamped to the arena.
func (v viewport) ToCell(p core.Vec2) (int, int) {
	x := int(p.X / v.worldW * float64(v.arena.W))
	y := int(p.Y / v.worldH * float64(v.arena.H))
	return v.arena.X + core.Clamp(x, 0, v.arena.W-1), v.arena.Y + core.Clamp(y, 0, v.arena.H-1)
}

// Visible reports whether a world position falls inside the arena.
func (v viewport) Visible(p core.Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < v.worldW && p.Y < v.worldH
}

// ToWorld converts a screen cell to the world position at its centre.
func (v viewport) ToWorld(cx, cy int) core.Vec2 {
	x := (float64(cx-v.arena.X) + 0.5) / float64(v.arena.W) * v.worldW
	y := (float64(cy-v.arena.Y) + 0.5) / float64(v.arena.H) * v.worldH
	return core.V(core.ClampF(x, 0, v.worldW), core.ClampF(y, 0, v.worldH))
}

// Cells returns how many cells a world size spans on each axis, at least one.
func (v viewport) Cells(size float64) (int, int) {
	w := int(size/v.worldW*float64(v.arena.W) + 0.5)
	h := int(size/v.worldH*float64(v.arena.H) + 0.5)
	return max(1, w), max(1, h)
}
