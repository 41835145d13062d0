package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
)

// enemyGlyphs maps enemy tags to their glyph and color.
var enemyGlyphs = map[string]struct {
	r rune
	c core.Color
}{
	"basic":     {'o', core.ColorRed},
	"fast":      {'f', core.ColorYellow},
	"tank":      {'T', core.ColorGreen},
	"ranged":    {'R', core.ColorMagenta},
	"mini_boss": {'B', core.ColorBrightRed},
}

// DrawGame renders a snapshot onto dst: HUD line, arena frame, entities
// and the overlay for the current phase.
func DrawGame(dst *core.Screen, snap survivors.Snapshot, vp viewport, aim core.Vec2, autoFire bool) {
	dst.Clear()
	drawHUD(dst, snap.HUD, autoFire)

	frame := core.NewRect(vp.arena.X-1, vp.arena.Y-1, vp.arena.W+2, vp.arena.H+2)
	dst.DrawBox(frame)

	if snap.Phase != survivors.PhaseMenu {
		drawEntities(dst, snap, vp)
		if snap.Phase == survivors.PhasePlaying {
			ax, ay := vp.ToCell(aim)
			if dst.Get(ax, ay) == ' ' {
				dst.SetColored(ax, ay, '+', core.ColorGray)
			}
		}
	}

	switch snap.Phase {
	case survivors.PhaseMenu:
		drawMenu(dst, vp)
	case survivors.PhasePaused:
		drawBanner(dst, vp, []string{"PAUSED", "", "p / esc to resume"}, core.ColorCyan)
	case survivors.PhaseUpgrading:
		drawUpgrades(dst, vp, snap.Upgrades)
	case survivors.PhaseGameOver:
		drawResult(dst, vp, "GAME OVER", core.ColorBrightRed, snap.HUD)
	case survivors.PhaseVictory:
		drawResult(dst, vp, "YOU SURVIVED", core.ColorBrightYellow, snap.HUD)
	}
}

func drawHUD(dst *core.Screen, hud survivors.HUD, autoFire bool) {
	x := 0
	text := func(s string, c core.Color) {
		dst.DrawTextColored(x, 0, s, c)
		x += len([]rune(s))
	}

	text("HP ", core.ColorDefault)
	dst.DrawBar(x, 0, 10, hud.HealthFrac, core.ColorRed, core.ColorGray)
	x += 10
	text(fmt.Sprintf(" %3.0f/%-3.0f ", hud.Health, hud.MaxHealth), core.ColorDefault)

	text(fmt.Sprintf("LV %d ", hud.Level), core.ColorCyan)
	dst.DrawBar(x, 0, 8, hud.ExperienceFrac, core.ColorCyan, core.ColorGray)
	x += 8

	text(fmt.Sprintf("  Score %d", hud.Score), core.ColorBrightYellow)
	text("  "+formatClock(hud.TimeRemaining), core.ColorWhite)

	for i, w := range hud.Weapons {
		label := fmt.Sprintf("  %d:%s", i+1, w)
		c := core.ColorGray
		if i == hud.ActiveWeapon {
			label += "*"
			c = core.ColorWhite
		}
		text(label, c)
	}
	if autoFire {
		text("  [AUTO]", core.ColorOrange)
	}
}

func drawEntities(dst *core.Screen, snap survivors.Snapshot, vp viewport) {
	for _, x := range snap.Explosions {
		drawExplosion(dst, vp, x)
	}
	for _, e := range snap.Enemies {
		g, ok := enemyGlyphs[e.Tag]
		if !ok {
			g.r, g.c = '?', core.ColorWhite
		}
		drawBlock(dst, vp, e.Pos, e.Size, g.r, g.c)
	}
	for _, pr := range snap.Projectiles {
		if !vp.Visible(pr.Pos) {
			continue
		}
		cx, cy := vp.ToCell(pr.Pos)
		if pr.Kind == survivors.KindEnemyProjectile {
			dst.SetColored(cx, cy, '*', core.ColorBrightRed)
		} else {
			c, _ := core.ParseColor(pr.Color)
			dst.SetColored(cx, cy, '•', c)
		}
	}
	drawBlock(dst, vp, snap.Player.Pos, 0, '@', core.ColorGreen)
}

// drawBlock fills the cells covered by an entity centred at pos.
// Entities outside the arena are not drawn.
func drawBlock(dst *core.Screen, vp viewport, pos core.Vec2, size float64, r rune, c core.Color) {
	if !vp.Visible(pos) {
		return
	}
	cx, cy := vp.ToCell(pos)
	w, h := vp.Cells(size)
	for dy := range h {
		for dx := range w {
			x, y := cx-w/2+dx, cy-h/2+dy
			if x >= vp.arena.X && x < vp.arena.Right() && y >= vp.arena.Y && y < vp.arena.Bottom() {
				dst.SetColored(x, y, r, c)
			}
		}
	}
}

// drawExplosion draws the blast as rings of particles, fading as the
// explosion ages. Particle count sets the points per ring and particle
// size adds inner rings.
func drawExplosion(dst *core.Screen, vp viewport, x survivors.EntityView) {
	glyph := '░'
	switch {
	case x.Fraction > 0.66:
		glyph = '█'
	case x.Fraction > 0.33:
		glyph = '▒'
	}

	points := max(8, x.Particles)
	rings := max(1, x.ParticleSize/5)
	radius := x.Size / 2
	for ring := range rings {
		r := radius * (1 - 0.2*float64(ring))
		if r <= 0 {
			break
		}
		for i := range points {
			a := 2 * math.Pi * float64(i) / float64(points)
			p := x.Pos.Add(core.FromAngle(a).Scale(r))
			if vp.Visible(p) {
				cx, cy := vp.ToCell(p)
				dst.SetColored(cx, cy, glyph, core.ColorOrange)
			}
		}
	}
	if vp.Visible(x.Pos) {
		cx, cy := vp.ToCell(x.Pos)
		dst.SetColored(cx, cy, '*', core.ColorBrightYellow)
	}
}

func drawMenu(dst *core.Screen, vp viewport) {
	drawBanner(dst, vp, []string{
		"T U I   S U R V I V O R S",
		"",
		"Survive fifteen minutes against the horde.",
		"Level up and pick upgrades as you go.",
		"",
		"enter  start",
		"q      quit",
	}, core.ColorBrightYellow)
}

func drawResult(dst *core.Screen, vp viewport, title string, c core.Color, hud survivors.HUD) {
	drawBanner(dst, vp, []string{
		title,
		"",
		fmt.Sprintf("Score   %d", hud.Score),
		fmt.Sprintf("Level   %d", hud.Level),
		fmt.Sprintf("Kills   %d", hud.Kills),
		fmt.Sprintf("Time    %s", formatClock(hud.Elapsed)),
		"",
		"r to play again, q to quit",
	}, c)
}

// drawBanner draws a framed block of centred lines in the middle of the arena.
// The first line takes the accent color.
func drawBanner(dst *core.Screen, vp viewport, lines []string, accent core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	w, h := width+4, len(lines)+2
	x := vp.arena.X + (vp.arena.W-w)/2
	y := vp.arena.Y + (vp.arena.H-h)/2
	box := core.NewRect(x, y, w, h)

	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		lx := x + (w-len([]rune(l)))/2
		c := core.ColorDefault
		if i == 0 {
			c = accent
		}
		dst.DrawTextColored(lx, y+1+i, l, c)
	}
}

// drawUpgrades draws one card per option side by side, or stacked when the
// arena is too narrow.
func drawUpgrades(dst *core.Screen, vp viewport, opts []survivors.UpgradeOption) {
	const cardW, cardH = 26, 7

	title := "LEVEL UP! choose an upgrade (1-3)"
	dst.DrawTextColored(vp.arena.X+(vp.arena.W-len(title))/2, vp.arena.Y+1, title, core.ColorBrightYellow)

	side := vp.arena.W >= len(opts)*(cardW+2)
	for i, o := range opts {
		var x, y int
		if side {
			total := len(opts)*(cardW+2) - 2
			x = vp.arena.X + (vp.arena.W-total)/2 + i*(cardW+2)
			y = vp.arena.Y + (vp.arena.H-cardH)/2
		} else {
			x = vp.arena.X + (vp.arena.W-cardW)/2
			y = vp.arena.Y + 3 + i*cardH
		}
		card := core.NewRect(x, y, cardW, cardH)
		dst.FillRect(card, ' ')
		dst.DrawBox(card)

		dst.DrawTextColored(x+2, y+1, fmt.Sprintf("[%d] %s", o.Slot, truncate(o.Name, cardW-8)), core.ColorWhite)
		dst.DrawTextColored(x+2, y+2, o.Category.String(), core.ColorGray)
		for j, line := range wrap(o.Description, cardW-4, cardH-4) {
			dst.DrawText(x+2, y+3+j, line)
		}
	}
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(0, n-1)]) + "…"
}

// wrap splits s into at most maxLines lines of at most width runes.
func wrap(s string, width, maxLines int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(word)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, l := range lines {
		lines[i] = truncate(l, width)
	}
	return lines
}
