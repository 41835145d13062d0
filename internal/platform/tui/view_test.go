package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-survivors/internal/autopilot"
	"github.com/vovakirdan/tui-survivors/internal/config"
	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	game, err := survivors.New(config.DefaultSurvivorsConfig())
	if err != nil {
		t.Fatalf("survivors.New() error: %v", err)
	}
	m := NewModel(game, core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 7}, log.New(io.Discard))
	m.Init()
	return m
}

func TestModelStartsSession(t *testing.T) {
	m := newTestModel(t)

	m.render()
	if !strings.Contains(m.screen.String(), "S U R V I V O R S") {
		t.Fatal("menu banner not drawn")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(TickMsg(time.Now()))

	if m.game.Phase() != survivors.PhasePlaying {
		t.Fatalf("Phase() = %v, expected playing", m.game.Phase())
	}

	m.render()
	if !strings.Contains(m.screen.Row(0), "HP") {
		t.Errorf("HUD row = %q, expected health", m.screen.Row(0))
	}
	if !strings.ContainsRune(m.screen.String(), '@') {
		t.Error("player glyph not drawn")
	}
}

func TestModelAutoFireToggle(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if !m.autoFire {
		t.Fatal("space should enable auto fire")
	}
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.autoFire {
		t.Error("second space should disable auto fire")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(TickMsg(time.Now()))
	id := m.game.Session().ID

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	if m.game.Session().ID != id {
		t.Error("resize replaced the session")
	}
	if m.screen.Width() != 60 || m.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, expected 60x19", m.screen.Width(), m.screen.Height())
	}
}

func TestDrawUpgradeCards(t *testing.T) {
	screen := core.NewScreen(100, 30)
	vp := newViewport(100, 30, 1200, 800)
	snap := survivors.Snapshot{
		Phase: survivors.PhaseUpgrading,
		Upgrades: []survivors.UpgradeOption{
			{Slot: 1, Name: "Speed Boost", Description: "Move faster", Category: survivors.CategoryGeneral},
			{Slot: 2, Name: "Unlock Shotgun", Description: "Adds a shotgun", Category: survivors.CategoryWeaponUnlock},
		},
	}

	DrawGame(screen, snap, vp, core.Vec2{}, false)

	out := screen.String()
	for _, want := range []string{"LEVEL UP!", "[1] Speed Boost", "[2] Unlock Shotgun"} {
		if !strings.Contains(out, want) {
			t.Errorf("upgrade screen missing %q", want)
		}
	}
}

func TestWrap(t *testing.T) {
	got := wrap("one two three four five", 9, 2)
	if len(got) != 2 || got[0] != "one two" || got[1] != "three" {
		t.Errorf("wrap() = %q, expected [one two] [three]", got)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{61 * time.Second, "01:01"},
		{15 * time.Minute, "15:00"},
		{1500 * time.Millisecond, "00:02"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("formatClock(%v) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}

func TestResultsTable(t *testing.T) {
	results := []autopilot.Result{
		{Phase: survivors.PhaseVictory, Score: 300, Level: 9, Kills: 120, Elapsed: 15 * time.Minute},
		{Phase: survivors.PhaseGameOver, Score: 100, Level: 3, Kills: 40, Elapsed: 2 * time.Minute},
	}

	out := ResultsTable("kite", results)

	for _, want := range []string{"Outcome", "victory", "game_over", "15:00", "1/2 survived", "mean score 200.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("ResultsTable() missing %q:\n%s", want, out)
		}
	}
}

func TestDrawExplosionParticles(t *testing.T) {
	blast := func(particles, size int) int {
		screen := core.NewScreen(100, 30)
		vp := newViewport(100, 30, 1200, 800)
		snap := survivors.Snapshot{
			Phase: survivors.PhasePlaying,
			Explosions: []survivors.EntityView{{
				Kind:         survivors.KindExplosion,
				Pos:          core.V(600, 400),
				Size:         600,
				Fraction:     1,
				Particles:    particles,
				ParticleSize: size,
			}},
		}
		DrawGame(screen, snap, vp, core.V(600, 400), false)
		return strings.Count(screen.String(), "█")
	}

	base := blast(8, 5)
	if base == 0 {
		t.Fatal("explosion not drawn")
	}
	if more := blast(40, 5); more <= base {
		t.Errorf("40 particles drew %d cells, expected more than %d", more, base)
	}
	if larger := blast(8, 10); larger <= base {
		t.Errorf("larger particles drew %d cells, expected more than %d", larger, base)
	}
}
